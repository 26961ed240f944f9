package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"text/tabwriter"
)

func (a *App) cmdAdminApps(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.queue.Load(ctx); err != nil {
		return err
	}
	apps := a.queue.Applications()
	if len(apps) == 0 {
		a.printf("No applications waiting.\n")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAPPLICANT\tEMAIL\tSPOT\tCAPACITY\tSUBMITTED")
	for _, app := range apps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			app.ID, app.User.Name, app.User.Email,
			app.ParkingSpot.Name, app.ParkingSpot.TotalCapacity, app.SubmissionDate)
	}
	w.Flush()
	return nil
}

func (a *App) cmdAdminView(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.Int64("id", 0, "application id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail, err := a.admin.View(ctx, *id)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.printf("%-18s %v\n", k+":", detail[k])
	}
	return nil
}

func (a *App) cmdAdminApprove(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.Int64("id", 0, "application id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.queue.Load(ctx); err != nil {
		return err
	}
	if err := a.queue.Approve(ctx, *id); err != nil {
		return err
	}
	a.printf("Application #%d approved. %d still pending.\n", *id, len(a.queue.Applications()))
	return nil
}

func (a *App) cmdAdminReject(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.Int64("id", 0, "application id")
	reason := fs.String("reason", "", "reason shown to the applicant")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.queue.Load(ctx); err != nil {
		return err
	}
	if err := a.queue.Reject(ctx, *id, *reason); err != nil {
		return err
	}
	a.printf("Application #%d rejected. %d still pending.\n", *id, len(a.queue.Applications()))
	return nil
}

func (a *App) cmdAdminStats(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.adminDashboard(ctx)
}
