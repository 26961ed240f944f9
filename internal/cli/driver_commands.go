package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/booking"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/guard"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/parking"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/provider"
)

// inputTimeLayout is what users type; seconds are implied.
const inputTimeLayout = "2006-01-02 15:04"

func parseInputTime(flagName, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("-%s is required (format %q)", flagName, inputTimeLayout)
	}
	t, err := time.Parse(inputTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("-%s: expected format %q", flagName, inputTimeLayout)
	}
	return t, nil
}

// cmdDashboard renders the variant matching the stored role. The role claim is
// resolved exactly once per invocation; everything below branches off that.
func (a *App) cmdDashboard(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	u := a.sessions.CurrentUser()
	if u == nil {
		return fmt.Errorf("not signed in: run 'parkcli login' first")
	}

	role := guard.ParseRole(u.Role)
	a.printf("%s dashboard for %s\n\n", role, u.Email)

	return guard.Dispatch(role, guard.Views{
		Driver:   func() error { return a.driverDashboard(ctx, u.Email) },
		Provider: func() error { return a.providerDashboard(ctx, u.Email) },
		Admin:    func() error { return a.adminDashboard(ctx) },
	})
}

func (a *App) driverDashboard(ctx context.Context, email string) error {
	state := a.tracker.Fetch(ctx, email).Display()
	switch {
	case state.ShowCallToAction():
		a.printf("Have a parking space? Run 'parkcli become-provider' to list it.\n")
	case state.UnderReview():
		a.printf("Your provider application is under review.\n")
	case state.Status == provider.StatusRejected:
		a.printApplicationState(state)
	}

	bookings, err := a.bookings.MyBookings(ctx)
	if err != nil {
		return err
	}
	a.printf("\nYour bookings:\n")
	a.printBookings(bookings)
	return nil
}

func (a *App) providerDashboard(ctx context.Context, email string) error {
	stats, err := a.provider.Dashboard(ctx, email)
	if err != nil {
		return err
	}
	a.printf("Spots listed:      %d\n", stats.TotalParkings)
	a.printf("Active bookings:   %d\n", stats.ActiveBookings)
	a.printf("Earnings today:    %.2f\n", stats.TodayEarnings)
	a.printf("Earnings (month):  %.2f\n", stats.MonthlyEarnings)
	return nil
}

func (a *App) adminDashboard(ctx context.Context) error {
	stats, err := a.admin.FetchStats(ctx)
	if err != nil {
		return err
	}
	a.printf("Users: %d  Providers: %d  Spots: %d\n", stats.TotalUsers, stats.TotalProviders, stats.TotalSpots)
	a.printf("Bookings: %d active, %d cancelled  Revenue: %.2f\n",
		stats.ActiveBookings, stats.CancelledBookings, stats.TotalRevenue)
	for _, alert := range stats.SystemAlerts {
		a.printf("! %s\n", alert)
	}
	return nil
}

func (a *App) cmdSearch(ctx context.Context, fs *flag.FlagSet, args []string) error {
	state := fs.String("state", "", "state to search in")
	district := fs.String("district", "", "district to search in")
	if err := fs.Parse(args); err != nil {
		return err
	}

	spots, err := a.parking.Search(ctx, *state, *district)
	if err != nil {
		return err
	}
	a.printSpots(spots)
	return nil
}

func (a *App) cmdNearby(ctx context.Context, fs *flag.FlagSet, args []string) error {
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	radius := fs.Float64("radius", 0, "radius in km (default 5)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	spots, err := a.parking.Nearby(ctx, *lat, *lng, *radius)
	if err != nil {
		return err
	}
	a.printSpots(spots)
	return nil
}

func (a *App) cmdSpots(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	spots, err := a.parking.All(ctx)
	if err != nil {
		return err
	}
	a.printSpots(spots)
	return nil
}

func (a *App) cmdSpot(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.Int64("id", 0, "spot id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	spot, err := a.parking.ByID(ctx, *id)
	if err != nil {
		return err
	}
	a.printf("#%d %s\n", spot.ID, spot.Name)
	a.printf("  %s, %s %s\n", spot.Address, spot.District, spot.State)
	a.printf("  %.2f/hour, capacity %d, status %s\n", spot.PricePerHour, spot.TotalCapacity, spot.Status)
	a.printf("  vehicles: %v\n", spot.AllowedVehicles())
	return nil
}

// cmdBook quotes the spot's rate against the window, shows the total and only
// then submits. A window that quotes to zero never reaches the backend.
func (a *App) cmdBook(ctx context.Context, fs *flag.FlagSet, args []string) error {
	spotID := fs.Int64("spot", 0, "spot id")
	startArg := fs.String("start", "", "start time, e.g. '2026-09-01 10:00'")
	endArg := fs.String("end", "", "end time")
	payment := fs.String("payment", "", "payment method")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := parseInputTime("start", *startArg)
	if err != nil {
		return err
	}
	end, err := parseInputTime("end", *endArg)
	if err != nil {
		return err
	}

	spot, err := a.parking.ByID(ctx, *spotID)
	if err != nil {
		return err
	}

	req := booking.CreateRequest{
		ParkingSpotID: spot.ID,
		StartTime:     start,
		EndTime:       end,
		PricePerHour:  spot.PricePerHour,
		PaymentMethod: *payment,
	}
	a.printf("Booking %s from %s to %s: total %d\n",
		spot.Name, start.Format(inputTimeLayout), end.Format(inputTimeLayout), req.Total())

	created, err := a.bookings.Create(ctx, req)
	if err != nil {
		return err
	}
	a.printf("Confirmed. Booking #%d (%s).\n", created.ID, created.Status)
	return nil
}

func (a *App) cmdBookings(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	bookings, err := a.bookings.MyBookings(ctx)
	if err != nil {
		return err
	}
	a.printBookings(bookings)
	return nil
}

func (a *App) cmdBooking(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.Int64("id", 0, "booking id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := a.bookings.ByID(ctx, *id)
	if err != nil {
		return err
	}
	a.printf("Booking #%d at %s\n", b.ID, b.ParkingSpotName)
	a.printf("  %s to %s\n", b.StartTime, b.EndTime)
	a.printf("  total %.0f, status %s\n", b.TotalPrice, b.Status)
	return nil
}

func (a *App) cmdCancel(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.Int64("id", 0, "booking id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := a.bookings.ByID(ctx, *id)
	if err != nil {
		return err
	}
	if err := a.bookings.Cancel(ctx, b); err != nil {
		return err
	}
	a.printf("Booking #%d cancelled.\n", b.ID)
	return nil
}

func (a *App) cmdAvailability(ctx context.Context, fs *flag.FlagSet, args []string) error {
	spotID := fs.Int64("spot", 0, "spot id")
	startArg := fs.String("start", "", "start time")
	endArg := fs.String("end", "", "end time")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := parseInputTime("start", *startArg)
	if err != nil {
		return err
	}
	end, err := parseInputTime("end", *endArg)
	if err != nil {
		return err
	}

	free, err := a.bookings.Availability(ctx, *spotID, start, end)
	if err != nil {
		return err
	}
	a.printf("%d free slot(s) in that window.\n", free)
	return nil
}

func (a *App) printSpots(spots []parking.Spot) {
	if len(spots) == 0 {
		a.printf("No spots found.\n")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tADDRESS\tRATE/H\tCAPACITY\tSTATUS")
	for _, s := range spots {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%s\n",
			s.ID, s.Name, s.Address, s.PricePerHour, s.TotalCapacity, s.Status)
	}
	w.Flush()
}

func (a *App) printBookings(bookings []booking.Booking) {
	if len(bookings) == 0 {
		a.printf("No bookings yet.\n")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSPOT\tSTART\tEND\tTOTAL\tSTATUS")
	for _, b := range bookings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.0f\t%s\n",
			b.ID, b.ParkingSpotName, b.StartTime, b.EndTime, b.TotalPrice, b.Status)
	}
	w.Flush()
}
