package cli

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/provider"
)

func (a *App) cmdBecomeProvider(ctx context.Context, fs *flag.FlagSet, args []string) error {
	app := provider.Application{}
	fs.StringVar(&app.OwnerName, "owner", "", "owner full name")
	fs.StringVar(&app.Phone, "phone", "", "contact phone number")
	fs.StringVar(&app.GovernmentID, "gov-id", "", "government id number")
	fs.StringVar(&app.Name, "name", "", "parking spot name")
	fs.StringVar(&app.Description, "description", "", "description")
	fs.StringVar(&app.State, "state", "", "state")
	fs.StringVar(&app.District, "district", "", "district")
	fs.StringVar(&app.Address1, "address", "", "street address")
	fs.StringVar(&app.Address2, "address2", "", "address line 2")
	fs.StringVar(&app.Pincode, "pincode", "", "postal code")
	fs.StringVar(&app.GoogleMapsLink, "maps-link", "", "google maps link")
	fs.IntVar(&app.TotalCapacity, "capacity", 0, "total capacity")
	fs.Float64Var(&app.PricePerHour, "rate", 0, "price per hour")
	fs.Float64Var(&app.WeekendPrice, "weekend-rate", 0, "weekend price per hour")
	fs.StringVar(&app.ParkingType, "type", "", "Covered or Open")
	fs.BoolVar(&app.Cctv, "cctv", false, "cctv available")
	fs.BoolVar(&app.Guard, "guard", false, "guard on site")
	fs.BoolVar(&app.EvCharging, "ev-charging", false, "ev charging available")
	fs.BoolVar(&app.MonthlyPlan, "monthly-plan", false, "monthly plan offered")
	fs.StringVar(&app.BankAccount, "bank-account", "", "bank account number")
	fs.StringVar(&app.UpiID, "upi", "", "upi id")
	fs.StringVar(&app.GstNumber, "gst", "", "gst number")
	fs.StringVar(&app.PanNumber, "pan", "", "pan number")
	fs.BoolVar(&app.Declaration, "accept-declaration", false, "accept the provider declaration")
	vehicles := fs.String("vehicles", "", "comma-separated vehicle types")
	areaImage := fs.String("area-image", "", "path to the parking area photo")
	gateImage := fs.String("gate-image", "", "path to the entry gate photo")
	surroundingsImage := fs.String("surroundings-image", "", "path to the surroundings photo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email, err := a.currentEmail()
	if err != nil {
		return err
	}
	app.Email = email

	if *vehicles != "" {
		for _, v := range strings.Split(*vehicles, ",") {
			app.VehicleTypes = append(app.VehicleTypes, strings.TrimSpace(v))
		}
	}

	app.Images = map[string][]byte{}
	for part, path := range map[string]string{
		"parkingAreaImage":     *areaImage,
		"entryGateImage":       *gateImage,
		"surroundingAreaImage": *surroundingsImage,
	} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		app.Images[part] = data
	}

	if err := a.provider.Apply(ctx, app); err != nil {
		return err
	}
	a.printf("Application submitted. Track it with 'parkcli application-status'.\n")
	return nil
}

func (a *App) cmdApplicationStatus(ctx context.Context, fs *flag.FlagSet, args []string) error {
	watch := fs.Bool("watch", false, "keep polling until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email, err := a.currentEmail()
	if err != nil {
		return err
	}

	a.printApplicationState(a.tracker.Fetch(ctx, email).Display())
	if !*watch {
		return nil
	}

	err = a.tracker.Watch(ctx, email, a.cfg.WatchSpec, func(r provider.StatusResult) {
		a.printApplicationState(r.Display())
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

func (a *App) printApplicationState(state provider.ApplicationState) {
	switch state.Status {
	case provider.StatusNone:
		a.printf("No application on file. Run 'parkcli become-provider' to apply.\n")
	case provider.StatusPending:
		a.printf("Application under review.\n")
	case provider.StatusApproved:
		a.printf("Approved! Your spot is live; see 'parkcli my-spots'.\n")
	case provider.StatusRejected:
		a.printf("Application rejected: %s\n", state.RejectionReason)
		if state.CanReapply() {
			a.printf("You may re-apply now.\n")
		} else {
			a.printf("You can re-apply in %d day(s).\n", state.DaysLeft)
		}
	}
}

func (a *App) cmdMySpots(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	email, err := a.currentEmail()
	if err != nil {
		return err
	}

	spots, err := a.provider.MySpots(ctx, email)
	if err != nil {
		return err
	}
	a.printSpots(spots)
	return nil
}

func (a *App) cmdProviderBookings(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	email, err := a.currentEmail()
	if err != nil {
		return err
	}

	bookings, err := a.provider.Bookings(ctx, email)
	if err != nil {
		return err
	}
	a.printBookings(bookings)
	return nil
}

// cmdUpdateSpot edits a listed spot. The current listing is fetched first and
// only the flags actually given override it, so an omitted flag never zeroes a
// field.
func (a *App) cmdUpdateSpot(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.Int64("id", 0, "spot id")
	name := fs.String("name", "", "spot name")
	rate := fs.Float64("rate", 0, "price per hour")
	weekendRate := fs.Float64("weekend-rate", 0, "weekend price per hour")
	capacity := fs.Int("capacity", 0, "total capacity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	spot, err := a.parking.ByID(ctx, *id)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			spot.Name = *name
		case "rate":
			spot.PricePerHour = *rate
		case "weekend-rate":
			spot.WeekendPrice = *weekendRate
		case "capacity":
			spot.TotalCapacity = *capacity
		}
	})

	updated, err := a.provider.UpdateSpot(ctx, *id, *spot)
	if err != nil {
		return err
	}
	a.printf("Spot #%d updated: %s at %.2f/hour, capacity %d.\n",
		updated.ID, updated.Name, updated.PricePerHour, updated.TotalCapacity)
	return nil
}

func (a *App) cmdToggleSpot(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.Int64("id", 0, "spot id")
	status := fs.String("status", "", "ACTIVE or BLOCKED")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.provider.ToggleSpotStatus(ctx, *id, *status); err != nil {
		return err
	}
	a.printf("Spot #%d set to %s.\n", *id, *status)
	return nil
}
