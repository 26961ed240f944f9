// Package cli implements the parkcli command surface on top of the client
// services. Commands map one to one onto the screens of the hosted frontend:
// public auth commands, a role-dispatched dashboard, and the driver, provider
// and admin flows behind a login guard.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/admin"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/auth"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/booking"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/config"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/guard"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/notification"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/parking"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/provider"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/session"
)

// App wires the services behind the command surface.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	sessions *session.Store
	auth     *auth.Service
	parking  *parking.Service
	bookings *booking.Service
	provider *provider.Service
	tracker  *provider.Tracker
	admin    *admin.Service
	queue    *admin.Queue
	inbox    *notification.Service
	out      io.Writer
}

// New builds the app from an already-connected gateway and session store.
func New(cfg *config.Config, log *zap.Logger, sessions *session.Store, gw *gateway.Client, out io.Writer) *App {
	if log == nil {
		log = zap.NewNop()
	}
	adminSvc := admin.NewService(gw, log)
	return &App{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		auth:     auth.NewService(gw, sessions, log),
		parking:  parking.NewService(gw),
		bookings: booking.NewService(gw, log),
		provider: provider.NewService(gw, log),
		tracker:  provider.NewTracker(gw, log),
		admin:    adminSvc,
		queue:    admin.NewQueue(adminSvc),
		inbox:    notification.NewService(gw),
		out:      out,
	}
}

type command struct {
	name    string
	summary string
	guarded bool
	run     func(ctx context.Context, fs *flag.FlagSet, args []string) error
}

func (a *App) commands() []command {
	return []command{
		{"register", "create an account", false, a.cmdRegister},
		{"login", "sign in and persist the session", false, a.cmdLogin},
		{"logout", "clear the persisted session", false, a.cmdLogout},
		{"whoami", "show the signed-in account", false, a.cmdWhoami},
		{"forgot-password", "request a password reset mail", false, a.cmdForgotPassword},
		{"reset-password", "redeem a reset token", false, a.cmdResetPassword},
		{"change-password", "change the account password", true, a.cmdChangePassword},

		{"dashboard", "show the dashboard for your role", true, a.cmdDashboard},
		{"search", "find spots by state and district", true, a.cmdSearch},
		{"nearby", "find spots around a coordinate", true, a.cmdNearby},
		{"spots", "list all listed spots", true, a.cmdSpots},
		{"spot", "show one spot", true, a.cmdSpot},

		{"book", "book a spot for a time window", true, a.cmdBook},
		{"bookings", "list your bookings", true, a.cmdBookings},
		{"booking", "show one booking", true, a.cmdBooking},
		{"cancel", "cancel a confirmed booking", true, a.cmdCancel},
		{"availability", "free slots for a spot and window", true, a.cmdAvailability},

		{"become-provider", "submit a provider application", true, a.cmdBecomeProvider},
		{"application-status", "track your provider application", true, a.cmdApplicationStatus},
		{"my-spots", "list your listed spots", true, a.cmdMySpots},
		{"provider-bookings", "bookings made against your spots", true, a.cmdProviderBookings},
		{"update-spot", "edit one of your listed spots", true, a.cmdUpdateSpot},
		{"toggle-spot", "activate or block one of your spots", true, a.cmdToggleSpot},
		{"notifications", "list, read or dismiss notifications", true, a.cmdNotifications},

		{"admin-apps", "list pending provider applications", true, a.cmdAdminApps},
		{"admin-view", "show one application in full", true, a.cmdAdminView},
		{"admin-approve", "approve an application", true, a.cmdAdminApprove},
		{"admin-reject", "reject an application with a reason", true, a.cmdAdminReject},
		{"admin-stats", "platform-wide numbers", true, a.cmdAdminStats},
	}
}

// Run dispatches one invocation. Guarded commands are refused up front when no
// session is stored, before any flag parsing or network traffic.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return fmt.Errorf("no command given")
	}

	name, rest := args[0], args[1:]
	for _, cmd := range a.commands() {
		if cmd.name != name {
			continue
		}
		if cmd.guarded && guard.Evaluate(a.sessions) == guard.Redirect {
			return fmt.Errorf("not signed in: run 'parkcli login' first")
		}
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(a.out)
		return cmd.run(ctx, fs, rest)
	}

	a.usage()
	return fmt.Errorf("unknown command %q", name)
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: parkcli <command> [flags]")
	fmt.Fprintln(a.out)
	for _, cmd := range a.commands() {
		fmt.Fprintf(a.out, "  %-20s %s\n", cmd.name, cmd.summary)
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// currentEmail returns the signed-in address; guarded commands that scope by
// account use it instead of taking an email flag.
func (a *App) currentEmail() (string, error) {
	u := a.sessions.CurrentUser()
	if u == nil {
		return "", fmt.Errorf("not signed in: run 'parkcli login' first")
	}
	return u.Email, nil
}
