package cli

import (
	"context"
	"flag"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/auth"
)

func (a *App) cmdRegister(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := a.auth.Register(ctx, auth.RegisterRequest{
		Name:            *name,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return err
	}
	a.printf("Account created. Sign in with 'parkcli login'.\n")
	return nil
}

func (a *App) cmdLogin(ctx context.Context, fs *flag.FlagSet, args []string) error {
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ok, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Invalid email or password.\n")
		return nil
	}

	u := a.auth.CurrentUser()
	a.printf("Signed in as %s (%s).\n", u.Email, u.Role)
	return nil
}

func (a *App) cmdLogout(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.Logout(); err != nil {
		return err
	}
	a.printf("Signed out.\n")
	return nil
}

func (a *App) cmdWhoami(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	u := a.auth.CurrentUser()
	if u == nil {
		a.printf("Not signed in.\n")
		return nil
	}
	a.printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
	return nil
}

func (a *App) cmdForgotPassword(ctx context.Context, fs *flag.FlagSet, args []string) error {
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.ForgotPassword(ctx, *email); err != nil {
		return err
	}
	a.printf("If that account exists, a reset mail is on its way.\n")
	return nil
}

func (a *App) cmdResetPassword(ctx context.Context, fs *flag.FlagSet, args []string) error {
	token := fs.String("token", "", "reset token from the mail")
	password := fs.String("password", "", "new password")
	confirm := fs.String("confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.ResetPassword(ctx, *token, *password, *confirm); err != nil {
		return err
	}
	a.printf("Password reset. Sign in with 'parkcli login'.\n")
	return nil
}

func (a *App) cmdChangePassword(ctx context.Context, fs *flag.FlagSet, args []string) error {
	old := fs.String("old", "", "current password")
	newPw := fs.String("new", "", "new password")
	confirm := fs.String("confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.ChangePassword(ctx, *old, *newPw, *confirm); err != nil {
		return err
	}
	a.printf("Password changed.\n")
	return nil
}
