package auth

import (
	"context"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/session"
)

// Service implements the account flows on top of the gateway and the session
// store. The store is written only here: login persists, logout clears,
// nothing else touches it.
type Service struct {
	gw       *gateway.Client
	sessions *session.Store
	log      *zap.Logger
}

func NewService(gw *gateway.Client, sessions *session.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gw: gw, sessions: sessions, log: log}
}

// RegisterRequest is the signup form.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

type authResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register signs an account up. The password confirmation is checked before
// any network call; a duplicate account surfaces as a conflict. Registration
// never stores a session — the user logs in afterwards.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apierr.Validation("name, email and password are required")
	}
	if req.Password != req.ConfirmPassword {
		return apierr.Validation("passwords do not match")
	}

	return s.gw.Post(ctx, "/auth/register", req, nil)
}

// Login authenticates and persists {token, user} on success. A backend
// rejection is a normal outcome, not an exception: it returns (false, nil)
// with no hint whether the address or the password was wrong. Only transport
// failures and local persistence failures produce an error.
func (s *Service) Login(ctx context.Context, email, password string) (bool, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := s.gw.Post(ctx, "/auth/login", body, &resp); err != nil {
		switch apierr.KindOf(err) {
		case apierr.KindAuth, apierr.KindValidation, apierr.KindNotFound:
			s.log.Debug("login rejected", zap.String("email", email))
			return false, nil
		default:
			return false, err
		}
	}

	if resp.Token == "" {
		return false, nil
	}

	u := session.User{
		Email: firstNonEmpty(resp.Email, email),
		Name:  resp.Name,
		Role:  resp.Role,
	}
	if u.Role == "" {
		u.Role = roleFromToken(resp.Token)
	}

	if err := s.sessions.Save(resp.Token, u); err != nil {
		return false, err
	}
	return true, nil
}

// Logout clears the persisted session. Local-only and unconditional; the next
// request simply goes out without a bearer header.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// IsLoggedIn reports local token presence.
func (s *Service) IsLoggedIn() bool { return s.sessions.IsLoggedIn() }

// CurrentUser returns the persisted user, or nil.
func (s *Service) CurrentUser() *session.User { return s.sessions.CurrentUser() }

// ForgotPassword requests a reset mail. Unauthenticated.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apierr.Validation("email is required")
	}
	return s.gw.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword redeems a reset token. Unauthenticated.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword, confirm string) error {
	if newPassword == "" || newPassword != confirm {
		return apierr.Validation("passwords do not match")
	}
	body := map[string]string{"token": token, "newPassword": newPassword}
	return s.gw.Post(ctx, "/auth/reset-password", body, nil)
}

// ChangePassword changes the password of the logged-in account.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) error {
	if newPassword == "" || newPassword != confirm {
		return apierr.Validation("passwords do not match")
	}
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return s.gw.Post(ctx, "/auth/change-password", body, nil)
}

// roleFromToken peeks at the token's role claim without verifying the
// signature. The token is opaque to this client; this is a display fallback
// for login responses that omit the role field, never an authorization check.
func roleFromToken(token string) string {
	parser := jwtlib.NewParser()
	claims := jwtlib.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
