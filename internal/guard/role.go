package guard

import "strings"

// Role selects which dashboard variant an authenticated user sees.
type Role int

const (
	// RoleDriver is the default: USER, unknown and absent roles all land here.
	RoleDriver Role = iota
	RoleProvider
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleProvider:
		return "PROVIDER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "USER"
	}
}

// ParseRole resolves a role claim once at the dashboard boundary. The backend
// enum is uppercase; input is normalized case-insensitively so stale lowercase
// tokens still resolve instead of silently demoting a provider. Anything
// unrecognized folds into the driver default.
func ParseRole(claim string) Role {
	switch strings.ToUpper(strings.TrimSpace(claim)) {
	case "PROVIDER":
		return RoleProvider
	case "ADMIN":
		return RoleAdmin
	default:
		return RoleDriver
	}
}

// Views holds one callback per dashboard variant.
type Views struct {
	Driver   func() error
	Provider func() error
	Admin    func() error
}

// Dispatch runs the view matching the role. Pure mapping, no side effects of
// its own; calling it twice with the same role runs the same view.
func Dispatch(r Role, v Views) error {
	switch r {
	case RoleProvider:
		return v.Provider()
	case RoleAdmin:
		return v.Admin()
	default:
		return v.Driver()
	}
}
