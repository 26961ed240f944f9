package guard

// AuthEntry is the public entry screen unauthenticated users land on.
const AuthEntry = "/auth"

// Decision is the outcome of evaluating a protected route.
type Decision int

const (
	Allow Decision = iota
	Redirect
)

// SessionChecker is the slice of the session store the guard needs.
type SessionChecker interface {
	IsLoggedIn() bool
}

// Evaluate gates a protected view. The decision is synchronous and based only
// on local session presence; there is no loading state. Redirect replaces
// history at the call site so the back button cannot loop.
func Evaluate(s SessionChecker) Decision {
	if !s.IsLoggedIn() {
		return Redirect
	}
	return Allow
}
