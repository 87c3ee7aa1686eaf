package baskets

import "fmt"

// Role is the role of a logged in user.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseRole parses "user" or "admin".
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(text []byte) (err error) {
	*r, err = ParseRole(string(text))
	return err
}

// User is the logged in user.
type User struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Entitlement is what decides access to subscription-gated actions.
type Entitlement struct {
	Subscribed bool
	Role       Role
}

// Entitled reports whether gated actions are allowed: subscribers and admins are.
func (e Entitlement) Entitled() bool { return e.Subscribed || e.Role == RoleAdmin }

// Protect runs action only when e is entitled. Otherwise action is not
// invoked at all and ErrEntitlementDenied is returned.
func Protect[T any](e Entitlement, action func() (T, error)) (T, error) {
	if !e.Entitled() {
		var zero T
		return zero, ErrEntitlementDenied
	}
	return action()
}
