package baskets

import (
	"errors"
	"fmt"
)

// ValidationError reports a command input that fails a precondition. The
// command that returned it left the state unchanged.
type ValidationError struct {
	Field  string // Field names the offending input, e.g. "name" or "stocks".
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var (
	// ErrEntitlementDenied is the outcome of a protected action run without
	// entitlement. The action was not invoked.
	ErrEntitlementDenied = errors.New("subscription required")

	// ErrLoginInFlight rejects a login submitted while another one is pending.
	ErrLoginInFlight = errors.New("a login is already in progress")

	// ErrInvalidCredentials is returned by authenticators refusing a login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
