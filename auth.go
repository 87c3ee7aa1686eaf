package baskets

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Credentials are what a user submits to log in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Google   bool   `json:"google,omitempty"`
}

// Authenticator checks credentials. It is the only asynchronous boundary of
// a Session and may block until ctx is done.
type Authenticator interface {
	Authenticate(ctx context.Context, c Credentials) (User, error)
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context, c Credentials) (User, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, c Credentials) (User, error) {
	return f(ctx, c)
}

// StubAuthenticator accepts any e-mail after Delay. The "admin"/"admin" pair
// logs in as an administrator, anyone else is a user named after the local
// part of the e-mail.
type StubAuthenticator struct {
	Delay time.Duration
}

func (a StubAuthenticator) Authenticate(ctx context.Context, c Credentials) (User, error) {
	if a.Delay > 0 {
		timer := time.NewTimer(a.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return User{}, ctx.Err()
		case <-timer.C:
		}
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		return User{}, fmt.Errorf("%w: e-mail is required", ErrInvalidCredentials)
	}
	if strings.EqualFold(email, "admin") && c.Password == "admin" {
		return User{Name: "Admin", Role: RoleAdmin}, nil
	}
	name, _, _ := strings.Cut(email, "@")
	if name == "" {
		return User{}, fmt.Errorf("%w: %q has no user name", ErrInvalidCredentials, email)
	}
	return User{Name: name, Role: RoleUser}, nil
}
