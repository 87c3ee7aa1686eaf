package baskets

import (
	"encoding/json"
	"testing"

	"github.com/etnz/baskets/date"
)

// INR is a helper for test to create rupees from const.
func INR(v float64) Money { return M(v, "INR") }

// testDay is the day new positions are opened on in tests.
var testDay = date.MustParse("2025-03-14")

// testConfig is the default configuration pinned on testDay.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Today = func() date.Date { return testDay }
	return cfg
}

// newTestSession returns a session on the default content.
func newTestSession(t *testing.T, auth Authenticator) *Session {
	t.Helper()
	s, err := NewSession(testConfig(), DefaultContent(), auth)
	if err != nil {
		t.Fatalf("NewSession() unexpected error: %v", err)
	}
	return s
}

// loggedIn returns a session logged in as admin, hence entitled.
func loggedIn(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t, nil)
	if err := s.Login(t.Context(), Credentials{Email: "admin", Password: "admin"}); err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	return s
}

// snapshotJSON is a comparable form of a snapshot.
func snapshotJSON(t *testing.T, s *Session) string {
	t.Helper()
	b, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("cannot marshal snapshot: %v", err)
	}
	return string(b)
}

func names(ps []Position) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
