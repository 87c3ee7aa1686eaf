package baskets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

// Session owns the whole state of one user of the dashboard: baskets,
// positions, watchlists, navigation and entitlement.
//
// A Session is not safe for concurrent use: commands are meant to run one
// after the other. The only exception is Login, which may be pending while a
// second Login is submitted; the second one is rejected with ErrLoginInFlight.
type Session struct {
	cfg    Config
	store  *Store
	stocks *Stocks
	ledger *Ledger
	watch  *Watchlists
	nav    *Navigator
	auth   Authenticator

	user       *User
	subscribed bool
	loggingIn  atomic.Bool
	onboarded  map[string]bool // users who already saw the onboarding tour

	// prompts raised for the presentation layer.
	upsell      bool
	loginPrompt bool
	onboarding  bool
}

// NewSession creates a session on the home view, loaded with content.
// A nil content means DefaultContent, a nil auth a StubAuthenticator.
func NewSession(cfg Config, content *Content, auth Authenticator) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if content == nil {
		content = DefaultContent()
	}
	if auth == nil {
		auth = StubAuthenticator{}
	}
	if content.Currency != "" && content.Currency != cfg.Currency {
		log.Printf("content is in %s, new positions will be in %s", content.Currency, cfg.Currency)
	}

	s := &Session{
		cfg:       cfg,
		store:     NewStore(),
		stocks:    content.Stocks,
		ledger:    NewLedger(content.Seed.Positions...),
		watch:     NewWatchlists(content.Seed.WatchedStocks, content.Seed.WatchedBaskets),
		nav:       NewNavigator(),
		auth:      auth,
		onboarded: make(map[string]bool),
	}
	for _, b := range content.Baskets {
		s.store.Upsert(b.Name, b)
	}
	return s, nil
}

// Basket returns the stored basket name.
func (s *Session) Basket(name string) (Basket, bool) { return s.store.Basket(name) }

// Stock returns the details of ticker.
func (s *Session) Stock(ticker string) (StockDetails, bool) { return s.stocks.Stock(ticker) }

// Entitlement returns the current entitlement. Without a user the role is RoleUser.
func (s *Session) Entitlement() Entitlement {
	e := Entitlement{Subscribed: s.subscribed}
	if s.user != nil {
		e.Role = s.user.Role
	}
	return e
}

// Invest opens, or revives, a position in basket name with the default amount.
func (s *Session) Invest(name string) (Position, InvestOutcome) {
	return s.ledger.Invest(name, s.cfg.defaultAmount(), s.cfg.today())
}

// Sell archives the position in basket name. It returns false if there was none.
func (s *Session) Sell(name string) bool {
	_, ok := s.ledger.Sell(name)
	return ok
}

// SaveBasket creates or edits basket name with the given fundings.
//
// Editing replaces the composition of an existing basket and keeps its
// composition before the first edit. Creating stores a new basket, invests
// the composition total in it and opens its detail as if coming from the
// portfolio. A rejected save leaves the session unchanged.
func (s *Session) SaveBasket(name string, fundings []Funding, editing bool) (Basket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Basket{}, invalid("name", "basket name is empty")
	}
	comp, err := Compose(fundings, s.stocks)
	if err != nil {
		return Basket{}, err
	}

	if editing {
		b, ok := s.store.Basket(name)
		if !ok {
			return Basket{}, invalid("name", "basket %q does not exist", name)
		}
		if !b.IsEdited {
			log.Printf("basket %q edited for the first time", name)
		}
		b = b.edit(comp.Allocations)
		s.store.Upsert(name, b)
		return b, nil
	}

	b := Basket{
		Name:    name,
		Stocks:  comp.Allocations,
		Summary: fmt.Sprintf("A custom basket named %q with %d stock(s).", name, len(comp.Allocations)),
		AIScore: AIScore{Score: 50, Label: "N/A"},
		Performance: PerformanceMetrics{
			TotalReturn: "0.00%",
			Volatility:  "N/A",
			SharpeRatio: "N/A",
		},
	}
	s.store.Upsert(name, b)
	s.ledger.Invest(name, comp.Total, s.cfg.today())
	s.nav.OpenBasket(name, BasketFromPortfolio)
	return b, nil
}

// ToggleWatchlist flips key in the watchlist of kind and returns whether it is now watched.
func (s *Session) ToggleWatchlist(kind WatchKind, key string) bool {
	return s.watch.Toggle(kind, key)
}

// Navigate shows v. Sectors is shown over the current focus, every other view clears it.
func (s *Session) Navigate(v View) {
	if v == ViewSectors {
		s.nav.NavigateKeepFocus(v)
		return
	}
	s.nav.Navigate(v)
}

// OpenDashboard shows the dashboard to a logged in user, and asks anyone else to log in.
func (s *Session) OpenDashboard() bool {
	if s.user == nil {
		s.loginPrompt = true
		return false
	}
	s.nav.Navigate(ViewDashboard)
	return true
}

// OpenSubscribeOrPro shows the pro features to entitled users and the
// subscription page to the others. It asks anonymous users to log in.
func (s *Session) OpenSubscribeOrPro() bool {
	if s.user == nil {
		s.loginPrompt = true
		return false
	}
	s.upsell = false
	if s.Entitlement().Entitled() {
		s.nav.Navigate(ViewProFeatures)
	} else {
		s.nav.Navigate(ViewSubscribe)
	}
	return true
}

// OpenBasket shows basket name, provided the session is entitled.
func (s *Session) OpenBasket(name string, from BasketSource) error {
	_, err := RunProtected(s, func() (struct{}, error) {
		s.nav.OpenBasket(name, from)
		return struct{}{}, nil
	})
	return err
}

// OpenStock shows ticker, provided the session is entitled.
func (s *Session) OpenStock(ticker string, from StockSource) error {
	_, err := RunProtected(s, func() (struct{}, error) {
		s.nav.OpenStock(ticker, from)
		return struct{}{}, nil
	})
	return err
}

func (s *Session) BackFromBasket() { s.nav.BackFromBasket() }
func (s *Session) BackFromStock()  { s.nav.BackFromStock() }

// Back leaves the current detail view, see Navigator.Back.
func (s *Session) Back() bool { return s.nav.Back() }

// RunProtected runs action if the session is entitled. Otherwise action is
// not invoked, the upsell prompt is raised and ErrEntitlementDenied returned.
func RunProtected[T any](s *Session, action func() (T, error)) (T, error) {
	v, err := Protect(s.Entitlement(), action)
	if errors.Is(err, ErrEntitlementDenied) {
		s.upsell = true
	}
	return v, err
}

// Login authenticates c and, on success, logs the user in and shows the dashboard.
//
// A failed login leaves the session unchanged and can be retried. A login
// submitted while another one is pending is rejected with ErrLoginInFlight.
func (s *Session) Login(ctx context.Context, c Credentials) error {
	if !s.loggingIn.CompareAndSwap(false, true) {
		log.Printf("login for %q rejected: another login is in flight", c.Email)
		return ErrLoginInFlight
	}
	defer s.loggingIn.Store(false)

	u, err := s.auth.Authenticate(ctx, c)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	s.user = &u
	s.loginPrompt = false
	if !s.onboarded[u.Name] {
		s.onboarded[u.Name] = true
		s.onboarding = true
	}
	s.nav.Navigate(ViewDashboard)
	return nil
}

// Logout forgets the user and the subscription and shows the home view.
func (s *Session) Logout() {
	s.user = nil
	s.subscribed = false
	s.onboarding = false
	s.nav.Navigate(ViewHome)
}

// RedeemSubscriptionCode subscribes when code is the configured one, and shows the dashboard.
func (s *Session) RedeemSubscriptionCode(code string) error {
	if strings.TrimSpace(code) != s.cfg.SubscriptionCode {
		return invalid("code", "invalid subscription code")
	}
	s.subscribed = true
	s.upsell = false
	s.nav.Navigate(ViewDashboard)
	return nil
}

func (s *Session) DismissUpsell()      { s.upsell = false }
func (s *Session) DismissLoginPrompt() { s.loginPrompt = false }
func (s *Session) DismissOnboarding()  { s.onboarding = false }
