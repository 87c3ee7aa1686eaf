package baskets

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestNewSession_Defaults(t *testing.T) {
	s := newTestSession(t, nil)
	snap := s.Snapshot()

	if snap.View != ViewHome {
		t.Errorf("initial view = %v, want %v", snap.View, ViewHome)
	}
	if snap.User != nil || snap.Entitled || snap.Subscribed {
		t.Errorf("initial session should be anonymous and not entitled: %+v", snap)
	}
	if got, want := names(snap.Active), []string{"Banking Breakouts"}; !reflect.DeepEqual(got, want) {
		t.Errorf("active = %v, want %v", got, want)
	}
	if len(snap.Archived) != 0 {
		t.Errorf("archived = %v, want none", names(snap.Archived))
	}
	if got, want := snap.WatchedStocks, []string{"AAPL", "TSLA"}; !reflect.DeepEqual(got, want) {
		t.Errorf("watched stocks = %v, want %v", got, want)
	}
	if got, want := snap.WatchedBaskets, []string{"Mean Reversion", "Pharma Surge"}; !reflect.DeepEqual(got, want) {
		t.Errorf("watched baskets = %v, want %v", got, want)
	}
	if len(snap.Baskets) != 5 {
		t.Errorf("baskets = %v, want the 5 curated ones", snap.Baskets)
	}
}

func TestNewSession_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Currency = "ZZZ"
	if _, err := NewSession(cfg, nil, nil); err == nil {
		t.Errorf("NewSession() with an unknown currency expected an error")
	}
}

func TestSession_OpenBasketDenied(t *testing.T) {
	s := newTestSession(t, nil)
	err := s.OpenBasket("Tech Momentum", BasketFromExplore)
	if !errors.Is(err, ErrEntitlementDenied) {
		t.Fatalf("OpenBasket() error = %v, want %v", err, ErrEntitlementDenied)
	}
	snap := s.Snapshot()
	if snap.View != ViewHome || snap.SelectedBasket != "" {
		t.Errorf("denied OpenBasket() changed navigation: %v %q", snap.View, snap.SelectedBasket)
	}
	if !snap.Upsell {
		t.Errorf("denied OpenBasket() did not raise the upsell prompt")
	}

	s.DismissUpsell()
	if s.Snapshot().Upsell {
		t.Errorf("DismissUpsell() did not clear the prompt")
	}
	if err := s.OpenStock("AAPL", StockFromDashboard); !errors.Is(err, ErrEntitlementDenied) {
		t.Errorf("OpenStock() error = %v, want %v", err, ErrEntitlementDenied)
	}
}

func TestSession_AdminLogin(t *testing.T) {
	s := loggedIn(t)
	snap := s.Snapshot()
	if snap.User == nil || snap.User.Role != RoleAdmin || snap.User.Name != "Admin" {
		t.Fatalf("user = %+v, want the admin", snap.User)
	}
	if !snap.Entitled || snap.Subscribed {
		t.Errorf("admin entitled=%v subscribed=%v, want entitled without subscription", snap.Entitled, snap.Subscribed)
	}
	if snap.View != ViewDashboard {
		t.Errorf("view after login = %v, want %v", snap.View, ViewDashboard)
	}

	if err := s.OpenBasket("Tech Momentum", BasketFromExplore); err != nil {
		t.Fatalf("OpenBasket() as admin unexpected error: %v", err)
	}
	snap = s.Snapshot()
	if snap.Basket == nil || snap.Basket.Name != "Tech Momentum" {
		t.Fatalf("selected basket = %+v, want Tech Momentum", snap.Basket)
	}
	if snap.BasketPosition != nil {
		t.Errorf("Tech Momentum has no position, got %+v", snap.BasketPosition)
	}
}

func TestSession_SaveBasketCreate(t *testing.T) {
	s := loggedIn(t)
	b, err := s.SaveBasket("  My Picks ", []Funding{
		{Ticker: "MSFT", Amount: INR(10000)},
		{Ticker: "TSLA", Amount: INR(5000)},
		{Ticker: "AAPL", Amount: INR(0)},
	}, false)
	if err != nil {
		t.Fatalf("SaveBasket() unexpected error: %v", err)
	}
	if b.Name != "My Picks" {
		t.Errorf("name = %q, want it trimmed", b.Name)
	}
	if got := b.Tickers(); !reflect.DeepEqual(got, []string{"MSFT", "TSLA"}) {
		t.Errorf("tickers = %v, want unfunded stocks dropped", got)
	}
	if !b.Stocks[0].Weight.Equal(66.67) || !b.Stocks[1].Weight.Equal(33.33) {
		t.Errorf("weights = %v %v, want 66.67 33.33", b.Stocks[0].Weight, b.Stocks[1].Weight)
	}
	if b.Summary != `A custom basket named "My Picks" with 2 stock(s).` {
		t.Errorf("summary = %q", b.Summary)
	}
	if b.AIScore.Score != 50 || b.AIScore.Label != "N/A" {
		t.Errorf("AI score = %+v, want a neutral one", b.AIScore)
	}

	snap := s.Snapshot()
	if snap.View != ViewBasket || snap.SelectedBasket != "My Picks" {
		t.Errorf("after create: view=%v basket=%q, want the new basket detail", snap.View, snap.SelectedBasket)
	}
	if snap.BasketPosition == nil {
		t.Fatalf("new basket was not invested")
	}
	p := *snap.BasketPosition
	if !p.Invested.Equal(INR(15000)) || p.InvestmentDate != testDay {
		t.Errorf("position = %v on %v, want %v on %v", p.Invested, p.InvestmentDate, INR(15000), testDay)
	}

	// Coming back lands on the portfolio.
	s.Back()
	if v := s.Snapshot().View; v != ViewPortfolio {
		t.Errorf("Back() after create = %v, want %v", v, ViewPortfolio)
	}
}

func TestSession_SaveBasketEdit(t *testing.T) {
	s := loggedIn(t)
	for _, ticker := range []string{"TSLA", "LLY"} {
		if _, err := s.SaveBasket("Tech Momentum", []Funding{{Ticker: ticker, Amount: INR(1000)}}, true); err != nil {
			t.Fatalf("SaveBasket(edit %s) unexpected error: %v", ticker, err)
		}
	}
	b, _ := s.Basket("Tech Momentum")
	if !b.IsEdited {
		t.Errorf("IsEdited = false after edits")
	}
	if got := b.Tickers(); !reflect.DeepEqual(got, []string{"LLY"}) {
		t.Errorf("tickers = %v, want the last edit", got)
	}
	if got := (Basket{Stocks: b.OriginalStocks}).Tickers(); !reflect.DeepEqual(got, []string{"MSFT", "AAPL", "NVDA"}) {
		t.Errorf("original stocks = %v, want the curated composition", got)
	}
	if s.Snapshot().View != ViewDashboard {
		t.Errorf("editing changed the view")
	}
	if s.ledger.IsInvested("Tech Momentum") {
		t.Errorf("editing invested in the basket")
	}
}

func TestSession_SaveBasketInvalid(t *testing.T) {
	tests := []struct {
		name     string
		basket   string
		fundings []Funding
		edit     bool
	}{
		{"empty name", "  ", []Funding{{Ticker: "MSFT", Amount: INR(1)}}, false},
		{"no stocks", "X", nil, false},
		{"unfunded", "X", []Funding{{Ticker: "MSFT", Amount: INR(0)}}, false},
		{"duplicate", "X", []Funding{{Ticker: "MSFT", Amount: INR(1)}, {Ticker: "MSFT", Amount: INR(2)}}, false},
		{"edit missing", "Nope", []Funding{{Ticker: "MSFT", Amount: INR(1)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loggedIn(t)
			before := snapshotJSON(t, s)
			_, err := s.SaveBasket(tt.basket, tt.fundings, tt.edit)
			if !IsValidation(err) {
				t.Errorf("SaveBasket() error = %v, want a validation error", err)
			}
			if after := snapshotJSON(t, s); after != before {
				t.Errorf("rejected SaveBasket() changed the session:\nbefore: %s\nafter:  %s", before, after)
			}
		})
	}
}

func TestSession_InvestSell(t *testing.T) {
	s := newTestSession(t, nil)
	p, outcome := s.Invest("Pharma Surge")
	if outcome != Opened || !p.Invested.Equal(INR(25000)) || p.InvestmentDate != testDay {
		t.Errorf("Invest() = %+v %v, want a default position on %v", p, outcome, testDay)
	}
	if !s.Sell("Pharma Surge") {
		t.Errorf("Sell() = false, want true")
	}
	if s.Sell("Pharma Surge") {
		t.Errorf("second Sell() = true, want false")
	}
	if got := names(s.Snapshot().Archived); !reflect.DeepEqual(got, []string{"Pharma Surge"}) {
		t.Errorf("archived = %v", got)
	}
}

func TestSession_LoginInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	auth := AuthenticatorFunc(func(ctx context.Context, c Credentials) (User, error) {
		calls++
		close(started)
		<-release
		return User{Name: "jane", Role: RoleUser}, nil
	})
	s := newTestSession(t, auth)

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = s.Login(t.Context(), Credentials{Email: "jane@example.com", Password: "x"})
	}()
	<-started

	if err := s.Login(t.Context(), Credentials{Email: "joe@example.com", Password: "y"}); !errors.Is(err, ErrLoginInFlight) {
		t.Errorf("second Login() error = %v, want %v", err, ErrLoginInFlight)
	}
	close(release)
	wg.Wait()

	if firstErr != nil {
		t.Fatalf("first Login() unexpected error: %v", firstErr)
	}
	if calls != 1 {
		t.Errorf("authenticator called %d times, want 1", calls)
	}
	if u := s.Snapshot().User; u == nil || u.Name != "jane" {
		t.Errorf("user = %+v, want jane", u)
	}
}

func TestSession_LoginRetry(t *testing.T) {
	s := newTestSession(t, nil)
	before := snapshotJSON(t, s)
	err := s.Login(t.Context(), Credentials{Email: " "})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want %v", err, ErrInvalidCredentials)
	}
	if after := snapshotJSON(t, s); after != before {
		t.Errorf("failed Login() changed the session")
	}

	if err := s.Login(t.Context(), Credentials{Email: "jane@example.com", Password: "secret"}); err != nil {
		t.Fatalf("retried Login() unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if snap.User == nil || snap.User.Name != "jane" || snap.User.Role != RoleUser {
		t.Errorf("user = %+v, want jane as a user", snap.User)
	}
	if snap.Entitled {
		t.Errorf("a plain user is entitled without subscription")
	}
}

func TestSession_LoginCanceled(t *testing.T) {
	s := newTestSession(t, StubAuthenticator{Delay: time.Hour})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if err := s.Login(ctx, Credentials{Email: "admin", Password: "admin"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Login() error = %v, want %v", err, context.Canceled)
	}
	// The guard is released.
	s.auth = StubAuthenticator{}
	if err := s.Login(t.Context(), Credentials{Email: "admin", Password: "admin"}); err != nil {
		t.Errorf("Login() after a canceled one unexpected error: %v", err)
	}
}

func TestSession_Onboarding(t *testing.T) {
	s := loggedIn(t)
	if !s.Snapshot().Onboarding {
		t.Errorf("first login did not show the onboarding")
	}
	s.Navigate(ViewNews)
	if s.Snapshot().Onboarding {
		t.Errorf("onboarding shown outside the dashboard")
	}
	s.DismissOnboarding()
	s.Logout()

	if err := s.Login(t.Context(), Credentials{Email: "admin", Password: "admin"}); err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if s.Snapshot().Onboarding {
		t.Errorf("onboarding shown twice to the same user")
	}
}

func TestSession_Subscription(t *testing.T) {
	s := newTestSession(t, nil)
	if s.OpenSubscribeOrPro() {
		t.Errorf("OpenSubscribeOrPro() anonymous = true, want false")
	}
	if !s.Snapshot().LoginPrompt {
		t.Errorf("OpenSubscribeOrPro() anonymous did not ask to log in")
	}
	if s.OpenDashboard() {
		t.Errorf("OpenDashboard() anonymous = true, want false")
	}

	if err := s.Login(t.Context(), Credentials{Email: "jane@example.com"}); err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if s.Snapshot().LoginPrompt {
		t.Errorf("login prompt still raised after login")
	}
	s.OpenSubscribeOrPro()
	if v := s.Snapshot().View; v != ViewSubscribe {
		t.Errorf("OpenSubscribeOrPro() unsubscribed = %v, want %v", v, ViewSubscribe)
	}

	if err := s.RedeemSubscriptionCode("000000"); !IsValidation(err) {
		t.Errorf("RedeemSubscriptionCode(wrong) error = %v, want a validation error", err)
	}
	if s.Snapshot().Subscribed {
		t.Errorf("a wrong code subscribed")
	}
	if err := s.RedeemSubscriptionCode("123456"); err != nil {
		t.Fatalf("RedeemSubscriptionCode() unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if !snap.Subscribed || !snap.Entitled || snap.View != ViewDashboard {
		t.Errorf("after redeem: subscribed=%v entitled=%v view=%v", snap.Subscribed, snap.Entitled, snap.View)
	}
	s.OpenSubscribeOrPro()
	if v := s.Snapshot().View; v != ViewProFeatures {
		t.Errorf("OpenSubscribeOrPro() subscribed = %v, want %v", v, ViewProFeatures)
	}

	s.Logout()
	snap = s.Snapshot()
	if snap.Subscribed || snap.User != nil || snap.View != ViewHome {
		t.Errorf("after logout: subscribed=%v user=%v view=%v", snap.Subscribed, snap.User, snap.View)
	}
}

func TestSession_SectorsKeepFocus(t *testing.T) {
	s := loggedIn(t)
	if err := s.OpenBasket("Tech Momentum", BasketFromExplore); err != nil {
		t.Fatal(err)
	}
	s.Navigate(ViewSectors)
	if got := s.Snapshot().SelectedBasket; got != "Tech Momentum" {
		t.Errorf("selected basket on sectors = %q, want it kept", got)
	}
	s.Navigate(ViewExplore)
	if got := s.Snapshot().SelectedBasket; got != "" {
		t.Errorf("selected basket on explore = %q, want it cleared", got)
	}
}

func TestSession_MissingEntities(t *testing.T) {
	s := loggedIn(t)
	if err := s.OpenBasket("Nope", BasketFromDashboard); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.SelectedBasket != "Nope" || snap.Basket != nil {
		t.Errorf("missing basket: selected=%q basket=%+v, want a selection without basket", snap.SelectedBasket, snap.Basket)
	}

	if err := s.OpenStock("ZZZZ", StockFromDashboard); err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot(); snap.Stock != nil {
		t.Errorf("unknown stock: got %+v, want nil", snap.Stock)
	}
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := loggedIn(t)
	if err := s.OpenStock("MSFT", StockFromDashboard); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.Stock == nil || len(snap.Stock.InBaskets) == 0 {
		t.Fatalf("MSFT details missing: %+v", snap.Stock)
	}
	snap.Stock.InBaskets[0] = "CHANGED"
	snap.Active[0].Name = "CHANGED"
	if again := s.Snapshot(); again.Stock.InBaskets[0] == "CHANGED" || again.Active[0].Name == "CHANGED" {
		t.Errorf("Snapshot() shares memory with the session")
	}
}
