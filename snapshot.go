package baskets

import "slices"

// Snapshot is a consistent copy of the session state, taken after a
// command, for the presentation layer to render.
type Snapshot struct {
	View           View   `json:"view"`
	SelectedBasket string `json:"selectedBasket,omitempty"`
	SelectedTicker string `json:"selectedTicker,omitempty"`

	// Basket is the selected basket, nil when none is selected or when it
	// no longer exists. Renderers show an empty state for the latter.
	Basket         *Basket   `json:"basket,omitempty"`
	BasketPosition *Position `json:"basketPosition,omitempty"` // active position in Basket
	BasketWatched  bool      `json:"basketWatched"`

	// Stock is the selected stock, nil when none is selected or unknown.
	Stock        *StockDetails `json:"stock,omitempty"`
	StockWatched bool          `json:"stockWatched"`

	Baskets        []string   `json:"baskets"` // all basket names
	Active         []Position `json:"active"`
	Archived       []Position `json:"archived"`
	WatchedStocks  []string   `json:"watchedStocks"`
	WatchedBaskets []string   `json:"watchedBaskets"`

	User        *User `json:"user,omitempty"`
	Subscribed  bool  `json:"subscribed"`
	Entitled    bool  `json:"entitled"`
	Upsell      bool  `json:"upsell"`
	LoginPrompt bool  `json:"loginPrompt"`
	Onboarding  bool  `json:"onboarding"`
}

// Snapshot returns the current state. It shares nothing with the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		View:           s.nav.View(),
		SelectedBasket: s.nav.SelectedBasket(),
		SelectedTicker: s.nav.SelectedTicker(),
		Baskets:        s.store.Names(),
		Active:         s.ledger.Active(),
		Archived:       s.ledger.Archived(),
		WatchedStocks:  Sorted(s.watch.Stocks),
		WatchedBaskets: Sorted(s.watch.Baskets),
		Subscribed:     s.subscribed,
		Entitled:       s.Entitlement().Entitled(),
		Upsell:         s.upsell,
		LoginPrompt:    s.loginPrompt,
		Onboarding:     s.onboarding && s.nav.View() == ViewDashboard,
	}
	if name := snap.SelectedBasket; name != "" {
		if b, ok := s.store.Basket(name); ok {
			snap.Basket = &b
		}
		if p, ok := s.ledger.Position(name); ok {
			snap.BasketPosition = &p
		}
		snap.BasketWatched = s.watch.Baskets.Has(name)
	}
	if ticker := snap.SelectedTicker; ticker != "" {
		if d, ok := s.stocks.Stock(ticker); ok {
			d.InBaskets = slices.Clone(d.InBaskets)
			d.Fundamentals = slices.Clone(d.Fundamentals)
			d.Checklist = slices.Clone(d.Checklist)
			snap.Stock = &d
		}
		snap.StockWatched = s.watch.Stocks.Has(ticker)
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}
