package baskets

import (
	"fmt"
	"slices"
)

// View identifies the screen being shown.
type View int

const (
	ViewHome View = iota
	ViewDashboard
	ViewExplore
	ViewBasket // basket detail, focused on the selected basket
	ViewStock  // stock detail, focused on the selected ticker
	ViewPortfolio
	ViewNews
	ViewHowItWorks
	ViewSubscribe
	ViewProFeatures
	ViewSectors
)

var viewNames = []string{
	ViewHome:        "home",
	ViewDashboard:   "dashboard",
	ViewExplore:     "explore",
	ViewBasket:      "basket-detail",
	ViewStock:       "stock-detail",
	ViewPortfolio:   "portfolio",
	ViewNews:        "news",
	ViewHowItWorks:  "how-it-works",
	ViewSubscribe:   "subscribe",
	ViewProFeatures: "pro-features",
	ViewSectors:     "sectors",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// ParseView parses a view name such as "dashboard" or "basket-detail".
func ParseView(s string) (View, error) {
	i := slices.Index(viewNames, s)
	if i < 0 {
		return 0, fmt.Errorf("unknown view: %q", s)
	}
	return View(i), nil
}

func (v View) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *View) UnmarshalText(text []byte) (err error) {
	*v, err = ParseView(string(text))
	return err
}

// StockSource is the view a stock detail was opened from.
type StockSource int

const (
	StockFromDashboard StockSource = iota
	StockFromBasket
	StockFromPortfolio
)

func (s StockSource) String() string {
	switch s {
	case StockFromDashboard:
		return "dashboard"
	case StockFromBasket:
		return "basket"
	case StockFromPortfolio:
		return "portfolio"
	default:
		return "unknown"
	}
}

// ParseStockSource parses "dashboard", "basket" or "portfolio".
func ParseStockSource(s string) (StockSource, error) {
	switch s {
	case "dashboard":
		return StockFromDashboard, nil
	case "basket":
		return StockFromBasket, nil
	case "portfolio":
		return StockFromPortfolio, nil
	default:
		return 0, fmt.Errorf("unknown stock navigation source: %q", s)
	}
}

func (s StockSource) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *StockSource) UnmarshalText(text []byte) (err error) {
	*s, err = ParseStockSource(string(text))
	return err
}

// BasketSource is the view a basket detail was opened from.
type BasketSource int

const (
	BasketFromDashboard BasketSource = iota
	BasketFromExplore
	BasketFromPortfolio
	BasketFromStock
)

func (s BasketSource) String() string {
	switch s {
	case BasketFromDashboard:
		return "dashboard"
	case BasketFromExplore:
		return "explore"
	case BasketFromPortfolio:
		return "portfolio"
	case BasketFromStock:
		return "stock-terminal"
	default:
		return "unknown"
	}
}

// ParseBasketSource parses "dashboard", "explore", "portfolio" or "stock-terminal".
func ParseBasketSource(s string) (BasketSource, error) {
	switch s {
	case "dashboard":
		return BasketFromDashboard, nil
	case "explore":
		return BasketFromExplore, nil
	case "portfolio":
		return BasketFromPortfolio, nil
	case "stock-terminal":
		return BasketFromStock, nil
	default:
		return 0, fmt.Errorf("unknown basket navigation source: %q", s)
	}
}

func (s BasketSource) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *BasketSource) UnmarshalText(text []byte) (err error) {
	*s, err = ParseBasketSource(string(text))
	return err
}

// Navigator is the navigation state machine: the current view, the focused
// basket and ticker, and where each detail view was entered from.
//
// Its zero value is on the home view.
//
// The sources are overwritten by every OpenBasket and OpenStock, before any
// back navigation reads them, so a stale source is never consulted.
type Navigator struct {
	view         View
	basket       string
	ticker       string
	stockSource  StockSource
	basketSource BasketSource
}

// NewNavigator returns a navigator on the home view.
func NewNavigator() *Navigator { return &Navigator{view: ViewHome} }

func (n *Navigator) View() View                 { return n.view }
func (n *Navigator) SelectedBasket() string     { return n.basket }
func (n *Navigator) SelectedTicker() string     { return n.ticker }
func (n *Navigator) StockSource() StockSource   { return n.stockSource }
func (n *Navigator) BasketSource() BasketSource { return n.basketSource }

// Navigate shows v and clears the focused basket and ticker.
func (n *Navigator) Navigate(v View) {
	n.view = v
	n.basket = ""
	n.ticker = ""
}

// NavigateKeepFocus shows v leaving the focused basket and ticker as they are.
func (n *Navigator) NavigateKeepFocus(v View) {
	n.view = v
}

// OpenBasket shows the detail of basket name, remembering where it came from.
func (n *Navigator) OpenBasket(name string, from BasketSource) {
	n.basketSource = from
	n.basket = name
	n.view = ViewBasket
}

// OpenStock shows the detail of ticker, remembering where it came from.
func (n *Navigator) OpenStock(ticker string, from StockSource) {
	n.stockSource = from
	n.ticker = ticker
	n.view = ViewStock
}

// BackFromBasket leaves the basket detail for the view it was opened from.
//
// Coming from a stock detail, it returns to that stock (the ticker is still
// focused) without consulting the stock source.
func (n *Navigator) BackFromBasket() {
	switch n.basketSource {
	case BasketFromStock:
		n.view = ViewStock
		n.basket = ""
	case BasketFromExplore:
		n.Navigate(ViewExplore)
	case BasketFromPortfolio:
		n.Navigate(ViewPortfolio)
	default:
		n.Navigate(ViewDashboard)
	}
}

// BackFromStock leaves the stock detail for the view it was opened from.
func (n *Navigator) BackFromStock() {
	switch {
	case n.stockSource == StockFromBasket && n.basket != "":
		n.view = ViewBasket
		n.ticker = ""
	case n.stockSource == StockFromPortfolio:
		n.Navigate(ViewPortfolio)
	default:
		n.Navigate(ViewDashboard)
	}
}

// Back leaves the current detail view. It returns false, doing nothing, when
// the current view is not a detail view.
func (n *Navigator) Back() bool {
	switch n.view {
	case ViewBasket:
		n.BackFromBasket()
	case ViewStock:
		n.BackFromStock()
	default:
		return false
	}
	return true
}
