package renderer

import "github.com/etnz/baskets"

// Page is a snapshot ready to be rendered.
type Page struct {
	baskets.Snapshot
	Title string
}

var titles = map[baskets.View]string{
	baskets.ViewHome:        "Welcome",
	baskets.ViewDashboard:   "Dashboard",
	baskets.ViewExplore:     "Explore Baskets",
	baskets.ViewPortfolio:   "Portfolio",
	baskets.ViewNews:        "News",
	baskets.ViewHowItWorks:  "How It Works",
	baskets.ViewSubscribe:   "Subscribe",
	baskets.ViewProFeatures: "Pro Features",
	baskets.ViewSectors:     "Sectors",
}

// NewPage creates the page of a snapshot. Detail views are titled after
// their focus.
func NewPage(s *baskets.Snapshot) *Page {
	p := &Page{Snapshot: *s, Title: titles[s.View]}
	switch s.View {
	case baskets.ViewBasket:
		p.Title = s.SelectedBasket
	case baskets.ViewStock:
		p.Title = s.SelectedTicker
	}
	if p.Title == "" {
		p.Title = s.View.String()
	}
	return p
}
