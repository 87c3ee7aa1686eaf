package baskets

import (
	"maps"
	"slices"
)

// Allocation is one ticker's share of a Basket. Weight and Value are derived
// by Compose and are not meant to be set independently.
type Allocation struct {
	Ticker  string  `json:"ticker"`
	Summary string  `json:"summary"`
	Weight  Percent `json:"weight"`
	Value   Money   `json:"value"`
}

// SubScore is one factor of an AIScore.
type SubScore struct {
	Name        string `json:"name" yaml:"name"`
	Value       int    `json:"value" yaml:"value"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// AIScore is an opaque rating carried along with baskets and stocks.
type AIScore struct {
	Score     int        `json:"score" yaml:"score"`
	Label     string     `json:"label" yaml:"label"`
	SubScores []SubScore `json:"subScores,omitempty" yaml:"subScores"`
}

// PerformanceMetrics are static display values, not computed here.
type PerformanceMetrics struct {
	TotalReturn string `json:"totalReturn" yaml:"totalReturn"`
	Volatility  string `json:"volatility" yaml:"volatility"`
	SharpeRatio string `json:"sharpeRatio" yaml:"sharpeRatio"`
}

// Basket is a named, weighted collection of stock allocations.
//
// The name is the primary key of the basket in a Store.
type Basket struct {
	Name        string             `json:"name"`
	Stocks      []Allocation       `json:"stocks"`
	Alert       string             `json:"alert,omitempty"` // empty when there is no alert
	Summary     string             `json:"summary"`
	AIScore     AIScore            `json:"aiScore"`
	Performance PerformanceMetrics `json:"performanceMetrics"`

	// IsEdited is set by the first successful edit of the composition.
	IsEdited bool `json:"isEdited"`
	// OriginalStocks is the composition before the first edit. It is written
	// once and kept across later edits.
	OriginalStocks []Allocation `json:"originalStocks,omitempty"`
}

// Total returns the sum of the allocation values.
func (b Basket) Total() Money {
	var total Money
	for _, a := range b.Stocks {
		total = total.Add(a.Value)
	}
	return total
}

// Tickers returns the basket tickers in allocation order.
func (b Basket) Tickers() []string {
	tickers := make([]string, 0, len(b.Stocks))
	for _, a := range b.Stocks {
		tickers = append(tickers, a.Ticker)
	}
	return tickers
}

// edit returns a copy of b with a new composition, snapshotting the current
// one on the first edit only.
func (b Basket) edit(stocks []Allocation) Basket {
	if !b.IsEdited && b.OriginalStocks == nil {
		b.OriginalStocks = slices.Clone(b.Stocks)
	}
	b.Stocks = slices.Clone(stocks)
	b.IsEdited = true
	return b
}

func (b Basket) clone() Basket {
	b.Stocks = slices.Clone(b.Stocks)
	b.OriginalStocks = slices.Clone(b.OriginalStocks)
	b.AIScore.SubScores = slices.Clone(b.AIScore.SubScores)
	return b
}

// Store holds the canonical baskets, indexed by name.
type Store struct {
	baskets map[string]Basket
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{baskets: make(map[string]Basket)}
}

// Upsert inserts or fully replaces the basket stored under name. Last write wins.
func (s *Store) Upsert(name string, b Basket) {
	b = b.clone()
	b.Name = name
	s.baskets[name] = b
}

// Basket returns the basket stored under name, or false if there is none.
// Absence is a normal outcome: callers render a fallback.
func (s *Store) Basket(name string) (Basket, bool) {
	b, ok := s.baskets[name]
	if !ok {
		return Basket{}, false
	}
	return b.clone(), true
}

// Has reports whether a basket is stored under name.
func (s *Store) Has(name string) bool {
	_, ok := s.baskets[name]
	return ok
}

// Names returns all basket names in alphabetical order.
func (s *Store) Names() []string {
	return slices.Sorted(maps.Keys(s.baskets))
}

// Len returns the number of baskets.
func (s *Store) Len() int { return len(s.baskets) }
