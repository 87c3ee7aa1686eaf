package baskets

import (
	"maps"
	"slices"
)

// Fundamental is a labelled fundamental figure, already formatted.
type Fundamental struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ChecklistItem is one rule of a stock screening checklist.
type ChecklistItem struct {
	Rule    string `json:"rule" yaml:"rule"`
	Pass    bool   `json:"pass" yaml:"pass"`
	Details string `json:"details" yaml:"details"`
}

// StockDetails is the read-only description of a stock.
type StockDetails struct {
	Ticker       string          `json:"ticker" yaml:"-"`
	Company      string          `json:"company" yaml:"company"`
	Price        string          `json:"price" yaml:"price"`
	Change       string          `json:"change" yaml:"change"`
	AIScore      AIScore         `json:"aiScore" yaml:"aiScore"`
	InBaskets    []string        `json:"inBaskets" yaml:"inBaskets"`
	Fundamentals []Fundamental   `json:"fundamentals,omitempty" yaml:"fundamentals"`
	Checklist    []ChecklistItem `json:"checklist" yaml:"checklist"`
}

// defaultRationale is the summary of an allocation whose stock has no checklist.
const defaultRationale = "Custom stock"

// Stocks is a read-only catalog of stock details keyed by ticker.
type Stocks struct {
	stocks map[string]StockDetails
}

// NewStocks indexes details by their ticker.
func NewStocks(details ...StockDetails) *Stocks {
	s := &Stocks{stocks: make(map[string]StockDetails, len(details))}
	for _, d := range details {
		s.stocks[d.Ticker] = d
	}
	return s
}

// Stock returns the details of ticker, or false if it is unknown.
func (s *Stocks) Stock(ticker string) (StockDetails, bool) {
	if s == nil {
		return StockDetails{}, false
	}
	d, ok := s.stocks[ticker]
	return d, ok
}

// Rationale returns the first checklist rule of ticker, used to summarize
// why it sits in a basket.
func (s *Stocks) Rationale(ticker string) string {
	d, ok := s.Stock(ticker)
	if !ok || len(d.Checklist) == 0 || d.Checklist[0].Rule == "" {
		return defaultRationale
	}
	return d.Checklist[0].Rule
}

// Tickers returns all known tickers in alphabetical order.
func (s *Stocks) Tickers() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.stocks))
}
