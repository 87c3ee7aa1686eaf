package baskets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/baskets/date"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Content is the static catalog a Session starts from: curated baskets,
// stock details and the initial positions and watchlists.
type Content struct {
	Currency string
	Baskets  []Basket
	Stocks   *Stocks
	Seed     Seed
}

// Seed is the initial user state.
type Seed struct {
	Positions      []Position
	WatchedStocks  []string
	WatchedBaskets []string
}

// yaml documents, only used for decoding.
type (
	ystock struct {
		Ticker  string  `yaml:"ticker"`
		Summary string  `yaml:"summary"`
		Amount  float64 `yaml:"amount"`
	}
	ybasket struct {
		Name        string             `yaml:"name"`
		Alert       string             `yaml:"alert"`
		Summary     string             `yaml:"summary"`
		AIScore     AIScore            `yaml:"aiScore"`
		Performance PerformanceMetrics `yaml:"performanceMetrics"`
		Stocks      []ystock           `yaml:"stocks"`
	}
	yposition struct {
		Name     string  `yaml:"name"`
		Invested float64 `yaml:"invested"`
		Current  float64 `yaml:"current"`
		Date     string  `yaml:"date"`
	}
	ycontent struct {
		Currency string                  `yaml:"currency"`
		Baskets  []ybasket               `yaml:"baskets"`
		Stocks   map[string]StockDetails `yaml:"stocks"`
		Seed     struct {
			Investments    []yposition `yaml:"investments"`
			WatchedStocks  []string    `yaml:"watchedStocks"`
			WatchedBaskets []string    `yaml:"watchedBaskets"`
		} `yaml:"seed"`
	}
)

// DecodeContent reads a YAML content document.
//
// Basket stocks are declared with amounts, weights and values are derived
// with Compose. Every problem found is reported.
func DecodeContent(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc ycontent
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode content: %w", err)
	}
	if doc.Currency == "" {
		doc.Currency = DefaultConfig().Currency
	}
	if !knownCurrency(doc.Currency) {
		return nil, fmt.Errorf("content currency %q is unknown", doc.Currency)
	}

	c := &Content{Currency: doc.Currency}
	var errs error

	details := make([]StockDetails, 0, len(doc.Stocks))
	for ticker, d := range doc.Stocks {
		d.Ticker = ticker
		details = append(details, d)
	}
	c.Stocks = NewStocks(details...)

	names := make(map[string]bool)
	for i, yb := range doc.Baskets {
		name := strings.TrimSpace(yb.Name)
		if name == "" {
			errs = errors.Join(errs, fmt.Errorf("basket #%d has no name", i+1))
			continue
		}
		if names[name] {
			errs = errors.Join(errs, fmt.Errorf("basket %q is declared twice", name))
			continue
		}
		names[name] = true

		fundings := make([]Funding, 0, len(yb.Stocks))
		for _, s := range yb.Stocks {
			fundings = append(fundings, Funding{
				Ticker:  s.Ticker,
				Amount:  M(decimal.NewFromFloat(s.Amount), doc.Currency),
				Summary: s.Summary,
			})
		}
		comp, err := Compose(fundings, c.Stocks)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("basket %q: %w", name, err))
			continue
		}
		c.Baskets = append(c.Baskets, Basket{
			Name:        name,
			Stocks:      comp.Allocations,
			Alert:       strings.TrimSpace(yb.Alert),
			Summary:     yb.Summary,
			AIScore:     yb.AIScore,
			Performance: yb.Performance,
		})
	}

	for _, yp := range doc.Seed.Investments {
		on, err := date.Parse(yp.Date)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("investment %q: %w", yp.Name, err))
			continue
		}
		c.Seed.Positions = append(c.Seed.Positions, Position{
			Name:           yp.Name,
			Invested:       M(decimal.NewFromFloat(yp.Invested), doc.Currency),
			Current:        M(decimal.NewFromFloat(yp.Current), doc.Currency),
			InvestmentDate: on,
		})
	}
	c.Seed.WatchedStocks = doc.Seed.WatchedStocks
	c.Seed.WatchedBaskets = doc.Seed.WatchedBaskets

	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// DefaultContent returns the content embedded in the package.
func DefaultContent() *Content {
	c, err := DecodeContent(bytes.NewReader(defaultContent))
	if err != nil {
		panic(fmt.Sprintf("embedded content is invalid: %v", err))
	}
	return c
}
