package baskets

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Funding is the amount a user puts on a ticker when composing a basket.
type Funding struct {
	Ticker  string
	Amount  Money
	Summary string // optional, defaults to the stock rationale
}

// Composition is a set of allocations whose weights sum to 100%.
type Composition struct {
	Allocations []Allocation
	Total       Money
}

// Compose turns fundings into weighted allocations.
//
// Fundings with a zero or negative amount are dropped. Tickers must be unique
// and share one currency. The weight of each allocation is its share of the
// total, in hundredths of a percent, and the weights always sum to exactly
// 100: each one is the exact share rounded either down or up to 0.01, the
// largest remainders being rounded up.
//
// stocks provides the summary of fundings that have none; it may be nil.
func Compose(fundings []Funding, stocks *Stocks) (Composition, error) {
	seen := make(map[string]bool, len(fundings))
	currency := ""
	funded := make([]Funding, 0, len(fundings))
	for i, f := range fundings {
		ticker := strings.TrimSpace(f.Ticker)
		if ticker == "" {
			return Composition{}, invalid("stocks", "stock #%d has no ticker", i+1)
		}
		if seen[ticker] {
			return Composition{}, invalid("stocks", "duplicate ticker %q", ticker)
		}
		seen[ticker] = true
		if c := f.Amount.Currency(); c != "" {
			if currency != "" && c != currency {
				return Composition{}, invalid("stocks", "%s is funded in %s, other stocks in %s", ticker, c, currency)
			}
			currency = c
		}
		if !f.Amount.IsPositive() {
			continue
		}
		f.Ticker = ticker
		funded = append(funded, f)
	}
	if len(funded) == 0 {
		return Composition{}, invalid("stocks", "basket must contain at least one funded stock")
	}

	amounts := make([]decimal.Decimal, len(funded))
	total := M(0, currency)
	for i, f := range funded {
		amounts[i] = f.Amount.Decimal()
		total = total.Add(f.Amount)
	}

	ws := weights(amounts, total.Decimal())
	allocations := make([]Allocation, len(funded))
	for i, f := range funded {
		summary := f.Summary
		if summary == "" {
			summary = stocks.Rationale(f.Ticker)
		}
		allocations[i] = Allocation{
			Ticker:  f.Ticker,
			Summary: summary,
			Weight:  ws[i],
			Value:   M(f.Amount.Decimal(), currency),
		}
	}
	return Composition{Allocations: allocations, Total: total}, nil
}

// whole is 100% expressed in hundredths of a percent.
const whole = 10000

// weights splits 100% among positive amounts using the largest remainder method.
func weights(amounts []decimal.Decimal, total decimal.Decimal) []Percent {
	type remainder struct {
		i int
		r decimal.Decimal
	}
	units := make([]int64, len(amounts))
	rems := make([]remainder, len(amounts))
	var assigned int64
	for i, a := range amounts {
		exact := a.Mul(decimal.NewFromInt(whole)).DivRound(total, 12)
		floor := exact.Floor()
		units[i] = floor.IntPart()
		assigned += units[i]
		rems[i] = remainder{i: i, r: exact.Sub(floor)}
	}

	// Ties keep the input order.
	slices.SortStableFunc(rems, func(x, y remainder) int { return y.r.Cmp(x.r) })
	for k := 0; k < len(rems) && assigned < whole; k++ {
		units[rems[k].i]++
		assigned++
	}

	ws := make([]Percent, len(units))
	for i, u := range units {
		ws[i] = Percent(float64(u) / 100)
	}
	return ws
}
