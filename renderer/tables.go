package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/baskets"
	md "github.com/nao1215/markdown"
)

// PositionsTable renders positions with their return.
func PositionsTable(positions []baskets.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	table := md.TableSet{
		Header: []string{"Basket", "Invested", "Current", "Return", "Since"},
	}
	for _, p := range positions {
		table.Rows = append(table.Rows, []string{
			p.Name,
			p.Invested.String(),
			p.Current.String(),
			fmt.Sprintf("%s (%s)", p.Return().SignedString(), p.ReturnPercent().SignedString()),
			p.InvestmentDate.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// AllocationsTable renders the composition of a basket.
func AllocationsTable(stocks []baskets.Allocation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	table := md.TableSet{
		Header: []string{"Ticker", "Weight", "Value", "Rationale"},
	}
	for _, a := range stocks {
		table.Rows = append(table.Rows, []string{
			md.Bold(a.Ticker),
			a.Weight.String(),
			a.Value.String(),
			a.Summary,
		})
	}
	doc.Table(table)
	return doc.String()
}

func FundamentalsTable(fundamentals []baskets.Fundamental) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	table := md.TableSet{Header: []string{"Fundamental", "Value"}}
	for _, f := range fundamentals {
		table.Rows = append(table.Rows, []string{f.Label, f.Value})
	}
	doc.Table(table)
	return doc.String()
}

// BasketsTable renders a catalog of baskets.
func BasketsTable(list []baskets.Basket) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	table := md.TableSet{
		Header: []string{"Basket", "Stocks", "Total", "AI Score"},
	}
	for _, b := range list {
		table.Rows = append(table.Rows, []string{
			md.Bold(b.Name),
			strings.Join(b.Tickers(), ", "),
			b.Total().String(),
			fmt.Sprintf("%d (%s)", b.AIScore.Score, b.AIScore.Label),
		})
	}
	doc.Table(table)
	return doc.String()
}
