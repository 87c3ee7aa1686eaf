package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/baskets"
	"github.com/etnz/baskets/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type composeCmd struct{}

func (*composeCmd) Name() string     { return "compose" }
func (*composeCmd) Synopsis() string { return "compute the weights of a basket from amounts" }
func (*composeCmd) Usage() string {
	return `bsk compose <TICKER>=<AMOUNT>...

  Computes the allocations of a basket funded with the given amounts. Stocks
  with a zero amount are dropped, weights always sum to 100%.

Usage Examples:
$ bsk compose MSFT=10000 AAPL=5000 NVDA=0

`
}

func (*composeCmd) SetFlags(*flag.FlagSet) {}

func (*composeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	fundings, err := parseFundings(f.Args(), cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	content, err := loadContent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	comp, err := baskets.Compose(fundings, content.Stocks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(compositionMarkdown(comp))
	return subcommands.ExitSuccess
}

// parseFundings parses TICKER=AMOUNT arguments. Tickers are upper-cased.
func parseFundings(args []string, currency string) ([]baskets.Funding, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one TICKER=AMOUNT is required")
	}
	fundings := make([]baskets.Funding, 0, len(args))
	for _, arg := range args {
		ticker, amount, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid funding %q, expecting TICKER=AMOUNT", arg)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %w", arg, err)
		}
		fundings = append(fundings, baskets.Funding{
			Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
			Amount: baskets.M(d, currency),
		})
	}
	return fundings, nil
}

func compositionMarkdown(comp baskets.Composition) string {
	var b strings.Builder
	b.WriteString("# Composition\n\n")
	b.WriteString(renderer.AllocationsTable(comp.Allocations))
	fmt.Fprintf(&b, "\nTotal: **%s**\n", comp.Total)
	return b.String()
}
