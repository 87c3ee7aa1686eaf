package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/baskets"
	"github.com/etnz/baskets/renderer"
	"github.com/google/subcommands"
)

type basketsCmd struct{}

func (*basketsCmd) Name() string     { return "baskets" }
func (*basketsCmd) Synopsis() string { return "list the curated baskets" }
func (*basketsCmd) Usage() string {
	return `bsk baskets

  Lists the baskets of the content with their composition total.
`
}

func (*basketsCmd) SetFlags(*flag.FlagSet) {}

func (*basketsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	content, err := loadContent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown("# Baskets\n\n" + renderer.BasketsTable(content.Baskets))
	return subcommands.ExitSuccess
}

// operator are the credentials the catalog commands browse with. Detail
// views are subscription-gated and the command line is run by the operator
// of the content.
var operator = baskets.Credentials{Email: "admin", Password: "admin"}

type basketCmd struct{}

func (*basketCmd) Name() string     { return "basket" }
func (*basketCmd) Synopsis() string { return "show the detail of a basket" }
func (*basketCmd) Usage() string {
	return `bsk basket <name>

  Shows a basket as an administrator sees it in the dashboard.
`
}

func (*basketCmd) SetFlags(*flag.FlagSet) {}

func (*basketCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a basket name is required")
		return subcommands.ExitUsageError
	}
	return showDetail(ctx, func(s *baskets.Session) error {
		return s.OpenBasket(f.Arg(0), baskets.BasketFromExplore)
	})
}

type stockCmd struct{}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "show the detail of a stock" }
func (*stockCmd) Usage() string {
	return `bsk stock <ticker>

  Shows a stock as an administrator sees it in the dashboard.
`
}

func (*stockCmd) SetFlags(*flag.FlagSet) {}

func (*stockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a ticker is required")
		return subcommands.ExitUsageError
	}
	return showDetail(ctx, func(s *baskets.Session) error {
		return s.OpenStock(f.Arg(0), baskets.StockFromDashboard)
	})
}

// showDetail logs the operator in, opens a detail view and prints it.
func showDetail(ctx context.Context, open func(*baskets.Session) error) subcommands.ExitStatus {
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Login(ctx, operator); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.DismissOnboarding()
	if err := open(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	snap := s.Snapshot()
	printMarkdown(renderer.RenderSnapshot(&snap))
	return subcommands.ExitSuccess
}
