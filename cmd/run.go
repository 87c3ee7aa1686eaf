package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/baskets"
	"github.com/etnz/baskets/renderer"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type runCmd struct {
	json   bool
	html   bool
	query  string
	strict bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "replay a session script and show the resulting view" }
func (*runCmd) Usage() string {
	return `bsk run [-json|-html] [-q <jsonpath>] [-strict] [<script.jsonl>]

  Replays a session script, one JSON command per line, on a fresh session
  and shows the view it ends on. The script is read from stdin when no file
  is given. Rejected commands are reported and the replay goes on, as the
  dashboard would.

Usage Examples:
# Show the basket a user ends on, as HTML.
$ bsk run -html demo.jsonl

# List the names of the active positions.
$ bsk run -q '$.active[*].name' demo.jsonl

`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the final snapshot as JSON.")
	f.BoolVar(&c.html, "html", false, "Print the final view as HTML.")
	f.StringVar(&c.query, "q", "", "Print the result of a JSONPath query on the final snapshot.")
	f.BoolVar(&c.strict, "strict", false, "Fail if any command is rejected.")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if f.NArg() > 0 {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	cmds, err := baskets.DecodeScript(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding script: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		return subcommands.ExitFailure
	}
	rejected := replay(ctx, s, cmds, os.Stderr)
	snap := s.Snapshot()

	switch {
	case c.query != "":
		v, err := query(&snap, c.query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		printJSON(v)
	case c.json:
		printJSON(snap)
	case c.html:
		html, err := toHTML(renderer.RenderSnapshot(&snap))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering HTML: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Print(html)
	default:
		printMarkdown(renderer.RenderSnapshot(&snap))
	}

	if c.strict && rejected > 0 {
		fmt.Fprintf(os.Stderr, "%d command(s) rejected\n", rejected)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// replay applies cmds in order and reports rejected ones to w. It returns
// the number of rejected commands.
func replay(ctx context.Context, s *baskets.Session, cmds []baskets.Command, w io.Writer) int {
	rejected := 0
	for i, cmd := range cmds {
		if err := cmd.Apply(ctx, s); err != nil {
			fmt.Fprintf(w, "command #%d (%s) rejected: %v\n", i+1, cmd.What(), err)
			rejected++
		}
	}
	return rejected
}

// query evaluates a JSONPath expression on the JSON form of snap.
func query(snap *baskets.Snapshot, path string) (any, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("cannot encode snapshot: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot: %w", err)
	}
	v, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return v, nil
}

// toHTML converts GitHub flavored markdown to HTML.
func toHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}
