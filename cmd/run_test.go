package cmd

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/etnz/baskets"
)

const script = `{"command":"login","email":"admin","password":"admin"}
{"command":"invest","basket":"Pharma Surge"}
{"command":"open-basket","basket":"Pharma Surge","from":"portfolio"}
{"command":"redeem","code":"wrong"}
{"command":"back"}
{"command":"back"}
`

func replayScript(t *testing.T, script string) (*baskets.Snapshot, string) {
	t.Helper()
	cmds, err := baskets.DecodeScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("DecodeScript() unexpected error: %v", err)
	}
	s, err := newSession()
	if err != nil {
		t.Fatalf("newSession() unexpected error: %v", err)
	}
	var stderr bytes.Buffer
	replay(t.Context(), s, cmds, &stderr)
	snap := s.Snapshot()
	return &snap, stderr.String()
}

func TestReplay(t *testing.T) {
	snap, stderr := replayScript(t, script)
	if snap.View != baskets.ViewPortfolio {
		t.Errorf("view = %v, want %v", snap.View, baskets.ViewPortfolio)
	}
	want := "command #4 (redeem) rejected: invalid code: invalid subscription code\n" +
		"command #6 (back) rejected: cannot go back from portfolio\n"
	if stderr != want {
		t.Errorf("rejections =\n%s\nwant\n%s", stderr, want)
	}
}

func TestQuery(t *testing.T) {
	snap, _ := replayScript(t, script)
	tests := []struct {
		path string
		want any
	}{
		{"$.view", "portfolio"},
		{"$.active[*].name", []any{"Banking Breakouts", "Pharma Surge"}},
		{"$.active[1].investedValue.formatted", "₹25,000.00"},
		{"$.user.role", "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := query(snap, tt.path)
			if err != nil {
				t.Fatalf("query(%q) unexpected error: %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("query(%q) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}

	if _, err := query(snap, "$.active["); err == nil {
		t.Errorf("query() of an invalid path expected an error")
	}
}

func TestToHTML(t *testing.T) {
	md := "# Title\n\n| A | B |\n|---|---|\n| 1 | 2 |\n\n- [x] done\n- [ ] todo\n"
	got, err := toHTML(md)
	if err != nil {
		t.Fatalf("toHTML() unexpected error: %v", err)
	}
	for _, want := range []string{"<h1>Title</h1>", "<table>", "<td>2</td>", `type="checkbox"`} {
		if !strings.Contains(got, want) {
			t.Errorf("toHTML() does not contain %q:\n%s", want, got)
		}
	}
}

func TestParseFundings(t *testing.T) {
	fundings, err := parseFundings([]string{"msft=10000", " AAPL = 2500.50"}, "INR")
	if err != nil {
		t.Fatalf("parseFundings() unexpected error: %v", err)
	}
	if len(fundings) != 2 {
		t.Fatalf("parseFundings() = %v, want 2 fundings", fundings)
	}
	if fundings[0].Ticker != "MSFT" || !fundings[0].Amount.Equal(baskets.M(10000, "INR")) {
		t.Errorf("first funding = %+v", fundings[0])
	}
	if fundings[1].Ticker != "AAPL" || !fundings[1].Amount.Equal(baskets.M(2500.50, "INR")) {
		t.Errorf("second funding = %+v", fundings[1])
	}

	for _, args := range [][]string{nil, {"MSFT"}, {"MSFT=lots"}} {
		if _, err := parseFundings(args, "INR"); err == nil {
			t.Errorf("parseFundings(%q) expected an error", args)
		}
	}
}

func TestCompositionMarkdown(t *testing.T) {
	fundings, _ := parseFundings([]string{"MSFT=1", "AAPL=1", "NVDA=1"}, "INR")
	comp, err := baskets.Compose(fundings, baskets.DefaultContent().Stocks)
	if err != nil {
		t.Fatal(err)
	}
	got := compositionMarkdown(comp)
	for _, want := range []string{"# Composition", "33.34%", "33.33%", "Total: **₹3.00**"} {
		if !strings.Contains(got, want) {
			t.Errorf("compositionMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestIsCommand(t *testing.T) {
	for _, name := range []string{"run", "compose", "baskets", "basket", "stock", "topic"} {
		if !IsCommand(name) {
			t.Errorf("IsCommand(%q) = false, want true", name)
		}
	}
	if IsCommand("hello") {
		t.Errorf("IsCommand(%q) = true, want false", "hello")
	}
}
