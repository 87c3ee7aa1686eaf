// Package cmd implements the bsk command line, a terminal front end to the
// basket dashboard engine.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/baskets"
	"github.com/shopspring/decimal"
)

// Environment variables used as defaults for the global flags. They are also
// passed to extensions.
const (
	EnvContentFile      = "BSK_CONTENT_FILE"
	EnvCurrency         = "BSK_CURRENCY"
	EnvDefaultAmount    = "BSK_DEFAULT_AMOUNT"
	EnvSubscriptionCode = "BSK_SUBSCRIPTION_CODE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	contentFile      = flag.String("content", "", "Path to a YAML content file. Defaults to $"+EnvContentFile+", then to the embedded content.")
	currency         = flag.String("currency", "", "Currency of new positions. Defaults to $"+EnvCurrency+", then INR.")
	defaultAmount    = flag.String("amount", "", "Amount invested by default. Defaults to $"+EnvDefaultAmount+", then 25000.")
	subscriptionCode = flag.String("code", "", "Subscription code. Defaults to $"+EnvSubscriptionCode+", then 123456.")
)

// setting returns the flag value if set, the environment variable otherwise.
func setting(flagValue, env string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(env)
}

// config resolves the session configuration from the flags and the environment.
func config() (baskets.Config, error) {
	cfg := baskets.DefaultConfig()
	if v := setting(*currency, EnvCurrency); v != "" {
		cfg.Currency = strings.ToUpper(strings.TrimSpace(v))
	}
	if v := setting(*defaultAmount, EnvDefaultAmount); v != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("invalid default amount %q: %w", v, err)
		}
		cfg.DefaultAmount = d
	}
	if v := setting(*subscriptionCode, EnvSubscriptionCode); v != "" {
		cfg.SubscriptionCode = v
	}
	return cfg, cfg.Validate()
}

// loadContent decodes the content file, or returns the embedded content.
func loadContent() (*baskets.Content, error) {
	path := setting(*contentFile, EnvContentFile)
	if path == "" {
		return baskets.DefaultContent(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open content file: %w", err)
	}
	defer f.Close()
	c, err := baskets.DecodeContent(f)
	if err != nil {
		return nil, fmt.Errorf("invalid content file %q: %w", path, err)
	}
	return c, nil
}

// newSession creates a session from the flags and the environment.
func newSession() (*baskets.Session, error) {
	cfg, err := config()
	if err != nil {
		return nil, err
	}
	content, err := loadContent()
	if err != nil {
		return nil, err
	}
	return baskets.NewSession(cfg, content, baskets.StubAuthenticator{})
}

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
