package baskets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/baskets/date"
	"github.com/shopspring/decimal"
)

// Config holds the settings of a Session.
type Config struct {
	// Currency of new positions, an ISO 4217 code known to go-money.
	Currency string
	// DefaultAmount is the amount of a position opened without an explicit amount.
	DefaultAmount decimal.Decimal
	// SubscriptionCode is the code that turns a subscription on.
	SubscriptionCode string
	// Today returns the investment date of new positions. Defaults to date.Today.
	Today func() date.Date
}

// DefaultConfig returns the configuration the dashboard ships with.
func DefaultConfig() Config {
	return Config{
		Currency:         "INR",
		DefaultAmount:    decimal.NewFromInt(25000),
		SubscriptionCode: "123456",
		Today:            date.Today,
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs error
	if !knownCurrency(c.Currency) {
		errs = errors.Join(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if !c.DefaultAmount.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("default amount must be positive, got %v", c.DefaultAmount))
	}
	if strings.TrimSpace(c.SubscriptionCode) == "" {
		errs = errors.Join(errs, errors.New("subscription code is empty"))
	}
	return errs
}

func (c Config) today() date.Date {
	if c.Today == nil {
		return date.Today()
	}
	return c.Today()
}

func (c Config) defaultAmount() Money { return M(c.DefaultAmount, c.Currency) }
