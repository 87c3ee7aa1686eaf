package baskets

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage, 100 meaning the whole.
type Percent float64

// percentOf returns part/whole*100, or 0 when whole is zero.
func percentOf(part, whole decimal.Decimal) Percent {
	if whole.IsZero() {
		return 0
	}
	return Percent(part.Mul(hundred).DivRound(whole, 4).InexactFloat64())
}

var hundred = decimal.NewFromInt(100)

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString is like String with an explicit sign, zero being "+0.00%".
func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", p)
}
