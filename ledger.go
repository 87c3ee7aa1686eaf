package baskets

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"

	"github.com/etnz/baskets/date"
)

// Position is a user's investment in a basket, distinct from the basket
// definition itself. Name refers to a basket by convention only.
type Position struct {
	Name           string
	Invested       Money
	Current        Money
	InvestmentDate date.Date // set once, when the position is opened
}

// Return is the current value minus the invested value.
func (p Position) Return() Money { return p.Current.Sub(p.Invested) }

// ReturnPercent is Return relative to the invested value.
func (p Position) ReturnPercent() Percent {
	return percentOf(p.Return().Decimal(), p.Invested.Decimal())
}

// IsPositive reports whether the position did not lose money.
func (p Position) IsPositive() bool { return !p.Return().IsNegative() }

// MarshalJSON writes the position with its derived return fields.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name               string    `json:"name"`
		InvestedValue      Money     `json:"investedValue"`
		CurrentValue       Money     `json:"currentValue"`
		TotalReturn        string    `json:"totalReturn"`
		TotalReturnPercent string    `json:"totalReturnPercent"`
		IsPositive         bool      `json:"isPositive"`
		InvestmentDate     date.Date `json:"investmentDate"`
	}{
		Name:               p.Name,
		InvestedValue:      p.Invested,
		CurrentValue:       p.Current,
		TotalReturn:        p.Return().SignedString(),
		TotalReturnPercent: p.ReturnPercent().SignedString(),
		IsPositive:         p.IsPositive(),
		InvestmentDate:     p.InvestmentDate,
	})
}

// InvestOutcome tells what Invest did.
type InvestOutcome int

const (
	// AlreadyInvested means the basket was active and nothing changed.
	AlreadyInvested InvestOutcome = iota
	// Revived means the archived position was moved back to the active ones.
	Revived
	// Opened means a new position was created.
	Opened
)

func (o InvestOutcome) String() string {
	switch o {
	case AlreadyInvested:
		return "already invested"
	case Revived:
		return "revived"
	case Opened:
		return "opened"
	default:
		return "unknown"
	}
}

// Ledger holds the active and archived positions.
//
// A basket name is in at most one of the two lists, at most once.
type Ledger struct {
	active   []Position
	archived []Position
}

// NewLedger creates a ledger with initial active positions. Later duplicates
// of a name are ignored.
func NewLedger(active ...Position) *Ledger {
	l := &Ledger{active: make([]Position, 0, len(active))}
	for _, p := range active {
		if l.IsInvested(p.Name) {
			log.Printf("ledger: ignoring duplicate position %q", p.Name)
			continue
		}
		l.active = append(l.active, p)
	}
	return l
}

// Invest makes name an active position.
//
// It does nothing if name is already active. An archived position is moved
// back as is, keeping its investment date and values. Otherwise a new
// position of amount, dated on, is appended.
func (l *Ledger) Invest(name string, amount Money, on date.Date) (Position, InvestOutcome) {
	if i := indexOf(l.active, name); i >= 0 {
		return l.active[i], AlreadyInvested
	}
	if i := indexOf(l.archived, name); i >= 0 {
		p := l.archived[i]
		l.archived = slices.Delete(l.archived, i, i+1)
		l.active = append(l.active, p)
		log.Printf("ledger: %q revived from archive, invested on %v", name, p.InvestmentDate)
		return p, Revived
	}
	p := Position{
		Name:           name,
		Invested:       amount,
		Current:        amount,
		InvestmentDate: on,
	}
	l.active = append(l.active, p)
	return p, Opened
}

// Sell moves the active position name to the archive, unmodified. It returns
// false and does nothing if name is not active.
func (l *Ledger) Sell(name string) (Position, bool) {
	i := indexOf(l.active, name)
	if i < 0 {
		return Position{}, false
	}
	p := l.active[i]
	l.active = slices.Delete(l.active, i, i+1)
	if indexOf(l.archived, name) < 0 {
		l.archived = append(l.archived, p)
	}
	return p, true
}

// Position returns the active position for name.
func (l *Ledger) Position(name string) (Position, bool) {
	if i := indexOf(l.active, name); i >= 0 {
		return l.active[i], true
	}
	return Position{}, false
}

// IsInvested reports whether name is an active position.
func (l *Ledger) IsInvested(name string) bool { return indexOf(l.active, name) >= 0 }

// IsArchived reports whether name is an archived position.
func (l *Ledger) IsArchived(name string) bool { return indexOf(l.archived, name) >= 0 }

// Active returns a copy of the active positions in investment order.
func (l *Ledger) Active() []Position { return slices.Clone(l.active) }

// Archived returns a copy of the archived positions in selling order.
func (l *Ledger) Archived() []Position { return slices.Clone(l.archived) }

// check verifies the ledger invariants.
func (l *Ledger) check() error {
	seen := make(map[string]string)
	for list, ps := range map[string][]Position{"active": l.active, "archived": l.archived} {
		for _, p := range ps {
			if other, ok := seen[p.Name]; ok {
				return fmt.Errorf("position %q is both in %s and %s", p.Name, other, list)
			}
			seen[p.Name] = list
		}
	}
	return nil
}

func indexOf(ps []Position, name string) int {
	return slices.IndexFunc(ps, func(p Position) bool { return p.Name == name })
}
