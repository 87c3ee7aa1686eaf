package baskets

import (
	"fmt"
	"maps"
	"slices"
)

// Set is a set of keys with toggle semantics.
type Set[K comparable] struct {
	m map[K]struct{}
}

// NewSet creates a set holding keys.
func NewSet[K comparable](keys ...K) Set[K] {
	s := Set[K]{m: make(map[K]struct{}, len(keys))}
	for _, k := range keys {
		s.m[k] = struct{}{}
	}
	return s
}

// Toggle removes k if present, adds it otherwise. It returns whether k is
// now in the set. Toggling twice restores the original membership.
func (s *Set[K]) Toggle(k K) bool {
	if s.m == nil {
		s.m = make(map[K]struct{})
	}
	if _, ok := s.m[k]; ok {
		delete(s.m, k)
		return false
	}
	s.m[k] = struct{}{}
	return true
}

// Has reports whether k is in the set.
func (s Set[K]) Has(k K) bool {
	_, ok := s.m[k]
	return ok
}

func (s Set[K]) Len() int { return len(s.m) }

// Equal reports whether both sets hold the same keys.
func (s Set[K]) Equal(t Set[K]) bool {
	return maps.Equal(s.m, t.m)
}

// Sorted returns the keys of a string set in order.
func Sorted(s Set[string]) []string {
	return slices.Sorted(maps.Keys(s.m))
}

// WatchKind selects one of the two watchlists.
type WatchKind int

const (
	WatchStock WatchKind = iota
	WatchBasket
)

func (k WatchKind) String() string {
	switch k {
	case WatchStock:
		return "stock"
	case WatchBasket:
		return "basket"
	default:
		return "unknown"
	}
}

// ParseWatchKind parses "stock" or "basket".
func ParseWatchKind(s string) (WatchKind, error) {
	switch s {
	case "stock":
		return WatchStock, nil
	case "basket":
		return WatchBasket, nil
	default:
		return 0, fmt.Errorf("unknown watchlist kind: %q", s)
	}
}

func (k WatchKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *WatchKind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseWatchKind(string(text))
	return err
}

// Watchlists are the two independent sets of watched stocks and baskets.
type Watchlists struct {
	Stocks  Set[string]
	Baskets Set[string]
}

// NewWatchlists creates watchlists with initial members.
func NewWatchlists(stocks, baskets []string) *Watchlists {
	return &Watchlists{Stocks: NewSet(stocks...), Baskets: NewSet(baskets...)}
}

// Toggle flips key in the watchlist of kind and returns whether it is now watched.
func (w *Watchlists) Toggle(kind WatchKind, key string) bool {
	switch kind {
	case WatchBasket:
		return w.Baskets.Toggle(key)
	default:
		return w.Stocks.Toggle(key)
	}
}

// Watched reports whether key is in the watchlist of kind.
func (w *Watchlists) Watched(kind WatchKind, key string) bool {
	if kind == WatchBasket {
		return w.Baskets.Has(key)
	}
	return w.Stocks.Has(key)
}
