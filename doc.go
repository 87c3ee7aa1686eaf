// Package baskets is the state engine of an investment dashboard where users
// browse curated baskets of stocks, invest in them, sell them, edit their
// composition and watch them.
//
// The engine is made of small components, all owned by a Session:
//   - Store: the baskets, keyed by name.
//   - Ledger: the active and archived positions; a basket is never in both.
//   - Compose: turns funded tickers into allocations whose weights sum to 100%.
//   - Watchlists: watched stocks and baskets, with toggle semantics.
//   - Entitlement and Protect: gate subscription-only actions.
//   - Navigator: the current view and where detail views were entered from,
//     so that going back returns to the right place.
//
// A Session is driven by commands (Invest, Sell, SaveBasket, OpenBasket,
// Login, ...) and exposes a Snapshot after each of them for a renderer to
// display. Nothing is persisted: the state lives as long as the process.
package baskets
