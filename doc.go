// Package coinfolio tracks the monetary value of cryptocurrency portfolios
// over time. It is designed to answer point-in-time questions ("what was my
// portfolio worth last Tuesday") as accurately as "what is it worth now".
//
// The core functionalities include:
//   - Transaction Ledger: an append-only, chronologically ordered record of
//     ownership changes (init, buy, sell, trade) per user, correct even for
//     transactions inserted with historical dates.
//   - Projection: replaying a ledger into a sequence of holdings snapshots,
//     one per distinct transaction instant, queryable at any point in time.
//   - Price History: a per-symbol time series of price samples, fed by a
//     periodic market feed and by historical backfill, with binary-search
//     point-in-time lookups.
//   - Valuation: combining holdings at an instant with prices at that same
//     instant into totals, percentage changes, and per-symbol breakdowns.
//   - Data Persistence: encoding ledgers and price series into explicit,
//     type-tagged JSONL, with file and SQLite backed stores.
//
// This package serves as the foundational logic for the `cfl` command-line
// tool.
package coinfolio
