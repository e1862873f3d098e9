// Package repositories implements SQLite persistence for reconciliation run history.
//
// [RunRepository] stores one row per run with its per-outcome counts encoded as JSON.
// Runs are append-only: nothing is updated or deleted once recorded.
//
// Sequence numbers provide stable, human-readable ordering (e.g., run #42) independent of UUIDs and timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
