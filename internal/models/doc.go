// Package models defines the domain entities for the talink playlist reconciler.
//
// The package contains three categories of types:
//
// 1. Index records: tolerant views of playlist documents returned by the search index
//   - [Document] : raw `_source` object of one playlist document
//   - [PlaylistRecord] : playlist name, id and ordered entries
//   - [VideoEntryRecord] : one video's membership in a playlist
//
// 2. Reconciliation values: derived, immutable views produced while linking
//   - [ValidatedEntry] : an entry that passed validation
//   - [SourceMediaFile] : the on-disk media file located for an entry
//   - [Report] and [ItemResult] : per-item decisions of one run
//
// 3. Persistent Entities: database-backed run history
//   - [Run] : summary of one reconciliation run
//
// Optional index fields are modeled as pointers; a field that is absent or has
// the wrong JSON type is nil.
package models
