package models

import "time"

// Outcome is the decision recorded for one playlist or entry during reconciliation.
type Outcome string

const (
	OutcomeCreated              Outcome = "created"
	OutcomeAlreadyExists        Outcome = "already_exists"
	OutcomeSkippedMissingField  Outcome = "skipped_missing_field"
	OutcomeSkippedNotDownloaded Outcome = "skipped_not_downloaded"
	OutcomeSkippedNoExtension   Outcome = "skipped_no_extension"
	OutcomeNotFound             Outcome = "not_found"
	OutcomeCreatedDirectory     Outcome = "created_directory"
	OutcomeSkippedPlaylist      Outcome = "skipped_playlist"
	OutcomeFailed               Outcome = "failed"
)

// Outcomes lists every [Outcome] in display order.
var Outcomes = []Outcome{
	OutcomeCreatedDirectory,
	OutcomeCreated,
	OutcomeAlreadyExists,
	OutcomeSkippedPlaylist,
	OutcomeSkippedMissingField,
	OutcomeSkippedNotDownloaded,
	OutcomeSkippedNoExtension,
	OutcomeNotFound,
	OutcomeFailed,
}

// Label returns a short human-readable label for display.
func (o Outcome) Label() string {
	switch o {
	case OutcomeCreated:
		return "Links created"
	case OutcomeAlreadyExists:
		return "Already existing"
	case OutcomeSkippedMissingField:
		return "Skipped (missing field)"
	case OutcomeSkippedNotDownloaded:
		return "Skipped (not downloaded)"
	case OutcomeSkippedNoExtension:
		return "Skipped (no extension)"
	case OutcomeNotFound:
		return "Media not found"
	case OutcomeCreatedDirectory:
		return "Directories created"
	case OutcomeSkippedPlaylist:
		return "Playlists skipped"
	case OutcomeFailed:
		return "Failed"
	default:
		return string(o)
	}
}

// ItemResult records the decision taken for one playlist or entry.
type ItemResult struct {
	Playlist   string  `json:"playlist,omitempty"`
	PlaylistID string  `json:"playlist_id,omitempty"`
	VideoID    string  `json:"video_id,omitempty"`
	Title      string  `json:"title,omitempty"`
	Outcome    Outcome `json:"outcome"`
	Path       string  `json:"path,omitempty"`   // directory or link path in the destination tree
	Source     string  `json:"source,omitempty"` // resolved media file for links
	Reason     string  `json:"reason,omitempty"`
}

// Report accumulates the per-item decisions of one reconciliation run.
type Report struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	DryRun     bool            `json:"dry_run"`
	Playlists  int             `json:"playlists"`
	Counts     map[Outcome]int `json:"counts"`
	Items      []ItemResult    `json:"items"`
}

// NewReport creates an empty report for the run identified by runID.
func NewReport(runID string, dryRun bool) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: time.Now(),
		DryRun:    dryRun,
		Counts:    make(map[Outcome]int),
		Items:     []ItemResult{},
	}
}

// Add appends an item and increments the counter for its outcome.
func (r *Report) Add(item ItemResult) {
	r.Counts[item.Outcome]++
	r.Items = append(r.Items, item)
}

// Count returns the number of items recorded with outcome o.
func (r *Report) Count(o Outcome) int {
	return r.Counts[o]
}

// Finish stamps the finish time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

// Duration returns how long the run took, or zero if it has not finished.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
