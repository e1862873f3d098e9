package models

import (
	"errors"
	"time"
)

// RunStatus describes how a reconciliation run ended.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// Run is the persisted summary of one reconciliation run.
type Run struct {
	id         string
	sequence   int
	startedAt  time.Time
	finishedAt time.Time
	dryRun     bool
	playlists  int
	counts     map[Outcome]int
	status     RunStatus
	errMsg     string
}

// NewRun builds a Run summary from a finished [Report].
//
// runErr is the fatal error that ended the run, if any.
func NewRun(report *Report, runErr error) *Run {
	counts := make(map[Outcome]int, len(report.Counts))
	for k, v := range report.Counts {
		counts[k] = v
	}

	run := &Run{
		id:         report.RunID,
		startedAt:  report.StartedAt,
		finishedAt: report.FinishedAt,
		dryRun:     report.DryRun,
		playlists:  report.Playlists,
		counts:     counts,
		status:     RunStatusSuccess,
	}
	if runErr != nil {
		run.status = RunStatusFailed
		run.errMsg = runErr.Error()
	}
	return run
}

// RestoreRun rebuilds a Run from stored column values.
func RestoreRun(
	id string,
	sequence int,
	startedAt, finishedAt time.Time,
	dryRun bool,
	playlists int,
	counts map[Outcome]int,
	status RunStatus,
	errMsg string,
) *Run {
	if counts == nil {
		counts = make(map[Outcome]int)
	}
	return &Run{
		id:         id,
		sequence:   sequence,
		startedAt:  startedAt,
		finishedAt: finishedAt,
		dryRun:     dryRun,
		playlists:  playlists,
		counts:     counts,
		status:     status,
		errMsg:     errMsg,
	}
}

func (r *Run) ID() string { return r.id }
func (r *Run) SetID(id string) { r.id = id }
func (r *Run) Sequence() int { return r.sequence }
func (r *Run) SetSequence(seq int) { r.sequence = seq }
func (r *Run) CreatedAt() time.Time { return r.startedAt }
func (r *Run) StartedAt() time.Time { return r.startedAt }
func (r *Run) FinishedAt() time.Time { return r.finishedAt }
func (r *Run) DryRun() bool { return r.dryRun }
func (r *Run) Playlists() int { return r.playlists }
func (r *Run) Counts() map[Outcome]int { return r.counts }
func (r *Run) Count(o Outcome) int { return r.counts[o] }
func (r *Run) Status() RunStatus { return r.status }
func (r *Run) ErrorMessage() string { return r.errMsg }
func (r *Run) Duration() time.Duration { return r.finishedAt.Sub(r.startedAt) }

// Validate checks that the run has an id, a start time and a known status.
func (r *Run) Validate() error {
	if r.id == "" {
		return errors.New("run id is required")
	}
	if r.startedAt.IsZero() {
		return errors.New("run start time is required")
	}
	switch r.status {
	case RunStatusSuccess, RunStatusFailed:
	default:
		return errors.New("run status is invalid")
	}
	return nil
}
