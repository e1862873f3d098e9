package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/desertthunder/talink/internal/models"
	"github.com/desertthunder/talink/internal/shared"
)

// RunRepository implements models.Repository[*models.Run] for run history.
type RunRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.Run] = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a run with the next sequence number.
// A run without an id gets a generated one.
func (r *RunRepository) Create(run *models.Run) error {
	if run.ID() == "" {
		run.SetID(shared.GenerateID())
	}

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	counts, err := json.Marshal(run.Counts())
	if err != nil {
		return fmt.Errorf("failed to encode counts: %w", err)
	}

	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `
		INSERT INTO runs (id, sequence, started_at, finished_at, dry_run, playlists, counts, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID(),
		sequence,
		run.StartedAt(),
		run.FinishedAt(),
		run.DryRun(),
		run.Playlists(),
		string(counts),
		string(run.Status()),
		run.ErrorMessage(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	run.SetSequence(sequence)
	return nil
}

// Get retrieves a run by ID
func (r *RunRepository) Get(id string) (*models.Run, error) {
	query := `
		SELECT id, sequence, started_at, finished_at, dry_run, playlists, counts, status, error
		FROM runs
		WHERE id = ?
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}
	return run, err
}

// Latest retrieves the most recent run
func (r *RunRepository) Latest() (*models.Run, error) {
	runs, err := r.List(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, shared.ErrRunNotFound
	}
	return runs[0], nil
}

// List retrieves up to limit runs, newest first. A non-positive limit returns every run.
func (r *RunRepository) List(limit int) ([]*models.Run, error) {
	query := `
		SELECT id, sequence, started_at, finished_at, dry_run, playlists, counts, status, error
		FROM runs
		ORDER BY sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.Run, error) {
	var (
		id         string
		sequence   int
		startedAt  sql.NullTime
		finishedAt sql.NullTime
		dryRun     bool
		playlists  int
		countsJSON string
		status     string
		errMsg     string
	)

	if err := s.Scan(&id, &sequence, &startedAt, &finishedAt, &dryRun, &playlists, &countsJSON, &status, &errMsg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	counts := make(map[models.Outcome]int)
	if err := json.Unmarshal([]byte(countsJSON), &counts); err != nil {
		return nil, fmt.Errorf("failed to decode counts for run %s: %w", id, err)
	}

	return models.RestoreRun(
		id,
		sequence,
		startedAt.Time,
		finishedAt.Time,
		dryRun,
		playlists,
		counts,
		models.RunStatus(status),
		errMsg,
	), nil
}
