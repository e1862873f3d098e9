package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/talink/internal/formatter"
	"github.com/desertthunder/talink/internal/models"
	"github.com/desertthunder/talink/internal/repositories"
	"github.com/desertthunder/talink/internal/shared"
	"github.com/urfave/cli/v3"
)

type runView struct {
	ID         string                 `json:"id"`
	Sequence   int                    `json:"sequence"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	DryRun     bool                   `json:"dry_run"`
	Playlists  int                    `json:"playlists"`
	Counts     map[models.Outcome]int `json:"counts"`
	Status     models.RunStatus       `json:"status"`
	Error      string                 `json:"error,omitempty"`
}

// History lists the most recent runs from the history database, or only the last one with --latest.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if config.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty, run history is disabled", shared.ErrInvalidConfig)
	}

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewRunRepository(db)

	var runs []*models.Run
	if cmd.Bool("latest") {
		latest, err := repo.Latest()
		if errors.Is(err, shared.ErrRunNotFound) {
			return r.writePlain("No runs recorded.\n")
		}
		if err != nil {
			return err
		}
		runs = []*models.Run{latest}
	} else if runs, err = repo.List(cmd.Int("limit")); err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]runView, 0, len(runs))
		for _, run := range runs {
			views = append(views, runView{
				ID:         run.ID(),
				Sequence:   run.Sequence(),
				StartedAt:  run.StartedAt(),
				FinishedAt: run.FinishedAt(),
				DryRun:     run.DryRun(),
				Playlists:  run.Playlists(),
				Counts:     run.Counts(),
				Status:     run.Status(),
				Error:      run.ErrorMessage(),
			})
		}
		return r.writeJSON(views, true)
	}

	out, err := formatter.RunsToText(runs)
	if err != nil {
		return err
	}
	return r.writeBytes(out)
}
