package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/talink/internal/formatter"
	"github.com/desertthunder/talink/internal/metrics"
	"github.com/desertthunder/talink/internal/models"
	"github.com/desertthunder/talink/internal/repositories"
	"github.com/desertthunder/talink/internal/shared"
	"github.com/desertthunder/talink/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Sync fetches every playlist from the index and reconciles the destination tree.
//
// The report is printed and recorded even when the run ends with a fatal error, which is then returned.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	switch format {
	case "text", "markdown", "json", "csv":
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("source") {
		config.Paths.Source = cmd.String("source")
	}
	if cmd.IsSet("dest") {
		config.Paths.Dest = cmd.String("dest")
	}
	if cmd.Bool("dry-run") {
		config.Sync.DryRun = true
	}
	if err := config.Validate(); err != nil {
		return err
	}

	collector := metrics.NewCollector()
	reconciler := tasks.NewReconciler(tasks.ReconcilerOpts{
		SourceRoot: config.Paths.Source,
		DestRoot:   config.Paths.Dest,
		DryRun:     config.Sync.DryRun,
		RateLimit:  config.Sync.RateLimit,
		Logger:     r.logger,
		Observer:   collector,
	})

	report, runErr := reconciler.Sync(ctx, r.playlistSource(config.Index))
	if report == nil {
		return runErr
	}

	if err := r.writeReport(report, format); err != nil {
		r.logger.Error("failed to write report", "err", err)
	}

	r.recordRun(config.Database, report, runErr)

	collector.ObserveRun(report, runErr)
	if path := config.Metrics.Textfile; path != "" {
		if err := collector.WriteTextfile(path); err != nil {
			r.logger.Warn("failed to write metrics textfile", "path", path, "err", err)
		} else {
			r.logger.Debug("wrote metrics textfile", "path", path)
		}
	}

	return runErr
}

func (r *Runner) writeReport(report *models.Report, format string) error {
	var out []byte
	var err error

	switch format {
	case "json":
		return r.writeJSON(report, true)
	case "markdown":
		out, err = formatter.ReportToMarkdown(report)
	case "csv":
		out, err = formatter.ReportToCSV(report)
	default:
		out, err = formatter.ReportToText(report)
	}
	if err != nil {
		return err
	}
	return r.writeBytes(out)
}

// recordRun stores the run summary in the history database. Failures are logged, never returned.
func (r *Runner) recordRun(cfg shared.DatabaseConfig, report *models.Report, runErr error) {
	if cfg.Path == "" {
		return
	}

	db, err := shared.OpenDatabase(cfg)
	if err != nil {
		r.logger.Warn("run history unavailable", "path", cfg.Path, "err", err)
		return
	}
	defer db.Close()

	run := models.NewRun(report, runErr)
	if err := repositories.NewRunRepository(db).Create(run); err != nil {
		r.logger.Warn("failed to record run", "run", run.ID(), "err", err)
		return
	}
	r.logger.Debug("recorded run", "run", run.ID(), "sequence", run.Sequence())
}
