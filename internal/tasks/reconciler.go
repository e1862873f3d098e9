// package tasks implements the reconciliation of index playlists onto a symlink tree.
//
// The core abstraction is Reconciler, a single sequential pass that creates one directory per playlist
// and one symlink per downloaded video, using the filesystem itself as the record of completed work.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/talink/internal/models"
	"github.com/desertthunder/talink/internal/shared"
	"golang.org/x/time/rate"
)

// PlaylistSource fetches the raw playlist documents from the search index.
type PlaylistSource interface {
	SearchPlaylists(ctx context.Context) ([]models.Document, error)
}

// ItemObserver is notified of every recorded outcome, e.g. to update metrics.
type ItemObserver interface {
	ObserveItem(outcome models.Outcome)
}

// ReconcilerOpts contains configuration for creating a Reconciler.
type ReconcilerOpts struct {
	SourceRoot string       // download tree, one directory per uploader
	DestRoot   string       // presentation tree
	DryRun     bool         // record decisions without touching the filesystem
	RateLimit  float64      // filesystem mutations per second, 0 for unlimited
	Logger     *log.Logger  // defaults to [shared.NewLogger]
	Observer   ItemObserver // optional
}

// Reconciler applies the playlists of the index to the destination tree.
type Reconciler struct {
	destRoot string
	dryRun   bool
	locator  *Locator
	limiter  *rate.Limiter
	logger   *log.Logger
	observer ItemObserver

	// beforeLink runs between the existence check and the symlink call; tests use it to lose the create race.
	beforeLink func(target string)
}

// NewReconciler creates a Reconciler with the provided configuration.
func NewReconciler(opts ReconcilerOpts) *Reconciler {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	r := &Reconciler{
		destRoot: opts.DestRoot,
		dryRun:   opts.DryRun,
		locator:  NewLocator(opts.SourceRoot),
		logger:   opts.Logger,
		observer: opts.Observer,
	}
	if opts.RateLimit > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return r
}

// Sync fetches the playlist documents from src and reconciles them.
//
// A fetch failure is fatal and happens before any filesystem change; the returned report is then empty but finished.
func (r *Reconciler) Sync(ctx context.Context, src PlaylistSource) (*models.Report, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: playlist source not initialized", shared.ErrServiceUnavailable)
	}

	report := models.NewReport(shared.GenerateID(), r.dryRun)

	r.logger.Info("looking up playlists...")
	docs, err := src.SearchPlaylists(ctx)
	if err != nil {
		report.Finish()
		return report, fmt.Errorf("failed to fetch playlists: %w", err)
	}

	return report, r.reconcile(ctx, report, docs)
}

// Run reconciles an already fetched document collection.
//
// The only errors returned are directory creation failures and context cancellation;
// every entry-level problem is recorded in the report instead.
func (r *Reconciler) Run(ctx context.Context, docs []models.Document) (*models.Report, error) {
	report := models.NewReport(shared.GenerateID(), r.dryRun)
	return report, r.reconcile(ctx, report, docs)
}

func (r *Reconciler) reconcile(ctx context.Context, report *models.Report, docs []models.Document) error {
	defer report.Finish()

	if len(docs) == 0 {
		r.logger.Info("no playlists in response")
		return nil
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.reconcilePlaylist(ctx, report, doc); err != nil {
			return err
		}
	}

	r.logger.Info("reconciliation finished",
		"playlists", report.Playlists,
		"created", report.Count(models.OutcomeCreated),
		"already_exists", report.Count(models.OutcomeAlreadyExists),
		"not_found", report.Count(models.OutcomeNotFound),
		"failed", report.Count(models.OutcomeFailed),
	)
	return nil
}

func (r *Reconciler) reconcilePlaylist(ctx context.Context, report *models.Report, doc models.Document) error {
	playlist := models.ParsePlaylist(doc)
	report.Playlists++

	if playlist.Name == nil || playlist.ID == nil {
		reason := "missing name"
		if playlist.Name != nil {
			reason = "missing id"
		}
		r.logger.Warn("skipping playlist from search result", "reason", reason, "outcome", models.OutcomeSkippedPlaylist)
		r.record(report, models.ItemResult{
			Playlist:   models.Deref(playlist.Name),
			PlaylistID: models.Deref(playlist.ID),
			Outcome:    models.OutcomeSkippedPlaylist,
			Reason:     reason,
		})
		return nil
	}

	name, id := *playlist.Name, *playlist.ID
	logger := shared.WithLogger(r.logger, "playlist", id)
	dir := PlaylistDir(r.destRoot, name, id)

	if err := r.ensureDir(ctx, report, logger, name, id, dir); err != nil {
		return err
	}

	logger.Info("processing playlist", "name", name)
	if !playlist.HasEntries {
		logger.Info("no videos in playlist")
		return nil
	}

	for _, e := range playlist.Entries {
		base := models.ItemResult{Playlist: name, PlaylistID: id}
		if err := r.reconcileEntry(ctx, report, logger, base, dir, e); err != nil {
			return err
		}
	}
	return nil
}

// ensureDir creates the playlist directory and its ancestors unless it already exists.
func (r *Reconciler) ensureDir(ctx context.Context, report *models.Report, logger *log.Logger, name, id, dir string) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		logger.Debug("playlist directory exists", "path", dir)
		return nil
	}

	item := models.ItemResult{Playlist: name, PlaylistID: id, Path: dir, Outcome: models.OutcomeCreatedDirectory}
	if r.dryRun {
		item.Reason = "dry run"
		logger.Info("would create playlist directory", "path", dir, "outcome", item.Outcome)
		r.record(report, item)
		return nil
	}

	if err := r.wait(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		item.Outcome, item.Reason = models.OutcomeFailed, err.Error()
		r.record(report, item)
		return fmt.Errorf("%w: %s: %v", shared.ErrDirectoryCreate, dir, err)
	}

	logger.Info("created playlist directory", "path", dir, "outcome", item.Outcome)
	r.record(report, item)
	return nil
}

// reconcileEntry links one entry. It only returns an error when the context is done.
func (r *Reconciler) reconcileEntry(
	ctx context.Context,
	report *models.Report,
	logger *log.Logger,
	item models.ItemResult,
	dir string,
	e models.VideoEntryRecord,
) error {
	item.VideoID = models.Deref(e.VideoID)
	item.Title = models.Deref(e.Title)

	entry, warnUploader, skip := ValidateEntry(e)
	if warnUploader {
		logger.Warn("video has no uploader", "video", entry.VideoID)
	}
	if skip != nil {
		item.Outcome, item.Reason = skip.Outcome, skip.Reason
		if skip.Outcome == models.OutcomeSkippedNotDownloaded {
			logger.Info("skipping non-downloaded video", "video", entry.VideoID, "title", entry.Title, "outcome", item.Outcome)
		} else {
			logger.Warn("skipping video", "video", item.VideoID, "reason", skip.Reason, "outcome", item.Outcome)
		}
		r.record(report, item)
		return nil
	}

	media, err := r.locator.Locate(entry.Uploader, entry.VideoID)
	if err != nil {
		item.Outcome, item.Reason = models.OutcomeNotFound, err.Error()
		if errors.Is(err, shared.ErrNoExtension) {
			item.Outcome = models.OutcomeSkippedNoExtension
		}
		logger.Warn("failed to find source video", "video", entry.VideoID, "err", err, "outcome", item.Outcome)
		r.record(report, item)
		return nil
	}

	target := LinkTarget(dir, entry.Title, entry.VideoID, media.Extension)
	item.Path, item.Source = target, media.Path

	if _, err := os.Lstat(target); err == nil {
		item.Outcome = models.OutcomeAlreadyExists
		logger.Info("symlink already exists", "path", target, "outcome", item.Outcome)
		r.record(report, item)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		item.Outcome, item.Reason = models.OutcomeFailed, err.Error()
		logger.Error("failed to inspect link target", "path", target, "err", err, "outcome", item.Outcome)
		r.record(report, item)
		return nil
	}

	item.Outcome = models.OutcomeCreated
	if r.dryRun {
		item.Reason = "dry run"
		logger.Info("would create symlink", "source", media.Path, "path", target, "outcome", item.Outcome)
		r.record(report, item)
		return nil
	}

	if err := r.wait(ctx); err != nil {
		return err
	}

	if r.beforeLink != nil {
		r.beforeLink(target)
	}

	if err := os.Symlink(media.Path, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			item.Outcome = models.OutcomeAlreadyExists
			logger.Info("symlink already exists", "path", target, "outcome", item.Outcome)
		} else {
			item.Outcome, item.Reason = models.OutcomeFailed, err.Error()
			logger.Error("failed to create symlink", "path", target, "err", err, "outcome", item.Outcome)
		}
		r.record(report, item)
		return nil
	}

	logger.Info("created symlink", "source", media.Path, "path", target, "outcome", item.Outcome)
	r.record(report, item)
	return nil
}

// wait blocks until the limiter allows another filesystem mutation.
func (r *Reconciler) wait(ctx context.Context) error {
	if r.limiter == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}

func (r *Reconciler) record(report *models.Report, item models.ItemResult) {
	report.Add(item)
	if r.observer != nil {
		r.observer.ObserveItem(item.Outcome)
	}
}
