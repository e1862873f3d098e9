package main

import (
	"context"

	"github.com/desertthunder/talink/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Locate resolves the media file for one video without touching the destination tree.
func (r *Runner) Locate(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("source") {
		config.Paths.Source = cmd.String("source")
	}

	locator := tasks.NewLocator(config.Paths.Source)
	uploader, videoID := cmd.String("uploader"), cmd.String("id")

	r.logger.Debug("searching for media", "pattern", locator.Pattern(uploader, videoID))
	media, err := locator.Locate(uploader, videoID)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", media.Path)
}
