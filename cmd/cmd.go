// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// syncCommand runs one reconciliation pass
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Create playlist directories and symlinks from the search index",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "source",
				Usage: "Download tree (overrides paths.source)",
			},
			&cli.StringFlag{
				Name:  "dest",
				Usage: "Playlist tree (overrides paths.dest)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report what would be created without touching the filesystem",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (text, markdown, json, csv)",
				Value:   "text",
			},
		},
		Action: r.Sync,
	}
}

// locateCommand resolves a single video to its media file
func locateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "locate",
		Usage: "Find the downloaded media file for a video",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "uploader",
				Usage:    "Uploader directory name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Video ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Download tree (overrides paths.source)",
			},
		},
		Action: r.Locate,
	}
}

// historyCommand lists recorded runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent sync runs",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to show",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "latest",
				Usage: "Show only the most recent run",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// setupCommand writes the config file and prepares the history database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination of the configuration file",
						Value: "config.toml",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
