// package formatter renders reconciliation reports and run history (plain text, Markdown, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/desertthunder/talink/internal/models"
)

// ReportToText renders the outcome counts of a report followed by every item that needs attention.
func ReportToText(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer

	mode := ""
	if report.DryRun {
		mode = " (dry run)"
	}
	buf.WriteString(fmt.Sprintf("Run: %s%s\n", report.RunID, mode))
	buf.WriteString(fmt.Sprintf("Duration: %s\n", FormatDuration(report.Duration())))
	buf.WriteString(fmt.Sprintf("Playlists: %d\n\n", report.Playlists))

	for _, o := range models.Outcomes {
		if n := report.Count(o); n > 0 {
			buf.WriteString(fmt.Sprintf("  %-26s %d\n", o.Label()+":", n))
		}
	}

	problems := Problems(report)
	if len(problems) > 0 {
		buf.WriteString("\nNeeds attention:\n")
		for _, item := range problems {
			buf.WriteString(fmt.Sprintf("  [%s] %s\n", item.Outcome, describe(item)))
		}
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown renders a report as a Markdown document with a summary table and a list of created links.
func ReportToMarkdown(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Run %s\n\n", report.RunID))
	if report.DryRun {
		buf.WriteString("**Mode**: dry run\n\n")
	}
	buf.WriteString(fmt.Sprintf("**Playlists**: %d\n", report.Playlists))
	buf.WriteString(fmt.Sprintf("**Duration**: %s\n\n", FormatDuration(report.Duration())))

	buf.WriteString("| Outcome | Count |\n")
	buf.WriteString("|---|---|\n")
	for _, o := range models.Outcomes {
		buf.WriteString(fmt.Sprintf("| %s | %d |\n", o.Label(), report.Count(o)))
	}

	var created []models.ItemResult
	for _, item := range report.Items {
		if item.Outcome == models.OutcomeCreated {
			created = append(created, item)
		}
	}
	if len(created) > 0 {
		buf.WriteString("\n## Created\n\n")
		for _, item := range created {
			buf.WriteString(fmt.Sprintf("- `%s` → `%s`\n", item.Path, item.Source))
		}
	}

	if problems := Problems(report); len(problems) > 0 {
		buf.WriteString("\n## Needs attention\n\n")
		for _, item := range problems {
			buf.WriteString(fmt.Sprintf("- **%s**: %s\n", item.Outcome.Label(), describe(item)))
		}
	}

	return buf.Bytes(), nil
}

// ReportToCSV converts every item of a report to CSV with columns: Playlist, PlaylistID, VideoID, Title, Outcome, Path, Source, Reason
func ReportToCSV(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Playlist", "PlaylistID", "VideoID", "Title", "Outcome", "Path", "Source", "Reason"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range report.Items {
		record := []string{
			item.Playlist,
			item.PlaylistID,
			item.VideoID,
			item.Title,
			string(item.Outcome),
			item.Path,
			item.Source,
			item.Reason,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RunsToText renders run history as one line per run.
func RunsToText(runs []*models.Run) ([]byte, error) {
	var buf bytes.Buffer

	if len(runs) == 0 {
		buf.WriteString("No runs recorded.\n")
		return buf.Bytes(), nil
	}

	for _, run := range runs {
		mode := ""
		if run.DryRun() {
			mode = " dry-run"
		}
		buf.WriteString(fmt.Sprintf("#%d %s %s%s  playlists=%d created=%d existing=%d not_found=%d failed=%d  (%s)\n",
			run.Sequence(),
			run.StartedAt().Local().Format(time.DateTime),
			run.Status(),
			mode,
			run.Playlists(),
			run.Count(models.OutcomeCreated),
			run.Count(models.OutcomeAlreadyExists),
			run.Count(models.OutcomeNotFound),
			run.Count(models.OutcomeFailed),
			FormatDuration(run.Duration()),
		))
		if msg := run.ErrorMessage(); msg != "" {
			buf.WriteString(fmt.Sprintf("    error: %s\n", msg))
		}
	}

	return buf.Bytes(), nil
}

// Problems returns the items that did not end in a link or directory: skips, misses and failures.
//
// Items skipped only because the video is not downloaded are steady-state and left out.
func Problems(report *models.Report) []models.ItemResult {
	var items []models.ItemResult
	for _, item := range report.Items {
		switch item.Outcome {
		case models.OutcomeCreated, models.OutcomeCreatedDirectory, models.OutcomeAlreadyExists, models.OutcomeSkippedNotDownloaded:
			continue
		}
		items = append(items, item)
	}
	return items
}

// FormatDuration converts a duration to a short string rounded to milliseconds
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "0s"
	}
	return d.Round(time.Millisecond).String()
}

func describe(item models.ItemResult) string {
	subject := item.PlaylistID
	if subject == "" {
		subject = item.Playlist
	}
	if subject == "" {
		subject = "(unnamed playlist)"
	}
	if item.VideoID != "" || item.Title != "" {
		subject = fmt.Sprintf("%s [%s] in %s", item.Title, item.VideoID, subject)
	}
	if item.Reason == "" {
		return subject
	}
	return fmt.Sprintf("%s: %s", subject, item.Reason)
}
