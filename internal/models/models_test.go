package models

import (
	"errors"
	"testing"
	"time"
)

func TestParsePlaylist(t *testing.T) {
	t.Run("complete document", func(t *testing.T) {
		doc := Document{
			"playlist_name": "Favorites",
			"playlist_id":   "PL1",
			"playlist_entries": []any{
				map[string]any{"youtube_id": "abc", "title": "My Video", "uploader": "chan1", "downloaded": true},
				map[string]any{"youtube_id": "def", "title": "Other", "uploader": "chan2", "downloaded": false},
			},
		}

		record := ParsePlaylist(doc)
		if Deref(record.Name) != "Favorites" || Deref(record.ID) != "PL1" {
			t.Errorf("unexpected name/id: %q/%q", Deref(record.Name), Deref(record.ID))
		}
		if !record.HasEntries {
			t.Fatal("expected entries to be present")
		}
		if len(record.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(record.Entries))
		}

		first := record.Entries[0]
		if Deref(first.VideoID) != "abc" || Deref(first.Title) != "My Video" || Deref(first.Uploader) != "chan1" || !first.Downloaded {
			t.Errorf("unexpected first entry: %+v", first)
		}
		if record.Entries[1].Downloaded {
			t.Error("expected second entry not to be downloaded")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		record := ParsePlaylist(Document{})
		if record.Name != nil || record.ID != nil {
			t.Error("expected name and id to be absent")
		}
		if record.HasEntries || record.Entries != nil {
			t.Error("expected no entries")
		}
	})

	t.Run("wrong types are treated as absent", func(t *testing.T) {
		record := ParsePlaylist(Document{
			"playlist_name":    42,
			"playlist_id":      "PL1",
			"playlist_entries": "not a list",
		})
		if record.Name != nil {
			t.Error("expected numeric name to be absent")
		}
		if record.HasEntries {
			t.Error("expected non-list entries to be absent")
		}
	})

	t.Run("empty entries list", func(t *testing.T) {
		record := ParsePlaylist(Document{"playlist_name": "Empty", "playlist_id": "PL0", "playlist_entries": []any{}})
		if !record.HasEntries {
			t.Error("expected an empty list to count as present")
		}
		if len(record.Entries) != 0 {
			t.Errorf("expected 0 entries, got %d", len(record.Entries))
		}
	})

	t.Run("malformed entries", func(t *testing.T) {
		record := ParsePlaylist(Document{
			"playlist_name": "Mixed",
			"playlist_id":   "PL2",
			"playlist_entries": []any{
				"not an object",
				map[string]any{"youtube_id": 7, "title": "T", "downloaded": "yes"},
			},
		})
		if len(record.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(record.Entries))
		}

		empty := record.Entries[0]
		if empty.VideoID != nil || empty.Title != nil || empty.Uploader != nil || empty.Downloaded {
			t.Errorf("expected all fields absent, got %+v", empty)
		}

		typed := record.Entries[1]
		if typed.VideoID != nil {
			t.Error("expected numeric youtube_id to be absent")
		}
		if typed.Downloaded {
			t.Error("expected non-bool downloaded to be false")
		}
		if typed.Uploader != nil {
			t.Error("expected missing uploader to be absent")
		}
	})

	t.Run("empty strings are present", func(t *testing.T) {
		record := ParsePlaylist(Document{"playlist_name": "", "playlist_id": ""})
		if record.Name == nil || record.ID == nil {
			t.Error("expected empty strings to be kept as present values")
		}
	})
}

func TestDeref(t *testing.T) {
	s := "value"
	if Deref(&s) != "value" {
		t.Errorf("expected value, got %s", Deref(&s))
	}
	if Deref(nil) != "" {
		t.Errorf("expected empty string, got %s", Deref(nil))
	}
}

func TestReport(t *testing.T) {
	report := NewReport("run-1", true)
	if report.RunID != "run-1" || !report.DryRun {
		t.Errorf("unexpected report header: %+v", report)
	}
	if report.Duration() != 0 {
		t.Error("expected zero duration before Finish")
	}

	report.Add(ItemResult{Outcome: OutcomeCreated})
	report.Add(ItemResult{Outcome: OutcomeCreated})
	report.Add(ItemResult{Outcome: OutcomeNotFound})

	if report.Count(OutcomeCreated) != 2 {
		t.Errorf("expected 2 created, got %d", report.Count(OutcomeCreated))
	}
	if report.Count(OutcomeFailed) != 0 {
		t.Errorf("expected 0 failed, got %d", report.Count(OutcomeFailed))
	}
	if len(report.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(report.Items))
	}

	report.Finish()
	if report.FinishedAt.Before(report.StartedAt) {
		t.Error("expected finish time after start time")
	}
	if report.Duration() < 0 {
		t.Error("expected non-negative duration")
	}
}

func TestOutcomeLabel(t *testing.T) {
	seen := make(map[string]bool)
	for _, o := range Outcomes {
		label := o.Label()
		if label == string(o) {
			t.Errorf("expected a display label for %s", o)
		}
		if seen[label] {
			t.Errorf("duplicate label %q", label)
		}
		seen[label] = true
	}

	if Outcome("other").Label() != "other" {
		t.Error("expected unknown outcome to fall back to its value")
	}
}

func TestRun(t *testing.T) {
	t.Run("NewRun copies the report", func(t *testing.T) {
		report := NewReport("run-1", false)
		report.Playlists = 3
		report.Add(ItemResult{Outcome: OutcomeCreated})
		report.Finish()

		run := NewRun(report, nil)
		report.Add(ItemResult{Outcome: OutcomeCreated})

		if run.ID() != "run-1" || run.Playlists() != 3 {
			t.Errorf("unexpected run: id=%s playlists=%d", run.ID(), run.Playlists())
		}
		if run.Count(OutcomeCreated) != 1 {
			t.Errorf("expected counts to be copied, got %d", run.Count(OutcomeCreated))
		}
		if run.Status() != RunStatusSuccess || run.ErrorMessage() != "" {
			t.Errorf("expected success without error, got %s %q", run.Status(), run.ErrorMessage())
		}
		if err := run.Validate(); err != nil {
			t.Errorf("expected valid run, got %v", err)
		}
	})

	t.Run("NewRun with fatal error", func(t *testing.T) {
		run := NewRun(NewReport("run-2", false), errors.New("boom"))
		if run.Status() != RunStatusFailed {
			t.Errorf("expected failed status, got %s", run.Status())
		}
		if run.ErrorMessage() != "boom" {
			t.Errorf("expected error message boom, got %q", run.ErrorMessage())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		now := time.Now()
		tc := []struct {
			name    string
			run     *Run
			wantErr bool
		}{
			{name: "valid", run: RestoreRun("a", 1, now, now, false, 0, nil, RunStatusSuccess, "")},
			{name: "missing id", run: RestoreRun("", 1, now, now, false, 0, nil, RunStatusSuccess, ""), wantErr: true},
			{name: "missing start", run: RestoreRun("a", 1, time.Time{}, now, false, 0, nil, RunStatusSuccess, ""), wantErr: true},
			{name: "unknown status", run: RestoreRun("a", 1, now, now, false, 0, nil, RunStatus("odd"), ""), wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.run.Validate()
				if (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("RestoreRun defaults counts", func(t *testing.T) {
		run := RestoreRun("a", 1, time.Now(), time.Now(), false, 0, nil, RunStatusSuccess, "")
		if run.Counts() == nil {
			t.Error("expected non-nil counts")
		}
		if run.Count(OutcomeCreated) != 0 {
			t.Error("expected zero count")
		}
	})

	t.Run("setters", func(t *testing.T) {
		run := RestoreRun("", 0, time.Now(), time.Now(), false, 0, nil, RunStatusSuccess, "")
		run.SetID("new")
		run.SetSequence(9)
		if run.ID() != "new" || run.Sequence() != 9 {
			t.Errorf("unexpected id/sequence %s/%d", run.ID(), run.Sequence())
		}
	})
}
