package tasks

import "github.com/desertthunder/talink/internal/models"

// Skip explains why an entry was not linked.
type Skip struct {
	Outcome models.Outcome
	Reason  string
}

// ValidateEntry checks an entry in order: video id, title, uploader, downloaded.
//
// A missing uploader does not skip the entry; warnUploader is true so the caller can log it.
// The returned Skip is nil when the entry is eligible for linking.
func ValidateEntry(e models.VideoEntryRecord) (entry models.ValidatedEntry, warnUploader bool, skip *Skip) {
	if e.VideoID == nil {
		return entry, false, &Skip{Outcome: models.OutcomeSkippedMissingField, Reason: "missing id"}
	}
	entry.VideoID = *e.VideoID

	if e.Title == nil {
		return entry, false, &Skip{Outcome: models.OutcomeSkippedMissingField, Reason: "missing title"}
	}
	entry.Title = *e.Title

	if e.Uploader == nil {
		warnUploader = true
	} else {
		entry.Uploader = *e.Uploader
	}

	if !e.Downloaded {
		return entry, warnUploader, &Skip{Outcome: models.OutcomeSkippedNotDownloaded, Reason: "not downloaded"}
	}

	return entry, warnUploader, nil
}
