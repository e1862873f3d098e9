package models

// Document is the `_source` object of one playlist document from the search index.
//
// Values are whatever encoding/json produced for the raw object, so any field may be missing or hold an unexpected type.
type Document map[string]any

// PlaylistRecord represents one playlist parsed from a [Document].
type PlaylistRecord struct {
	Name       *string            // playlist_name, nil when absent or not a string
	ID         *string            // playlist_id, nil when absent or not a string
	Entries    []VideoEntryRecord // playlist_entries in index order
	HasEntries bool               // false when playlist_entries is absent or not a list
}

// VideoEntryRecord represents one video's membership in a playlist at index time.
type VideoEntryRecord struct {
	VideoID    *string // youtube_id
	Title      *string // title
	Uploader   *string // uploader
	Downloaded bool    // downloaded, false when absent or not a bool
}

// ValidatedEntry is a [VideoEntryRecord] that passed validation.
//
// Uploader may be empty: entries without one are allowed through and fail later at lookup.
type ValidatedEntry struct {
	VideoID  string
	Title    string
	Uploader string
}

// SourceMediaFile is a downloaded media file located on disk for a video.
type SourceMediaFile struct {
	Path      string // absolute path of the matched file
	Extension string // file extension without the leading dot
}

// ParsePlaylist builds a [PlaylistRecord] from a raw index document.
//
// Fields with the wrong type are treated exactly like missing fields.
// Entries that are not JSON objects are kept as records with every field absent so they are still reported.
func ParsePlaylist(doc Document) PlaylistRecord {
	record := PlaylistRecord{
		Name: stringField(doc, "playlist_name"),
		ID:   stringField(doc, "playlist_id"),
	}

	raw, ok := doc["playlist_entries"].([]any)
	if !ok {
		return record
	}

	record.HasEntries = true
	record.Entries = make([]VideoEntryRecord, 0, len(raw))
	for _, item := range raw {
		obj, _ := item.(map[string]any)
		record.Entries = append(record.Entries, parseEntry(obj))
	}

	return record
}

func parseEntry(obj map[string]any) VideoEntryRecord {
	downloaded, _ := obj["downloaded"].(bool)
	return VideoEntryRecord{
		VideoID:    stringField(obj, "youtube_id"),
		Title:      stringField(obj, "title"),
		Uploader:   stringField(obj, "uploader"),
		Downloaded: downloaded,
	}
}

func stringField(obj map[string]any, key string) *string {
	s, ok := obj[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// Deref returns the value of s or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
