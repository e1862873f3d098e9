// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/talink/internal/models"
)

// MockIndex is a test double for tasks.PlaylistSource
type MockIndex struct {
	Docs  []models.Document
	Err   error
	Calls int
}

func (m *MockIndex) SearchPlaylists(ctx context.Context) ([]models.Document, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Docs, nil
}

// OutcomeRecorder is a test double for tasks.ItemObserver
type OutcomeRecorder struct {
	Outcomes []models.Outcome
}

func (o *OutcomeRecorder) ObserveItem(outcome models.Outcome) {
	o.Outcomes = append(o.Outcomes, outcome)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

// Playlist builds a raw index document the way the search index returns one.
func Playlist(name, id string, entries ...map[string]any) models.Document {
	raw := make([]any, 0, len(entries))
	for _, e := range entries {
		raw = append(raw, e)
	}
	return models.Document{
		"playlist_name":    name,
		"playlist_id":      id,
		"playlist_entries": raw,
	}
}

// Entry builds a raw playlist entry with every field present.
func Entry(videoID, title, uploader string, downloaded bool) map[string]any {
	return map[string]any{
		"youtube_id": videoID,
		"title":      title,
		"uploader":   uploader,
		"downloaded": downloaded,
	}
}

// MustWriteFile creates path and its parent directories with the given content.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Path should not exist: %s", path)
	}
}

// AssertSymlink checks that path is a symlink pointing at target.
func AssertSymlink(t *testing.T, path, target string) {
	t.Helper()
	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("Not a symlink: %s: %v", path, err)
		return
	}
	if got != target {
		t.Errorf("Symlink %s points to %s, want %s", path, got, target)
	}
}

// Tree lists every path below root, relative to it, with symlink targets appended.
func Tree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.Type()&os.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			rel += " -> " + target
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk %s: %v", root, err)
	}
	return paths
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
