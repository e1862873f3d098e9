package tasks

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/desertthunder/talink/internal/models"
	"github.com/desertthunder/talink/internal/shared"
)

// Locator finds downloaded media files below a source root laid out as "<root>/<uploader>/<...>_<videoID>_<...>.<ext>".
type Locator struct {
	root string
}

// NewLocator creates a Locator rooted at sourceRoot.
func NewLocator(sourceRoot string) *Locator {
	return &Locator{root: sourceRoot}
}

// Pattern returns the glob used to find the media file for a video.
//
// uploader and videoID are inserted verbatim.
func (l *Locator) Pattern(uploader, videoID string) string {
	return filepath.Join(l.root, uploader) + string(filepath.Separator) + "*_" + videoID + "_*"
}

// Locate resolves the media file downloaded for videoID.
//
// Matches are sorted and the first one wins.
// Returns [shared.ErrMediaNotFound] when the uploader is empty, the pattern is malformed or nothing matches,
// and [shared.ErrNoExtension] when the winning match has no file extension.
func (l *Locator) Locate(uploader, videoID string) (*models.SourceMediaFile, error) {
	if uploader == "" {
		return nil, fmt.Errorf("%w: no uploader for video %s", shared.ErrMediaNotFound, videoID)
	}

	pattern := l.Pattern(uploader, videoID)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrMediaNotFound, pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no match for %s", shared.ErrMediaNotFound, pattern)
	}

	sort.Strings(matches)
	match := matches[0]

	ext := strings.TrimPrefix(filepath.Ext(match), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoExtension, match)
	}

	abs, err := filepath.Abs(match)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrMediaNotFound, match, err)
	}

	return &models.SourceMediaFile{Path: abs, Extension: ext}, nil
}
