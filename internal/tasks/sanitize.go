package tasks

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Sanitize removes every path separator from s so it can be used as a single path segment.
//
// No other character is touched.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == filepath.Separator {
			return -1
		}
		return r
	}, s)
}

// PlaylistDir returns the destination directory for a playlist: "<dest>/<name> [<id>]".
func PlaylistDir(destRoot, name, id string) string {
	return filepath.Join(destRoot, fmt.Sprintf("%s [%s]", Sanitize(name), Sanitize(id)))
}

// LinkTarget returns the symlink path for a video inside a playlist directory: "<dir>/<title> [<id>].<ext>".
func LinkTarget(playlistDir, title, videoID, ext string) string {
	return filepath.Join(playlistDir, fmt.Sprintf("%s [%s].%s", Sanitize(title), Sanitize(videoID), Sanitize(ext)))
}
