// package services defines clients for the external systems talink reads from
//
// Elasticsearch (the media library's search index)
package services

import (
	"context"

	"github.com/desertthunder/talink/internal/models"
)

// Index defines the interface for search index clients that return playlist documents.
type Index interface {
	// SearchPlaylists issues the single playlist query and returns the raw `_source` documents in index order.
	SearchPlaylists(ctx context.Context) ([]models.Document, error)

	// Name returns the name of the service (e.g., "Elasticsearch")
	Name() string
}
