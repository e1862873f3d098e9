// Package services implements the [Index] interface for the media library's Elasticsearch index.
//
// # Index Query
//
// [IndexService] issues exactly one search request per run:
//
//	GET <url>/<index>/_search?size=<size>
//
// with HTTP basic auth when a username is configured. There is no pagination and no retry;
// libraries with more playlists than the configured size are truncated by the index.
//
// # Response Envelope
//
// Playlist documents are read from hits.hits[]._source. A hit whose _source is not an object is returned
// as an empty [models.Document] so the reconciler can report it as a playlist with missing fields.
// A response without hits.hits yields an empty collection.
//
// # Error Handling
//
// Transport failures, non-2xx statuses and undecodable bodies are wrapped with [shared.ErrIndexRequest]
// or [shared.ErrInvalidResponse]; the caller treats them as fatal before any filesystem change.
package services
