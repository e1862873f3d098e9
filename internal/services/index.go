// Elasticsearch [Index] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/talink/internal/models"
	"github.com/desertthunder/talink/internal/shared"
)

const (
	defaultIndexName string = "ta_playlist"
	defaultIndexSize int    = 1000
)

// IndexService implements the [Index] interface for Elasticsearch.
type IndexService struct {
	baseURL    string
	index      string
	size       int
	username   string
	password   string
	httpClient *http.Client
}

var _ Index = (*IndexService)(nil)

// NewIndexService creates a new Elasticsearch client from the index configuration.
//
// A nil client gets a new [http.Client] using the configured timeout.
func NewIndexService(cfg shared.IndexConfig, client *http.Client) *IndexService {
	if cfg.Name == "" {
		cfg.Name = defaultIndexName
	}
	if cfg.Size <= 0 {
		cfg.Size = defaultIndexSize
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.RequestTimeout()}
	}

	return &IndexService{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		index:      cfg.Name,
		size:       cfg.Size,
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: client,
	}
}

// Name returns the service name.
func (s *IndexService) Name() string {
	return "Elasticsearch"
}

// SearchURL returns the URL of the playlist query.
func (s *IndexService) SearchURL() string {
	query := url.Values{}
	query.Set("size", strconv.Itoa(s.size))
	return fmt.Sprintf("%s/%s/_search?%s", s.baseURL, url.PathEscape(s.index), query.Encode())
}

// SearchPlaylists fetches up to the configured number of playlist documents.
func (s *IndexService) SearchPlaylists(ctx context.Context) ([]models.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.SearchURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if s.username != "" {
		req.SetBasicAuth(s.username, s.password)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrIndexRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrIndexRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", shared.ErrIndexRequest, resp.StatusCode, errorReason(body))
	}

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
	}

	return documents(envelope), nil
}

// documents extracts hits.hits[]._source from a search response.
func documents(envelope map[string]any) []models.Document {
	outer, _ := envelope["hits"].(map[string]any)
	hits, ok := outer["hits"].([]any)
	if !ok {
		return []models.Document{}
	}

	docs := make([]models.Document, 0, len(hits))
	for _, hit := range hits {
		h, _ := hit.(map[string]any)
		source, _ := h["_source"].(map[string]any)
		if source == nil {
			source = map[string]any{}
		}
		docs = append(docs, models.Document(source))
	}
	return docs
}

// errorReason pulls a readable message out of an Elasticsearch error body.
func errorReason(body []byte) string {
	var errResp struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Error) == 0 {
		return strings.TrimSpace(string(body))
	}

	var detail struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(errResp.Error, &detail); err == nil && detail.Reason != "" {
		if detail.Type != "" {
			return detail.Type + ": " + detail.Reason
		}
		return detail.Reason
	}

	var msg string
	if err := json.Unmarshal(errResp.Error, &msg); err == nil {
		return msg
	}
	return string(errResp.Error)
}
