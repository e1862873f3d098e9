package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/talink/internal/shared"
	tu "github.com/desertthunder/talink/internal/testing"
)

func TestIndexService(t *testing.T) {
	t.Run("NewIndexService", func(t *testing.T) {
		t.Run("applies defaults", func(t *testing.T) {
			svc := NewIndexService(shared.IndexConfig{URL: "http://es:9200/"}, nil)
			if svc.index != defaultIndexName {
				t.Errorf("expected index %s, got %s", defaultIndexName, svc.index)
			}
			if svc.size != defaultIndexSize {
				t.Errorf("expected size %d, got %d", defaultIndexSize, svc.size)
			}
			if svc.baseURL != "http://es:9200" {
				t.Errorf("expected trailing slash trimmed, got %s", svc.baseURL)
			}
			if svc.httpClient == nil {
				t.Error("expected http client to be set")
			}
		})

		t.Run("uses provided client", func(t *testing.T) {
			client := &http.Client{}
			if svc := NewIndexService(shared.IndexConfig{}, client); svc.httpClient != client {
				t.Error("expected provided client to be used")
			}
		})
	})

	t.Run("Name", func(t *testing.T) {
		if svc := NewIndexService(shared.IndexConfig{}, nil); svc.Name() != "Elasticsearch" {
			t.Errorf("expected name to be 'Elasticsearch', got %s", svc.Name())
		}
	})

	t.Run("SearchURL", func(t *testing.T) {
		svc := NewIndexService(shared.IndexConfig{URL: "http://es:9200", Name: "ta_playlist", Size: 25}, nil)
		if got := svc.SearchURL(); got != "http://es:9200/ta_playlist/_search?size=25" {
			t.Errorf("unexpected search URL %s", got)
		}
	})

	t.Run("SearchPlaylists", func(t *testing.T) {
		mockResponse := map[string]any{
			"took": 3,
			"hits": map[string]any{
				"total": map[string]any{"value": 3},
				"hits": []any{
					map[string]any{
						"_id": "PL1",
						"_source": map[string]any{
							"playlist_name": "Favorites",
							"playlist_id":   "PL1",
							"playlist_entries": []any{
								map[string]any{"youtube_id": "abc", "title": "My Video", "uploader": "chan1", "downloaded": true},
							},
						},
					},
					map[string]any{"_id": "broken", "_source": "not an object"},
					"not a hit",
				},
			},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/ta_playlist/_search" {
				t.Errorf("expected path /ta_playlist/_search, got %s", r.URL.Path)
			}
			if r.Method != http.MethodGet {
				t.Errorf("expected GET method, got %s", r.Method)
			}
			if r.URL.Query().Get("size") != "1000" {
				t.Errorf("expected size=1000, got %s", r.URL.Query().Get("size"))
			}
			user, pass, ok := r.BasicAuth()
			if !ok || user != "elastic" || pass != "secret" {
				t.Errorf("expected basic auth elastic/secret, got %s/%s (%v)", user, pass, ok)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(mockResponse)
		}))
		defer server.Close()

		svc := NewIndexService(shared.IndexConfig{
			URL:      server.URL,
			Username: "elastic",
			Password: "secret",
			Name:     "ta_playlist",
			Size:     1000,
		}, nil)

		docs, err := svc.SearchPlaylists(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(docs) != 3 {
			t.Fatalf("expected 3 documents, got %d", len(docs))
		}
		if docs[0]["playlist_name"] != "Favorites" {
			t.Errorf("expected first document to be Favorites, got %v", docs[0]["playlist_name"])
		}
		if len(docs[1]) != 0 || len(docs[2]) != 0 {
			t.Errorf("expected malformed hits to become empty documents, got %v and %v", docs[1], docs[2])
		}
	})

	t.Run("SearchPlaylists without credentials sends no auth", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, _, ok := r.BasicAuth(); ok {
				t.Error("expected no basic auth header")
			}
			w.Write([]byte(`{"hits":{"hits":[]}}`))
		}))
		defer server.Close()

		docs, err := NewIndexService(shared.IndexConfig{URL: server.URL}, nil).SearchPlaylists(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(docs) != 0 {
			t.Errorf("expected no documents, got %d", len(docs))
		}
	})

	t.Run("SearchPlaylists missing hits", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"took": 1, "hits": {"total": {"value": 0}}}`))
		}))
		defer server.Close()

		docs, err := NewIndexService(shared.IndexConfig{URL: server.URL}, nil).SearchPlaylists(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if docs == nil || len(docs) != 0 {
			t.Errorf("expected empty non-nil collection, got %v", docs)
		}
	})

	t.Run("SearchPlaylists error statuses", func(t *testing.T) {
		tc := []struct {
			name   string
			status int
			body   string
			want   string
		}{
			{
				name:   "structured error",
				status: http.StatusUnauthorized,
				body:   `{"error":{"type":"security_exception","reason":"unable to authenticate user [elastic]"},"status":401}`,
				want:   "security_exception: unable to authenticate user [elastic]",
			},
			{
				name:   "missing index",
				status: http.StatusNotFound,
				body:   `{"error":{"type":"index_not_found_exception","reason":"no such index [ta_playlist]"},"status":404}`,
				want:   "no such index [ta_playlist]",
			},
			{
				name:   "string error",
				status: http.StatusBadRequest,
				body:   `{"error":"bad request"}`,
				want:   "bad request",
			},
			{
				name:   "plain text",
				status: http.StatusBadGateway,
				body:   "upstream unavailable\n",
				want:   "upstream unavailable",
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					w.Write([]byte(tt.body))
				}))
				defer server.Close()

				_, err := NewIndexService(shared.IndexConfig{URL: server.URL}, nil).SearchPlaylists(context.Background())
				if !errors.Is(err, shared.ErrIndexRequest) {
					t.Fatalf("expected ErrIndexRequest, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.want) {
					t.Errorf("expected error to contain %q, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("SearchPlaylists invalid JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"hits":`))
		}))
		defer server.Close()

		_, err := NewIndexService(shared.IndexConfig{URL: server.URL}, nil).SearchPlaylists(context.Background())
		if !errors.Is(err, shared.ErrInvalidResponse) {
			t.Errorf("expected ErrInvalidResponse, got %v", err)
		}
	})

	t.Run("SearchPlaylists transport failure", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		_, err := NewIndexService(shared.IndexConfig{URL: "http://es:9200"}, client).SearchPlaylists(context.Background())
		if !errors.Is(err, shared.ErrIndexRequest) {
			t.Errorf("expected ErrIndexRequest, got %v", err)
		}
	})

	t.Run("SearchPlaylists body read failure", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(&tu.FCloser{}), Header: http.Header{}}
		client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}
		_, err := NewIndexService(shared.IndexConfig{URL: "http://es:9200"}, client).SearchPlaylists(context.Background())
		if !errors.Is(err, shared.ErrIndexRequest) {
			t.Errorf("expected ErrIndexRequest, got %v", err)
		}
	})

	t.Run("SearchPlaylists cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		_, err := NewIndexService(shared.IndexConfig{URL: server.URL}, nil).SearchPlaylists(ctx)
		if !errors.Is(err, shared.ErrIndexRequest) {
			t.Errorf("expected ErrIndexRequest, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled to be preserved, got %v", err)
		}
	})
}
