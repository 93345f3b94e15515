package discogs_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diggerweb/backend/internal/discogs"
)

func TestAPIClient_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		req         discogs.SearchRequest
		handler     http.HandlerFunc
		wantErr     bool
		errContain  string
		wantStatus  int
		wantResults int
		wantPages   int
	}{
		{
			name: "successful search with results",
			req:  discogs.SearchRequest{Query: "Aphex Twin", Type: "release", Page: 1, PerPage: 20},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/database/search", r.URL.Path)
				assert.Equal(t, "Aphex Twin", r.URL.Query().Get("q"))
				assert.Equal(t, "release", r.URL.Query().Get("type"))
				assert.Equal(t, "1", r.URL.Query().Get("page"))
				assert.Equal(t, "20", r.URL.Query().Get("per_page"))
				assert.Equal(t, "diggerweb-test/1.0", r.Header.Get("User-Agent"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"pagination": {"page": 1, "pages": 12, "per_page": 20, "items": 240,
						"urls": {"next": "https://api.discogs.com/database/search?page=2"}},
					"results": [
						{"id": 5139, "type": "release", "title": "Aphex Twin - Selected Ambient Works 85-92",
							"thumb": "https://img.discogs.com/t.jpg", "cover_image": "https://img.discogs.com/c.jpg",
							"year": "1992", "country": "UK", "format": ["Vinyl", "LP"], "uri": "/release/5139"},
						{"id": 5140, "type": "release", "title": "Aphex Twin - Xtal", "format": []}
					]
				}`))
			},
			wantResults: 2,
			wantPages:   12,
		},
		{
			name: "empty results",
			req:  discogs.SearchRequest{Query: "zzzz no such record"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"pagination": {"page": 1, "pages": 0, "per_page": 50, "items": 0}, "results": []}`))
			},
			wantResults: 0,
		},
		{
			name: "401 unauthorized response",
			req:  discogs.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message": "You must authenticate to access this resource."}`))
			},
			wantErr:    true,
			errContain: "You must authenticate",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "500 server error response",
			req:  discogs.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			errContain: "status 500",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "invalid JSON response",
			req:  discogs.SearchRequest{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("not valid json"))
			},
			wantErr:    true,
			errContain: "parsing search response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := discogs.NewAPIClient(
				"diggerweb-test/1.0",
				discogs.WithBaseURL(srv.URL),
			)

			resp, err := client.Search(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				if tt.wantStatus != 0 {
					var apiErr *discogs.APIError
					require.ErrorAs(t, err, &apiErr)
					assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Len(t, resp.Results, tt.wantResults)
			assert.Equal(t, tt.wantPages, resp.Pagination.Pages)
		})
	}
}

func TestAPIClient_Inventory(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/crate_digger/inventory", r.URL.Path)
		assert.Equal(t, "For Sale", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"pagination": {"page": 2, "pages": 4, "per_page": 25, "items": 100},
			"listings": [
				{"id": 901, "status": "For Sale", "condition": "Very Good Plus (VG+)",
					"sleeve_condition": "Very Good (VG)",
					"price": {"value": 24.99, "currency": "EUR"},
					"uri": "https://www.discogs.com/sell/item/901",
					"release": {"id": 5139, "artist": "Aphex Twin", "title": "Selected Ambient Works 85-92",
						"description": "Aphex Twin - Selected Ambient Works 85-92 (LP)"}}
			]
		}`))
	}))
	defer srv.Close()

	client := discogs.NewAPIClient("diggerweb-test/1.0", discogs.WithBaseURL(srv.URL))

	resp, err := client.Inventory(context.Background(), discogs.InventoryRequest{
		Username: "crate_digger",
		Status:   "For Sale",
		Page:     2,
		PerPage:  25,
	})
	require.NoError(t, err)
	require.Len(t, resp.Listings, 1)
	assert.Equal(t, int64(901), resp.Listings[0].ID)
	assert.Equal(t, int64(5139), resp.Listings[0].Release.ID)
	assert.Equal(t, 24.99, resp.Listings[0].Price.Value)
	assert.Equal(t, 4, resp.Pagination.Pages)
}

func TestAPIClient_Inventory_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "User does not exist or may have been deleted."}`))
	}))
	defer srv.Close()

	client := discogs.NewAPIClient("diggerweb-test/1.0", discogs.WithBaseURL(srv.URL))

	_, err := client.Inventory(context.Background(), discogs.InventoryRequest{Username: "ghost"})
	require.Error(t, err)

	var apiErr *discogs.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.ErrorIs(t, err, discogs.ErrNotFound)
	assert.NotErrorIs(t, err, discogs.ErrUnauthorized)
}

func TestAPIClient_ReleaseStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantNum  *int
		wantNull bool
	}{
		{
			name:    "stats with count",
			body:    `{"num_for_sale": 7, "lowest_price": {"value": 9.5, "currency": "USD"}, "blocked_from_sale": false}`,
			wantNum: intPtr(7),
		},
		{
			name:     "blocked release has null count",
			body:     `{"num_for_sale": null, "lowest_price": null, "blocked_from_sale": true}`,
			wantNull: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/marketplace/stats/5139", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := discogs.NewAPIClient("diggerweb-test/1.0", discogs.WithBaseURL(srv.URL))

			stats, err := client.ReleaseStats(context.Background(), 5139)
			require.NoError(t, err)

			if tt.wantNull {
				assert.Nil(t, stats.NumForSale)
				assert.True(t, stats.BlockedFromSale)
				return
			}
			require.NotNil(t, stats.NumForSale)
			assert.Equal(t, *tt.wantNum, *stats.NumForSale)
		})
	}
}

func TestAPIClient_PacerCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := discogs.NewAPIClient(
		"diggerweb-test/1.0",
		discogs.WithBaseURL(srv.URL),
		discogs.WithPacer(blockedPacer{}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ReleaseStats(ctx, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

// blockedPacer refuses when the context is already done, like a saturated
// token bucket would.
type blockedPacer struct{}

func (blockedPacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.New("bucket empty")
}

func intPtr(v int) *int { return &v }
