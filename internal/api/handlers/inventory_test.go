package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diggerweb/backend/internal/api/handlers"
	"github.com/diggerweb/backend/internal/discogs"
	"github.com/diggerweb/backend/internal/store"
	domain "github.com/diggerweb/backend/pkg/types"
)

// fakeFetcher is a hand-rolled handlers.Fetcher.
type fakeFetcher struct {
	items      []domain.InventoryItem
	pagination domain.Pagination
	err        error

	gotUsername string
	gotPage     int
	gotPerPage  int
}

func (f *fakeFetcher) Fetch(_ context.Context, username string, page, perPage int) ([]domain.InventoryItem, domain.Pagination, error) {
	f.gotUsername = username
	f.gotPage = page
	f.gotPerPage = perPage
	if f.err != nil {
		return nil, domain.Pagination{}, f.err
	}
	return f.items, f.pagination, nil
}

func inventoryContext(t *testing.T, rawQuery string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search-inventory?"+rawQuery, http.NoBody)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func staticFactory(f handlers.Fetcher) handlers.FetcherFactory {
	return func(*domain.Credentials) handlers.Fetcher { return f }
}

func TestSearchInventory(t *testing.T) {
	t.Parallel()

	n := 3
	fetcher := &fakeFetcher{
		items: []domain.InventoryItem{
			{
				Status: domain.EnrichmentEnriched,
				Listing: &domain.Listing{
					ListingID:  1001,
					ReleaseID:  55,
					Title:      "Selected Ambient Works 85-92",
					NumForSale: &n,
				},
			},
			{
				Status: domain.EnrichmentDegraded,
				ID:     1002,
				Error:  "listing has no id",
			},
		},
		pagination: domain.Pagination{Page: 1, Pages: 1, PerPage: 50, Items: 2},
	}
	st := &fakeStore{creds: &domain.Credentials{Token: "tok", Secret: "sec"}}
	h := handlers.NewInventoryHandler(st, staticFactory(fetcher))

	c, rec := inventoryContext(t, "q=recordshop&page=1&per_page=50")
	require.NoError(t, h.SearchInventory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "recordshop", fetcher.gotUsername)
	assert.Equal(t, 1, fetcher.gotPage)
	assert.Equal(t, 50, fetcher.gotPerPage)

	var resp handlers.InventoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, domain.EnrichmentEnriched, resp.Results[0].Status)
	assert.Equal(t, domain.EnrichmentDegraded, resp.Results[1].Status)
	assert.Equal(t, 2, resp.Pagination.Items)
}

func TestSearchInventory_MissingQuery(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	h := handlers.NewInventoryHandler(&fakeStore{}, staticFactory(fetcher))

	c, rec := inventoryContext(t, "")
	require.NoError(t, h.SearchInventory(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fetcher.gotUsername)
}

func TestSearchInventory_BadPerPageParam(t *testing.T) {
	t.Parallel()

	h := handlers.NewInventoryHandler(&fakeStore{}, staticFactory(&fakeFetcher{}))

	c, rec := inventoryContext(t, "q=recordshop&per_page=lots")
	require.NoError(t, h.SearchInventory(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "per_page must be an integer")
}

func TestSearchInventory_NotAuthorized(t *testing.T) {
	t.Parallel()

	st := &fakeStore{loadErr: store.ErrNotFound}
	h := handlers.NewInventoryHandler(st, staticFactory(&fakeFetcher{}))

	c, rec := inventoryContext(t, "q=recordshop")
	require.NoError(t, h.SearchInventory(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.AuthorizePath, resp.AuthorizeURL)
}

func TestSearchInventory_StorageFailure(t *testing.T) {
	t.Parallel()

	st := &fakeStore{loadErr: errors.New("connection reset")}
	h := handlers.NewInventoryHandler(st, staticFactory(&fakeFetcher{}))

	c, rec := inventoryContext(t, "q=recordshop")
	require.NoError(t, h.SearchInventory(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code,
		"storage failure is not an authorization problem")
	assert.NotContains(t, rec.Body.String(), "authorize_url")
}

func TestSearchInventory_UpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantHint   bool
	}{
		{
			name:       "revoked credentials map to 401 with hint",
			err:        &discogs.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid token"},
			wantStatus: http.StatusUnauthorized,
			wantHint:   true,
		},
		{
			name:       "private inventory maps to 404",
			err:        &discogs.APIError{StatusCode: http.StatusNotFound, Message: "not found"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "other upstream failure maps to bad gateway",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := &fakeStore{creds: &domain.Credentials{Token: "tok", Secret: "sec"}}
			h := handlers.NewInventoryHandler(st, staticFactory(&fakeFetcher{err: tt.err}))

			c, rec := inventoryContext(t, "q=recordshop")
			require.NoError(t, h.SearchInventory(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantHint {
				assert.Equal(t, handlers.AuthorizePath, resp.AuthorizeURL)
			} else {
				assert.Empty(t, resp.AuthorizeURL)
			}
		})
	}
}
