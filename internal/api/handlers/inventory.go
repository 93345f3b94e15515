package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diggerweb/backend/internal/discogs"
	"github.com/diggerweb/backend/internal/store"
	domain "github.com/diggerweb/backend/pkg/types"
)

// AuthorizePath is the relative URL a 401 response points the frontend at
// to start the OAuth flow.
const AuthorizePath = "/api/v1/authorize"

// Fetcher is the enrichment entry point the handler calls.
type Fetcher interface {
	Fetch(ctx context.Context, username string, page, perPage int) ([]domain.InventoryItem, domain.Pagination, error)
}

// FetcherFactory builds an enrichment pipeline signed with the given access
// credentials. The factory runs per request because the stored pair can
// change after an OAuth callback.
type FetcherFactory func(creds *domain.Credentials) Fetcher

// InventoryHandler serves enriched seller inventory pages.
type InventoryHandler struct {
	store   store.Store
	factory FetcherFactory
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(s store.Store, factory FetcherFactory) *InventoryHandler {
	return &InventoryHandler{store: s, factory: factory}
}

// InventoryResponse is the body of a successful inventory search.
type InventoryResponse struct {
	Results    []domain.InventoryItem `json:"results"`
	Pagination domain.Pagination      `json:"pagination"`
}

// SearchInventory handles GET /api/v1/search-inventory. The q parameter
// names the seller. The stored OAuth credentials sign the upstream calls;
// a missing or rejected pair maps to 401 with an authorize hint.
func (h *InventoryHandler) SearchInventory(c echo.Context) error {
	username := c.QueryParam("q")
	if username == "" {
		return errorJSON(c, http.StatusBadRequest, "q parameter is required")
	}

	page, err := queryInt(c, "page")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	perPage, err := queryInt(c, "per_page")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	creds, err := h.store.LoadCredentials(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:        "not authorized with discogs",
			AuthorizeURL: AuthorizePath,
		})
	}
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "loading credentials failed")
	}

	items, pagination, err := h.factory(creds).Fetch(ctx, username, page, perPage)
	if err != nil {
		return inventoryError(c, err)
	}

	return c.JSON(http.StatusOK, InventoryResponse{
		Results:    items,
		Pagination: pagination,
	})
}

// inventoryError maps pipeline failures onto response statuses. An upstream
// 401 means the stored credentials were revoked; the frontend must restart
// the OAuth flow.
func inventoryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, discogs.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:        "discogs rejected the stored credentials",
			AuthorizeURL: AuthorizePath,
		})
	case errors.Is(err, discogs.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "inventory not found or private")
	}
	return errorJSON(c, http.StatusBadGateway, "discogs inventory search failed: "+err.Error())
}
