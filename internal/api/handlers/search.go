package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diggerweb/backend/internal/discogs"
	domain "github.com/diggerweb/backend/pkg/types"
)

// SearchHandler proxies catalog searches to the Discogs database search
// endpoint.
type SearchHandler struct {
	client discogs.Client
}

// NewSearchHandler creates a new SearchHandler. client is nil when the
// consumer credentials are not configured; requests then fail with a
// configuration error instead of reaching upstream.
func NewSearchHandler(client discogs.Client) *SearchHandler {
	return &SearchHandler{client: client}
}

// SearchResponse is the body of a successful catalog search.
type SearchResponse struct {
	Results    []domain.SearchResult `json:"results"`
	Pagination domain.Pagination     `json:"pagination"`
}

// Search handles GET /api/v1/search. The q parameter is mandatory; without
// it no upstream call is made.
func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
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

	if h.client == nil {
		return errorJSON(c, http.StatusInternalServerError,
			"discogs consumer credentials not configured")
	}

	resp, err := h.client.Search(c.Request().Context(), discogs.SearchRequest{
		Query:   query,
		Type:    c.QueryParam("type"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return searchError(c, err)
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Results:    discogs.ToSearchResults(resp.Results),
		Pagination: discogs.ToPagination(resp.Pagination),
	})
}

// searchError maps upstream failures to response statuses. Meaningful
// Discogs statuses pass through; everything else is a bad gateway.
func searchError(c echo.Context, err error) error {
	var apiErr *discogs.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden,
			http.StatusNotFound, http.StatusTooManyRequests:
			return errorJSON(c, apiErr.StatusCode, apiErr.Message)
		}
	}
	return errorJSON(c, http.StatusBadGateway, "discogs search failed: "+err.Error())
}
