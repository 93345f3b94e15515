package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/diggerweb/backend/pkg/types"
)

// SearchPage is one page of catalog search results.
type SearchPage struct {
	Results    []domain.SearchResult `json:"results"`
	Pagination domain.Pagination     `json:"pagination"`
}

// Search queries the catalog search endpoint. releaseType narrows the
// search ("release", "master", "artist", "label") and may be empty.
func (c *Client) Search(ctx context.Context, query, releaseType string, page, perPage int) (*SearchPage, error) {
	params := url.Values{}
	params.Set("q", query)
	if releaseType != "" {
		params.Set("type", releaseType)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}

	out := &SearchPage{}
	if err := c.get(ctx, "/api/v1/search", params, out); err != nil {
		return nil, err
	}
	return out, nil
}
