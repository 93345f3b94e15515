package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/diggerweb/backend/pkg/types"
)

// InventoryPage is one page of enriched seller inventory.
type InventoryPage struct {
	Results    []domain.InventoryItem `json:"results"`
	Pagination domain.Pagination      `json:"pagination"`
}

// SearchInventory queries a seller's enriched for-sale inventory.
func (c *Client) SearchInventory(ctx context.Context, username string, page, perPage int) (*InventoryPage, error) {
	params := url.Values{}
	params.Set("q", username)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}

	out := &InventoryPage{}
	if err := c.get(ctx, "/api/v1/search-inventory", params, out); err != nil {
		return nil, err
	}
	return out, nil
}
