// Package discogs provides a Discogs API client abstracted behind interfaces
// for testability.
package discogs

import (
	"context"
)

// SearchRequest defines the parameters for a catalog search.
type SearchRequest struct {
	Query   string
	Type    string // "release", "master", "artist", "label"
	Page    int
	PerPage int
}

// SearchResponse holds one page of catalog search results.
type SearchResponse struct {
	Results    []SearchHit
	Pagination PageInfo
}

// InventoryRequest defines the parameters for a seller inventory query.
type InventoryRequest struct {
	Username string
	Status   string // server-side listing status filter, e.g. "For Sale"
	Page     int
	PerPage  int
}

// InventoryResponse holds one page of a seller's listings.
type InventoryResponse struct {
	Listings   []ListingEntry
	Pagination PageInfo
}

// Client defines the interface for interacting with the Discogs API.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	Inventory(ctx context.Context, req InventoryRequest) (*InventoryResponse, error)
	ReleaseStats(ctx context.Context, releaseID int64) (*Stats, error)
}
