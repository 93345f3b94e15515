// Package types defines the domain types shared across diggerweb-backend.
package types

import "time"

// Credentials is the long-lived OAuth1 access token pair delegated by the
// Discogs user. Exactly one pair is persisted at a time.
type Credentials struct {
	Token       string    `json:"access_token"`
	Secret      string    `json:"-"`
	LastUpdated time.Time `json:"last_updated"`
}

// Pagination mirrors the Discogs paging metadata. Page echoes the page that
// was requested, which may exceed Pages when the caller walks past the end.
type Pagination struct {
	Page    int               `json:"page"`
	Pages   int               `json:"pages"`
	PerPage int               `json:"per_page"`
	Items   int               `json:"items"`
	URLs    map[string]string `json:"urls,omitempty"`
}

// Price is a monetary amount in a specific currency.
type Price struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Listing is one seller's for-sale offer of a release, optionally enriched
// with marketplace statistics. NumForSale comes from a separate endpoint and
// is nil when the statistics lookup failed or was skipped; StatsNote carries
// the diagnostic in that case.
type Listing struct {
	ListingID       int64  `json:"listing_id"`
	ReleaseID       int64  `json:"release_id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Price           Price  `json:"price"`
	Condition       string `json:"condition"`
	SleeveCondition string `json:"sleeve_condition"`
	Status          string `json:"status"`
	NumForSale      *int   `json:"num_for_sale"`
	StatsNote       string `json:"stats_note,omitempty"`
	URL             string `json:"url"`
}

// EnrichmentStatus tags the outcome of enriching a single inventory listing.
type EnrichmentStatus string

// Enrichment outcomes. Listings without a release id are omitted from the
// result entirely and carry no tag.
const (
	EnrichmentEnriched EnrichmentStatus = "enriched"
	EnrichmentDegraded EnrichmentStatus = "degraded"
)

// InventoryItem is one entry of an enriched inventory page. Enriched items
// carry a Listing; degraded items carry the listing id and the error that
// prevented shaping it.
type InventoryItem struct {
	Status  EnrichmentStatus `json:"status"`
	Listing *Listing         `json:"listing,omitempty"`
	ID      int64            `json:"id,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// SearchResult is one reshaped hit from a Discogs catalog search. Missing
// upstream fields default to their zero values rather than failing the
// conversion.
type SearchResult struct {
	ID         int64    `json:"id"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Thumb      string   `json:"thumb"`
	CoverImage string   `json:"cover_image"`
	Year       string   `json:"year"`
	Country    string   `json:"country"`
	Formats    []string `json:"formats"`
	URI        string   `json:"uri"`
}
