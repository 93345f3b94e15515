package discogs

import (
	"fmt"

	domain "github.com/diggerweb/backend/pkg/types"
)

// ToSearchResults converts catalog search hits into domain search results.
// Missing upstream fields default rather than fail.
func ToSearchResults(hits []SearchHit) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(hits))
	for i := range hits {
		results = append(results, toSearchResult(&hits[i]))
	}
	return results
}

func toSearchResult(h *SearchHit) domain.SearchResult {
	r := domain.SearchResult{
		ID:         h.ID,
		Type:       h.Type,
		Title:      h.Title,
		Thumb:      h.Thumb,
		CoverImage: h.CoverImage,
		Year:       h.Year,
		Country:    h.Country,
		URI:        h.URI,
	}
	if len(h.Format) > 0 {
		r.Formats = append(r.Formats, h.Format...)
	}
	return r
}

// ToListing shapes an inventory entry into a domain listing. It fails only
// on entries the output contract cannot represent; the pipeline emits a
// degraded record for those.
func ToListing(e *ListingEntry) (domain.Listing, error) {
	if e.ID <= 0 {
		return domain.Listing{}, fmt.Errorf("listing has no id")
	}

	l := domain.Listing{
		ListingID:       e.ID,
		ReleaseID:       e.Release.ID,
		Artist:          e.Release.Artist,
		Title:           e.Release.Title,
		Condition:       e.Condition,
		SleeveCondition: e.SleeveCondition,
		Status:          e.Status,
		URL:             e.URI,
		Price: domain.Price{
			Value:    e.Price.Value,
			Currency: e.Price.Currency,
		},
	}

	// Inventory entries often carry only the combined description.
	if l.Title == "" {
		l.Title = e.Release.Description
	}

	return l, nil
}

// ToPagination converts the upstream paging block into the domain
// descriptor.
func ToPagination(p PageInfo) domain.Pagination {
	return domain.Pagination{
		Page:    p.Page,
		Pages:   p.Pages,
		PerPage: p.PerPage,
		Items:   p.Items,
		URLs:    p.URLs,
	}
}
