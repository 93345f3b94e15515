package discogs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diggerweb/backend/internal/metrics"
	domain "github.com/diggerweb/backend/pkg/types"
)

const (
	statusForSale = "For Sale"

	minPerPage     = 1
	maxPerPage     = 100
	defaultPerPage = 50
)

// Enricher fetches one page of a seller's for-sale listings and augments
// each with marketplace statistics from the per-release stats endpoint.
type Enricher struct {
	client Client
	logger *slog.Logger
}

// EnricherOption configures the Enricher.
type EnricherOption func(*Enricher)

// WithEnricherLogger sets the logger.
func WithEnricherLogger(l *slog.Logger) EnricherOption {
	return func(e *Enricher) {
		e.logger = l
	}
}

// NewEnricher creates an inventory enrichment pipeline on top of client.
func NewEnricher(client Client, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fetch returns one enriched page of username's for-sale inventory.
//
// perPage is clamped to [1,100] and page to >= 1. The primary inventory
// call failing is a hard error. Per-listing failures are contained: a
// failed stats lookup yields an enriched item with nil num_for_sale and a
// diagnostic note, an unshapeable entry yields a degraded {id, error}
// record, and an entry without a release id is omitted. A page past the
// end returns no items together with the best-known pagination.
func (e *Enricher) Fetch(
	ctx context.Context,
	username string,
	page, perPage int,
) ([]domain.InventoryItem, domain.Pagination, error) {
	page = clampPage(page)
	perPage = clampPerPage(perPage)

	resp, err := e.client.Inventory(ctx, InventoryRequest{
		Username: username,
		Status:   statusForSale,
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("fetching inventory page %d: %w", page, err)
	}

	pagination := ToPagination(resp.Pagination)
	// Echo what was requested even when upstream normalizes past-the-end pages.
	pagination.Page = page
	pagination.PerPage = perPage

	items := make([]domain.InventoryItem, 0, len(resp.Listings))

	for i := range resp.Listings {
		if err := ctx.Err(); err != nil {
			return nil, domain.Pagination{}, err
		}

		entry := &resp.Listings[i]
		metrics.EnrichmentListingsTotal.Inc()

		if entry.Release.ID == 0 {
			e.logger.Warn("listing has no release id, omitting",
				"listing_id", entry.ID,
			)
			continue
		}

		listing, err := ToListing(entry)
		if err != nil {
			metrics.EnrichmentDegradedTotal.Inc()
			items = append(items, domain.InventoryItem{
				Status: domain.EnrichmentDegraded,
				ID:     entry.ID,
				Error:  err.Error(),
			})
			continue
		}

		listing.NumForSale, listing.StatsNote = e.lookupStats(ctx, entry.Release.ID)

		items = append(items, domain.InventoryItem{
			Status:  domain.EnrichmentEnriched,
			Listing: &listing,
		})
	}

	return items, pagination, nil
}

// lookupStats fetches num_for_sale for a release. A provider error here
// never fails the page; the listing goes out with a diagnostic note instead.
func (e *Enricher) lookupStats(ctx context.Context, releaseID int64) (*int, string) {
	stats, err := e.client.ReleaseStats(ctx, releaseID)
	if err != nil {
		metrics.EnrichmentStatsFailuresTotal.Inc()
		e.logger.Warn("marketplace stats lookup failed",
			"release_id", releaseID,
			"err", err,
		)
		return nil, "marketplace stats unavailable: " + err.Error()
	}
	return stats.NumForSale, ""
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampPerPage(perPage int) int {
	switch {
	case perPage == 0:
		return defaultPerPage
	case perPage < minPerPage:
		return minPerPage
	case perPage > maxPerPage:
		return maxPerPage
	}
	return perPage
}
