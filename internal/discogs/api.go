package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/diggerweb/backend/internal/metrics"
)

const defaultBaseURL = "https://api.discogs.com"

// APIClient implements Client against the Discogs HTTP API. Requests are
// expected to be signed by the injected HTTP client (OAuth1 transport);
// APIClient itself only adds the mandatory User-Agent header.
type APIClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	pacer     Pacer
}

// APIOption configures the APIClient.
type APIOption func(*APIClient)

// WithBaseURL overrides the default API endpoint.
func WithBaseURL(u string) APIOption {
	return func(c *APIClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default HTTP client. Pass the client returned
// by the OAuth1 config so requests carry a valid signature.
func WithHTTPClient(hc *http.Client) APIOption {
	return func(c *APIClient) {
		c.client = hc
	}
}

// WithPacer injects a rate limiter applied to every API call. Discogs
// publishes no hard limit for these endpoints, so pacing is shared across
// all requests through a single token bucket.
func WithPacer(p Pacer) APIOption {
	return func(c *APIClient) {
		c.pacer = p
	}
}

// NewAPIClient creates a Discogs API client. Discogs rejects requests
// without a User-Agent, so one is always required.
func NewAPIClient(userAgent string, opts ...APIOption) *APIClient {
	c := &APIClient{
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sentinel errors for the upstream statuses handlers branch on. Matched
// through errors.Is against the APIError carrying the full response.
var (
	ErrUnauthorized = errors.New("discogs: unauthorized")
	ErrNotFound     = errors.New("discogs: not found")
)

// APIError is a non-2xx response from the Discogs API. Handlers inspect the
// status code to propagate meaningful upstream statuses (401, 404).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discogs API error (status %d): %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match an APIError against the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

type searchAPIResponse struct {
	Pagination PageInfo    `json:"pagination"`
	Results    []SearchHit `json:"results"`
}

type inventoryAPIResponse struct {
	Pagination PageInfo       `json:"pagination"`
	Listings   []ListingEntry `json:"listings"`
}

// Search implements Client.Search by querying the database search endpoint.
func (c *APIClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", req.Query)
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	if req.Page > 0 {
		params.Set("page", strconv.Itoa(req.Page))
	}
	if req.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(req.PerPage))
	}

	var apiResp searchAPIResponse
	if err := c.do(ctx, "search", "/database/search", params, &apiResp); err != nil {
		return nil, err
	}

	return &SearchResponse{
		Results:    apiResp.Results,
		Pagination: apiResp.Pagination,
	}, nil
}

// Inventory implements Client.Inventory by querying a seller's listings.
func (c *APIClient) Inventory(ctx context.Context, req InventoryRequest) (*InventoryResponse, error) {
	params := url.Values{}
	if req.Status != "" {
		params.Set("status", req.Status)
	}
	if req.Page > 0 {
		params.Set("page", strconv.Itoa(req.Page))
	}
	if req.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(req.PerPage))
	}

	path := "/users/" + url.PathEscape(req.Username) + "/inventory"

	var apiResp inventoryAPIResponse
	if err := c.do(ctx, "inventory", path, params, &apiResp); err != nil {
		return nil, err
	}

	return &InventoryResponse{
		Listings:   apiResp.Listings,
		Pagination: apiResp.Pagination,
	}, nil
}

// ReleaseStats implements Client.ReleaseStats against the marketplace
// statistics endpoint.
func (c *APIClient) ReleaseStats(ctx context.Context, releaseID int64) (*Stats, error) {
	path := "/marketplace/stats/" + strconv.FormatInt(releaseID, 10)

	stats := &Stats{}
	if err := c.do(ctx, "release_stats", path, nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

type apiErrorBody struct {
	Message string `json:"message"`
}

func (c *APIClient) do(ctx context.Context, op, path string, params url.Values, dst any) error {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	metrics.DiscogsAPICallsTotal.WithLabelValues(op).Inc()

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.DiscogsAPIErrorsTotal.WithLabelValues(op).Inc()
		return fmt.Errorf("executing %s request: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.DiscogsAPIErrorsTotal.WithLabelValues(op).Inc()
		var errBody apiErrorBody
		_ = json.Unmarshal(body, &errBody) //nolint:errcheck // best-effort error parsing
		if errBody.Message == "" {
			errBody.Message = string(body)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("parsing %s response: %w", op, err)
	}

	return nil
}
