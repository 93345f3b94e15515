package discogs

// PageInfo is the paging block the Discogs API attaches to list responses.
type PageInfo struct {
	Page    int               `json:"page"`
	Pages   int               `json:"pages"`
	PerPage int               `json:"per_page"`
	Items   int               `json:"items"`
	URLs    map[string]string `json:"urls"`
}

// SearchHit is a single result from the database search endpoint.
type SearchHit struct {
	ID         int64    `json:"id"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Thumb      string   `json:"thumb"`
	CoverImage string   `json:"cover_image"`
	Year       string   `json:"year"`
	Country    string   `json:"country"`
	Format     []string `json:"format"`
	URI        string   `json:"uri"`
}

// MoneyAmount holds a Discogs price value.
type MoneyAmount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// ListingRelease is the release block embedded in an inventory listing.
type ListingRelease struct {
	ID          int64  `json:"id"`
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListingEntry is a single listing from the inventory endpoint.
type ListingEntry struct {
	ID              int64          `json:"id"`
	Status          string         `json:"status"`
	Condition       string         `json:"condition"`
	SleeveCondition string         `json:"sleeve_condition"`
	Price           MoneyAmount    `json:"price"`
	URI             string         `json:"uri"`
	Release         ListingRelease `json:"release"`
}

// Stats is the marketplace statistics block for a release. NumForSale is
// null upstream when the release is blocked from sale.
type Stats struct {
	NumForSale      *int         `json:"num_for_sale"`
	LowestPrice     *MoneyAmount `json:"lowest_price"`
	BlockedFromSale bool         `json:"blocked_from_sale"`
}
