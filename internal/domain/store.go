package domain

import "time"

// StoreType categorizes a store (restaurant, cafe, ...). Free-form beyond the
// known constants; filters match exactly.
type StoreType string

const (
	StoreTypeRestaurant  StoreType = "restaurant"
	StoreTypeCafe        StoreType = "cafe"
	StoreTypeConvenience StoreType = "convenience"
	StoreTypeGrocery     StoreType = "grocery"
	StoreTypePharmacy    StoreType = "pharmacy"
)

// Store is a searchable place with a fixed geographic position.
type Store struct {
	ID        string
	Name      string
	Type      StoreType
	Address   string
	Latitude  float64
	Longitude float64
	Rating    float64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreWithDistance is a search hit annotated with the computed distance in
// meters from the query center.
type StoreWithDistance struct {
	Store
	DistanceMeters float64
}

// SearchStoresParams holds the parameters of one radius search.
type SearchStoresParams struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64

	// Optional filters
	Name string    // substring match on store name
	Type StoreType // exact match

	// Pagination (1-indexed)
	PageIndex int
	PageSize  int
}

// DefaultSearchStoresParams returns search params with sensible defaults.
func DefaultSearchStoresParams() SearchStoresParams {
	return SearchStoresParams{
		RadiusKm:  5,
		PageIndex: 1,
		PageSize:  10,
	}
}

// Validate clamps params to acceptable bounds. This is bound correction, not
// validation; range checks on coordinates happen at the transport layer.
func (p *SearchStoresParams) Validate() {
	if p.RadiusKm <= 0 {
		p.RadiusKm = 5
	}
	if p.PageIndex < 1 {
		p.PageIndex = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset calculates the database offset for pagination.
func (p *SearchStoresParams) Offset() int {
	return (p.PageIndex - 1) * p.PageSize
}

// RadiusMeters returns the search radius in meters.
func (p *SearchStoresParams) RadiusMeters() float64 {
	return p.RadiusKm * 1000
}

// SearchStoresResult holds one page of radius search hits.
type SearchStoresResult struct {
	Stores          []StoreWithDistance `json:"stores"`
	Total           int64               `json:"total"`
	PageIndex       int                 `json:"page_index"`
	PageSize        int                 `json:"page_size"`
	CenterLatitude  float64             `json:"center_latitude"`
	CenterLongitude float64             `json:"center_longitude"`
	RadiusKm        float64             `json:"radius_km"`
}

// NewSearchStoresResult assembles a result page from repository output.
func NewSearchStoresResult(stores []StoreWithDistance, total int64, params SearchStoresParams) *SearchStoresResult {
	if stores == nil {
		stores = []StoreWithDistance{}
	}

	return &SearchStoresResult{
		Stores:          stores,
		Total:           total,
		PageIndex:       params.PageIndex,
		PageSize:        params.PageSize,
		CenterLatitude:  params.Latitude,
		CenterLongitude: params.Longitude,
		RadiusKm:        params.RadiusKm,
	}
}
