package domain

import "testing"

func TestSearchStoresParams_Validate(t *testing.T) {
	tests := []struct {
		name     string
		params   SearchStoresParams
		expected SearchStoresParams
	}{
		{
			name:     "zero values get defaults",
			params:   SearchStoresParams{},
			expected: SearchStoresParams{RadiusKm: 5, PageIndex: 1, PageSize: 10},
		},
		{
			name:     "negative radius resets",
			params:   SearchStoresParams{RadiusKm: -3, PageIndex: 2, PageSize: 20},
			expected: SearchStoresParams{RadiusKm: 5, PageIndex: 2, PageSize: 20},
		},
		{
			name:     "oversized page clamps",
			params:   SearchStoresParams{RadiusKm: 1, PageIndex: 1, PageSize: 1000},
			expected: SearchStoresParams{RadiusKm: 1, PageIndex: 1, PageSize: 100},
		},
		{
			name:     "valid params untouched",
			params:   SearchStoresParams{RadiusKm: 2.5, PageIndex: 3, PageSize: 25},
			expected: SearchStoresParams{RadiusKm: 2.5, PageIndex: 3, PageSize: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Validate()
			if tt.params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, tt.params)
			}
		})
	}
}

func TestSearchStoresParams_Offset(t *testing.T) {
	p := SearchStoresParams{PageIndex: 3, PageSize: 25}
	if got := p.Offset(); got != 50 {
		t.Errorf("expected offset 50, got %d", got)
	}

	p = SearchStoresParams{PageIndex: 1, PageSize: 10}
	if got := p.Offset(); got != 0 {
		t.Errorf("expected offset 0 for first page, got %d", got)
	}
}

func TestSearchStoresParams_RadiusMeters(t *testing.T) {
	p := SearchStoresParams{RadiusKm: 2.5}
	if got := p.RadiusMeters(); got != 2500 {
		t.Errorf("expected 2500 meters, got %v", got)
	}
}

func TestNewSearchStoresResult(t *testing.T) {
	params := SearchStoresParams{
		Latitude:  40.99,
		Longitude: 29.02,
		RadiusKm:  5,
		PageIndex: 2,
		PageSize:  10,
	}

	result := NewSearchStoresResult(nil, 0, params)
	if result.Stores == nil {
		t.Error("expected empty slice, not nil, so the JSON field is [] rather than null")
	}
	if len(result.Stores) != 0 {
		t.Errorf("expected no stores, got %d", len(result.Stores))
	}
	if result.PageIndex != 2 || result.PageSize != 10 {
		t.Errorf("expected pagination carried over, got page %d size %d", result.PageIndex, result.PageSize)
	}
	if result.CenterLatitude != 40.99 || result.CenterLongitude != 29.02 {
		t.Error("expected center carried over")
	}

	hits := []StoreWithDistance{{Store: Store{Name: "Corner Cafe"}, DistanceMeters: 120}}
	result = NewSearchStoresResult(hits, 7, params)
	if result.Total != 7 {
		t.Errorf("expected total 7, got %d", result.Total)
	}
	if len(result.Stores) != 1 || result.Stores[0].Name != "Corner Cafe" {
		t.Error("expected hits carried over")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"alice@example.com", "alice@example.com"},
		{"  Alice@Example.COM ", "alice@example.com"},
		{"\tBOB@EXAMPLE.COM\n", "bob@example.com"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.expected {
			t.Errorf("NormalizeEmail(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
