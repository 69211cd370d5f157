package models

import "strings"

// Pagination defaults for property listings.
const (
	DefaultPropertyLimit = 50
	MaxPropertyLimit     = 500
	DefaultTopLimit      = 10
	SearchResultLimit    = 20
	NeighborhoodLimit    = 100
)

// Sort orders accepted by property listings.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// PropertyFilter selects, orders and pages a property listing. Nil or empty
// fields are omitted from the predicate; the rest are AND-composed.
type PropertyFilter struct {
	Neighborhood string   `form:"neighborhood" json:"neighborhood,omitempty"`
	PropertyType string   `form:"property_type" json:"property_type,omitempty"`
	MinValue     *float64 `form:"min_value" json:"min_value,omitempty"`
	MaxValue     *float64 `form:"max_value" json:"max_value,omitempty"`
	Search       string   `form:"search" json:"search,omitempty"`
	SortBy       string   `form:"sort_by" json:"sort_by,omitempty"`
	SortOrder    string   `form:"sort_order" json:"sort_order,omitempty"`
	Limit        int      `form:"limit" json:"limit,omitempty"`
	Offset       int      `form:"offset" json:"offset,omitempty"`
}

// Normalize applies defaults and clamps paging. Sort keys are upper/lower
// cased but not validated here.
func (f PropertyFilter) Normalize() PropertyFilter {
	f.Neighborhood = strings.TrimSpace(f.Neighborhood)
	f.PropertyType = strings.TrimSpace(f.PropertyType)
	f.Search = strings.TrimSpace(f.Search)
	f.SortBy = strings.ToLower(strings.TrimSpace(f.SortBy))
	f.SortOrder = strings.ToUpper(strings.TrimSpace(f.SortOrder))

	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
	f.Limit = ClampLimit(f.Limit, DefaultPropertyLimit)
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// ClampLimit returns def for non-positive limits and caps the rest at MaxPropertyLimit.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxPropertyLimit {
		return MaxPropertyLimit
	}
	return limit
}
