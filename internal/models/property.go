package models

import (
	"time"
)

// Neighborhood is a named area that groups properties.
type Neighborhood struct {
	ID          int64   `json:"neighborhood_id"`
	Name        string  `json:"neighborhood_name"`
	Description *string `json:"description"`
}

// Property is a taxable parcel joined with its neighborhood.
// Nullable columns use pointers to distinguish zero values from NULL.
type Property struct {
	ID                      int64        `json:"property_id"`
	PID                     string       `json:"pid"`
	CivicAddress            string       `json:"civic_address"`
	LegalType               *string      `json:"legal_type"`
	NeighborhoodID          int64        `json:"neighborhood_id"`
	NeighborhoodName        string       `json:"neighborhood_name"`
	NeighborhoodDescription *string      `json:"neighborhood_description,omitempty"`
	PostalCode              *string      `json:"postal_code"`
	Latitude                *float64     `json:"coordinates_lat"`
	Longitude               *float64     `json:"coordinates_lon"`
	PropertyType            *string      `json:"property_type"`
	ZoningClassification    *string      `json:"zoning_classification"`
	LandArea                *float64     `json:"land_area"`
	CurrentLandValue        float64      `json:"current_land_value"`
	CurrentImprovementValue float64      `json:"current_improvement_value"`
	CurrentTotalValue       float64      `json:"current_total_value"`
	TaxLevy                 float64      `json:"tax_levy"`
	CurrentYear             *int         `json:"current_year"`
	PricePerSqm             *float64     `json:"price_per_sqm"`
	CreatedAt               time.Time    `json:"created_at"`
	UpdatedAt               time.Time    `json:"updated_at"`
	TaxHistory              []TaxHistory `json:"tax_history,omitempty"`
}

// TaxHistory is one yearly assessment of a property.
type TaxHistory struct {
	ID                 int64    `json:"history_id"`
	PropertyID         int64    `json:"property_id"`
	AssessmentYear     int      `json:"assessment_year"`
	LandValue          *float64 `json:"land_value"`
	ImprovementValue   *float64 `json:"improvement_value"`
	TotalValue         *float64 `json:"total_value"`
	TaxLevy            *float64 `json:"tax_levy"`
	ValueChangePercent *float64 `json:"value_change_percent"`
	ValueChangeAmount  *float64 `json:"value_change_amount"`
}

// CreatePropertyRequest is the body accepted when creating a property.
type CreatePropertyRequest struct {
	PID                     string   `json:"pid" binding:"required"`
	CivicAddress            string   `json:"civic_address" binding:"required"`
	NeighborhoodID          int64    `json:"neighborhood_id" binding:"required"`
	LegalType               *string  `json:"legal_type"`
	PostalCode              *string  `json:"postal_code"`
	Latitude                *float64 `json:"coordinates_lat"`
	Longitude               *float64 `json:"coordinates_lon"`
	PropertyType            *string  `json:"property_type"`
	ZoningClassification    *string  `json:"zoning_classification"`
	LandArea                *float64 `json:"land_area"`
	CurrentLandValue        float64  `json:"current_land_value"`
	CurrentImprovementValue float64  `json:"current_improvement_value"`
	TaxLevy                 float64  `json:"tax_levy"`
	CurrentYear             *int     `json:"current_year"`
}

// UpdatePropertyRequest carries the assessment values a property update may change.
type UpdatePropertyRequest struct {
	CurrentLandValue        float64 `json:"current_land_value"`
	CurrentImprovementValue float64 `json:"current_improvement_value"`
	TaxLevy                 float64 `json:"tax_levy"`
	CurrentYear             *int    `json:"current_year"`
}

// NeighborhoodStats aggregates property values per neighborhood.
// Averages and bounds are nil for neighborhoods without properties.
type NeighborhoodStats struct {
	NeighborhoodID   int64    `json:"neighborhood_id"`
	NeighborhoodName string   `json:"neighborhood_name"`
	PropertyCount    int64    `json:"property_count"`
	AvgValue         *float64 `json:"avg_value"`
	MinValue         *float64 `json:"min_value"`
	MaxValue         *float64 `json:"max_value"`
	TotalTaxRevenue  *float64 `json:"total_tax_revenue"`
}

// PropertyTypeStats aggregates property values per property type.
type PropertyTypeStats struct {
	PropertyType string   `json:"property_type"`
	Count        int64    `json:"count"`
	AvgValue     *float64 `json:"avg_value"`
	MinValue     *float64 `json:"min_value"`
	MaxValue     *float64 `json:"max_value"`
}

// FilterOptions lists the values a client can offer in property filters.
type FilterOptions struct {
	Neighborhoods []Neighborhood `json:"neighborhoods"`
	PropertyTypes []string       `json:"property_types"`
}
