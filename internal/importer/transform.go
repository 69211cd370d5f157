package importer

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/stwalsh4118/vanprop/internal/models"
)

// Defaults applied to upstream records with missing fields.
const (
	UnknownNeighborhood = "Unknown"
	UnknownAddress      = "Unknown Address"
	UnknownPropertyType = "Unknown"
	DefaultYear         = 2024
)

// DefaultNeighborhoods are inserted when the upstream yields no records.
var DefaultNeighborhoods = []string{
	"Downtown",
	"Kitsilano",
	"West End",
	"Mount Pleasant",
	"Fairview",
	"Yaletown",
	"Commercial Drive",
}

// SampleUsers are always seeded so the API has accounts to work with.
var SampleUsers = []models.CreateUserRequest{
	{Username: "john_buyer", Email: "john@example.com", FullName: "John Smith", AccountStatus: models.DefaultAccountStatus},
	{Username: "sarah_investor", Email: "sarah@example.com", FullName: "Sarah Johnson", AccountStatus: models.DefaultAccountStatus},
	{Username: "mike_resident", Email: "mike@example.com", FullName: "Mike Chen", AccountStatus: models.DefaultAccountStatus},
}

// neighborhoodOf returns the trimmed neighbourhood code, or UnknownNeighborhood.
func neighborhoodOf(r Record) string {
	if code := strings.TrimSpace(r.NeighbourhoodCode); code != "" {
		return code
	}
	return UnknownNeighborhood
}

// NeighborhoodNames returns the sorted distinct neighbourhood names the
// records need. UnknownNeighborhood is included only when some record lacks a code.
func NeighborhoodNames(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[neighborhoodOf(r)] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// civicAddress prefers the civic_address field, then the street number and
// name, then UnknownAddress.
func civicAddress(r Record) string {
	if addr := strings.TrimSpace(r.CivicAddress); addr != "" {
		return addr
	}
	parts := strings.TrimSpace(strings.TrimSpace(r.FromCivicNumber) + " " + strings.TrimSpace(r.StreetName))
	if parts != "" {
		return parts
	}
	return UnknownAddress
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// money clamps upstream monetary values to the store's non-negative range.
func money(n Number) float64 {
	if v := n.Or(0); v > 0 {
		return v
	}
	return 0
}

// toPropertyRow maps an upstream record onto a properties row.
func toPropertyRow(r Record, neighborhoodID int64) propertyRow {
	row := propertyRow{
		PID:                     strings.TrimSpace(r.PID),
		CivicAddress:            civicAddress(r),
		LegalType:               optional(r.LegalType),
		NeighborhoodID:          neighborhoodID,
		PostalCode:              optional(r.PostalCode),
		PropertyType:            UnknownPropertyType,
		ZoningClassification:    optional(r.ZoningDistrict),
		CurrentLandValue:        money(r.CurrentLandValue),
		CurrentImprovementValue: money(r.CurrentImprovementValue),
		TaxLevy:                 money(r.TaxLevy),
		CurrentYear:             int(r.TaxAssessmentYear.Or(DefaultYear)),
	}

	if row.PID == "" {
		row.PID = "PID-" + uuid.NewString()
	}
	if row.LegalType != nil {
		row.PropertyType = *row.LegalType
	}
	if r.GeoPoint != nil {
		lat, lon := r.GeoPoint.Lat, r.GeoPoint.Lon
		row.Latitude, row.Longitude = &lat, &lon
	}
	return row
}
