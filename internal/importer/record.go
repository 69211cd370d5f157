package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Page is one response from the property-tax-report records endpoint.
type Page struct {
	TotalCount int      `json:"total_count"`
	Results    []Record `json:"results"`
}

// Record is one upstream property tax row. Only the fields the importer maps
// are decoded. Numeric fields arrive as numbers or strings depending on the
// dataset export, so they use the lenient Number type.
type Record struct {
	PID                     string    `json:"pid"`
	CivicAddress            string    `json:"civic_address"`
	FromCivicNumber         string    `json:"from_civic_number"`
	StreetName              string    `json:"street_name"`
	LegalType               string    `json:"legal_type"`
	NeighbourhoodCode       string    `json:"neighbourhood_code"`
	PostalCode              string    `json:"property_postal_code"`
	ZoningDistrict          string    `json:"zoning_district"`
	GeoPoint                *GeoPoint `json:"geo_point_2d"`
	CurrentLandValue        Number    `json:"current_land_value"`
	CurrentImprovementValue Number    `json:"current_improvement_value"`
	TaxLevy                 Number    `json:"tax_levy"`
	TaxAssessmentYear       Number    `json:"tax_assessment_year"`
}

// GeoPoint is the dataset's geo_point_2d value. It accepts both the
// {"lat":..,"lon":..} object form and a GeoJSON Point.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// MarshalJSON implements json.Marshaler using the object form.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}{p.Lat, p.Lon})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var geom struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
		Lat         *float64  `json:"lat"`
		Lon         *float64  `json:"lon"`
	}

	if err := json.Unmarshal(data, &geom); err != nil {
		return fmt.Errorf("failed to unmarshal geo point: %w", err)
	}

	switch {
	case geom.Lat != nil && geom.Lon != nil:
		p.Lat, p.Lon = *geom.Lat, *geom.Lon
	case geom.Type == "Point" && len(geom.Coordinates) == 2:
		// GeoJSON order is [lon, lat]
		p.Lon, p.Lat = geom.Coordinates[0], geom.Coordinates[1]
	default:
		return fmt.Errorf("unsupported geo point: %s", data)
	}
	return nil
}

// Number is a numeric field that may be encoded as a JSON number, a numeric
// string, an empty string or null. Valid is false for the last two.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*n = Number{}
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler. Absent values are written as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.Value, 'f', -1, 64), nil
}

// Or returns the value, or def when the field was absent.
func (n Number) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Value
}
