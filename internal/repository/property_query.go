package repository

import (
	"fmt"
	"strings"

	"github.com/stwalsh4118/vanprop/internal/models"
)

// DefaultSortField orders listings when the caller names no sort key.
const DefaultSortField = "current_total_value"

// propertySortColumns is the allow-list of caller-selectable sort keys.
var propertySortColumns = map[string]string{
	"current_total_value":       "p.current_total_value",
	"current_land_value":        "p.current_land_value",
	"current_improvement_value": "p.current_improvement_value",
	"tax_levy":                  "p.tax_levy",
	"civic_address":             "p.civic_address",
	"land_area":                 "p.land_area",
	"current_year":              "p.current_year",
	"property_type":             "p.property_type",
	"neighborhood_name":         "n.neighborhood_name",
	"price_per_sqm":             "price_per_sqm",
	"pid":                       "p.pid",
	"property_id":               "p.property_id",
}

// SortFields returns the accepted sort keys.
func SortFields() []string {
	fields := make([]string, 0, len(propertySortColumns))
	for k := range propertySortColumns {
		fields = append(fields, k)
	}
	return fields
}

// propertyColumns is shared by every property read so scanProperty stays in step.
const propertyColumns = `
	p.property_id,
	p.pid,
	p.civic_address,
	p.legal_type,
	p.neighborhood_id,
	n.neighborhood_name,
	p.postal_code,
	p.coordinates_lat,
	p.coordinates_lon,
	p.property_type,
	p.zoning_classification,
	p.land_area,
	p.current_land_value,
	p.current_improvement_value,
	p.current_total_value,
	p.tax_levy,
	p.current_year,
	CASE WHEN p.land_area > 0 THEN ROUND(p.current_total_value / p.land_area, 2) ELSE NULL END AS price_per_sqm,
	p.created_at,
	p.updated_at`

const propertyFrom = `
	FROM properties p
	INNER JOIN neighborhoods n ON n.neighborhood_id = p.neighborhood_id`

// sortClause resolves a normalized sort key and order against the allow-list.
func sortClause(sortBy, sortOrder string) (string, error) {
	if sortBy == "" {
		sortBy = DefaultSortField
	}
	column, ok := propertySortColumns[sortBy]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, sortBy)
	}

	switch sortOrder {
	case "":
		sortOrder = models.SortDesc
	case models.SortAsc, models.SortDesc:
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, sortOrder)
	}

	// property_id breaks ties so pages never overlap
	return fmt.Sprintf("ORDER BY %s %s NULLS LAST, p.property_id %s", column, sortOrder, sortOrder), nil
}

// buildPropertyListQuery composes the filtered, ordered and paged listing.
// Every caller-supplied value is bound as a parameter.
func buildPropertyListQuery(filter models.PropertyFilter) (string, []interface{}, error) {
	f := filter.Normalize()

	order, err := sortClause(f.SortBy, f.SortOrder)
	if err != nil {
		return "", nil, err
	}

	var (
		conditions []string
		args       []interface{}
	)
	where := func(format string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if f.Neighborhood != "" {
		where("n.neighborhood_name = $%d", f.Neighborhood)
	}
	if f.PropertyType != "" {
		where("p.property_type = $%d", f.PropertyType)
	}
	if f.MinValue != nil {
		where("p.current_total_value >= $%d", *f.MinValue)
	}
	if f.MaxValue != nil {
		where("p.current_total_value <= $%d", *f.MaxValue)
	}
	if f.Search != "" {
		where("p.civic_address ILIKE $%d", likePattern(f.Search))
	}

	var b strings.Builder
	b.WriteString("SELECT")
	b.WriteString(propertyColumns)
	b.WriteString(propertyFrom)
	if len(conditions) > 0 {
		b.WriteString("\n\tWHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString("\n\t")
	b.WriteString(order)

	args = append(args, f.Limit, f.Offset)
	fmt.Fprintf(&b, "\n\tLIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args, nil
}
