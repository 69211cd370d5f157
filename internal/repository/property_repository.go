package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/vanprop/internal/database"
	"github.com/stwalsh4118/vanprop/internal/models"
)

// PropertyRepository defines the data access operations for properties,
// neighborhoods, tax history and their aggregate statistics.
type PropertyRepository interface {
	// List returns properties matching every supplied filter, ordered and paged.
	// Returns ErrInvalidSortField or ErrInvalidSortOrder for keys outside the allow-list.
	List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error)

	// FindByID returns the property with its neighborhood description.
	// Returns nil, nil if no property is found.
	FindByID(ctx context.Context, id int64) (*models.Property, error)

	// FindByPID returns the property with the given external parcel identifier.
	// Returns nil, nil if no property is found.
	FindByPID(ctx context.Context, pid string) (*models.Property, error)

	SearchByAddress(ctx context.Context, term string, limit int) ([]models.Property, error)
	History(ctx context.Context, propertyID int64) ([]models.TaxHistory, error)
	ListByNeighborhood(ctx context.Context, name string, limit int) ([]models.Property, error)
	Top(ctx context.Context, limit int) ([]models.Property, error)

	Neighborhoods(ctx context.Context) ([]models.Neighborhood, error)
	PropertyTypes(ctx context.Context) ([]string, error)
	NeighborhoodStats(ctx context.Context) ([]models.NeighborhoodStats, error)
	PropertyTypeStats(ctx context.Context) ([]models.PropertyTypeStats, error)

	// Create inserts a property and returns its id.
	// Returns ErrDuplicatePID or ErrUnknownNeighborhood on constraint violations.
	Create(ctx context.Context, req models.CreatePropertyRequest) (int64, error)

	// UpdateValues changes the assessment values and returns the rows affected.
	UpdateValues(ctx context.Context, id int64, req models.UpdatePropertyRequest) (int64, error)

	// Delete removes a property and returns the rows affected.
	// Returns ErrHasDependents while watchlist or history rows reference it.
	Delete(ctx context.Context, id int64) (int64, error)
}

// propertyRepository is the concrete implementation of PropertyRepository.
type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner, extra ...interface{}) (models.Property, error) {
	var p models.Property
	dest := []interface{}{
		&p.ID,
		&p.PID,
		&p.CivicAddress,
		&p.LegalType,
		&p.NeighborhoodID,
		&p.NeighborhoodName,
		&p.PostalCode,
		&p.Latitude,
		&p.Longitude,
		&p.PropertyType,
		&p.ZoningClassification,
		&p.LandArea,
		&p.CurrentLandValue,
		&p.CurrentImprovementValue,
		&p.CurrentTotalValue,
		&p.TaxLevy,
		&p.CurrentYear,
		&p.PricePerSqm,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return p, err
}

func (r *propertyRepository) queryProperties(ctx context.Context, query string, args ...interface{}) ([]models.Property, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}
	return properties, nil
}

// List runs the composed filter query.
func (r *propertyRepository) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	query, args, err := buildPropertyListQuery(filter)
	if err != nil {
		return nil, err
	}

	properties, err := r.queryProperties(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (r *propertyRepository) findOne(ctx context.Context, where string, arg interface{}, withDescription bool) (*models.Property, error) {
	columns := propertyColumns
	if withDescription {
		columns += ",\n\tn.description"
	}
	query := "SELECT" + columns + propertyFrom + "\n\tWHERE " + where

	var description *string
	var extra []interface{}
	if withDescription {
		extra = append(extra, &description)
	}

	p, err := scanProperty(r.db.Pool.QueryRow(ctx, query, arg), extra...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.NeighborhoodDescription = description
	return &p, nil
}

// FindByID returns the property row joined with its neighborhood.
func (r *propertyRepository) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	p, err := r.findOne(ctx, "p.property_id = $1", id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query property %d: %w", id, err)
	}
	return p, nil
}

// FindByPID returns the property with the given parcel identifier.
func (r *propertyRepository) FindByPID(ctx context.Context, pid string) (*models.Property, error) {
	p, err := r.findOne(ctx, "p.pid = $1", pid, false)
	if err != nil {
		return nil, fmt.Errorf("failed to query property by pid %q: %w", pid, err)
	}
	return p, nil
}

// SearchByAddress matches a case-insensitive substring of the civic address.
func (r *propertyRepository) SearchByAddress(ctx context.Context, term string, limit int) ([]models.Property, error) {
	query := "SELECT" + propertyColumns + propertyFrom + `
	WHERE p.civic_address ILIKE $1
	ORDER BY p.civic_address
	LIMIT $2`

	properties, err := r.queryProperties(ctx, query, likePattern(term), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties for %q: %w", term, err)
	}
	return properties, nil
}

// History returns the tax assessments of a property, newest first.
func (r *propertyRepository) History(ctx context.Context, propertyID int64) ([]models.TaxHistory, error) {
	query := `
		SELECT
			history_id,
			property_id,
			assessment_year,
			land_value,
			improvement_value,
			total_value,
			tax_levy,
			value_change_percent,
			value_change_amount
		FROM tax_history
		WHERE property_id = $1
		ORDER BY assessment_year DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax history for property %d: %w", propertyID, err)
	}
	defer rows.Close()

	history := []models.TaxHistory{}
	for rows.Next() {
		var h models.TaxHistory
		if err := rows.Scan(
			&h.ID,
			&h.PropertyID,
			&h.AssessmentYear,
			&h.LandValue,
			&h.ImprovementValue,
			&h.TotalValue,
			&h.TaxLevy,
			&h.ValueChangePercent,
			&h.ValueChangeAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax history row: %w", err)
		}
		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax history rows: %w", err)
	}
	return history, nil
}

// ListByNeighborhood returns the most valuable properties in a neighborhood.
func (r *propertyRepository) ListByNeighborhood(ctx context.Context, name string, limit int) ([]models.Property, error) {
	query := "SELECT" + propertyColumns + propertyFrom + `
	WHERE n.neighborhood_name = $1
	ORDER BY p.current_total_value DESC, p.property_id
	LIMIT $2`

	properties, err := r.queryProperties(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties in %q: %w", name, err)
	}
	return properties, nil
}

// Top returns the highest valued properties.
func (r *propertyRepository) Top(ctx context.Context, limit int) ([]models.Property, error) {
	query := "SELECT" + propertyColumns + propertyFrom + `
	ORDER BY p.current_total_value DESC, p.property_id
	LIMIT $1`

	properties, err := r.queryProperties(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top properties: %w", err)
	}
	return properties, nil
}

// Neighborhoods returns every neighborhood ordered by name.
func (r *propertyRepository) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT neighborhood_id, neighborhood_name, description
		FROM neighborhoods
		ORDER BY neighborhood_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighborhoods: %w", err)
	}
	defer rows.Close()

	neighborhoods := []models.Neighborhood{}
	for rows.Next() {
		var n models.Neighborhood
		if err := rows.Scan(&n.ID, &n.Name, &n.Description); err != nil {
			return nil, fmt.Errorf("failed to scan neighborhood row: %w", err)
		}
		neighborhoods = append(neighborhoods, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating neighborhood rows: %w", err)
	}
	return neighborhoods, nil
}

// PropertyTypes returns the distinct non-null property types.
func (r *propertyRepository) PropertyTypes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT DISTINCT property_type
		FROM properties
		WHERE property_type IS NOT NULL
		ORDER BY property_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query property types: %w", err)
	}

	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect property types: %w", err)
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}

// NeighborhoodStats aggregates value statistics per neighborhood. Every
// neighborhood is listed, including those without properties.
func (r *propertyRepository) NeighborhoodStats(ctx context.Context) ([]models.NeighborhoodStats, error) {
	query := `
		SELECT
			n.neighborhood_id,
			n.neighborhood_name,
			COUNT(p.property_id) AS property_count,
			ROUND(AVG(p.current_total_value), 2) AS avg_value,
			ROUND(MIN(p.current_total_value), 2) AS min_value,
			ROUND(MAX(p.current_total_value), 2) AS max_value,
			ROUND(SUM(p.tax_levy), 2) AS total_tax_revenue
		FROM neighborhoods n
		LEFT JOIN properties p ON p.neighborhood_id = n.neighborhood_id
		GROUP BY n.neighborhood_id, n.neighborhood_name
		ORDER BY property_count DESC, n.neighborhood_name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighborhood stats: %w", err)
	}
	defer rows.Close()

	stats := []models.NeighborhoodStats{}
	for rows.Next() {
		var s models.NeighborhoodStats
		if err := rows.Scan(
			&s.NeighborhoodID,
			&s.NeighborhoodName,
			&s.PropertyCount,
			&s.AvgValue,
			&s.MinValue,
			&s.MaxValue,
			&s.TotalTaxRevenue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan neighborhood stats row: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating neighborhood stats rows: %w", err)
	}
	return stats, nil
}

// PropertyTypeStats aggregates value statistics per property type.
func (r *propertyRepository) PropertyTypeStats(ctx context.Context) ([]models.PropertyTypeStats, error) {
	query := `
		SELECT
			property_type,
			COUNT(*) AS count,
			ROUND(AVG(current_total_value), 2) AS avg_value,
			ROUND(MIN(current_total_value), 2) AS min_value,
			ROUND(MAX(current_total_value), 2) AS max_value
		FROM properties
		WHERE property_type IS NOT NULL
		GROUP BY property_type
		ORDER BY count DESC, property_type
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query property type stats: %w", err)
	}
	defer rows.Close()

	stats := []models.PropertyTypeStats{}
	for rows.Next() {
		var s models.PropertyTypeStats
		if err := rows.Scan(&s.PropertyType, &s.Count, &s.AvgValue, &s.MinValue, &s.MaxValue); err != nil {
			return nil, fmt.Errorf("failed to scan property type stats row: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property type stats rows: %w", err)
	}
	return stats, nil
}

// Create inserts a property. current_total_value is derived by the store.
func (r *propertyRepository) Create(ctx context.Context, req models.CreatePropertyRequest) (int64, error) {
	query := `
		INSERT INTO properties (
			pid, civic_address, legal_type, neighborhood_id, postal_code,
			coordinates_lat, coordinates_lon, property_type, zoning_classification,
			land_area, current_land_value, current_improvement_value, tax_levy, current_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING property_id
	`

	var id int64
	err := r.db.Pool.QueryRow(ctx, query,
		req.PID,
		req.CivicAddress,
		req.LegalType,
		req.NeighborhoodID,
		req.PostalCode,
		req.Latitude,
		req.Longitude,
		req.PropertyType,
		req.ZoningClassification,
		req.LandArea,
		req.CurrentLandValue,
		req.CurrentImprovementValue,
		req.TaxLevy,
		req.CurrentYear,
	).Scan(&id)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return 0, ErrDuplicatePID
		}
		if _, ok := database.ForeignKeyViolation(err); ok {
			return 0, ErrUnknownNeighborhood
		}
		if _, ok := database.CheckViolation(err); ok {
			return 0, ErrNegativeValue
		}
		return 0, fmt.Errorf("failed to create property %q: %w", req.PID, err)
	}
	return id, nil
}

// UpdateValues sets new assessment values. A nil year keeps the current one.
func (r *propertyRepository) UpdateValues(ctx context.Context, id int64, req models.UpdatePropertyRequest) (int64, error) {
	query := `
		UPDATE properties
		SET current_land_value = $1,
			current_improvement_value = $2,
			tax_levy = $3,
			current_year = COALESCE($4, current_year),
			updated_at = now()
		WHERE property_id = $5
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		req.CurrentLandValue, req.CurrentImprovementValue, req.TaxLevy, req.CurrentYear, id)
	if err != nil {
		if _, ok := database.CheckViolation(err); ok {
			return 0, ErrNegativeValue
		}
		return 0, fmt.Errorf("failed to update property %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a property.
func (r *propertyRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM properties WHERE property_id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return 0, ErrHasDependents
		}
		return 0, fmt.Errorf("failed to delete property %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
