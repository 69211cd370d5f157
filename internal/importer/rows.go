package importer

import "time"

// neighborhoodRow maps the neighborhoods table for gorm.
type neighborhoodRow struct {
	ID          int64   `gorm:"primaryKey;column:neighborhood_id"`
	Name        string  `gorm:"column:neighborhood_name;uniqueIndex;not null"`
	Description *string `gorm:"type:text;column:description"`
}

// TableName specifies the table name for GORM.
func (neighborhoodRow) TableName() string { return "neighborhoods" }

// propertyRow maps the writable columns of the properties table.
// current_total_value is generated by the store and is not listed.
type propertyRow struct {
	ID                      int64    `gorm:"primaryKey;column:property_id"`
	PID                     string   `gorm:"column:pid;uniqueIndex;not null"`
	CivicAddress            string   `gorm:"column:civic_address;not null"`
	LegalType               *string  `gorm:"column:legal_type"`
	NeighborhoodID          int64    `gorm:"column:neighborhood_id;not null"`
	PostalCode              *string  `gorm:"column:postal_code"`
	Latitude                *float64 `gorm:"column:coordinates_lat"`
	Longitude               *float64 `gorm:"column:coordinates_lon"`
	PropertyType            string   `gorm:"column:property_type"`
	ZoningClassification    *string  `gorm:"column:zoning_classification"`
	LandArea                *float64 `gorm:"column:land_area"`
	CurrentLandValue        float64  `gorm:"column:current_land_value"`
	CurrentImprovementValue float64  `gorm:"column:current_improvement_value"`
	TaxLevy                 float64  `gorm:"column:tax_levy"`
	CurrentYear             int      `gorm:"column:current_year"`
}

// TableName specifies the table name for GORM.
func (propertyRow) TableName() string { return "properties" }

// userRow maps the users columns the importer seeds.
type userRow struct {
	ID            int64     `gorm:"primaryKey;column:user_id"`
	Username      string    `gorm:"column:username;uniqueIndex;not null"`
	Email         string    `gorm:"column:email;uniqueIndex;not null"`
	FullName      string    `gorm:"column:full_name;not null"`
	AccountStatus string    `gorm:"column:account_status;default:active"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM.
func (userRow) TableName() string { return "users" }
