package models

import (
	"time"
)

// DefaultAccountStatus is assigned to users created without a status.
const DefaultAccountStatus = "active"

// DefaultInactiveDays is the login age after which a user counts as inactive.
const DefaultInactiveDays = 90

// MaxInactiveDays bounds the inactivity window accepted by the API (100 years).
const MaxInactiveDays = 36500

// User is an account that owns watchlist items and saved searches.
type User struct {
	ID                     int64      `json:"user_id"`
	Username               string     `json:"username"`
	Email                  string     `json:"email"`
	FullName               string     `json:"full_name"`
	PreferredNeighborhoods StringList `json:"preferred_neighborhoods"`
	PriceRangeMin          *float64   `json:"price_range_min"`
	PriceRangeMax          *float64   `json:"price_range_max"`
	AccountStatus          string     `json:"account_status"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
	LastLogin              *time.Time `json:"last_login"`
}

// UserActivity is a user with counts of the records they own.
type UserActivity struct {
	User
	WatchlistCount     int64 `json:"watchlist_count"`
	SavedSearchesCount int64 `json:"saved_searches_count"`
}

// CreateUserRequest is the body accepted when creating a user.
type CreateUserRequest struct {
	Username               string     `json:"username" binding:"required"`
	Email                  string     `json:"email" binding:"required"`
	FullName               string     `json:"full_name" binding:"required"`
	PreferredNeighborhoods StringList `json:"preferred_neighborhoods"`
	PriceRangeMin          *float64   `json:"price_range_min"`
	PriceRangeMax          *float64   `json:"price_range_max"`
	AccountStatus          string     `json:"account_status"`
}

// UpdateUserRequest is a partial user update. Nil fields are left unchanged.
type UpdateUserRequest struct {
	FullName               *string     `json:"full_name"`
	Email                  *string     `json:"email"`
	PreferredNeighborhoods *StringList `json:"preferred_neighborhoods"`
	PriceRangeMin          *float64    `json:"price_range_min"`
	PriceRangeMax          *float64    `json:"price_range_max"`
	AccountStatus          *string     `json:"account_status"`
}

// IsEmpty reports whether the update names no fields.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.FullName == nil && r.Email == nil && r.PreferredNeighborhoods == nil &&
		r.PriceRangeMin == nil && r.PriceRangeMax == nil && r.AccountStatus == nil
}
