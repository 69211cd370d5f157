package models

import (
	"time"
)

// DefaultWatchlistPriority is used when an item is added without a priority.
const DefaultWatchlistPriority = 3

// Priorities counted separately in watchlist statistics.
const (
	HighPriority = 1
	LowPriority  = 5
)

// WatchlistItem is a property a user is tracking, joined with property details.
type WatchlistItem struct {
	ID                      int64      `json:"watchlist_id"`
	UserID                  int64      `json:"user_id"`
	PropertyID              int64      `json:"property_id"`
	Notes                   string     `json:"notes"`
	Priority                int        `json:"priority"`
	Tags                    StringList `json:"tags"`
	AddedAt                 time.Time  `json:"added_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	PID                     string     `json:"pid"`
	CivicAddress            string     `json:"civic_address"`
	PropertyType            *string    `json:"property_type"`
	CurrentTotalValue       float64    `json:"current_total_value"`
	CurrentLandValue        float64    `json:"current_land_value"`
	CurrentImprovementValue float64    `json:"current_improvement_value"`
	TaxLevy                 float64    `json:"tax_levy"`
	NeighborhoodName        string     `json:"neighborhood_name"`
}

// AddWatchlistRequest is the body accepted when adding a property to a watchlist.
type AddWatchlistRequest struct {
	UserID     int64      `json:"user_id" binding:"required"`
	PropertyID int64      `json:"property_id" binding:"required"`
	Notes      *string    `json:"notes"`
	Priority   *int       `json:"priority"`
	Tags       StringList `json:"tags"`
}

// UpdateWatchlistRequest is a partial watchlist update. Nil fields are left unchanged.
type UpdateWatchlistRequest struct {
	Notes    *string     `json:"notes"`
	Priority *int        `json:"priority"`
	Tags     *StringList `json:"tags"`
}

// IsEmpty reports whether the update names no fields.
func (r UpdateWatchlistRequest) IsEmpty() bool {
	return r.Notes == nil && r.Priority == nil && r.Tags == nil
}

// WatchlistStats summarizes a user's watchlist.
type WatchlistStats struct {
	TotalProperties   int64    `json:"total_properties"`
	AvgValue          *float64 `json:"avg_value"`
	MinValue          *float64 `json:"min_value"`
	MaxValue          *float64 `json:"max_value"`
	HighPriorityCount int64    `json:"high_priority_count"`
	LowPriorityCount  int64    `json:"low_priority_count"`
}

// WatchlistNeighborhood groups a user's watchlist by neighborhood.
type WatchlistNeighborhood struct {
	NeighborhoodName string   `json:"neighborhood_name"`
	PropertyCount    int64    `json:"property_count"`
	AvgValue         *float64 `json:"avg_value"`
}
