package models

import (
	"time"
)

// SavedSearchListLimit bounds the most-used and recent listings.
const SavedSearchListLimit = 5

// SavedSearch is a named filter configuration a user can re-run.
type SavedSearch struct {
	ID             int64          `json:"search_id"`
	UserID         int64          `json:"user_id"`
	SearchName     string         `json:"search_name"`
	SearchCriteria SearchCriteria `json:"search_criteria"`
	ResultCount    int            `json:"result_count"`
	ExecutionCount int            `json:"execution_count"`
	LastExecuted   *time.Time     `json:"last_executed"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CreateSavedSearchRequest is the body accepted when saving a search.
type CreateSavedSearchRequest struct {
	UserID         int64          `json:"user_id" binding:"required"`
	SearchName     string         `json:"search_name" binding:"required"`
	SearchCriteria SearchCriteria `json:"search_criteria" binding:"required"`
	ResultCount    *int           `json:"result_count"`
}

// UpdateSavedSearchRequest is a partial saved-search update. Nil fields are left unchanged.
type UpdateSavedSearchRequest struct {
	SearchName     *string        `json:"search_name"`
	SearchCriteria SearchCriteria `json:"search_criteria"`
	ResultCount    *int           `json:"result_count"`
}

// IsEmpty reports whether the update names no fields.
func (r UpdateSavedSearchRequest) IsEmpty() bool {
	return r.SearchName == nil && r.SearchCriteria == nil && r.ResultCount == nil
}

// ExecuteSavedSearchRequest records a run of a saved search. The count is
// reported by the caller and stored as given.
type ExecuteSavedSearchRequest struct {
	ResultCount *int `json:"result_count" binding:"required"`
}

// SavedSearchStats summarizes a user's saved searches.
type SavedSearchStats struct {
	TotalSearches    int64    `json:"total_searches"`
	ExecutedSearches int64    `json:"executed_searches"`
	UnusedSearches   int64    `json:"unused_searches"`
	AvgExecutions    *float64 `json:"avg_executions"`
	MaxExecutions    *int64   `json:"max_executions"`
}
