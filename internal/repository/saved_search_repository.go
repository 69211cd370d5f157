package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/vanprop/internal/database"
	"github.com/stwalsh4118/vanprop/internal/models"
)

// SavedSearchRepository defines the data access operations for saved searches.
type SavedSearchRepository interface {
	// ListByUser returns a user's searches, most recently executed first.
	ListByUser(ctx context.Context, userID int64) ([]models.SavedSearch, error)

	// FindByID returns nil, nil if no search is found.
	FindByID(ctx context.Context, id int64) (*models.SavedSearch, error)

	// Create stores a search and returns its id.
	// Returns ErrUnknownReference if the user does not exist.
	Create(ctx context.Context, req models.CreateSavedSearchRequest) (int64, error)

	// Update applies the non-nil fields and returns the updated search,
	// or nil if no search has the given id.
	Update(ctx context.Context, id int64, req models.UpdateSavedSearchRequest) (*models.SavedSearch, error)

	// RecordExecution increments the execution count, stamps last_executed and
	// stores the reported result count. Returns nil if no search has the given id.
	RecordExecution(ctx context.Context, id int64, resultCount int) (*models.SavedSearch, error)

	Delete(ctx context.Context, id int64) (int64, error)

	MostUsed(ctx context.Context, userID int64, limit int) ([]models.SavedSearch, error)
	Recent(ctx context.Context, userID int64, limit int) ([]models.SavedSearch, error)
	SearchByName(ctx context.Context, userID int64, term string) ([]models.SavedSearch, error)
	Stats(ctx context.Context, userID int64) (*models.SavedSearchStats, error)
}

type savedSearchRepository struct {
	db *database.Database
}

// NewSavedSearchRepository creates a new instance of SavedSearchRepository.
func NewSavedSearchRepository(db *database.Database) SavedSearchRepository {
	return &savedSearchRepository{db: db}
}

const savedSearchColumns = `
	search_id,
	user_id,
	search_name,
	search_criteria,
	result_count,
	execution_count,
	last_executed,
	created_at,
	updated_at`

func scanSavedSearch(row rowScanner) (models.SavedSearch, error) {
	var s models.SavedSearch
	var criteria string

	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.SearchName,
		&criteria,
		&s.ResultCount,
		&s.ExecutionCount,
		&s.LastExecuted,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return s, err
	}

	decoded, err := models.DecodeSearchCriteria(criteria)
	if err != nil {
		return s, fmt.Errorf("failed to decode criteria for saved search %d: %w", s.ID, err)
	}
	s.SearchCriteria = decoded
	return s, nil
}

func (r *savedSearchRepository) querySearches(ctx context.Context, query string, args ...interface{}) ([]models.SavedSearch, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	searches := []models.SavedSearch{}
	for rows.Next() {
		s, err := scanSavedSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved search row: %w", err)
		}
		searches = append(searches, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved search rows: %w", err)
	}
	return searches, nil
}

// ListByUser returns every saved search owned by the user.
func (r *savedSearchRepository) ListByUser(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	query := "SELECT" + savedSearchColumns + `
	FROM saved_searches
	WHERE user_id = $1
	ORDER BY last_executed DESC NULLS LAST, created_at DESC, search_id DESC`

	searches, err := r.querySearches(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved searches for user %d: %w", userID, err)
	}
	return searches, nil
}

func findSavedSearch(ctx context.Context, q database.Querier, id int64) (*models.SavedSearch, error) {
	query := "SELECT" + savedSearchColumns + "\n\tFROM saved_searches\n\tWHERE search_id = $1"
	s, err := scanSavedSearch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query saved search %d: %w", id, err)
	}
	return &s, nil
}

// FindByID returns a single saved search.
func (r *savedSearchRepository) FindByID(ctx context.Context, id int64) (*models.SavedSearch, error) {
	return findSavedSearch(ctx, r.db.Pool, id)
}

// Create stores a new saved search with a zero execution count.
func (r *savedSearchRepository) Create(ctx context.Context, req models.CreateSavedSearchRequest) (int64, error) {
	criteria, err := req.SearchCriteria.Encode()
	if err != nil {
		return 0, err
	}

	resultCount := 0
	if req.ResultCount != nil {
		resultCount = *req.ResultCount
	}

	var id int64
	err = r.db.Pool.QueryRow(ctx, `
		INSERT INTO saved_searches (user_id, search_name, search_criteria, result_count)
		VALUES ($1, $2, $3, $4)
		RETURNING search_id
	`, req.UserID, req.SearchName, criteria, resultCount).Scan(&id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return 0, ErrUnknownReference
		}
		return 0, fmt.Errorf("failed to create saved search %q: %w", req.SearchName, err)
	}
	return id, nil
}

// Update applies the partial update and reads the row back in one transaction.
func (r *savedSearchRepository) Update(ctx context.Context, id int64, req models.UpdateSavedSearchRequest) (*models.SavedSearch, error) {
	var set updateSet
	if req.SearchName != nil {
		set.add("search_name", *req.SearchName)
	}
	if req.SearchCriteria != nil {
		criteria, err := req.SearchCriteria.Encode()
		if err != nil {
			return nil, err
		}
		set.add("search_criteria", criteria)
	}
	if req.ResultCount != nil {
		set.add("result_count", *req.ResultCount)
	}
	if set.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	query, args := set.build("saved_searches", "search_id", id, "updated_at = now()")

	var updated *models.SavedSearch
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update saved search %d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		updated, err = findSavedSearch(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordExecution bumps the execution counters in a single statement.
func (r *savedSearchRepository) RecordExecution(ctx context.Context, id int64, resultCount int) (*models.SavedSearch, error) {
	query := `
	UPDATE saved_searches
	SET execution_count = execution_count + 1,
		last_executed = now(),
		result_count = $2,
		updated_at = now()
	WHERE search_id = $1
	RETURNING` + savedSearchColumns

	s, err := scanSavedSearch(r.db.Pool.QueryRow(ctx, query, id, resultCount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to record execution of saved search %d: %w", id, err)
	}
	return &s, nil
}

// Delete removes a saved search.
func (r *savedSearchRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM saved_searches WHERE search_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete saved search %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// MostUsed returns the user's searches ordered by execution count. Searches
// that never ran are included after the executed ones.
func (r *savedSearchRepository) MostUsed(ctx context.Context, userID int64, limit int) ([]models.SavedSearch, error) {
	query := "SELECT" + savedSearchColumns + `
	FROM saved_searches
	WHERE user_id = $1
	ORDER BY execution_count DESC, last_executed DESC NULLS LAST, search_id
	LIMIT $2`

	searches, err := r.querySearches(ctx, query, userID, models.ClampLimit(limit, models.SavedSearchListLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list most used searches for user %d: %w", userID, err)
	}
	return searches, nil
}

// Recent returns the user's most recently executed searches.
func (r *savedSearchRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.SavedSearch, error) {
	query := "SELECT" + savedSearchColumns + `
	FROM saved_searches
	WHERE user_id = $1 AND last_executed IS NOT NULL
	ORDER BY last_executed DESC, search_id DESC
	LIMIT $2`

	searches, err := r.querySearches(ctx, query, userID, models.ClampLimit(limit, models.SavedSearchListLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent searches for user %d: %w", userID, err)
	}
	return searches, nil
}

// SearchByName matches the user's searches by a case-insensitive name substring.
func (r *savedSearchRepository) SearchByName(ctx context.Context, userID int64, term string) ([]models.SavedSearch, error) {
	query := "SELECT" + savedSearchColumns + `
	FROM saved_searches
	WHERE user_id = $1 AND search_name ILIKE $2
	ORDER BY search_name, search_id`

	searches, err := r.querySearches(ctx, query, userID, likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search saved searches for user %d: %w", userID, err)
	}
	return searches, nil
}

// Stats summarizes how often the user's searches have been run.
func (r *savedSearchRepository) Stats(ctx context.Context, userID int64) (*models.SavedSearchStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_searches,
			COUNT(*) FILTER (WHERE execution_count > 0) AS executed_searches,
			COUNT(*) FILTER (WHERE execution_count = 0) AS unused_searches,
			ROUND(AVG(execution_count), 2)::float8 AS avg_executions,
			MAX(execution_count)::bigint AS max_executions
		FROM saved_searches
		WHERE user_id = $1
	`

	var s models.SavedSearchStats
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&s.TotalSearches,
		&s.ExecutedSearches,
		&s.UnusedSearches,
		&s.AvgExecutions,
		&s.MaxExecutions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved search stats for user %d: %w", userID, err)
	}
	return &s, nil
}
