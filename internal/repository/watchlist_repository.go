package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/vanprop/internal/database"
	"github.com/stwalsh4118/vanprop/internal/models"
)

// WatchlistRepository defines the data access operations for watchlists.
type WatchlistRepository interface {
	// ListByUser returns a user's items ordered by priority, then most recently added.
	ListByUser(ctx context.Context, userID int64) ([]models.WatchlistItem, error)

	// FindByID returns nil, nil if no item is found.
	FindByID(ctx context.Context, id int64) (*models.WatchlistItem, error)

	Exists(ctx context.Context, userID, propertyID int64) (bool, error)

	// Add inserts the (user, property) pair if absent and returns the stored item.
	// Returns ErrAlreadyInWatchlist if the pair exists and ErrUnknownReference
	// if the user or property does not.
	Add(ctx context.Context, req models.AddWatchlistRequest) (*models.WatchlistItem, error)

	// Update applies the non-nil fields and returns the rows affected.
	Update(ctx context.Context, id int64, req models.UpdateWatchlistRequest) (int64, error)

	Remove(ctx context.Context, id int64) (int64, error)
	RemoveByProperty(ctx context.Context, userID, propertyID int64) (int64, error)
	Clear(ctx context.Context, userID int64) (int64, error)

	Stats(ctx context.Context, userID int64) (*models.WatchlistStats, error)
	ByNeighborhood(ctx context.Context, userID int64) ([]models.WatchlistNeighborhood, error)
}

type watchlistRepository struct {
	db *database.Database
}

// NewWatchlistRepository creates a new instance of WatchlistRepository.
func NewWatchlistRepository(db *database.Database) WatchlistRepository {
	return &watchlistRepository{db: db}
}

const watchlistSelect = `
	SELECT
		w.watchlist_id,
		w.user_id,
		w.property_id,
		w.notes,
		w.priority,
		w.tags,
		w.added_at,
		w.updated_at,
		p.pid,
		p.civic_address,
		p.property_type,
		p.current_total_value,
		p.current_land_value,
		p.current_improvement_value,
		p.tax_levy,
		n.neighborhood_name
	FROM watchlist w
	INNER JOIN properties p ON p.property_id = w.property_id
	INNER JOIN neighborhoods n ON n.neighborhood_id = p.neighborhood_id`

func scanWatchlistItem(row rowScanner) (models.WatchlistItem, error) {
	var item models.WatchlistItem
	var tags *string

	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.PropertyID,
		&item.Notes,
		&item.Priority,
		&tags,
		&item.AddedAt,
		&item.UpdatedAt,
		&item.PID,
		&item.CivicAddress,
		&item.PropertyType,
		&item.CurrentTotalValue,
		&item.CurrentLandValue,
		&item.CurrentImprovementValue,
		&item.TaxLevy,
		&item.NeighborhoodName,
	); err != nil {
		return item, err
	}

	decoded, err := models.DecodeStringList(tags)
	if err != nil {
		return item, fmt.Errorf("failed to decode tags for watchlist item %d: %w", item.ID, err)
	}
	item.Tags = decoded
	return item, nil
}

// ListByUser returns the user's watchlist joined with property details.
func (r *watchlistRepository) ListByUser(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	query := watchlistSelect + `
	WHERE w.user_id = $1
	ORDER BY w.priority ASC, w.added_at DESC, w.watchlist_id DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist for user %d: %w", userID, err)
	}
	defer rows.Close()

	items := []models.WatchlistItem{}
	for rows.Next() {
		item, err := scanWatchlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist rows: %w", err)
	}
	return items, nil
}

func findWatchlistItem(ctx context.Context, q database.Querier, id int64) (*models.WatchlistItem, error) {
	item, err := scanWatchlistItem(q.QueryRow(ctx, watchlistSelect+"\n\tWHERE w.watchlist_id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query watchlist item %d: %w", id, err)
	}
	return &item, nil
}

// FindByID returns a single watchlist item.
func (r *watchlistRepository) FindByID(ctx context.Context, id int64) (*models.WatchlistItem, error) {
	return findWatchlistItem(ctx, r.db.Pool, id)
}

// Exists reports whether the property is on the user's watchlist.
func (r *watchlistRepository) Exists(ctx context.Context, userID, propertyID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM watchlist WHERE user_id = $1 AND property_id = $2)`,
		userID, propertyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check watchlist for user %d property %d: %w", userID, propertyID, err)
	}
	return exists, nil
}

// Add performs a conditional insert keyed on the (user_id, property_id)
// constraint and reads the new row back in the same transaction.
func (r *watchlistRepository) Add(ctx context.Context, req models.AddWatchlistRequest) (*models.WatchlistItem, error) {
	tags, err := req.Tags.Encode()
	if err != nil {
		return nil, err
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}
	priority := models.DefaultWatchlistPriority
	if req.Priority != nil {
		priority = *req.Priority
	}

	var item *models.WatchlistItem
	err = r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO watchlist (user_id, property_id, notes, priority, tags)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, property_id) DO NOTHING
			RETURNING watchlist_id
		`, req.UserID, req.PropertyID, notes, priority, tags).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrAlreadyInWatchlist
			}
			if _, ok := database.ForeignKeyViolation(err); ok {
				return ErrUnknownReference
			}
			return fmt.Errorf("failed to add property %d to watchlist of user %d: %w", req.PropertyID, req.UserID, err)
		}

		item, err = findWatchlistItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial update to a watchlist item.
func (r *watchlistRepository) Update(ctx context.Context, id int64, req models.UpdateWatchlistRequest) (int64, error) {
	var set updateSet
	if req.Notes != nil {
		set.add("notes", *req.Notes)
	}
	if req.Priority != nil {
		set.add("priority", *req.Priority)
	}
	if req.Tags != nil {
		tags, err := req.Tags.Encode()
		if err != nil {
			return 0, err
		}
		set.add("tags", tags)
	}
	if set.empty() {
		return 0, ErrNoFieldsToUpdate
	}

	query, args := set.build("watchlist", "watchlist_id", id, "updated_at = now()")
	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update watchlist item %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// Remove deletes a watchlist item by id.
func (r *watchlistRepository) Remove(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM watchlist WHERE watchlist_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to remove watchlist item %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// RemoveByProperty deletes the item for a (user, property) pair.
func (r *watchlistRepository) RemoveByProperty(ctx context.Context, userID, propertyID int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM watchlist WHERE user_id = $1 AND property_id = $2`, userID, propertyID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove property %d from watchlist of user %d: %w", propertyID, userID, err)
	}
	return tag.RowsAffected(), nil
}

// Clear deletes every item on a user's watchlist.
func (r *watchlistRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM watchlist WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear watchlist of user %d: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}

// Stats summarizes value and priority across a user's watchlist.
func (r *watchlistRepository) Stats(ctx context.Context, userID int64) (*models.WatchlistStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_properties,
			ROUND(AVG(p.current_total_value), 2) AS avg_value,
			ROUND(MIN(p.current_total_value), 2) AS min_value,
			ROUND(MAX(p.current_total_value), 2) AS max_value,
			COUNT(*) FILTER (WHERE w.priority = $2) AS high_priority_count,
			COUNT(*) FILTER (WHERE w.priority = $3) AS low_priority_count
		FROM watchlist w
		INNER JOIN properties p ON p.property_id = w.property_id
		WHERE w.user_id = $1
	`

	var s models.WatchlistStats
	err := r.db.Pool.QueryRow(ctx, query, userID, models.HighPriority, models.LowPriority).Scan(
		&s.TotalProperties,
		&s.AvgValue,
		&s.MinValue,
		&s.MaxValue,
		&s.HighPriorityCount,
		&s.LowPriorityCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist stats for user %d: %w", userID, err)
	}
	return &s, nil
}

// ByNeighborhood groups a user's watchlist by neighborhood.
func (r *watchlistRepository) ByNeighborhood(ctx context.Context, userID int64) ([]models.WatchlistNeighborhood, error) {
	query := `
		SELECT
			n.neighborhood_name,
			COUNT(w.watchlist_id) AS property_count,
			ROUND(AVG(p.current_total_value), 2) AS avg_value
		FROM watchlist w
		INNER JOIN properties p ON p.property_id = w.property_id
		INNER JOIN neighborhoods n ON n.neighborhood_id = p.neighborhood_id
		WHERE w.user_id = $1
		GROUP BY n.neighborhood_id, n.neighborhood_name
		ORDER BY property_count DESC, n.neighborhood_name
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to group watchlist of user %d: %w", userID, err)
	}
	defer rows.Close()

	groups := []models.WatchlistNeighborhood{}
	for rows.Next() {
		var g models.WatchlistNeighborhood
		if err := rows.Scan(&g.NeighborhoodName, &g.PropertyCount, &g.AvgValue); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist neighborhood row: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist neighborhood rows: %w", err)
	}
	return groups, nil
}
