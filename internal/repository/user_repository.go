package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/vanprop/internal/database"
	"github.com/stwalsh4118/vanprop/internal/models"
)

// UserRepository defines the data access operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)

	// FindByID returns nil, nil if no user is found.
	FindByID(ctx context.Context, id int64) (*models.User, error)

	// FindByUsername returns nil, nil if no user is found.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Create inserts a user and returns its id.
	// Returns ErrUsernameTaken or ErrEmailTaken when a unique constraint rejects the row.
	Create(ctx context.Context, req models.CreateUserRequest) (int64, error)

	// Update applies the non-nil fields and returns the rows affected.
	Update(ctx context.Context, id int64, req models.UpdateUserRequest) (int64, error)

	TouchLastLogin(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)

	// ActivitySummary returns nil, nil if no user is found.
	ActivitySummary(ctx context.Context, id int64) (*models.UserActivity, error)

	// Inactive lists users whose last login is older than days, or who never logged in.
	Inactive(ctx context.Context, days int) ([]models.User, error)
}

type userRepository struct {
	db *database.Database
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	u.user_id,
	u.username,
	u.email,
	u.full_name,
	u.preferred_neighborhoods,
	u.price_range_min,
	u.price_range_max,
	u.account_status,
	u.created_at,
	u.updated_at,
	u.last_login`

func scanUser(row rowScanner, extra ...interface{}) (models.User, error) {
	var u models.User
	var preferred *string

	dest := []interface{}{
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FullName,
		&preferred,
		&u.PriceRangeMin,
		&u.PriceRangeMax,
		&u.AccountStatus,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLogin,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return u, err
	}

	list, err := models.DecodeStringList(preferred)
	if err != nil {
		return u, fmt.Errorf("failed to decode preferred neighborhoods for user %d: %w", u.ID, err)
	}
	u.PreferredNeighborhoods = list
	return u, nil
}

func (r *userRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// List returns all users, newest first.
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	users, err := r.queryUsers(ctx, "SELECT"+userColumns+"\n\tFROM users u\n\tORDER BY u.created_at DESC, u.user_id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) findOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx, "SELECT"+userColumns+"\n\tFROM users u\n\tWHERE "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByID looks up a user by id.
func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := r.findOne(ctx, "u.user_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %d: %w", id, err)
	}
	return u, nil
}

// FindByUsername looks up a user by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := r.findOne(ctx, "u.username = $1", username)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %q: %w", username, err)
	}
	return u, nil
}

// userConstraintError maps unique violations on users to typed conflicts.
func userConstraintError(err error) error {
	constraint, ok := database.UniqueViolation(err)
	if !ok {
		return nil
	}
	switch constraint {
	case "users_username_key":
		return ErrUsernameTaken
	case "users_email_key":
		return ErrEmailTaken
	}
	return nil
}

// Create inserts a user.
func (r *userRepository) Create(ctx context.Context, req models.CreateUserRequest) (int64, error) {
	preferred, err := req.PreferredNeighborhoods.Encode()
	if err != nil {
		return 0, err
	}

	status := req.AccountStatus
	if status == "" {
		status = models.DefaultAccountStatus
	}

	query := `
		INSERT INTO users (
			username, email, full_name, preferred_neighborhoods,
			price_range_min, price_range_max, account_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id
	`

	var id int64
	err = r.db.Pool.QueryRow(ctx, query,
		req.Username,
		req.Email,
		req.FullName,
		preferred,
		req.PriceRangeMin,
		req.PriceRangeMax,
		status,
	).Scan(&id)
	if err != nil {
		if typed := userConstraintError(err); typed != nil {
			return 0, typed
		}
		return 0, fmt.Errorf("failed to create user %q: %w", req.Username, err)
	}
	return id, nil
}

// Update applies a partial update and stamps updated_at.
func (r *userRepository) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (int64, error) {
	var set updateSet
	if req.FullName != nil {
		set.add("full_name", *req.FullName)
	}
	if req.Email != nil {
		set.add("email", *req.Email)
	}
	if req.PreferredNeighborhoods != nil {
		preferred, err := req.PreferredNeighborhoods.Encode()
		if err != nil {
			return 0, err
		}
		set.add("preferred_neighborhoods", preferred)
	}
	if req.PriceRangeMin != nil {
		set.add("price_range_min", *req.PriceRangeMin)
	}
	if req.PriceRangeMax != nil {
		set.add("price_range_max", *req.PriceRangeMax)
	}
	if req.AccountStatus != nil {
		set.add("account_status", *req.AccountStatus)
	}
	if set.empty() {
		return 0, ErrNoFieldsToUpdate
	}

	query, args := set.build("users", "user_id", id, "updated_at = now()")
	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		if typed := userConstraintError(err); typed != nil {
			return 0, typed
		}
		return 0, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// TouchLastLogin stamps the user's last login time.
func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE users SET last_login = now() WHERE user_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update last login for user %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a user.
func (r *userRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return 0, ErrHasDependents
		}
		return 0, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// ActivitySummary returns the user with counts of owned records.
func (r *userRepository) ActivitySummary(ctx context.Context, id int64) (*models.UserActivity, error) {
	query := "SELECT" + userColumns + `,
	(SELECT COUNT(*) FROM watchlist w WHERE w.user_id = u.user_id) AS watchlist_count,
	(SELECT COUNT(*) FROM saved_searches s WHERE s.user_id = u.user_id) AS saved_searches_count
	FROM users u
	WHERE u.user_id = $1`

	var activity models.UserActivity
	u, err := scanUser(r.db.Pool.QueryRow(ctx, query, id), &activity.WatchlistCount, &activity.SavedSearchesCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query activity for user %d: %w", id, err)
	}
	activity.User = u
	return &activity, nil
}

// Inactive lists users who have not logged in within the given number of days.
func (r *userRepository) Inactive(ctx context.Context, days int) ([]models.User, error) {
	query := "SELECT" + userColumns + `
	FROM users u
	WHERE u.last_login IS NULL OR u.last_login < now() - make_interval(days => $1)
	ORDER BY u.last_login ASC NULLS FIRST, u.user_id`

	users, err := r.queryUsers(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to list users inactive for %d days: %w", days, err)
	}
	return users, nil
}
