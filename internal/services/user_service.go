package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stwalsh4118/vanprop/internal/logger"
	"github.com/stwalsh4118/vanprop/internal/models"
	"github.com/stwalsh4118/vanprop/internal/repository"
)

// UserService defines the business operations over user accounts.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser returns ErrUserNotFound if no user has the id.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// GetUserByUsername returns ErrUserNotFound if no user has the username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateUser returns the new user id, or ErrUsernameTaken / ErrEmailTaken.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (int64, error)

	// UpdateUser returns ErrNoFieldsToUpdate for an empty update and
	// ErrUserNotFound when no row was changed.
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) error

	RecordLogin(ctx context.Context, id int64) error

	// DeleteUser returns ErrUserHasDependents while watchlist items or saved searches exist.
	DeleteUser(ctx context.Context, id int64) error

	GetActivity(ctx context.Context, id int64) (*models.UserActivity, error)

	// InactiveUsers lists users who have not logged in for at least days days.
	InactiveUsers(ctx context.Context, days int) ([]models.User, error)
}

type userService struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo repository.UserRepository, log *logger.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.WithComponent("user_service"),
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, translate(err, "list users")
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get user")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "get user by username")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (int64, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) || errors.Is(err, repository.ErrEmailTaken) {
			s.log.Warn("User rejected by uniqueness constraint", logger.Fields{
				"username": req.Username,
				"reason":   err.Error(),
			})
		}
		return 0, translate(err, "create user")
	}

	s.log.Info("User created", logger.Fields{
		"user_id":  id,
		"username": req.Username,
	})
	return id, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) error {
	if req.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	n, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return translate(err, "update user")
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) RecordLogin(ctx context.Context, id int64) error {
	n, err := s.repo.TouchLastLogin(ctx, id)
	if err != nil {
		return translate(err, "record login")
	}
	if n == 0 {
		return ErrUserNotFound
	}

	s.log.Debug("Login recorded", logger.Fields{"user_id": id})
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHasDependents) {
			return ErrUserHasDependents
		}
		return translate(err, "delete user")
	}
	if n == 0 {
		return ErrUserNotFound
	}

	s.log.Info("User deleted", logger.Fields{"user_id": id})
	return nil
}

func (s *userService) GetActivity(ctx context.Context, id int64) (*models.UserActivity, error) {
	activity, err := s.repo.ActivitySummary(ctx, id)
	if err != nil {
		return nil, translate(err, "get user activity")
	}
	if activity == nil {
		return nil, ErrUserNotFound
	}
	return activity, nil
}

func (s *userService) InactiveUsers(ctx context.Context, days int) ([]models.User, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be a positive integer", ErrInvalidArgument)
	}
	if days > models.MaxInactiveDays {
		return nil, fmt.Errorf("%w: days must be at most %d", ErrInvalidArgument, models.MaxInactiveDays)
	}

	users, err := s.repo.Inactive(ctx, days)
	if err != nil {
		return nil, translate(err, "list inactive users")
	}
	return users, nil
}
