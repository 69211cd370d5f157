package services

import (
	"context"
	"errors"

	"github.com/stwalsh4118/vanprop/internal/logger"
	"github.com/stwalsh4118/vanprop/internal/models"
	"github.com/stwalsh4118/vanprop/internal/repository"
)

// WatchlistService defines the operations on users' property watchlists.
type WatchlistService interface {
	GetWatchlist(ctx context.Context, userID int64) ([]models.WatchlistItem, error)

	// GetItem returns ErrWatchlistItemNotFound if no item has the id.
	GetItem(ctx context.Context, id int64) (*models.WatchlistItem, error)

	IsInWatchlist(ctx context.Context, userID, propertyID int64) (bool, error)

	// AddProperty returns ErrAlreadyInWatchlist when the pair exists and
	// ErrUserOrPropertyNotFound when either side is missing.
	AddProperty(ctx context.Context, req models.AddWatchlistRequest) (*models.WatchlistItem, error)

	// UpdateItem returns ErrNoFieldsToUpdate for an empty update and
	// ErrWatchlistItemNotFound when no row was changed.
	UpdateItem(ctx context.Context, id int64, req models.UpdateWatchlistRequest) error

	RemoveItem(ctx context.Context, id int64) error
	RemoveProperty(ctx context.Context, userID, propertyID int64) error

	// ClearWatchlist removes every item and returns how many were removed.
	ClearWatchlist(ctx context.Context, userID int64) (int64, error)

	Stats(ctx context.Context, userID int64) (*models.WatchlistStats, error)
	ByNeighborhood(ctx context.Context, userID int64) ([]models.WatchlistNeighborhood, error)
}

type watchlistService struct {
	repo repository.WatchlistRepository
	log  *logger.Logger
}

// NewWatchlistService creates a new instance of WatchlistService.
func NewWatchlistService(repo repository.WatchlistRepository, log *logger.Logger) WatchlistService {
	return &watchlistService{
		repo: repo,
		log:  log.WithComponent("watchlist_service"),
	}
}

func (s *watchlistService) GetWatchlist(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "get watchlist")
	}
	return items, nil
}

func (s *watchlistService) GetItem(ctx context.Context, id int64) (*models.WatchlistItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get watchlist item")
	}
	if item == nil {
		return nil, ErrWatchlistItemNotFound
	}
	return item, nil
}

func (s *watchlistService) IsInWatchlist(ctx context.Context, userID, propertyID int64) (bool, error) {
	exists, err := s.repo.Exists(ctx, userID, propertyID)
	if err != nil {
		return false, translate(err, "check watchlist")
	}
	return exists, nil
}

func (s *watchlistService) AddProperty(ctx context.Context, req models.AddWatchlistRequest) (*models.WatchlistItem, error) {
	item, err := s.repo.Add(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownReference) {
			return nil, ErrUserOrPropertyNotFound
		}
		return nil, translate(err, "add to watchlist")
	}

	s.log.Info("Property added to watchlist", logger.Fields{
		"user_id":      req.UserID,
		"property_id":  req.PropertyID,
		"watchlist_id": item.ID,
	})
	return item, nil
}

func (s *watchlistService) UpdateItem(ctx context.Context, id int64, req models.UpdateWatchlistRequest) error {
	if req.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	n, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return translate(err, "update watchlist item")
	}
	if n == 0 {
		return ErrWatchlistItemNotFound
	}
	return nil
}

func (s *watchlistService) RemoveItem(ctx context.Context, id int64) error {
	n, err := s.repo.Remove(ctx, id)
	if err != nil {
		return translate(err, "remove watchlist item")
	}
	if n == 0 {
		return ErrWatchlistItemNotFound
	}
	return nil
}

func (s *watchlistService) RemoveProperty(ctx context.Context, userID, propertyID int64) error {
	n, err := s.repo.RemoveByProperty(ctx, userID, propertyID)
	if err != nil {
		return translate(err, "remove property from watchlist")
	}
	if n == 0 {
		return ErrNotInWatchlist
	}
	return nil
}

func (s *watchlistService) ClearWatchlist(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return 0, translate(err, "clear watchlist")
	}

	s.log.Info("Watchlist cleared", logger.Fields{
		"user_id": userID,
		"removed": n,
	})
	return n, nil
}

func (s *watchlistService) Stats(ctx context.Context, userID int64) (*models.WatchlistStats, error) {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return nil, translate(err, "compute watchlist stats")
	}
	return stats, nil
}

func (s *watchlistService) ByNeighborhood(ctx context.Context, userID int64) ([]models.WatchlistNeighborhood, error) {
	groups, err := s.repo.ByNeighborhood(ctx, userID)
	if err != nil {
		return nil, translate(err, "group watchlist by neighborhood")
	}
	return groups, nil
}
