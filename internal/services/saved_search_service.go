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

// SavedSearchService defines the operations on saved searches.
type SavedSearchService interface {
	ListSearches(ctx context.Context, userID int64) ([]models.SavedSearch, error)

	// GetSearch returns ErrSavedSearchNotFound if no search has the id.
	GetSearch(ctx context.Context, id int64) (*models.SavedSearch, error)

	// CreateSearch returns the new search id, or ErrUserNotFound for an unknown owner.
	CreateSearch(ctx context.Context, req models.CreateSavedSearchRequest) (int64, error)

	// UpdateSearch returns the updated search. Returns ErrNoFieldsToUpdate for
	// an empty update and ErrSavedSearchNotFound when no row was changed.
	UpdateSearch(ctx context.Context, id int64, req models.UpdateSavedSearchRequest) (*models.SavedSearch, error)

	// ExecuteSearch records one run of the search with the caller's result count.
	ExecuteSearch(ctx context.Context, id int64, resultCount int) (*models.SavedSearch, error)

	DeleteSearch(ctx context.Context, id int64) error

	MostUsed(ctx context.Context, userID int64) ([]models.SavedSearch, error)
	Recent(ctx context.Context, userID int64) ([]models.SavedSearch, error)
	SearchByName(ctx context.Context, userID int64, term string) ([]models.SavedSearch, error)
	Stats(ctx context.Context, userID int64) (*models.SavedSearchStats, error)
}

type savedSearchService struct {
	repo repository.SavedSearchRepository
	log  *logger.Logger
}

// NewSavedSearchService creates a new instance of SavedSearchService.
func NewSavedSearchService(repo repository.SavedSearchRepository, log *logger.Logger) SavedSearchService {
	return &savedSearchService{
		repo: repo,
		log:  log.WithComponent("saved_search_service"),
	}
}

func (s *savedSearchService) ListSearches(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	searches, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "list saved searches")
	}
	return searches, nil
}

func (s *savedSearchService) GetSearch(ctx context.Context, id int64) (*models.SavedSearch, error) {
	search, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get saved search")
	}
	if search == nil {
		return nil, ErrSavedSearchNotFound
	}
	return search, nil
}

func (s *savedSearchService) CreateSearch(ctx context.Context, req models.CreateSavedSearchRequest) (int64, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownReference) {
			return 0, ErrUserNotFound
		}
		return 0, translate(err, "create saved search")
	}

	s.log.Info("Saved search created", logger.Fields{
		"search_id": id,
		"user_id":   req.UserID,
	})
	return id, nil
}

func (s *savedSearchService) UpdateSearch(ctx context.Context, id int64, req models.UpdateSavedSearchRequest) (*models.SavedSearch, error) {
	if req.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	search, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, translate(err, "update saved search")
	}
	if search == nil {
		return nil, ErrSavedSearchNotFound
	}
	return search, nil
}

func (s *savedSearchService) ExecuteSearch(ctx context.Context, id int64, resultCount int) (*models.SavedSearch, error) {
	if resultCount < 0 {
		return nil, fmt.Errorf("%w: result_count must not be negative", ErrInvalidArgument)
	}

	search, err := s.repo.RecordExecution(ctx, id, resultCount)
	if err != nil {
		return nil, translate(err, "execute saved search")
	}
	if search == nil {
		return nil, ErrSavedSearchNotFound
	}

	s.log.Debug("Saved search executed", logger.Fields{
		"search_id":       id,
		"execution_count": search.ExecutionCount,
		"result_count":    resultCount,
	})
	return search, nil
}

func (s *savedSearchService) DeleteSearch(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return translate(err, "delete saved search")
	}
	if n == 0 {
		return ErrSavedSearchNotFound
	}
	return nil
}

func (s *savedSearchService) MostUsed(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	searches, err := s.repo.MostUsed(ctx, userID, models.SavedSearchListLimit)
	if err != nil {
		return nil, translate(err, "list most used searches")
	}
	return searches, nil
}

func (s *savedSearchService) Recent(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	searches, err := s.repo.Recent(ctx, userID, models.SavedSearchListLimit)
	if err != nil {
		return nil, translate(err, "list recent searches")
	}
	return searches, nil
}

func (s *savedSearchService) SearchByName(ctx context.Context, userID int64, term string) ([]models.SavedSearch, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidArgument)
	}

	searches, err := s.repo.SearchByName(ctx, userID, term)
	if err != nil {
		return nil, translate(err, "search saved searches")
	}
	return searches, nil
}

func (s *savedSearchService) Stats(ctx context.Context, userID int64) (*models.SavedSearchStats, error) {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return nil, translate(err, "compute saved search stats")
	}
	return stats, nil
}
