package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/stwalsh4118/vanprop/internal/logger"
	"github.com/stwalsh4118/vanprop/internal/models"
	"github.com/stwalsh4118/vanprop/internal/repository"
)

// PropertyService defines the business operations over properties,
// neighborhoods and their statistics.
type PropertyService interface {
	// ListProperties returns properties matching the filter.
	// Returns ErrInvalidArgument for sort keys outside the allow-list.
	ListProperties(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error)

	// GetProperty returns the property with its neighborhood description and tax history.
	// Returns ErrPropertyNotFound if no property has the id.
	GetProperty(ctx context.Context, id int64) (*models.Property, error)

	// GetPropertyByPID returns ErrPropertyNotFound if no property has the pid.
	GetPropertyByPID(ctx context.Context, pid string) (*models.Property, error)

	SearchProperties(ctx context.Context, term string) ([]models.Property, error)
	GetTaxHistory(ctx context.Context, id int64) ([]models.TaxHistory, error)
	ListByNeighborhood(ctx context.Context, name string) ([]models.Property, error)

	// TopProperties returns the most valuable properties. A non-positive limit
	// uses the default and larger limits are capped.
	TopProperties(ctx context.Context, limit int) ([]models.Property, error)

	Neighborhoods(ctx context.Context) ([]models.Neighborhood, error)
	PropertyTypes(ctx context.Context) ([]string, error)
	FilterOptions(ctx context.Context) (*models.FilterOptions, error)
	NeighborhoodStats(ctx context.Context) ([]models.NeighborhoodStats, error)
	PropertyTypeStats(ctx context.Context) ([]models.PropertyTypeStats, error)

	// CreateProperty returns the new property id.
	// Returns ErrDuplicatePID, ErrUnknownNeighborhood or ErrNegativeValue when the store rejects the row.
	CreateProperty(ctx context.Context, req models.CreatePropertyRequest) (int64, error)

	// UpdateProperty returns ErrPropertyNotFound when no row was changed.
	UpdateProperty(ctx context.Context, id int64, req models.UpdatePropertyRequest) error

	// DeleteProperty returns ErrPropertyNotFound when no row was removed and
	// ErrPropertyHasDependents while other records reference it.
	DeleteProperty(ctx context.Context, id int64) error
}

type propertyService struct {
	repo repository.PropertyRepository
	log  *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(repo repository.PropertyRepository, log *logger.Logger) PropertyService {
	return &propertyService{
		repo: repo,
		log:  log.WithComponent("property_service"),
	}
}

func (s *propertyService) ListProperties(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	properties, err := s.repo.List(ctx, filter)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortField) || errors.Is(err, repository.ErrInvalidSortOrder) {
			s.log.Warn("Rejected property sort", logger.Fields{
				"sort_by":    filter.SortBy,
				"sort_order": filter.SortOrder,
			})
		}
		return nil, translate(err, "list properties")
	}

	s.log.Debug("Listed properties", logger.Fields{
		"count":  len(properties),
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
	return properties, nil
}

// GetProperty reads the property row and its tax history concurrently.
func (s *propertyService) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	var (
		property *models.Property
		history  []models.TaxHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.repo.FindByID(gctx, id)
		property = p
		return err
	})
	g.Go(func() error {
		h, err := s.repo.History(gctx, id)
		history = h
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to load property", err, logger.Fields{"property_id": id})
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}

	property.TaxHistory = history
	return property, nil
}

func (s *propertyService) GetPropertyByPID(ctx context.Context, pid string) (*models.Property, error) {
	pid = strings.TrimSpace(pid)
	if pid == "" {
		return nil, fmt.Errorf("%w: pid is required", ErrInvalidArgument)
	}

	property, err := s.repo.FindByPID(ctx, pid)
	if err != nil {
		return nil, translate(err, "get property by pid")
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}
	return property, nil
}

func (s *propertyService) SearchProperties(ctx context.Context, term string) ([]models.Property, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidArgument)
	}

	properties, err := s.repo.SearchByAddress(ctx, term, models.SearchResultLimit)
	if err != nil {
		return nil, translate(err, "search properties")
	}
	return properties, nil
}

func (s *propertyService) GetTaxHistory(ctx context.Context, id int64) ([]models.TaxHistory, error) {
	history, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, translate(err, "get tax history")
	}
	return history, nil
}

func (s *propertyService) ListByNeighborhood(ctx context.Context, name string) ([]models.Property, error) {
	properties, err := s.repo.ListByNeighborhood(ctx, strings.TrimSpace(name), models.NeighborhoodLimit)
	if err != nil {
		return nil, translate(err, "list properties by neighborhood")
	}
	return properties, nil
}

func (s *propertyService) TopProperties(ctx context.Context, limit int) ([]models.Property, error) {
	properties, err := s.repo.Top(ctx, models.ClampLimit(limit, models.DefaultTopLimit))
	if err != nil {
		return nil, translate(err, "list top properties")
	}
	return properties, nil
}

func (s *propertyService) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	neighborhoods, err := s.repo.Neighborhoods(ctx)
	if err != nil {
		return nil, translate(err, "list neighborhoods")
	}
	return neighborhoods, nil
}

func (s *propertyService) PropertyTypes(ctx context.Context) ([]string, error) {
	types, err := s.repo.PropertyTypes(ctx)
	if err != nil {
		return nil, translate(err, "list property types")
	}
	return types, nil
}

// FilterOptions loads neighborhoods and property types concurrently.
func (s *propertyService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	var opts models.FilterOptions

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.Neighborhoods(gctx)
		opts.Neighborhoods = n
		return err
	})
	g.Go(func() error {
		t, err := s.repo.PropertyTypes(gctx)
		opts.PropertyTypes = t
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load filter options: %w", err)
	}
	return &opts, nil
}

func (s *propertyService) NeighborhoodStats(ctx context.Context) ([]models.NeighborhoodStats, error) {
	stats, err := s.repo.NeighborhoodStats(ctx)
	if err != nil {
		return nil, translate(err, "compute neighborhood stats")
	}
	return stats, nil
}

func (s *propertyService) PropertyTypeStats(ctx context.Context) ([]models.PropertyTypeStats, error) {
	stats, err := s.repo.PropertyTypeStats(ctx)
	if err != nil {
		return nil, translate(err, "compute property type stats")
	}
	return stats, nil
}

func (s *propertyService) CreateProperty(ctx context.Context, req models.CreatePropertyRequest) (int64, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return 0, translate(err, "create property")
	}

	s.log.Info("Property created", logger.Fields{
		"property_id": id,
		"pid":         req.PID,
	})
	return id, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, id int64, req models.UpdatePropertyRequest) error {
	n, err := s.repo.UpdateValues(ctx, id, req)
	if err != nil {
		return translate(err, "update property")
	}
	if n == 0 {
		return ErrPropertyNotFound
	}

	s.log.Info("Property values updated", logger.Fields{"property_id": id})
	return nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHasDependents) {
			return ErrPropertyHasDependents
		}
		return translate(err, "delete property")
	}
	if n == 0 {
		return ErrPropertyNotFound
	}

	s.log.Info("Property deleted", logger.Fields{"property_id": id})
	return nil
}
