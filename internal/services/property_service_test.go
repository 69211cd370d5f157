package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/vanprop/internal/logger"
	"github.com/stwalsh4118/vanprop/internal/models"
	"github.com/stwalsh4118/vanprop/internal/repository"
)

func newPropertyService() (*MockPropertyRepository, PropertyService) {
	repo := new(MockPropertyRepository)
	return repo, NewPropertyService(repo, logger.New("test"))
}

func TestGetProperty_Success(t *testing.T) {
	// Arrange
	repo, service := newPropertyService()
	ctx := context.Background()

	property := &models.Property{ID: 42, PID: "012-345-678", NeighborhoodName: "Kitsilano"}
	history := []models.TaxHistory{{ID: 1, PropertyID: 42, AssessmentYear: 2024}}

	// the reads run on an errgroup context
	repo.On("FindByID", mock.Anything, int64(42)).Return(property, nil)
	repo.On("History", mock.Anything, int64(42)).Return(history, nil)

	// Act
	got, err := service.GetProperty(ctx, 42)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "012-345-678", got.PID)
	assert.Equal(t, history, got.TaxHistory)
	repo.AssertExpectations(t)
}

func TestGetProperty_NotFound(t *testing.T) {
	repo, service := newPropertyService()

	repo.On("FindByID", mock.Anything, int64(7)).Return(nil, nil)
	repo.On("History", mock.Anything, int64(7)).Return([]models.TaxHistory{}, nil)

	got, err := service.GetProperty(context.Background(), 7)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestGetProperty_HistoryFailure(t *testing.T) {
	repo, service := newPropertyService()
	dbErr := errors.New("connection reset")

	repo.On("FindByID", mock.Anything, int64(7)).Return(&models.Property{ID: 7}, nil)
	repo.On("History", mock.Anything, int64(7)).Return(nil, dbErr)

	got, err := service.GetProperty(context.Background(), 7)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, IsNotFound(err))
}

func TestListProperties_InvalidSort(t *testing.T) {
	repo, service := newPropertyService()
	ctx := context.Background()
	filter := models.PropertyFilter{SortBy: "password"}

	repo.On("List", ctx, filter).Return(nil, repository.ErrInvalidSortField)

	got, err := service.ListProperties(ctx, filter)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "invalid sort field")
}

func TestListProperties_Success(t *testing.T) {
	repo, service := newPropertyService()
	ctx := context.Background()
	filter := models.PropertyFilter{Neighborhood: "Kitsilano"}
	properties := []models.Property{{ID: 1}, {ID: 2}}

	repo.On("List", ctx, filter).Return(properties, nil)

	got, err := service.ListProperties(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}

func TestSearchProperties_BlankTerm(t *testing.T) {
	repo, service := newPropertyService()

	_, err := service.SearchProperties(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrInvalidArgument)
	repo.AssertNotCalled(t, "SearchByAddress")
}

func TestSearchProperties_UsesResultLimit(t *testing.T) {
	repo, service := newPropertyService()
	ctx := context.Background()

	repo.On("SearchByAddress", ctx, "main st", models.SearchResultLimit).Return([]models.Property{}, nil)

	got, err := service.SearchProperties(ctx, "  main st ")

	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertExpectations(t)
}

func TestTopProperties_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, models.DefaultTopLimit},
		{"negative", -3, models.DefaultTopLimit},
		{"explicit", 25, 25},
		{"capped", 10000, models.MaxPropertyLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, service := newPropertyService()
			ctx := context.Background()

			repo.On("Top", ctx, tt.want).Return([]models.Property{}, nil)

			_, err := service.TopProperties(ctx, tt.limit)

			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestFilterOptions_Success(t *testing.T) {
	repo, service := newPropertyService()

	neighborhoods := []models.Neighborhood{{ID: 1, Name: "Kitsilano"}}
	types := []string{"Residential", "Strata"}
	repo.On("Neighborhoods", mock.Anything).Return(neighborhoods, nil)
	repo.On("PropertyTypes", mock.Anything).Return(types, nil)

	opts, err := service.FilterOptions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, neighborhoods, opts.Neighborhoods)
	assert.Equal(t, types, opts.PropertyTypes)
}

func TestFilterOptions_Failure(t *testing.T) {
	repo, service := newPropertyService()

	repo.On("Neighborhoods", mock.Anything).Return(nil, errors.New("boom"))
	repo.On("PropertyTypes", mock.Anything).Return([]string{}, nil).Maybe()

	opts, err := service.FilterOptions(context.Background())

	assert.Nil(t, opts)
	assert.Error(t, err)
}

func TestCreateProperty_MapsConstraintErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"duplicate pid", repository.ErrDuplicatePID, ErrDuplicatePID},
		{"unknown neighborhood", repository.ErrUnknownNeighborhood, ErrUnknownNeighborhood},
		{"negative value", repository.ErrNegativeValue, ErrNegativeValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, service := newPropertyService()
			ctx := context.Background()
			req := models.CreatePropertyRequest{PID: "P", CivicAddress: "A", NeighborhoodID: 1}

			repo.On("Create", ctx, req).Return(int64(0), tt.repoErr)

			_, err := service.CreateProperty(ctx, req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateProperty_Success(t *testing.T) {
	repo, service := newPropertyService()
	ctx := context.Background()
	req := models.CreatePropertyRequest{PID: "P", CivicAddress: "A", NeighborhoodID: 1}

	repo.On("Create", ctx, req).Return(int64(99), nil)

	id, err := service.CreateProperty(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
}

func TestUpdateProperty_NoRows(t *testing.T) {
	repo, service := newPropertyService()
	ctx := context.Background()
	req := models.UpdatePropertyRequest{CurrentLandValue: 1}

	repo.On("UpdateValues", ctx, int64(5), req).Return(int64(0), nil)

	err := service.UpdateProperty(ctx, 5, req)

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestDeleteProperty(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		repoErr error
		wantErr error
	}{
		{"deleted", 1, nil, nil},
		{"missing", 0, nil, ErrPropertyNotFound},
		{"referenced", 0, repository.ErrHasDependents, ErrPropertyHasDependents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, service := newPropertyService()
			ctx := context.Background()

			repo.On("Delete", ctx, int64(3)).Return(tt.rows, tt.repoErr)

			err := service.DeleteProperty(ctx, 3)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetPropertyByPID_NotFound(t *testing.T) {
	repo, service := newPropertyService()
	ctx := context.Background()

	repo.On("FindByPID", ctx, "missing").Return(nil, nil)

	_, err := service.GetPropertyByPID(ctx, "missing")

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}
