package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stwalsh4118/vanprop/internal/models"
)

// MockPropertyService is a mock implementation of services.PropertyService.
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) ListProperties(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]models.Property)
	return v, args.Error(1)
}

func (m *MockPropertyService) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Property)
	return v, args.Error(1)
}

func (m *MockPropertyService) GetPropertyByPID(ctx context.Context, pid string) (*models.Property, error) {
	args := m.Called(ctx, pid)
	v, _ := args.Get(0).(*models.Property)
	return v, args.Error(1)
}

func (m *MockPropertyService) SearchProperties(ctx context.Context, term string) ([]models.Property, error) {
	args := m.Called(ctx, term)
	v, _ := args.Get(0).([]models.Property)
	return v, args.Error(1)
}

func (m *MockPropertyService) GetTaxHistory(ctx context.Context, id int64) ([]models.TaxHistory, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).([]models.TaxHistory)
	return v, args.Error(1)
}

func (m *MockPropertyService) ListByNeighborhood(ctx context.Context, name string) ([]models.Property, error) {
	args := m.Called(ctx, name)
	v, _ := args.Get(0).([]models.Property)
	return v, args.Error(1)
}

func (m *MockPropertyService) TopProperties(ctx context.Context, limit int) ([]models.Property, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]models.Property)
	return v, args.Error(1)
}

func (m *MockPropertyService) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Neighborhood)
	return v, args.Error(1)
}

func (m *MockPropertyService) PropertyTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]string)
	return v, args.Error(1)
}

func (m *MockPropertyService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(*models.FilterOptions)
	return v, args.Error(1)
}

func (m *MockPropertyService) NeighborhoodStats(ctx context.Context) ([]models.NeighborhoodStats, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.NeighborhoodStats)
	return v, args.Error(1)
}

func (m *MockPropertyService) PropertyTypeStats(ctx context.Context) ([]models.PropertyTypeStats, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.PropertyTypeStats)
	return v, args.Error(1)
}

func (m *MockPropertyService) CreateProperty(ctx context.Context, req models.CreatePropertyRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyService) UpdateProperty(ctx context.Context, id int64, req models.UpdatePropertyRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockPropertyService) DeleteProperty(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserService is a mock implementation of services.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.User)
	return v, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.User)
	return v, args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	v, _ := args.Get(0).(*models.User)
	return v, args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockUserService) RecordLogin(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) GetActivity(ctx context.Context, id int64) (*models.UserActivity, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.UserActivity)
	return v, args.Error(1)
}

func (m *MockUserService) InactiveUsers(ctx context.Context, days int) ([]models.User, error) {
	args := m.Called(ctx, days)
	v, _ := args.Get(0).([]models.User)
	return v, args.Error(1)
}

// MockWatchlistService is a mock implementation of services.WatchlistService.
type MockWatchlistService struct {
	mock.Mock
}

func (m *MockWatchlistService) GetWatchlist(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]models.WatchlistItem)
	return v, args.Error(1)
}

func (m *MockWatchlistService) GetItem(ctx context.Context, id int64) (*models.WatchlistItem, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.WatchlistItem)
	return v, args.Error(1)
}

func (m *MockWatchlistService) IsInWatchlist(ctx context.Context, userID, propertyID int64) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWatchlistService) AddProperty(ctx context.Context, req models.AddWatchlistRequest) (*models.WatchlistItem, error) {
	args := m.Called(ctx, req)
	v, _ := args.Get(0).(*models.WatchlistItem)
	return v, args.Error(1)
}

func (m *MockWatchlistService) UpdateItem(ctx context.Context, id int64, req models.UpdateWatchlistRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockWatchlistService) RemoveItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockWatchlistService) RemoveProperty(ctx context.Context, userID, propertyID int64) error {
	return m.Called(ctx, userID, propertyID).Error(0)
}

func (m *MockWatchlistService) ClearWatchlist(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWatchlistService) Stats(ctx context.Context, userID int64) (*models.WatchlistStats, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*models.WatchlistStats)
	return v, args.Error(1)
}

func (m *MockWatchlistService) ByNeighborhood(ctx context.Context, userID int64) ([]models.WatchlistNeighborhood, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]models.WatchlistNeighborhood)
	return v, args.Error(1)
}

// MockSavedSearchService is a mock implementation of services.SavedSearchService.
type MockSavedSearchService struct {
	mock.Mock
}

func (m *MockSavedSearchService) ListSearches(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]models.SavedSearch)
	return v, args.Error(1)
}

func (m *MockSavedSearchService) GetSearch(ctx context.Context, id int64) (*models.SavedSearch, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.SavedSearch)
	return v, args.Error(1)
}

func (m *MockSavedSearchService) CreateSearch(ctx context.Context, req models.CreateSavedSearchRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSavedSearchService) UpdateSearch(ctx context.Context, id int64, req models.UpdateSavedSearchRequest) (*models.SavedSearch, error) {
	args := m.Called(ctx, id, req)
	v, _ := args.Get(0).(*models.SavedSearch)
	return v, args.Error(1)
}

func (m *MockSavedSearchService) ExecuteSearch(ctx context.Context, id int64, resultCount int) (*models.SavedSearch, error) {
	args := m.Called(ctx, id, resultCount)
	v, _ := args.Get(0).(*models.SavedSearch)
	return v, args.Error(1)
}

func (m *MockSavedSearchService) DeleteSearch(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSavedSearchService) MostUsed(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]models.SavedSearch)
	return v, args.Error(1)
}

func (m *MockSavedSearchService) Recent(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]models.SavedSearch)
	return v, args.Error(1)
}

func (m *MockSavedSearchService) SearchByName(ctx context.Context, userID int64, term string) ([]models.SavedSearch, error) {
	args := m.Called(ctx, userID, term)
	v, _ := args.Get(0).([]models.SavedSearch)
	return v, args.Error(1)
}

func (m *MockSavedSearchService) Stats(ctx context.Context, userID int64) (*models.SavedSearchStats, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*models.SavedSearchStats)
	return v, args.Error(1)
}
