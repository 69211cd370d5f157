package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stwalsh4118/vanprop/internal/models"
)

// MockPropertyRepository is a mock implementation of PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	args := m.Called(ctx, filter)
	properties, _ := args.Get(0).([]models.Property)
	return properties, args.Error(1)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	property, _ := args.Get(0).(*models.Property)
	return property, args.Error(1)
}

func (m *MockPropertyRepository) FindByPID(ctx context.Context, pid string) (*models.Property, error) {
	args := m.Called(ctx, pid)
	property, _ := args.Get(0).(*models.Property)
	return property, args.Error(1)
}

func (m *MockPropertyRepository) SearchByAddress(ctx context.Context, term string, limit int) ([]models.Property, error) {
	args := m.Called(ctx, term, limit)
	properties, _ := args.Get(0).([]models.Property)
	return properties, args.Error(1)
}

func (m *MockPropertyRepository) History(ctx context.Context, propertyID int64) ([]models.TaxHistory, error) {
	args := m.Called(ctx, propertyID)
	history, _ := args.Get(0).([]models.TaxHistory)
	return history, args.Error(1)
}

func (m *MockPropertyRepository) ListByNeighborhood(ctx context.Context, name string, limit int) ([]models.Property, error) {
	args := m.Called(ctx, name, limit)
	properties, _ := args.Get(0).([]models.Property)
	return properties, args.Error(1)
}

func (m *MockPropertyRepository) Top(ctx context.Context, limit int) ([]models.Property, error) {
	args := m.Called(ctx, limit)
	properties, _ := args.Get(0).([]models.Property)
	return properties, args.Error(1)
}

func (m *MockPropertyRepository) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	args := m.Called(ctx)
	neighborhoods, _ := args.Get(0).([]models.Neighborhood)
	return neighborhoods, args.Error(1)
}

func (m *MockPropertyRepository) PropertyTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]string)
	return types, args.Error(1)
}

func (m *MockPropertyRepository) NeighborhoodStats(ctx context.Context) ([]models.NeighborhoodStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]models.NeighborhoodStats)
	return stats, args.Error(1)
}

func (m *MockPropertyRepository) PropertyTypeStats(ctx context.Context) ([]models.PropertyTypeStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]models.PropertyTypeStats)
	return stats, args.Error(1)
}

func (m *MockPropertyRepository) Create(ctx context.Context, req models.CreatePropertyRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) UpdateValues(ctx context.Context, id int64, req models.UpdatePropertyRequest) (int64, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, req models.CreateUserRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (int64, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ActivitySummary(ctx context.Context, id int64) (*models.UserActivity, error) {
	args := m.Called(ctx, id)
	activity, _ := args.Get(0).(*models.UserActivity)
	return activity, args.Error(1)
}

func (m *MockUserRepository) Inactive(ctx context.Context, days int) ([]models.User, error) {
	args := m.Called(ctx, days)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

// MockWatchlistRepository is a mock implementation of WatchlistRepository for testing
type MockWatchlistRepository struct {
	mock.Mock
}

func (m *MockWatchlistRepository) ListByUser(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]models.WatchlistItem)
	return items, args.Error(1)
}

func (m *MockWatchlistRepository) FindByID(ctx context.Context, id int64) (*models.WatchlistItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*models.WatchlistItem)
	return item, args.Error(1)
}

func (m *MockWatchlistRepository) Exists(ctx context.Context, userID, propertyID int64) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWatchlistRepository) Add(ctx context.Context, req models.AddWatchlistRequest) (*models.WatchlistItem, error) {
	args := m.Called(ctx, req)
	item, _ := args.Get(0).(*models.WatchlistItem)
	return item, args.Error(1)
}

func (m *MockWatchlistRepository) Update(ctx context.Context, id int64, req models.UpdateWatchlistRequest) (int64, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWatchlistRepository) Remove(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWatchlistRepository) RemoveByProperty(ctx context.Context, userID, propertyID int64) (int64, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWatchlistRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWatchlistRepository) Stats(ctx context.Context, userID int64) (*models.WatchlistStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*models.WatchlistStats)
	return stats, args.Error(1)
}

func (m *MockWatchlistRepository) ByNeighborhood(ctx context.Context, userID int64) ([]models.WatchlistNeighborhood, error) {
	args := m.Called(ctx, userID)
	groups, _ := args.Get(0).([]models.WatchlistNeighborhood)
	return groups, args.Error(1)
}

// MockSavedSearchRepository is a mock implementation of SavedSearchRepository for testing
type MockSavedSearchRepository struct {
	mock.Mock
}

func (m *MockSavedSearchRepository) ListByUser(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	args := m.Called(ctx, userID)
	searches, _ := args.Get(0).([]models.SavedSearch)
	return searches, args.Error(1)
}

func (m *MockSavedSearchRepository) FindByID(ctx context.Context, id int64) (*models.SavedSearch, error) {
	args := m.Called(ctx, id)
	search, _ := args.Get(0).(*models.SavedSearch)
	return search, args.Error(1)
}

func (m *MockSavedSearchRepository) Create(ctx context.Context, req models.CreateSavedSearchRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSavedSearchRepository) Update(ctx context.Context, id int64, req models.UpdateSavedSearchRequest) (*models.SavedSearch, error) {
	args := m.Called(ctx, id, req)
	search, _ := args.Get(0).(*models.SavedSearch)
	return search, args.Error(1)
}

func (m *MockSavedSearchRepository) RecordExecution(ctx context.Context, id int64, resultCount int) (*models.SavedSearch, error) {
	args := m.Called(ctx, id, resultCount)
	search, _ := args.Get(0).(*models.SavedSearch)
	return search, args.Error(1)
}

func (m *MockSavedSearchRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSavedSearchRepository) MostUsed(ctx context.Context, userID int64, limit int) ([]models.SavedSearch, error) {
	args := m.Called(ctx, userID, limit)
	searches, _ := args.Get(0).([]models.SavedSearch)
	return searches, args.Error(1)
}

func (m *MockSavedSearchRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.SavedSearch, error) {
	args := m.Called(ctx, userID, limit)
	searches, _ := args.Get(0).([]models.SavedSearch)
	return searches, args.Error(1)
}

func (m *MockSavedSearchRepository) SearchByName(ctx context.Context, userID int64, term string) ([]models.SavedSearch, error) {
	args := m.Called(ctx, userID, term)
	searches, _ := args.Get(0).([]models.SavedSearch)
	return searches, args.Error(1)
}

func (m *MockSavedSearchRepository) Stats(ctx context.Context, userID int64) (*models.SavedSearchStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*models.SavedSearchStats)
	return stats, args.Error(1)
}
