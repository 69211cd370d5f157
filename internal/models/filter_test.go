package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyFilter_NormalizeDefaults(t *testing.T) {
	f := PropertyFilter{}.Normalize()

	assert.Equal(t, DefaultPropertyLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, SortDesc, f.SortOrder)
	assert.Empty(t, f.SortBy)
}

func TestPropertyFilter_NormalizeCleansInput(t *testing.T) {
	f := PropertyFilter{
		Neighborhood: "  Kitsilano ",
		Search:       " main ",
		SortBy:       " Tax_Levy ",
		SortOrder:    "asc",
		Limit:        10_000,
		Offset:       -5,
	}.Normalize()

	assert.Equal(t, "Kitsilano", f.Neighborhood)
	assert.Equal(t, "main", f.Search)
	assert.Equal(t, "tax_levy", f.SortBy)
	assert.Equal(t, SortAsc, f.SortOrder)
	assert.Equal(t, MaxPropertyLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, ClampLimit(0, 10))
	assert.Equal(t, 10, ClampLimit(-3, 10))
	assert.Equal(t, 25, ClampLimit(25, 10))
	assert.Equal(t, MaxPropertyLimit, ClampLimit(MaxPropertyLimit+1, 10))
}

func TestUpdateRequests_IsEmpty(t *testing.T) {
	notes := "call agent"
	name := "Kits condos"

	assert.True(t, UpdateUserRequest{}.IsEmpty())
	assert.False(t, UpdateUserRequest{FullName: &name}.IsEmpty())

	assert.True(t, UpdateWatchlistRequest{}.IsEmpty())
	assert.False(t, UpdateWatchlistRequest{Notes: &notes}.IsEmpty())

	assert.True(t, UpdateSavedSearchRequest{}.IsEmpty())
	assert.False(t, UpdateSavedSearchRequest{SearchCriteria: SearchCriteria{}}.IsEmpty())
}
