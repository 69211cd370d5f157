package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/vanprop/internal/database"
	"github.com/stwalsh4118/vanprop/internal/database/dbtest"
	"github.com/stwalsh4118/vanprop/internal/logger"
)

func openTestStore(t *testing.T) (*database.Database, *Store) {
	t.Helper()

	db := dbtest.Open(t)
	store, err := OpenStore(database.DSN(dbtest.Config()), logger.New("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return db, store
}

func sampleRecords() []Record {
	return []Record{
		{
			PID:               "013-000-001",
			CivicAddress:      "1 MAIN ST",
			LegalType:         "STRATA",
			NeighbourhoodCode: "Kitsilano",
			GeoPoint:          &GeoPoint{Lat: 49.26, Lon: -123.16},
			CurrentLandValue:  Number{Value: 800000, Valid: true},
			TaxAssessmentYear: Number{Value: 2025, Valid: true},
		},
		{
			PID:                     "013-000-002",
			FromCivicNumber:         "22",
			StreetName:              "OAK ST",
			NeighbourhoodCode:       "Fairview",
			CurrentImprovementValue: Number{Value: -5, Valid: true},
		},
		{
			PID: "013-000-003",
		},
	}
}

func TestStoreImport_Integration(t *testing.T) {
	db, store := openTestStore(t)
	ctx := context.Background()

	result, err := store.Import(ctx, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.NeighborhoodsInserted)
	assert.Equal(t, int64(3), result.PropertiesInserted)
	assert.Equal(t, int64(len(SampleUsers)), result.UsersInserted)

	var address, propertyType string
	var total float64
	var year int
	err = db.Pool.QueryRow(ctx, `
		SELECT civic_address, property_type, current_total_value, current_year
		FROM properties WHERE pid = '013-000-001'`).Scan(&address, &propertyType, &total, &year)
	require.NoError(t, err)
	assert.Equal(t, "1 MAIN ST", address)
	assert.Equal(t, "STRATA", propertyType)
	assert.Equal(t, 800000.0, total)
	assert.Equal(t, 2025, year)

	var neighborhood string
	err = db.Pool.QueryRow(ctx, `
		SELECT n.neighborhood_name FROM properties p
		JOIN neighborhoods n ON n.neighborhood_id = p.neighborhood_id
		WHERE p.pid = '013-000-003'`).Scan(&neighborhood)
	require.NoError(t, err)
	assert.Equal(t, UnknownNeighborhood, neighborhood)
}

func TestStoreImport_IsIdempotent_Integration(t *testing.T) {
	_, store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Import(ctx, sampleRecords())
	require.NoError(t, err)

	again, err := store.Import(ctx, sampleRecords())
	require.NoError(t, err)
	assert.Zero(t, again.NeighborhoodsInserted)
	assert.Zero(t, again.PropertiesInserted)
	assert.Zero(t, again.UsersInserted)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Neighborhoods)
	assert.Equal(t, int64(3), counts.Properties)
	assert.Equal(t, int64(3), counts.Users)
}

func TestStoreImport_NoRecordsSeedsDefaults_Integration(t *testing.T) {
	_, store := openTestStore(t)
	ctx := context.Background()

	result, err := store.Import(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(len(DefaultNeighborhoods)), result.NeighborhoodsInserted)
	assert.Zero(t, result.PropertiesInserted)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(DefaultNeighborhoods)), counts.Neighborhoods)
	assert.Zero(t, counts.Properties)
	assert.Equal(t, int64(3), counts.Users)
}
