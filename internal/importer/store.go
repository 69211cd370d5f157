package importer

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stwalsh4118/vanprop/internal/logger"
)

const (
	insertBatchSize    = 100
	slowQueryThreshold = 500 * time.Millisecond
)

// Counts are the table sizes reported after an import.
type Counts struct {
	Neighborhoods int64
	Properties    int64
	Users         int64
}

// Result summarizes one import transaction.
type Result struct {
	NeighborhoodsInserted int64
	PropertiesInserted    int64
	UsersInserted         int64
}

// Store writes imported rows through gorm.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// OpenStore connects gorm to the database at dsn. SQL logging goes through log.
func OpenStore(dsn string, log *logger.Logger) (*Store, error) {
	log = log.WithComponent("importer_store")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open import store: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// NewStore wraps an existing gorm handle.
func NewStore(db *gorm.DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log.WithComponent("importer_store")}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Import inserts neighborhoods, properties and the sample users in a single
// transaction. Existing rows are left untouched. With no records the
// default neighborhoods are seeded instead.
func (s *Store) Import(ctx context.Context, records []Record) (*Result, error) {
	var result Result

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := DefaultNeighborhoods
		if len(records) > 0 {
			names = NeighborhoodNames(records)
		}

		n, err := insertNeighborhoods(tx, names)
		if err != nil {
			return err
		}
		result.NeighborhoodsInserted = n

		if len(records) > 0 {
			ids, err := neighborhoodIDs(tx, names)
			if err != nil {
				return err
			}
			n, err := insertProperties(tx, records, ids)
			if err != nil {
				return err
			}
			result.PropertiesInserted = n
		}

		n, err = insertSampleUsers(tx)
		if err != nil {
			return err
		}
		result.UsersInserted = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Import committed", logger.Fields{
		"neighborhoods": result.NeighborhoodsInserted,
		"properties":    result.PropertiesInserted,
		"users":         result.UsersInserted,
	})
	return &result, nil
}

// Counts reports the current row counts of the seeded tables.
func (s *Store) Counts(ctx context.Context) (*Counts, error) {
	db := s.db.WithContext(ctx)
	var c Counts

	if err := db.Model(&neighborhoodRow{}).Count(&c.Neighborhoods).Error; err != nil {
		return nil, fmt.Errorf("count neighborhoods: %w", err)
	}
	if err := db.Model(&propertyRow{}).Count(&c.Properties).Error; err != nil {
		return nil, fmt.Errorf("count properties: %w", err)
	}
	if err := db.Model(&userRow{}).Count(&c.Users).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return &c, nil
}

func insertNeighborhoods(tx *gorm.DB, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	rows := make([]neighborhoodRow, 0, len(names))
	for _, name := range names {
		desc := "Properties in " + name
		rows = append(rows, neighborhoodRow{Name: name, Description: &desc})
	}

	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "neighborhood_name"}},
		DoNothing: true,
	}).Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("insert neighborhoods: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func neighborhoodIDs(tx *gorm.DB, names []string) (map[string]int64, error) {
	var rows []neighborhoodRow
	if err := tx.Where("neighborhood_name IN ?", names).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load neighborhood ids: %w", err)
	}

	ids := make(map[string]int64, len(rows))
	for _, r := range rows {
		ids[r.Name] = r.ID
	}
	return ids, nil
}

func insertProperties(tx *gorm.DB, records []Record, ids map[string]int64) (int64, error) {
	rows := make([]propertyRow, 0, len(records))
	for _, r := range records {
		name := neighborhoodOf(r)
		id, ok := ids[name]
		if !ok {
			return 0, fmt.Errorf("neighborhood %q was not created", name)
		}
		rows = append(rows, toPropertyRow(r, id))
	}

	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pid"}},
		DoNothing: true,
	}).CreateInBatches(&rows, insertBatchSize)
	if res.Error != nil {
		return 0, fmt.Errorf("insert properties: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func insertSampleUsers(tx *gorm.DB) (int64, error) {
	rows := make([]userRow, 0, len(SampleUsers))
	for _, u := range SampleUsers {
		rows = append(rows, userRow{
			Username:      u.Username,
			Email:         u.Email,
			FullName:      u.FullName,
			AccountStatus: u.AccountStatus,
		})
	}

	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("insert sample users: %w", res.Error)
	}
	return res.RowsAffected, nil
}
