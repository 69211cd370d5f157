// Package importer loads City of Vancouver property tax records from the
// open-data API into the database.
package importer

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/vanprop/internal/config"
	"github.com/stwalsh4118/vanprop/internal/logger"
)

// Fetcher retrieves upstream records.
type Fetcher interface {
	FetchAll(ctx context.Context, batchSize, maxRecords int) ([]Record, error)
}

// Loader persists records and reports table sizes.
type Loader interface {
	Import(ctx context.Context, records []Record) (*Result, error)
	Counts(ctx context.Context) (*Counts, error)
}

// Summary describes a finished import run.
type Summary struct {
	Fetched int
	Result  Result
	Counts  Counts
}

// Importer runs the fetch, load and count steps of an import.
type Importer struct {
	fetcher    Fetcher
	loader     Loader
	batchSize  int
	maxRecords int
	log        *logger.Logger
}

// New creates an Importer using the batch settings from cfg.
func New(fetcher Fetcher, loader Loader, cfg config.ImportConfig, log *logger.Logger) *Importer {
	return &Importer{
		fetcher:    fetcher,
		loader:     loader,
		batchSize:  cfg.BatchSize,
		maxRecords: cfg.MaxRecords,
		log:        log.WithComponent("importer"),
	}
}

// Run fetches up to the configured number of records and loads them.
func (i *Importer) Run(ctx context.Context) (*Summary, error) {
	i.log.Info("Fetching upstream records", logger.Fields{
		"batch_size":  i.batchSize,
		"max_records": i.maxRecords,
	})

	records, err := i.fetcher.FetchAll(ctx, i.batchSize, i.maxRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	if len(records) == 0 {
		i.log.Warn("Upstream returned no records, seeding default neighborhoods", nil)
	}

	result, err := i.loader.Import(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	counts, err := i.loader.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	return &Summary{
		Fetched: len(records),
		Result:  *result,
		Counts:  *counts,
	}, nil
}
