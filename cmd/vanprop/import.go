package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stwalsh4118/vanprop/internal/database"
	"github.com/stwalsh4118/vanprop/internal/importer"
)

var (
	importSourceURL  string
	importBatchSize  int
	importMaxRecords int
	importRate       float64
	importMigrate    bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import property tax records from the open-data API",
	Long: `Fetch property tax records page by page and insert neighborhoods,
properties and the sample users in one transaction. Rows that already exist
are left untouched, so the import can be re-run safely.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	flags := importCmd.Flags()
	flags.StringVar(&importSourceURL, "source-url", "", "records endpoint (default: IMPORT_SOURCE_URL)")
	flags.IntVar(&importBatchSize, "batch-size", 0, "records per request (default: IMPORT_BATCH_SIZE)")
	flags.IntVar(&importMaxRecords, "max-records", 0, "maximum records to fetch (default: IMPORT_MAX_RECORDS)")
	flags.Float64Var(&importRate, "rate", 0, "maximum requests per second (default: IMPORT_RATE_PER_SEC)")
	flags.BoolVar(&importMigrate, "migrate", false, "apply the schema before importing")
}

func runImport(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("source-url") {
		cfg.Import.SourceURL = importSourceURL
	}
	if flags.Changed("batch-size") {
		cfg.Import.BatchSize = importBatchSize
	}
	if flags.Changed("max-records") {
		cfg.Import.MaxRecords = importMaxRecords
	}
	if flags.Changed("rate") {
		cfg.Import.RatePerSec = importRate
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if importMigrate {
		if err := applySchema(ctx); err != nil {
			return err
		}
	}

	store, err := importer.OpenStore(database.DSN(cfg.Database), log)
	if err != nil {
		return err
	}
	defer store.Close()

	client := importer.NewClient(cfg.Import.SourceURL, cfg.Import.Timeout, cfg.Import.RatePerSec, log)
	summary, err := importer.New(client, store, cfg.Import, log).Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fetched %d records\n", summary.Fetched)
	fmt.Fprintf(out, "Inserted: %d neighborhoods, %d properties, %d users\n",
		summary.Result.NeighborhoodsInserted,
		summary.Result.PropertiesInserted,
		summary.Result.UsersInserted,
	)
	fmt.Fprintln(out, "Row counts:")
	fmt.Fprintf(out, "  neighborhoods: %d\n", summary.Counts.Neighborhoods)
	fmt.Fprintf(out, "  properties:    %d\n", summary.Counts.Properties)
	fmt.Fprintf(out, "  users:         %d\n", summary.Counts.Users)
	return nil
}

func applySchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	return db.Migrate(ctx)
}
