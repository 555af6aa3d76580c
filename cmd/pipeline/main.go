// Package main provides the end-to-end catalog generation pipeline.
// Executes: prepare → b-value → synthesis → assembly → report.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"seismic-catalog-lab/internal/catalogio"
	"seismic-catalog-lab/internal/config"
	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/observability"
	"seismic-catalog-lab/internal/orchestrator"
	"seismic-catalog-lab/internal/reporting"
	"seismic-catalog-lab/internal/storage"
	chstore "seismic-catalog-lab/internal/storage/clickhouse"
	"seismic-catalog-lab/internal/storage/memory"
	"seismic-catalog-lab/internal/storage/migrations"
	pgstore "seismic-catalog-lab/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	catalogPath := flag.String("catalog", "", "Real catalog CSV path (required)")
	faultsPath := flag.String("faults", "", "Fault segment CSV path (built-in Marmara geometry if empty)")
	outputDir := flag.String("output-dir", cfg.OutputDir, "Output directory for generated files")
	seed := flag.Int64("seed", cfg.Seed, "Random seed")
	mMin := flag.Float64("m-min", cfg.MMin, "Completeness threshold for the b-value fit")
	physicsCount := flag.Int("physics-count", cfg.PhysicsCount, "Physics strategy target count")
	simpleCount := flag.Int("simple-count", cfg.SimpleCount, "Simple strategy sample count")
	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage regardless of DSNs")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Prometheus metrics HTTP address (disabled if empty)")
	flag.Parse()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	if *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --catalog is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := observability.NewMetrics("")
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
	}

	// Load inputs.
	realCatalog, err := loadCatalog(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}
	segments, err := loadSegments(*faultsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fault segments: %v\n", err)
		os.Exit(1)
	}

	// Create stores based on mode.
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to storage: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := seedStores(ctx, stores, realCatalog, segments); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding storage: %v\n", err)
		os.Exit(1)
	}

	orch, err := orchestrator.New(orchestrator.Options{
		EventStore:        stores.events,
		FaultSegmentStore: stores.faults,
		CatalogStore:      stores.catalog,
		Seed:              *seed,
		MMin:              *mMin,
		PhysicsCount:      *physicsCount,
		SimpleCount:       *simpleCount,
		Metrics:           metrics,
		Log:               log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating orchestrator: %v\n", err)
		os.Exit(1)
	}

	result, err := orch.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline error: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutputs(ctx, *outputDir, stores.catalog, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing outputs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Pipeline completed:")
	fmt.Printf("  Run:       %s\n", result.RunID)
	fmt.Printf("  Dataset:   %s\n", result.DatasetVersion)
	fmt.Printf("  Real:      %d\n", result.RealCount)
	fmt.Printf("  Bootstrap: %d\n", result.BootstrapCount)
	fmt.Printf("  Physics:   %d\n", result.PhysicsCount)
	fmt.Printf("  Simple:    %d\n", result.SimpleCount)
	fmt.Printf("  Assembled: %d\n", result.AssembledCount)
	fmt.Printf("  b-value:   %.4f (fallback: %v)\n", result.BValue, result.BValueFallback)
	fmt.Printf("Outputs written to %s\n", *outputDir)
}

type pipelineStores struct {
	events  storage.EventStore
	faults  storage.FaultSegmentStore
	catalog storage.CatalogStore
}

// createStores wires memory stores, or Postgres for raw events and
// ClickHouse for the assembled catalog when DSNs are supplied.
// Migrations run on every start; they are idempotent.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*pipelineStores, func(), error) {
	stores := &pipelineStores{
		events:  memory.NewEventStore(),
		faults:  memory.NewFaultSegmentStore(),
		catalog: memory.NewCatalogStore(),
	}
	cleanup := func() {}
	if useMemory {
		return stores, cleanup, nil
	}

	var pool *pgstore.Pool
	if postgresDSN != "" {
		var err error
		pool, err = pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		stores.events = pgstore.NewEventStore(pool)
		stores.faults = pgstore.NewFaultSegmentStore(pool)
	}

	var conn *chstore.Conn
	if clickhouseDSN != "" {
		var err error
		conn, err = migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			if pool != nil {
				pool.Close()
			}
			return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
		}
		stores.catalog = chstore.NewCatalogStore(conn)
	}

	cleanup = func() {
		if pool != nil {
			pool.Close()
		}
		if conn != nil {
			_ = conn.Close()
		}
	}
	return stores, cleanup, nil
}

func seedStores(ctx context.Context, stores *pipelineStores, events []*domain.Event, segments []*domain.FaultSegment) error {
	if err := stores.events.InsertBulk(ctx, events); err != nil {
		return fmt.Errorf("insert real catalog: %w", err)
	}
	for _, s := range segments {
		if err := stores.faults.Insert(ctx, s); err != nil {
			return fmt.Errorf("insert segment %s: %w", s.SegmentID, err)
		}
	}
	return nil
}

func loadCatalog(path string) ([]*domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalogio.PrepareCatalog(f)
}

func loadSegments(path string) ([]*domain.FaultSegment, error) {
	if path == "" {
		return domain.MarmaraFaultSegments(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalogio.ReadFaultSegments(f)
}

// writeOutputs persists the assembled catalog, the b-value artifact,
// the markdown report and the summary CSV.
func writeOutputs(ctx context.Context, dir string, catalog storage.CatalogStore, result *orchestrator.RunResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	assembled, err := catalog.GetAll(ctx)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "assembled_catalog.csv"), func(f *os.File) error {
		return catalogio.WriteCatalog(f, assembled)
	}); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, "b_value.txt"), func(f *os.File) error {
		return catalogio.WriteBValue(f, result.BValue)
	}); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "REPORT.md"),
		[]byte(reporting.RenderMarkdown(result.Report)), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "SUMMARY.csv"),
		[]byte(reporting.RenderSummaryCSV(result.Report.MagnitudeRows)), 0o644)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
