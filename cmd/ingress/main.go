// cmd/ingress/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/startuppulse/ecosystem-ingress/pkg/cleaner"
	"github.com/startuppulse/ecosystem-ingress/pkg/config"
	"github.com/startuppulse/ecosystem-ingress/pkg/enrich"
	"github.com/startuppulse/ecosystem-ingress/pkg/model"
	"github.com/startuppulse/ecosystem-ingress/pkg/normalize"
	"github.com/startuppulse/ecosystem-ingress/pkg/schedule"
	"github.com/startuppulse/ecosystem-ingress/pkg/store"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Pipeline failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := normalize.LoadRules(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load normalization rules: %w", err)
	}

	startupCleaner, err := cleaner.NewStartupCleaner(rules, logger)
	if err != nil {
		return err
	}
	investorCleaner, err := cleaner.NewInvestorCleaner(rules, logger)
	if err != nil {
		return err
	}

	sources, err := enrich.NewSourceFactory(cfg, logger).CreateSources()
	if err != nil {
		return err
	}
	enricher, err := enrich.NewEnricher(logger, sources...)
	if err != nil {
		return err
	}
	enricher.WithTimeout(cfg.FetchTimeout)
	if cfg.WorkerPoolSize > 0 {
		enricher.WithWorkers(cfg.WorkerPoolSize)
	}

	db, err := store.New(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	rawDir := os.Getenv("RAW_DATA_DIR")
	if rawDir == "" {
		rawDir = "data/raw"
	}

	scheduler, err := schedule.New(logger)
	if err != nil {
		return err
	}

	jobs := []schedule.Job{
		schedule.NewJob("clean-startups", cfg.StartupInterval,
			pipelineJob(rawDir, model.StartupSchema(), startupCleaner, enricher, db)),
		schedule.NewJob("clean-investors", cfg.InvestorInterval,
			pipelineJob(rawDir, model.InvestorSchema(), investorCleaner, enricher, db)),
	}
	for _, job := range jobs {
		if err := scheduler.Add(job); err != nil {
			return err
		}
	}

	scheduler.Start(ctx)
	scheduler.Wait()

	logger.Info("Shutdown complete")
	return nil
}

// pipelineJob builds the periodic unit of work for one entity type:
// load raw records, clean, enrich, persist.
func pipelineJob(rawDir string, schema *model.Schema, c *cleaner.Cleaner, e *enrich.Enricher, db *store.Store) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		batch, err := loadRawBatch(filepath.Join(rawDir, schema.Entity), schema)
		if err != nil {
			return fmt.Errorf("failed to load raw %s records: %w", schema.Entity, err)
		}
		if batch.Len() == 0 {
			return nil
		}

		cleaned, _, err := c.Clean(batch)
		if err != nil {
			return err
		}

		enriched, _, err := e.Enrich(ctx, cleaned)
		if err != nil {
			return err
		}

		if _, err := db.UpsertBatch(ctx, enriched); err != nil {
			return err
		}
		return nil
	}
}

// loadRawBatch reads scraper output files (one JSON array of records
// per file) from the entity's drop directory.
func loadRawBatch(dir string, schema *model.Schema) (model.Batch, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return model.Batch{}, err
	}

	var rows []model.Record
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Batch{}, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var records []model.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return model.Batch{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		rows = append(rows, records...)
	}

	return model.NewBatch(schema, rows), nil
}

// buildLogger constructs the zap logger per configuration.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.LogFormat != "json" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
