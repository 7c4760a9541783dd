package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"rumorwatch/internal/config"
	"rumorwatch/internal/db"
	"rumorwatch/internal/events"
	"rumorwatch/internal/jobs"
	"rumorwatch/internal/logging"
	"rumorwatch/internal/metrics"
	"rumorwatch/internal/models"
	"rumorwatch/internal/risk"
	"rumorwatch/internal/server"
	"rumorwatch/internal/service"
	"rumorwatch/internal/store"
	"rumorwatch/internal/validation"
)

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		keywords service.KeywordStore
		reports  service.ReportStore
		deps     = server.Deps{Storage: cfg.StorageDriver, Gatherer: prometheus.DefaultGatherer}
	)
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		keywords, reports, deps.Pinger = database, database, database
	default:
		keywords, reports = store.NewKeywordStore(nil), store.NewReportStore()
	}

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	policy := models.TransitionPolicy(models.Unconstrained{})
	if cfg.StrictStatusTransitions {
		policy = models.Strict{}
	}

	opts := service.Options{
		Policy:          policy,
		Logger:          logger,
		Metrics:         m,
		DefaultRadiusKm: cfg.DefaultRadiusKm,
	}
	if cfg.EventsEnabled() {
		publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger, m)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		opts.Publisher = publisher
		logger.Info("publishing scored reports", "topic", cfg.KafkaTopic)
	}

	svc := service.New(keywords, reports, opts)
	prometheus.MustRegister(metrics.NewReportCollector(svc, logger))
	deps.Service = svc

	if err := seedKeywords(ctx, svc, cfg.KeywordsFile, logger); err != nil {
		return err
	}

	if cfg.ArchiverEnabled() {
		archiver := jobs.NewArchiver(svc, cfg.ArchiveInterval, cfg.ArchiveAfter, nil, logger, m)
		go archiver.Start(ctx)
	}

	srv := server.New(cfg, logger)
	srv.RegisterRoutes(deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down")
	if err := srv.Shutdown(cfg.ShutdownTimeout); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
	return nil
}

func runMigrate(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	database, err := openDatabase(parent, cfg)
	if err != nil {
		return err
	}
	database.Close()
	logger.Info("migrations completed successfully")
	return nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return database, nil
}

// seedKeywords adds the dictionary file's entries. Entries that already
// exist are skipped, so restarts against a persistent store are harmless.
func seedKeywords(ctx context.Context, svc *service.Service, path string, logger *slog.Logger) error {
	dict, err := config.LoadKeywordDictionary(path)
	if err != nil {
		return fmt.Errorf("load keyword dictionary: %w", err)
	}
	inputs := dict.Inputs()
	if len(inputs) == 0 {
		return nil
	}

	results, err := svc.BatchAddKeywords(ctx, inputs)
	if err != nil {
		return fmt.Errorf("seed keywords: %w", err)
	}
	added := 0
	for _, r := range results {
		if r.Keyword != nil {
			added++
			continue
		}
		logger.Debug("keyword not seeded", "keyword", r.Input, "reason", r.Error)
	}
	logger.Info("keyword dictionary loaded", "file", path, "entries", len(inputs), "added", added)
	return nil
}

// runScore scores text offline against a dictionary file and prints the
// assessment as JSON.
func runScore(w io.Writer, path string, args []string) error {
	dict, err := config.LoadKeywordDictionary(path)
	if err != nil {
		return fmt.Errorf("load keyword dictionary: %w", err)
	}
	if dict == nil {
		fmt.Fprintf(os.Stderr, "warning: %s not found, scoring without keywords\n", path)
	}

	var keywords []models.Keyword
	seen := make(map[string]bool)
	for _, in := range dict.Inputs() {
		k, err := validation.Keyword(in)
		if err != nil {
			return fmt.Errorf("keyword %q: %w", in.Text, err)
		}
		if seen[k.Text] {
			continue
		}
		seen[k.Text] = true
		keywords = append(keywords, k)
	}

	assessment := risk.Score(strings.Join(args, " "), keywords)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(assessment)
}
