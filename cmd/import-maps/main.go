// Package main provides import-maps, the batch normalizer for a directory of
// map documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cory-johannsen/worldmap/internal/config"
	"github.com/cory-johannsen/worldmap/internal/importer"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
	"github.com/cory-johannsen/worldmap/internal/mapio/xmlio"
	"github.com/cory-johannsen/worldmap/internal/observability"
	"github.com/cory-johannsen/worldmap/internal/scripting"
	"github.com/cory-johannsen/worldmap/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and environment")
	sourceDir := flag.String("source", "", "directory of map documents")
	outputDir := flag.String("output", "", "directory for normalized documents and reports")
	policy := flag.String("policy", "", "condition policy override for the first read")
	dialect := flag.String("dialect", "", "output dialect override")
	filterPath := flag.String("filter", "", "Lua filter script override")
	flag.Parse()

	if *sourceDir == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-maps -source <dir> -output <dir> [-config <file>] [-policy p] [-dialect d] [-filter <lua>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	override(&cfg.Serialization.Policy, *policy)
	override(&cfg.Serialization.Dialect, *dialect)
	override(&cfg.Scripting.FilterScript, *filterPath)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validating flags: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, cleanup, err := buildOptions(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("preparing import", zap.Error(err))
	}
	defer cleanup()

	summary, err := importer.New(importer.NewDirSource(), opts, logger).Run(ctx, *sourceDir, *outputDir)
	if err != nil {
		cleanup()
		logger.Fatal("import failed", zap.Error(err))
	}
	logger.Info("import complete", zap.Int("documents", len(summary.Documents)))
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// buildOptions resolves the configured policy, dialect, filter and archive.
// The returned cleanup releases the filter and database pool.
func buildOptions(ctx context.Context, cfg config.Config, logger *zap.Logger) (importer.Options, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		closers = nil
	}

	var opts importer.Options
	var err error
	if opts.Policy, err = warning.ParsePolicy(cfg.Serialization.Policy); err != nil {
		return opts, cleanup, err
	}
	if opts.Dialect, err = xmlio.ParseDialect(cfg.Serialization.Dialect); err != nil {
		return opts, cleanup, err
	}

	if cfg.Scripting.FilterScript != "" {
		filter, err := scripting.LoadFilter(cfg.Scripting.FilterScript, cfg.Scripting.InstructionLimit, logger)
		if err != nil {
			return opts, cleanup, err
		}
		closers = append(closers, filter.Close)
		opts.Filter = filter
	}

	if cfg.Archive.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			cleanup()
			return opts, func() {}, err
		}
		closers = append(closers, pool.Close)
		opts.Archive = postgres.NewMapArchiveRepository(pool.DB())
		logger.Info("archive enabled", zap.String("database", cfg.Database.Name))
	}
	return opts, cleanup, nil
}
