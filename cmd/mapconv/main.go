// Package main provides mapconv, which reads one map document (or any
// free-standing construct) and writes it back out in a chosen dialect.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/cory-johannsen/worldmap/internal/config"
	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/importer"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
	"github.com/cory-johannsen/worldmap/internal/mapio/xmlio"
	"github.com/cory-johannsen/worldmap/internal/observability"
	"github.com/cory-johannsen/worldmap/internal/scripting"
	"github.com/cory-johannsen/worldmap/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and environment")
	in := flag.String("in", "", "input document")
	out := flag.String("out", "", "output document; empty = stdout")
	policy := flag.String("policy", "", "condition policy override: silent, collect or strict")
	dialect := flag.String("dialect", "", "output dialect override: canonical or legacy")
	reportPath := flag.String("report", "", "write the condition report as YAML to this path")
	filterPath := flag.String("filter", "", "Lua filter script override")
	archiveName := flag.String("archive-name", "", "archive key; empty = derived from the input file name")
	check := flag.Bool("check", false, "read and report only; write nothing")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: mapconv -in <file> [-out <file>] [-policy p] [-dialect d] [-report <file>] [-filter <lua>] [-check]")
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

	done := observability.Timed(logger, "convert", zap.String("in", *in), zap.String("out", *out))
	err = run(ctx, cfg, logger, options{
		in:          *in,
		out:         *out,
		report:      *reportPath,
		archiveName: *archiveName,
		check:       *check,
	})
	done(err)
	if err != nil {
		logger.Sync()
		os.Exit(1)
	}
}

type options struct {
	in, out, report, archiveName string
	check                        bool
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, opts options) error {
	pol, err := warning.ParsePolicy(cfg.Serialization.Policy)
	if err != nil {
		return err
	}
	dia, err := xmlio.ParseDialect(cfg.Serialization.Dialect)
	if err != nil {
		return err
	}

	h := warning.NewHandler(pol, observability.ForDocument(logger, opts.in))
	obj, err := readObject(ctx, xmlio.NewReader(logger), opts.in, h)
	if opts.report != "" {
		// The report is written even when the read failed.
		if rerr := writeReport(opts.report, h.Report(opts.in)); rerr != nil && err == nil {
			err = rerr
		}
	}
	if err != nil {
		return err
	}

	m, isMap := obj.(*world.Map)
	if isMap && cfg.Scripting.FilterScript != "" {
		filter, err := scripting.LoadFilter(cfg.Scripting.FilterScript, cfg.Scripting.InstructionLimit, logger)
		if err != nil {
			return err
		}
		defer filter.Close()
		removed, err := filter.Apply(ctx, m)
		if err != nil {
			return err
		}
		logger.Info("fixtures filtered", zap.Int("removed", removed))
	}

	if opts.check {
		logger.Info("document checked", zap.Int("conditions", len(h.Conditions())))
		return nil
	}

	w := xmlio.NewWriter(dia)
	if err := writeObject(ctx, w, opts.out, obj); err != nil {
		return err
	}

	if isMap && cfg.Archive.Enabled {
		return archive(ctx, cfg, logger, w, m, opts)
	}
	return nil
}

func readObject(ctx context.Context, r *xmlio.Reader, path string, h *warning.Handler) (obj any, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return r.ReadObject(ctx, f, h)
}

func writeObject(ctx context.Context, w *xmlio.Writer, path string, obj any) (err error) {
	var dst io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", path, cerr)
			}
		}()
		dst = f
	}
	return w.WriteObject(ctx, dst, obj)
}

func writeReport(path string, r *warning.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report %s: %w", path, cerr)
		}
	}()
	return r.WriteYAML(f)
}

func archive(ctx context.Context, cfg config.Config, logger *zap.Logger, w *xmlio.Writer, m *world.Map, opts options) error {
	name := opts.archiveName
	if name == "" {
		base := filepath.Base(opts.in)
		name = importer.NameToID(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	var doc strings.Builder
	if err := w.WriteMap(ctx, &doc, m); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := postgres.NewMapArchiveRepository(pool.DB())
	if err := repo.Save(ctx, name, m.CurrentTurn, w.Dialect().String(), []byte(doc.String())); err != nil {
		return err
	}
	logger.Info("map archived", zap.String("name", name), zap.Int("turn", m.CurrentTurn))
	return nil
}
