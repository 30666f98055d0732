// Command cityscan cleans raw City Scan tabular extracts into the fixed CSV
// layouts consumed by the visualization layer.
//
// Usage:
//
//	cityscan pg data/raw/city_population-growth.csv
//	cityscan flood data/raw/city_flood.csv data/processed
//	cityscan pug data/processed/pg.csv data/processed/uba.csv
//	cityscan run data/raw/city_fwi.csv
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/cityscan-tabular-etl/internal/adapter/kafka"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/config"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/observability"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], cfg, logger, metrics, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, stdout, stderr io.Writer) int {
	clock := clockwork.NewRealClock()

	var publisher pipeline.Publisher
	if cfg.PublishEnabled() {
		kp := kafkaadapter.NewPublisher(cfg, clock, logger)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}()
		publisher = kp
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	opts := domain.DefaultOptions()
	opts.CensusYear = cfg.CensusYear

	p := pipeline.New(
		csvfile.NewExtractor(logger),
		csvfile.NewLoader(logger),
		publisher,
		pipeline.Settings{OutputDir: cfg.OutputDir, Transform: opts, Report: stdout},
		logger,
		metrics,
		clock,
	)

	root := newRootCmd(p, cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	if mErr := metrics.WriteTextfile(cfg.MetricsTextfile); mErr != nil {
		logger.Warn("metrics export failed", "error", mErr, "path", cfg.MetricsTextfile)
	}

	if err != nil {
		logger.Error("cityscan failed", "error", err)
		if errors.Is(err, domain.ErrAmbiguousSelection) {
			fmt.Fprintln(stderr, root.UsageString())
		}
		return 1
	}
	return 0
}
