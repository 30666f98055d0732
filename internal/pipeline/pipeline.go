package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/observability"
)

// Extractor loads a raw extract from a path.
type Extractor interface {
	Extract(ctx context.Context, path string) (domain.Source, error)
}

// Loader writes a cleaned table to a path.
type Loader interface {
	Load(ctx context.Context, table domain.Table, path string) error
}

// Publisher forwards a cleaned table to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, table domain.Table) error
}

// Settings are the run-wide options resolved from config at startup.
type Settings struct {
	// OutputDir receives tables when a job names no explicit output.
	OutputDir string
	Transform domain.Options
	// Report receives the human-readable summary; nil discards it.
	Report io.Writer
}

// Pipeline orchestrates one extract-transform-load run per job.
type Pipeline struct {
	extractor   Extractor
	transformer *DatasetTransformer
	loader      Loader
	publisher   Publisher
	settings    Settings
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
}

// New creates a Pipeline with the given stages and observability. A nil
// publisher disables publishing.
func New(e Extractor, l Loader, pub Publisher, settings Settings, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if settings.Report == nil {
		settings.Report = io.Discard
	}
	return &Pipeline{
		extractor:   e,
		transformer: NewTransformer(settings.Transform, logger),
		loader:      l,
		publisher:   pub,
		settings:    settings,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// Run executes a job: every input is extracted, the dataset transform is
// applied, and each resulting table is written before the summary is reported.
// Any error aborts the run; tables already written are left in place.
func (p *Pipeline) Run(ctx context.Context, job Job) (domain.Result, error) {
	if err := job.Validate(); err != nil {
		return domain.Result{}, err
	}
	start := p.clock.Now()
	dataset := job.Kind.String()
	p.logger.Info("run started", "dataset", dataset, "inputs", job.Inputs)

	sources := make([]domain.Source, 0, len(job.Inputs))
	for _, path := range job.Inputs {
		src, err := p.extractor.Extract(ctx, path)
		if err != nil {
			p.metrics.RunErrors.WithLabelValues(dataset, "extract").Inc()
			return domain.Result{}, fmt.Errorf("extract %s: %w", path, err)
		}
		p.metrics.RowsRead.WithLabelValues(dataset).Add(float64(src.Len()))
		sources = append(sources, src)
	}

	res, err := p.transformer.Transform(ctx, job.Kind, sources)
	if err != nil {
		p.metrics.RunErrors.WithLabelValues(dataset, "transform").Inc()
		return domain.Result{}, err
	}
	p.metrics.RowsDropped.WithLabelValues(dataset).Add(float64(res.RowsDropped))
	p.metrics.Warnings.WithLabelValues(dataset).Add(float64(len(res.Warnings)))

	for _, table := range res.Tables {
		path := p.outputPath(job, table, len(res.Tables))
		if err := p.loader.Load(ctx, table, path); err != nil {
			p.metrics.RunErrors.WithLabelValues(dataset, "load").Inc()
			return domain.Result{}, fmt.Errorf("load %s: %w", table.Name, err)
		}
		p.metrics.RowsWritten.WithLabelValues(dataset, table.Name).Add(float64(len(table.Rows)))
		p.metrics.TablesWritten.WithLabelValues(dataset).Inc()
		fmt.Fprintf(p.settings.Report, "Cleaned data saved to: %s\n", path)

		if p.publisher != nil {
			if err := p.publisher.Publish(ctx, table); err != nil {
				p.metrics.RunErrors.WithLabelValues(dataset, "publish").Inc()
				return domain.Result{}, fmt.Errorf("publish %s: %w", table.Name, err)
			}
			p.metrics.RowsPublished.WithLabelValues(dataset).Add(float64(len(table.Rows)))
		}
	}

	p.report(job.Kind, res.Summary)

	elapsed := p.clock.Since(start)
	p.metrics.RunDuration.WithLabelValues(dataset).Observe(elapsed.Seconds())
	p.metrics.LastSuccess.WithLabelValues(dataset).Set(float64(p.clock.Now().Unix()))
	p.logger.Info("run complete",
		"dataset", dataset,
		"rows_in", res.RowsIn,
		"rows_dropped", res.RowsDropped,
		"tables", len(res.Tables),
		"warnings", len(res.Warnings),
		"duration", elapsed,
	)
	return res, nil
}

// outputPath resolves where a table is written. Flood treats Job.Output as a
// directory because it produces several tables; single-table datasets treat
// it as the file path.
func (p *Pipeline) outputPath(job Job, table domain.Table, tables int) string {
	switch {
	case job.Output == "":
		return filepath.Join(p.settings.OutputDir, table.FileName())
	case job.Kind == domain.KindFlood || tables > 1:
		return filepath.Join(job.Output, table.FileName())
	default:
		return job.Output
	}
}

func (p *Pipeline) report(kind domain.Kind, summary domain.Summary) {
	w := p.settings.Report
	title := kind.Title()
	fmt.Fprintf(w, "\n%s summary:\n", strings.ToUpper(title[:1])+title[1:])
	for _, s := range summary {
		fmt.Fprintf(w, "  %s: %s\n", s.Label, s.Value)
	}
}
