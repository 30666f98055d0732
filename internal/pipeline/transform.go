package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
)

// DatasetTransformer applies the domain transform for a dataset and surfaces
// its warnings through the logger.
type DatasetTransformer struct {
	opts   domain.Options
	logger *slog.Logger
}

// NewTransformer creates a DatasetTransformer with fixed transform options.
func NewTransformer(opts domain.Options, logger *slog.Logger) *DatasetTransformer {
	return &DatasetTransformer{
		opts:   opts,
		logger: logger,
	}
}

func (t *DatasetTransformer) Transform(ctx context.Context, kind domain.Kind, sources []domain.Source) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}
	res, err := domain.Transform(kind, sources, t.opts)
	if err != nil {
		return domain.Result{}, fmt.Errorf("transform %s: %w", kind.Title(), err)
	}
	for _, w := range res.Warnings {
		t.logger.WarnContext(ctx, "data anomaly", "dataset", kind.String(), "detail", w)
	}
	return res, nil
}
