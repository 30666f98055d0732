// Package csvfile reads raw extracts and writes cleaned tables as CSV files.
package csvfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Frame is a CSV extract loaded into a gota DataFrame. Every column is kept as
// text; numeric parsing is left to the transforms. It implements domain.Source.
type Frame struct {
	df    dataframe.DataFrame
	names []string
}

// Read loads a CSV stream with a header row. A header without data rows
// yields an empty Frame that still reports its columns.
func Read(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	records, err := csv.NewReader(br).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		var header []string
		if len(records) == 1 {
			header = records[0]
		}
		return &Frame{names: header}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}
	return &Frame{df: df, names: df.Names()}, nil
}

// Open reads the CSV file at path. A missing file yields domain.ErrFileNotFound.
func Open(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	frame, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return frame, nil
}

// Columns returns the header in file order.
func (f *Frame) Columns() []string {
	return f.names
}

// Column returns the cells of the named column. Cells gota marks as NaN
// (empty, "NA", "NaN") are returned as empty strings.
func (f *Frame) Column(name string) ([]string, error) {
	if !f.has(name) {
		return nil, &domain.MissingColumnError{Column: name}
	}
	if f.Len() == 0 {
		return []string{}, nil
	}
	s := f.df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("column %q: %w", name, s.Err)
	}
	records := s.Records()
	for i, nan := range s.IsNaN() {
		if nan {
			records[i] = ""
		}
	}
	return records, nil
}

// Len returns the number of data rows.
func (f *Frame) Len() int {
	if f.df.Ncol() == 0 {
		return 0
	}
	return f.df.Nrow()
}

func (f *Frame) has(name string) bool {
	for _, n := range f.names {
		if n == name {
			return true
		}
	}
	return false
}

// Extractor opens CSV inputs for the pipeline.
// It implements pipeline.Extractor.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a file-system Extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract loads the CSV file at path.
func (e *Extractor) Extract(ctx context.Context, path string) (domain.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	frame, err := Open(path)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("input loaded", "path", path, "rows", frame.Len(), "columns", len(frame.Columns()))
	return frame, nil
}
