package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
)

// Write encodes a table as CSV: header first, comma separated, "\n" line endings.
func Write(w io.Writer, table domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// WriteFile writes a table to path, creating parent directories as needed.
func WriteFile(path string, table domain.Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, table); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Loader writes cleaned tables to the file system.
// It implements pipeline.Loader.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a file-system Loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load writes table to path.
func (l *Loader) Load(ctx context.Context, table domain.Table, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := WriteFile(path, table); err != nil {
		return err
	}
	l.logger.Debug("table written", "table", table.Name, "path", path, "rows", len(table.Rows))
	return nil
}
