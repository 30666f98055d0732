package domain

import "fmt"

// Source is a raw extract addressed by column name. Missing cells are empty strings.
type Source interface {
	// Columns returns the header in file order.
	Columns() []string
	// Column returns every cell of the named column, or a *MissingColumnError.
	Column(name string) ([]string, error)
	// Len returns the number of data rows.
	Len() int
}

// Table is a named output table ready to be written as CSV.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// FileName returns the conventional output file name, e.g. "pg.csv".
func (t Table) FileName() string {
	return t.Name + ".csv"
}

// Result is the outcome of a single transform.
type Result struct {
	Tables   []Table
	Summary  Summary
	Warnings []string

	// RowsIn counts data rows read; RowsDropped counts rows filtered out
	// before the first table was built.
	RowsIn      int
	RowsDropped int
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Precision holds the decimal places used for each derived column.
type Precision struct {
	GrowthPercentage    int
	UBA                 int
	AgeCount            int
	AgePercentage       int
	LandCoverPercentage int
	PixelCount          int
	PV                  int
	Flood               int
	Magnitude           int
	Distance            int
	FWI                 int
	Density             int
	GrowthRatio         int
}

// DefaultPrecision returns the precision the visualization layer expects.
func DefaultPrecision() Precision {
	return Precision{
		GrowthPercentage:    3,
		UBA:                 2,
		AgeCount:            2,
		AgePercentage:       7,
		LandCoverPercentage: 2,
		PixelCount:          0,
		PV:                  2,
		Flood:               2,
		Magnitude:           1,
		Distance:            0,
		FWI:                 2,
		Density:             3,
		GrowthRatio:         3,
	}
}

// Options configures the transforms. Callers set them at the boundary.
type Options struct {
	Precision Precision
	// CensusYear is stamped on every pas.csv row as yearName.
	CensusYear int
}

// DefaultOptions returns DefaultPrecision and the 2021 census year.
func DefaultOptions() Options {
	return Options{
		Precision:  DefaultPrecision(),
		CensusYear: 2021,
	}
}

// columns fetches several columns at once, failing on the first missing one.
func columns(src Source, names ...string) ([][]string, error) {
	out := make([][]string, len(names))
	for i, name := range names {
		col, err := src.Column(name)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return out, nil
}

func hasColumn(src Source, name string) bool {
	for _, c := range src.Columns() {
		if c == name {
			return true
		}
	}
	return false
}
