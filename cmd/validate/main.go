// Command validate checks a directory of cleaned City Scan tables against the
// output contract: fixed headers, sort order, derived column formulas, and
// the classification rules. Tables absent from the directory are skipped.
//
// Usage:
//
//	go run ./cmd/validate -dir data/processed
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// table is a loaded output file with its columns addressable by name.
type table struct {
	name  string
	frame *csvfile.Frame
}

func (t table) col(name string) []string {
	c, err := t.frame.Column(name)
	if err != nil {
		return nil
	}
	return c
}

func main() {
	dir := flag.String("dir", filepath.Join("data", "processed"), "directory containing cleaned tables")
	flag.Parse()

	os.Exit(run(*dir, os.Stdout))
}

func run(dir string, w io.Writer) int {
	fmt.Fprintln(w, "=== City Scan Output Validation ===")
	fmt.Fprintln(w)

	tables, err := loadTables(dir)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	if len(tables) == 0 {
		fmt.Fprintf(w, "FATAL: no cleaned tables found in %s\n", dir)
		return 1
	}

	phases := []*phase{
		validateSchema(tables),
		validateOrdering(tables),
		validateGrowthFormulas(tables),
		validateLandCover(tables),
		validateUrbanGrowth(tables),
		validateFireWeather(tables),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	names := make([]string, 0, len(tables))
	for _, name := range domain.TableNames() {
		if _, ok := tables[name]; ok {
			names = append(names, name)
		}
	}
	fmt.Fprintf(w, "Tables: %s\n", strings.Join(names, ", "))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// loadTables reads every known output table present in dir.
func loadTables(dir string) (map[string]table, error) {
	tables := make(map[string]table)
	for _, name := range domain.TableNames() {
		frame, err := csvfile.Open(filepath.Join(dir, name+".csv"))
		if errors.Is(err, domain.ErrFileNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tables[name] = table{name: name, frame: frame}
	}
	return tables, nil
}

func parse(s string) (float64, bool) {
	if s == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), false
	}
	return v, true
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}

// ── Phase 1: Schema ──

func validateSchema(tables map[string]table) *phase {
	p := &phase{name: "Phase 1: Schema (headers)"}
	for name, t := range tables {
		want, _ := domain.Header(name)
		if got := t.frame.Columns(); !slices.Equal(want, got) {
			p.errorf("%s.csv: header %v, want %v", name, got, want)
		}
	}
	return p
}

// ── Phase 2: Ordering ──

var sortKeys = map[string]string{
	"pg": "yearName", "uba": "yearName", "pv": "month", "ee": "begin_year", "fwi": "week",
	"cu": "yearName", "fu": "yearName", "pu": "yearName", "comb": "yearName",
}

func validateOrdering(tables map[string]table) *phase {
	p := &phase{name: "Phase 2: Ordering (sort keys)"}
	for name, key := range sortKeys {
		t, ok := tables[name]
		if !ok {
			continue
		}
		prev := math.Inf(-1)
		for i, s := range t.col(key) {
			v, ok := parse(s)
			if !ok {
				p.errorf("%s.csv line %d: %s %q is not numeric", name, i+2, key, s)
				continue
			}
			if v < prev {
				p.errorf("%s.csv line %d: %s %v precedes %v", name, i+2, key, prev, v)
			}
			prev = v
		}
	}

	if t, ok := tables["uba"]; ok {
		for i, s := range t.col("year") {
			if s != strconv.Itoa(i+1) {
				p.errorf("uba.csv line %d: year %q, want sequence %d", i+2, s, i+1)
			}
		}
	}
	if t, ok := tables["lc"]; ok {
		prev := math.Inf(1)
		for i, s := range t.col("percentage") {
			v, _ := parse(s)
			if v > prev {
				p.errorf("lc.csv line %d: percentage %v exceeds previous %v", i+2, v, prev)
			}
			prev = v
		}
	}
	return p
}

// ── Phase 3: Growth formulas ──

func validateGrowthFormulas(tables map[string]table) *phase {
	p := &phase{name: "Phase 3: Growth formulas (pg, uba)"}
	checkGrowth(p, tables, "pg", "population", "populationGrowthPercentage")
	checkGrowth(p, tables, "uba", "uba", "ubaGrowthPercentage")
	return p
}

func checkGrowth(p *phase, tables map[string]table, name, valueCol, growthCol string) {
	t, ok := tables[name]
	if !ok {
		return
	}
	values, growth := t.col(valueCol), t.col(growthCol)
	for i := range growth {
		got, present := parse(growth[i])
		if i == 0 {
			if present {
				p.errorf("%s.csv line 2: first %s should be empty, got %q", name, growthCol, growth[i])
			}
			continue
		}
		prev, okPrev := parse(values[i-1])
		cur, okCur := parse(values[i])
		if !okPrev || !okCur || prev == 0 {
			if present {
				p.errorf("%s.csv line %d: %s %q has no baseline", name, i+2, growthCol, growth[i])
			}
			continue
		}
		want := roundTo((cur-prev)/prev*100, 3)
		if !present || math.Abs(got-want) > 1e-3 {
			p.errorf("%s.csv line %d: %s %q, want %.3f", name, i+2, growthCol, growth[i], want)
		}
	}
}

// ── Phase 4: Land cover ──

func validateLandCover(tables map[string]table) *phase {
	p := &phase{name: "Phase 4: Land cover shares"}
	t, ok := tables["lc"]
	if !ok || t.frame.Len() == 0 {
		return p
	}
	var total float64
	for i, lcType := range t.col("lcType") {
		if strings.Contains(strings.ToLower(lcType), "total") {
			p.errorf("lc.csv line %d: summary row %q was not removed", i+2, lcType)
		}
	}
	for i, s := range t.col("pixelCount") {
		if v, ok := parse(s); !ok || v <= 0 {
			p.errorf("lc.csv line %d: pixelCount %q is not positive", i+2, s)
		}
	}
	for _, s := range t.col("percentage") {
		v, _ := parse(s)
		total += v
	}
	if math.Abs(total-100) > 0.5 {
		p.errorf("lc.csv: percentages sum to %.2f, want 100 +/- 0.5", total)
	}
	return p
}

// ── Phase 5: Urban growth join ──

func validateUrbanGrowth(tables map[string]table) *phase {
	p := &phase{name: "Phase 5: Population urban growth join"}
	t, ok := tables["pug"]
	if !ok {
		return p
	}
	pops, ubas := t.col("population"), t.col("uba")
	popGrowth, ubaGrowth := t.col("populationGrowthPercentage"), t.col("ubaGrowthPercentage")
	density, ratio := t.col("density"), t.col("populationUrbanGrowthRatio")

	for i := range ratio {
		if pop, ok1 := parse(pops[i]); ok1 {
			if area, ok2 := parse(ubas[i]); ok2 && area != 0 {
				d, _ := parse(density[i])
				if want := roundTo(pop/area, 3); math.Abs(d-want) > 1e-3 {
					p.errorf("pug.csv line %d: density %q, want %.3f", i+2, density[i], want)
				}
			}
		}

		pg, ok1 := parse(popGrowth[i])
		ug, ok2 := parse(ubaGrowth[i])
		got, present := parse(ratio[i])
		if !ok1 || !ok2 || ug == 0 {
			if present {
				p.errorf("pug.csv line %d: ratio %q should be empty", i+2, ratio[i])
			}
			continue
		}
		if want := roundTo(pg/ug, 3); !present || math.Abs(got-want) > 1e-3 {
			p.errorf("pug.csv line %d: ratio %q, want %.3f", i+2, ratio[i], want)
		}
	}

	if pg, ok := tables["pg"]; ok && t.frame.Len() > pg.frame.Len() {
		p.errorf("pug.csv has %d rows, more than pg.csv's %d", t.frame.Len(), pg.frame.Len())
	}
	return p
}

// ── Phase 6: Fire weather ──

var dangerThresholds = []float64{5.2, 11.2, 21.3, 38.0, 50.0}

func validateFireWeather(tables map[string]table) *phase {
	p := &phase{name: "Phase 6: Fire weather classes"}
	t, ok := tables["fwi"]
	if !ok {
		return p
	}
	fwi, danger := t.col("fwi"), t.col("danger")
	for i := range fwi {
		v, present := parse(fwi[i])
		if !present {
			if danger[i] != "Unknown" {
				p.errorf("fwi.csv line %d: empty index classified %q", i+2, danger[i])
			}
			continue
		}
		if nearThreshold(v) {
			continue
		}
		if want := domain.DangerClass(v); danger[i] != want {
			p.errorf("fwi.csv line %d: fwi %v classified %q, want %q", i+2, v, danger[i], want)
		}
	}
	return p
}

// nearThreshold reports whether a rounded index could have been on either
// side of a class boundary before rounding.
func nearThreshold(v float64) bool {
	for _, th := range dangerThresholds {
		if math.Abs(v-th) <= 0.005 {
			return true
		}
	}
	return false
}
