package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FloodType describes one flood hazard layer of the flood extract.
type FloodType struct {
	Name   string // "coastal", "fluvial", "pluvial", "combined"
	Column string // input column, e.g. "fluvial_2020"
	Code   string // output table and value column, e.g. "fu"
}

// FloodTypes lists the recognized layers in output order.
var FloodTypes = []FloodType{
	{Name: "coastal", Column: "coastal_2020", Code: "cu"},
	{Name: "fluvial", Column: "fluvial_2020", Code: "fu"},
	{Name: "pluvial", Column: "pluvial_2020", Code: "pu"},
	{Name: "combined", Column: "comb_2020", Code: "comb"},
}

// FloodHeader returns the column layout of the table for a flood layer code.
func FloodHeader(code string) []string {
	return []string{"year", "yearName", code}
}

// Flood splits the wide flood extract into one narrow table per layer that
// is present. Layers whose column is absent are skipped without error. The
// year column is the 1-based position in the input, assigned before sorting.
func Flood(src Source, opts Options) (Result, error) {
	res := Result{RowsIn: src.Len()}

	var present []FloodType
	var missing []string
	for _, ft := range FloodTypes {
		if hasColumn(src, ft.Column) {
			present = append(present, ft)
		} else {
			missing = append(missing, ft.Name)
		}
	}
	if len(present) == 0 {
		res.warnf("flood: none of %s found, no files produced", floodColumnList())
		res.Summary.add("Available flood types", "none")
		return res, nil
	}

	years, err := src.Column("year")
	if err != nil {
		return Result{}, err
	}

	type row struct {
		seq   int
		year  int
		value float64
	}
	var names []string
	var dropped int
	for _, ft := range present {
		raw, err := src.Column(ft.Column)
		if err != nil {
			return Result{}, err
		}
		rows := make([]row, 0, len(raw))
		for i := range raw {
			y, ok := parseKey(years[i])
			if !ok {
				continue
			}
			rows = append(rows, row{seq: i + 1, year: y, value: round(parseNumber(raw[i]), opts.Precision.Flood)})
		}
		dropped = len(raw) - len(rows)
		sort.SliceStable(rows, func(a, b int) bool { return rows[a].year < rows[b].year })

		table := Table{Name: ft.Code, Header: FloodHeader(ft.Code)}
		yearList := make([]int, len(rows))
		valueList := make([]float64, len(rows))
		for i, r := range rows {
			table.Rows = append(table.Rows, []string{strconv.Itoa(r.seq), strconv.Itoa(r.year), formatFloat(r.value)})
			yearList[i] = r.year
			valueList[i] = r.value
		}
		res.Tables = append(res.Tables, table)
		names = append(names, ft.Name)

		res.Summary.add(table.FileName(), "%d records, years %s, %s range %s",
			len(rows), intSpan(yearList), strings.ToUpper(ft.Code), spanf(valueList, "%.2f"))
	}
	res.RowsDropped = dropped
	if dropped > 0 {
		res.warnf("flood: dropped %d rows with an invalid year", dropped)
	}

	res.Summary.add("Available flood types", "%s", strings.Join(names, ", "))
	if len(missing) > 0 {
		res.Summary.add("Missing flood types", "%s", strings.Join(missing, ", "))
	}
	if len(present) > 1 {
		floodComparison(&res, src, present)
	}
	return res, nil
}

// floodComparison adds per-layer averages and trends, and the layer with the
// highest value in the last input row.
func floodComparison(res *Result, src Source, present []FloodType) {
	dominant, best := "", 0.0
	for _, ft := range present {
		raw, err := src.Column(ft.Column)
		if err != nil || len(raw) == 0 {
			continue
		}
		values, _ := parseNumbers(raw)
		lo, hi, _ := span(values)
		first, last := values[0], values[len(values)-1]
		trend := last - first
		direction := "stable"
		switch {
		case trend > 0:
			direction = "increase"
		case trend < 0:
			direction = "decrease"
		}
		res.Summary.add(strings.ToUpper(ft.Name[:1])+ft.Name[1:]+" flood risk",
			"average %.2f, range %.2f - %.2f, trend %+.2f (%s)", mean(values), lo, hi, trend, direction)
		if dominant == "" || last > best {
			dominant, best = ft.Name, last
		}
	}
	if dominant != "" {
		res.Summary.add("Dominant risk type (latest year)", "%s (%.2f)", dominant, best)
	}
}

func floodColumnList() string {
	cols := make([]string, len(FloodTypes))
	for i, ft := range FloodTypes {
		cols[i] = fmt.Sprintf("%q", ft.Column)
	}
	return strings.Join(cols, ", ")
}
