package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// UrbanBuiltUpAreaHeader is the column layout of uba.csv.
var UrbanBuiltUpAreaHeader = []string{"year", "yearName", "uba", "ubaGrowthPercentage"}

// PopulationUrbanGrowthHeader is the column layout of pug.csv.
var PopulationUrbanGrowthHeader = []string{
	"yearName", "population", "populationGrowthPercentage", "year",
	"uba", "ubaGrowthPercentage", "density", "populationUrbanGrowthRatio",
}

// UrbanBuiltUpArea builds uba.csv from the WSF statistics extract. Growth is
// computed on the rounded area.
func UrbanBuiltUpArea(src Source, opts Options) (Result, error) {
	cols, err := columns(src, "year", "cumulative sq km")
	if err != nil {
		return Result{}, err
	}
	years, areas := cols[0], cols[1]

	res := Result{RowsIn: src.Len()}

	type row struct {
		year int
		area float64
	}
	rows := make([]row, 0, len(years))
	for i := range years {
		y, ok := parseKey(years[i])
		if !ok {
			res.warnf("urban built-up area: dropping line %d with invalid year %q", i+2, years[i])
			continue
		}
		rows = append(rows, row{year: y, area: round(parseNumber(areas[i]), opts.Precision.UBA)})
	}
	res.RowsDropped = len(years) - len(rows)
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].year < rows[b].year })

	table := Table{Name: "uba", Header: UrbanBuiltUpAreaHeader}
	yearList := make([]int, len(rows))
	areaList := make([]float64, len(rows))
	for i, r := range rows {
		growth := math.NaN()
		if i > 0 {
			growth = round(percentChange(rows[i-1].area, r.area), opts.Precision.GrowthPercentage)
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.year),
			formatFloat(r.area),
			formatFloat(growth),
		})
		yearList[i] = r.year
		areaList[i] = r.area
	}
	res.Tables = []Table{table}

	res.Summary.add("Years covered", "%s", intSpan(yearList))
	res.Summary.add("Total data points", "%d", len(rows))
	res.Summary.add("UBA range", "%s sq km", spanf(areaList, "%.2f"))
	return res, nil
}

// PopulationUrbanGrowth joins pg.csv and uba.csv on yearName and derives
// density and the population-to-urban growth ratio. Left order is preserved.
func PopulationUrbanGrowth(pg, uba Source, opts Options) (Result, error) {
	left, err := columns(pg, "yearName", "population", "populationGrowthPercentage")
	if err != nil {
		return Result{}, fmt.Errorf("population growth input: %w", err)
	}
	right, err := columns(uba, "yearName", "year", "uba", "ubaGrowthPercentage")
	if err != nil {
		return Result{}, fmt.Errorf("urban built-up area input: %w", err)
	}

	res := Result{RowsIn: pg.Len()}

	byYear := make(map[string][]int)
	for j, y := range right[0] {
		k := joinKey(y)
		if k == "" {
			continue
		}
		byYear[k] = append(byYear[k], j)
	}

	table := Table{Name: "pug", Header: PopulationUrbanGrowthHeader}
	var yearList []int
	var popList, areaList, densityList []float64
	missingRatios := 0
	for i, y := range left[0] {
		k := joinKey(y)
		matches := byYear[k]
		if k == "" || len(matches) == 0 {
			res.RowsDropped++
			continue
		}
		pop := parseNumber(left[1][i])
		popGrowth := parseNumber(left[2][i])
		for _, j := range matches {
			area := parseNumber(right[2][j])
			areaGrowth := parseNumber(right[3][j])

			density := math.NaN()
			if area != 0 {
				density = round(pop/area, opts.Precision.Density)
			}
			ratio := math.NaN()
			if areaGrowth != 0 && !math.IsNaN(areaGrowth) && !math.IsNaN(popGrowth) {
				ratio = round(popGrowth/areaGrowth, opts.Precision.GrowthRatio)
			}
			if math.IsNaN(ratio) {
				missingRatios++
			}

			table.Rows = append(table.Rows, []string{
				text(strings.TrimSpace(y)),
				text(strings.TrimSpace(left[1][i])),
				text(strings.TrimSpace(left[2][i])),
				text(strings.TrimSpace(right[1][j])),
				text(strings.TrimSpace(right[2][j])),
				text(strings.TrimSpace(right[3][j])),
				formatFloat(density),
				formatFloat(ratio),
			})
			if yr, ok := parseKey(y); ok {
				yearList = append(yearList, yr)
			}
			popList = append(popList, pop)
			areaList = append(areaList, area)
			densityList = append(densityList, density)
		}
	}
	if len(table.Rows) == 0 {
		return Result{}, ErrEmptyJoin
	}
	res.Tables = []Table{table}

	res.Summary.add("Overlapping years", "%d", len(table.Rows))
	res.Summary.add("Years covered", "%s", intSpan(yearList))
	res.Summary.add("Population range", "%s", spanGrouped(popList))
	res.Summary.add("UBA range", "%s", spanf(areaList, "%.2f"))
	res.Summary.add("Density range", "%s", spanf(densityList, "%.1f"))
	if missingRatios > 0 {
		res.warnf("population urban growth: %d missing growth ratios (first year or zero UBA growth)", missingRatios)
	}
	return res, nil
}

// joinKey normalizes a yearName cell so "2020" and "2020.0" join.
func joinKey(s string) string {
	if y, ok := parseKey(s); ok {
		return strconv.Itoa(y)
	}
	if isMissing(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
