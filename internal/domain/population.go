package domain

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// PopulationGrowthHeader is the column layout of pg.csv.
var PopulationGrowthHeader = []string{"yearName", "population", "populationGrowthPercentage"}

// PopulationAgeSexHeader is the column layout of pas.csv.
var PopulationAgeSexHeader = []string{"ageBracket", "sex", "count", "percentage", "yearName"}

// canonicalAgeBrackets is the display order of pas.csv. Brackets outside
// this list are appended alphabetically.
var canonicalAgeBrackets = []string{
	"0-4", "5-9", "10-14", "15-19", "20-24", "25-29",
	"30-34", "35-39", "40-44", "45-49", "50-54", "55-59", "60-64",
	"65-69", "70-74", "75-79", "80+", "80",
}

// mergedAgeBrackets folds the infant brackets into the first 5-year bracket.
var mergedAgeBrackets = map[string]string{"0-1": "0-4", "1-4": "0-4"}

var sexNames = map[string]string{"f": "female", "m": "male"}

// PopulationGrowth builds pg.csv from a Year/Population extract. Rows are
// ordered by year and the growth of row i is the percent change from row i-1.
func PopulationGrowth(src Source, opts Options) (Result, error) {
	cols, err := columns(src, "Year", "Population")
	if err != nil {
		return Result{}, err
	}
	years, pops := cols[0], cols[1]
	values, integral := parseNumbers(pops)

	res := Result{RowsIn: src.Len()}

	type row struct {
		year int
		pop  float64
	}
	rows := make([]row, 0, len(years))
	for i := range years {
		y, ok := parseKey(years[i])
		if !ok {
			res.warnf("population growth: dropping line %d with invalid Year %q", i+2, years[i])
			continue
		}
		rows = append(rows, row{year: y, pop: values[i]})
	}
	res.RowsDropped = len(years) - len(rows)
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].year < rows[b].year })

	table := Table{Name: "pg", Header: PopulationGrowthHeader}
	yearList := make([]int, len(rows))
	popList := make([]float64, len(rows))
	for i, r := range rows {
		growth := math.NaN()
		if i > 0 {
			growth = round(percentChange(rows[i-1].pop, r.pop), opts.Precision.GrowthPercentage)
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(r.year),
			formatNumber(r.pop, integral),
			formatFloat(growth),
		})
		yearList[i] = r.year
		popList[i] = r.pop
	}
	res.Tables = []Table{table}

	res.Summary.add("Years covered", "%s", intSpan(yearList))
	res.Summary.add("Total data points", "%d", len(rows))
	res.Summary.add("Population range", "%s", spanGrouped(popList))
	return res, nil
}

// PopulationAgeSex builds pas.csv from the demographics extract: infant
// brackets are merged, population is summed per (bracket, sex) and each
// group's share of the total is reported.
func PopulationAgeSex(src Source, opts Options) (Result, error) {
	cols, err := columns(src, "age_group", "sex", "population")
	if err != nil {
		return Result{}, err
	}
	brackets, sexes, pops := cols[0], cols[1], cols[2]
	values, integral := parseNumbers(pops)

	res := Result{RowsIn: src.Len()}

	type key struct{ bracket, sex string }
	type group struct {
		key
		total float64
	}
	var groups []*group
	index := make(map[key]*group)
	for i := range brackets {
		if isMissing(brackets[i]) || isMissing(sexes[i]) {
			res.RowsDropped++
			continue
		}
		b := strings.TrimSpace(brackets[i])
		if merged, ok := mergedAgeBrackets[b]; ok {
			b = merged
		}
		s := strings.TrimSpace(sexes[i])
		if full, ok := sexNames[s]; ok {
			s = full
		}
		k := key{bracket: b, sex: s}
		g, ok := index[k]
		if !ok {
			g = &group{key: k}
			index[k] = g
			groups = append(groups, g)
		}
		if !math.IsNaN(values[i]) {
			g.total += values[i]
		}
	}

	order := ageOrder(groups, func(g *group) string { return g.bracket })
	var unknown []string
	for b, pos := range order {
		if pos >= len(canonicalAgeBrackets) {
			unknown = append(unknown, b)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		res.warnf("population age/sex: brackets %s are not in the canonical order and were sorted last", strings.Join(unknown, ", "))
	}
	sort.SliceStable(groups, func(a, b int) bool {
		pa, pb := order[groups[a].bracket], order[groups[b].bracket]
		if pa != pb {
			return pa < pb
		}
		return groups[a].sex < groups[b].sex
	})

	var grand float64
	for _, g := range groups {
		grand += g.total
	}

	table := Table{Name: "pas", Header: PopulationAgeSexHeader}
	counts := make([]float64, len(groups))
	distinctSex := make(map[string]struct{})
	for i, g := range groups {
		share := math.NaN()
		if grand != 0 {
			share = round(g.total/grand*100, opts.Precision.AgePercentage)
		}
		count := g.total
		if !integral {
			count = round(count, opts.Precision.AgeCount)
		}
		table.Rows = append(table.Rows, []string{
			g.bracket,
			g.sex,
			formatNumber(count, integral),
			formatFloat(share),
			strconv.Itoa(opts.CensusYear),
		})
		counts[i] = count
		distinctSex[g.sex] = struct{}{}
	}
	res.Tables = []Table{table}

	res.Summary.add("Total population", "%s", grouped(sum(counts)))
	res.Summary.add("Age brackets", "%d", len(order))
	res.Summary.add("Sex categories", "%d", len(distinctSex))
	res.Summary.add("Total records", "%d", len(groups))
	return res, nil
}

// ageOrder assigns a sort position to every bracket present in items:
// canonical brackets keep their canonical index, the rest follow alphabetically.
func ageOrder[T any](items []T, bracket func(T) string) map[string]int {
	present := make(map[string]struct{})
	for _, it := range items {
		present[bracket(it)] = struct{}{}
	}
	order := make(map[string]int, len(present))
	for b := range present {
		if pos := slices.Index(canonicalAgeBrackets, b); pos >= 0 {
			order[b] = pos
		}
	}
	var extra []string
	for b := range present {
		if _, ok := order[b]; !ok {
			extra = append(extra, b)
		}
	}
	sort.Strings(extra)
	for i, b := range extra {
		order[b] = len(canonicalAgeBrackets) + i
	}
	return order
}
