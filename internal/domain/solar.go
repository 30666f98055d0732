package domain

import (
	"math"
	"sort"
	"strconv"
)

// SolarHeader is the column layout of pv.csv.
var SolarHeader = []string{"month", "monthName", "maxPv"}

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// monthName returns the three-letter name of a 1-based month, or "" when out of range.
func monthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// Solar builds pv.csv from the monthly photovoltaic extract, keeping the
// monthly maximum.
func Solar(src Source, opts Options) (Result, error) {
	cols, err := columns(src, "month", "max")
	if err != nil {
		return Result{}, err
	}
	months, maxes := cols[0], cols[1]

	res := Result{RowsIn: src.Len()}

	type row struct {
		month int
		name  string
		pv    float64
	}
	rows := make([]row, 0, len(months))
	for i := range months {
		m, ok := parseKey(months[i])
		if !ok {
			res.warnf("photovoltaic: dropping line %d with invalid month %q", i+2, months[i])
			continue
		}
		name := monthName(m)
		if name == "" {
			res.warnf("photovoltaic: month %d on line %d has no name", m, i+2)
		}
		rows = append(rows, row{month: m, name: name, pv: round(parseNumber(maxes[i]), opts.Precision.PV)})
	}
	res.RowsDropped = len(months) - len(rows)
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].month < rows[b].month })

	table := Table{Name: "pv", Header: SolarHeader}
	pvs := make([]float64, len(rows))
	var summer, winter []float64
	for i, r := range rows {
		table.Rows = append(table.Rows, []string{strconv.Itoa(r.month), r.name, formatFloat(r.pv)})
		pvs[i] = r.pv
		switch r.month {
		case 6, 7, 8:
			summer = append(summer, r.pv)
		case 12, 1, 2:
			winter = append(winter, r.pv)
		}
	}
	res.Tables = []Table{table}

	res.Summary.add("Months covered", "%d", len(rows))
	res.Summary.add("PV potential range", "%s", spanf(pvs, "%.2f"))
	if hi, lo, ok := extremes(pvs); ok {
		res.Summary.add("Peak month", "%s (%.2f)", rows[hi].name, rows[hi].pv)
		res.Summary.add("Lowest month", "%s (%.2f)", rows[lo].name, rows[lo].pv)
	}
	summerAvg, winterAvg := mean(summer), mean(winter)
	res.Summary.add("Summer average (Jun-Aug)", "%.2f", summerAvg)
	res.Summary.add("Winter average (Dec-Feb)", "%.2f", winterAvg)
	if variation := percentChange(winterAvg, summerAvg); !math.IsNaN(variation) {
		res.Summary.add("Seasonal variation", "%.1f%% higher in summer", variation)
	}
	return res, nil
}

// extremes returns the indexes of the first maximum and first minimum defined value.
func extremes(xs []float64) (hi, lo int, ok bool) {
	hi, lo = -1, -1
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if hi < 0 || x > xs[hi] {
			hi = i
		}
		if lo < 0 || x < xs[lo] {
			lo = i
		}
	}
	return hi, lo, hi >= 0
}
