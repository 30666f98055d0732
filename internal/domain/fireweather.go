package domain

import (
	"math"
	"sort"
	"strconv"
)

// FireWeatherHeader is the column layout of fwi.csv.
var FireWeatherHeader = []string{"week", "monthName", "fwi", "danger"}

// DangerLevels lists the fire danger classes from lowest to highest.
var DangerLevels = []string{"Very low", "Low", "Moderate", "High", "Very high", "Extreme"}

const dangerUnknown = "Unknown"

// weekMonthEnds holds the last ISO week of each month. Month boundaries are
// stated by week count and must not be derived from a calendar.
var weekMonthEnds = [...]int{4, 9, 13, 17, 22, 26, 30, 35, 39, 43, 47}

// weekMonth maps an ISO week number to a month name. Weeks past 47 are December.
func weekMonth(week int) string {
	for i, end := range weekMonthEnds {
		if week <= end {
			return monthNames[i]
		}
	}
	return monthNames[11]
}

// DangerClass classifies a fire weather index value. Boundary values belong
// to the upper class, so exactly 5.2 is "Low". NaN is "Unknown".
func DangerClass(fwi float64) string {
	switch {
	case math.IsNaN(fwi):
		return dangerUnknown
	case fwi < 5.2:
		return "Very low"
	case fwi < 11.2:
		return "Low"
	case fwi < 21.3:
		return "Moderate"
	case fwi < 38.0:
		return "High"
	case fwi < 50.0:
		return "Very high"
	default:
		return "Extreme"
	}
}

// FireWeather builds fwi.csv using the weekly 95th percentile as the index.
// Danger is classified from the unrounded value.
func FireWeather(src Source, opts Options) (Result, error) {
	cols, err := columns(src, "week", "pctile_95")
	if err != nil {
		return Result{}, err
	}
	weeks, pctiles := cols[0], cols[1]

	res := Result{RowsIn: src.Len()}

	type row struct {
		week   int
		month  string
		fwi    float64
		danger string
	}
	rows := make([]row, 0, len(weeks))
	for i := range weeks {
		w, ok := parseKey(weeks[i])
		if !ok {
			res.warnf("fire weather: dropping line %d with invalid week %q", i+2, weeks[i])
			continue
		}
		v := parseNumber(pctiles[i])
		rows = append(rows, row{week: w, month: weekMonth(w), fwi: round(v, opts.Precision.FWI), danger: DangerClass(v)})
	}
	res.RowsDropped = len(weeks) - len(rows)
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].week < rows[b].week })

	table := Table{Name: "fwi", Header: FireWeatherHeader}
	weekList := make([]int, len(rows))
	values := make([]float64, len(rows))
	dangerCounts := make(map[string]int)
	monthPeak := make(map[string]float64)
	for i, r := range rows {
		table.Rows = append(table.Rows, []string{strconv.Itoa(r.week), r.month, formatFloat(r.fwi), r.danger})
		weekList[i] = r.week
		values[i] = r.fwi
		dangerCounts[r.danger]++
		if peak, ok := monthPeak[r.month]; !math.IsNaN(r.fwi) && (!ok || r.fwi > peak) {
			monthPeak[r.month] = r.fwi
		}
	}
	res.Tables = []Table{table}

	res.Summary.add("Weeks covered", "%d weeks", len(rows))
	res.Summary.add("Week range", "%s", intSpan(weekList))
	res.Summary.add("FWI range", "%s", spanf(values, "%.2f"))
	for _, level := range DangerLevels {
		share := 0.0
		if len(rows) > 0 {
			share = float64(dangerCounts[level]) / float64(len(rows)) * 100
		}
		res.Summary.add("  "+level, "%d weeks (%.1f%%)", dangerCounts[level], share)
	}
	if n := dangerCounts[dangerUnknown]; n > 0 {
		res.warnf("fire weather: %d weeks have no index value and were classified %s", n, dangerUnknown)
	}
	if month, peak, ok := peakMonth(monthPeak); ok {
		res.Summary.add("Peak fire weather month", "%s (max FWI: %.2f)", month, peak)
	}
	return res, nil
}

// peakMonth returns the month with the highest weekly maximum, scanning in
// calendar order so ties resolve to the earlier month.
func peakMonth(peaks map[string]float64) (string, float64, bool) {
	best, bestVal := "", 0.0
	for _, m := range monthNames {
		v, ok := peaks[m]
		if !ok {
			continue
		}
		if best == "" || v > bestVal {
			best, bestVal = m, v
		}
	}
	return best, bestVal, best != ""
}
