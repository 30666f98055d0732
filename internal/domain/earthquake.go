package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// EarthquakeHeader is the column layout of ee.csv.
var EarthquakeHeader = []string{"begin_year", "distance", "eqMagnitude", "text", "line1", "line2", "line3"}

// beganLayouts are the date formats accepted in the BEGAN column.
var beganLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006",
}

// parseBegan returns the year of an event start date.
func parseBegan(s string) (int, bool) {
	if isMissing(s) {
		return 0, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range beganLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// Earthquake builds ee.csv from the earthquake events extract. Events whose
// BEGAN date cannot be parsed are dropped.
func Earthquake(src Source, opts Options) (Result, error) {
	cols, err := columns(src, "BEGAN", "distance", "eqMagnitude", "text", "line1", "line2", "line3")
	if err != nil {
		return Result{}, err
	}
	began := cols[0]

	res := Result{RowsIn: src.Len()}

	type row struct {
		year      int
		distance  float64
		magnitude float64
		texts     [4]string
	}
	rows := make([]row, 0, len(began))
	for i := range began {
		y, ok := parseBegan(began[i])
		if !ok {
			res.RowsDropped++
			continue
		}
		rows = append(rows, row{
			year:      y,
			distance:  round(parseNumber(cols[1][i]), opts.Precision.Distance),
			magnitude: round(parseNumber(cols[2][i]), opts.Precision.Magnitude),
			texts:     [4]string{text(cols[3][i]), text(cols[4][i]), text(cols[5][i]), text(cols[6][i])},
		})
	}
	if res.RowsDropped > 0 {
		res.warnf("earthquake events: dropped %d rows with an unparseable BEGAN date", res.RowsDropped)
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].year < rows[b].year })

	table := Table{Name: "ee", Header: EarthquakeHeader}
	years := make([]int, len(rows))
	distances := make([]float64, len(rows))
	magnitudes := make([]float64, len(rows))
	for i, r := range rows {
		record := []string{
			strconv.Itoa(r.year),
			formatInt(r.distance),
			formatFloat(r.magnitude),
		}
		record = append(record, r.texts[:]...)
		table.Rows = append(table.Rows, record)
		years[i] = r.year
		distances[i] = r.distance
		magnitudes[i] = r.magnitude
	}
	res.Tables = []Table{table}

	res.Summary.add("Earthquake events", "%d", len(rows))
	res.Summary.add("Year range", "%s", intSpan(years))
	res.Summary.add("Magnitude range", "%s", spanf(magnitudes, "%.1f"))
	res.Summary.add("Distance range", "%s km", spanf(distances, "%.0f"))
	return res, nil
}
