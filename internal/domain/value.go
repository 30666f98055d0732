package domain

import (
	"math"
	"strconv"
	"strings"
)

// isMissing reports whether a raw cell counts as an absent value.
func isMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "nan", "null":
		return true
	}
	return false
}

// parseNumber parses a cell as float64. Missing or malformed cells yield NaN.
func parseNumber(s string) float64 {
	if isMissing(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseNumbers parses a whole column and reports whether every present cell
// was written as an integer, which decides how the column is printed back.
func parseNumbers(col []string) ([]float64, bool) {
	out := make([]float64, len(col))
	integral, seen := true, false
	for i, s := range col {
		out[i] = parseNumber(s)
		if math.IsNaN(out[i]) {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
			integral = false
		}
	}
	return out, integral && seen
}

// parseKey parses an integer sort key such as a year, month or week.
// "2018" and "2018.0" are accepted; anything fractional is rejected.
func parseKey(s string) (int, bool) {
	v := parseNumber(s)
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

// text normalizes a pass-through string cell.
func text(s string) string {
	if isMissing(s) {
		return ""
	}
	return s
}

// round rounds half-to-even at the given number of decimal places.
func round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}

// percentChange returns the growth from prev to cur in percent, or NaN when
// there is no usable baseline.
func percentChange(prev, cur float64) float64 {
	if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
		return math.NaN()
	}
	return (cur - prev) / prev * 100
}

// formatFloat prints a float column value. Integral values keep a trailing
// ".0" so a float column never looks like an integer column.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatInt prints an integer column value; NaN becomes an empty field.
func formatInt(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

func formatNumber(v float64, integral bool) string {
	if integral {
		return formatInt(v)
	}
	return formatFloat(v)
}
