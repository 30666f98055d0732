package domain

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stat is one labelled line of a transform summary.
type Stat struct {
	Label string
	Value string
}

// Summary is the human-readable report printed after a transform. It is
// informational only and not part of the data contract.
type Summary []Stat

func (s *Summary) add(label, format string, args ...any) {
	*s = append(*s, Stat{Label: label, Value: fmt.Sprintf(format, args...)})
}

var printer = message.NewPrinter(language.English)

// grouped formats a count with thousands separators, e.g. 110250 -> "110,250".
func grouped(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return printer.Sprintf("%d", int64(math.Round(v)))
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}

// span returns min and max over the defined values.
func span(xs []float64) (lo, hi float64, ok bool) {
	f := finite(xs)
	if len(f) == 0 {
		return 0, 0, false
	}
	return floats.Min(f), floats.Max(f), true
}

func spanf(xs []float64, verb string) string {
	lo, hi, ok := span(xs)
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf(verb+" - "+verb, lo, hi)
}

func spanGrouped(xs []float64) string {
	lo, hi, ok := span(xs)
	if !ok {
		return "n/a"
	}
	return grouped(lo) + " - " + grouped(hi)
}

func mean(xs []float64) float64 {
	f := finite(xs)
	if len(f) == 0 {
		return math.NaN()
	}
	return stat.Mean(f, nil)
}

func sum(xs []float64) float64 {
	return floats.Sum(finite(xs))
}

func intSpan(xs []int) string {
	if len(xs) == 0 {
		return "n/a"
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return fmt.Sprintf("%d - %d", lo, hi)
}
