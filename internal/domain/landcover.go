package domain

import (
	"math"
	"sort"
	"strings"
)

// LandCoverHeader is the column layout of lc.csv.
var LandCoverHeader = []string{"lcType", "pixelCount", "pixelTotal", "percentage"}

// LandCover builds lc.csv. Classes with no pixels and any "total" summary
// rows are removed before shares are computed, so percentages describe the
// remaining classes only. The rounded shares are not forced to sum to 100.
func LandCover(src Source, opts Options) (Result, error) {
	cols, err := columns(src, "Land Cover Type", "Pixel Count")
	if err != nil {
		return Result{}, err
	}
	labels, counts := cols[0], cols[1]
	values, integral := parseNumbers(counts)

	res := Result{RowsIn: src.Len()}

	type row struct {
		label string
		count float64
		share float64
	}
	rows := make([]row, 0, len(labels))
	var total float64
	for i := range labels {
		c := values[i]
		if math.IsNaN(c) || c <= 0 || strings.Contains(strings.ToLower(labels[i]), "total") {
			continue
		}
		rows = append(rows, row{label: text(labels[i]), count: c})
		total += c
	}
	res.RowsDropped = len(labels) - len(rows)

	for i := range rows {
		rows[i].share = round(rows[i].count/total*100, opts.Precision.LandCoverPercentage)
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].share > rows[b].share })

	table := Table{Name: "lc", Header: LandCoverHeader}
	shares := make([]float64, len(rows))
	for i, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.label,
			formatInt(round(r.count, opts.Precision.PixelCount)),
			formatNumber(total, integral),
			formatFloat(r.share),
		})
		shares[i] = r.share
	}
	res.Tables = []Table{table}

	res.Summary.add("Land cover types", "%d", len(rows))
	res.Summary.add("Total pixels analyzed", "%s", grouped(total))
	res.Summary.add("Percentage coverage verification", "%.1f%% (should be ~100%%)", sum(shares))
	if len(rows) > 0 {
		res.Summary.add("Dominant land cover", "%s (%.1f%%)", rows[0].label, rows[0].share)
	} else {
		res.warnf("land cover: no classes left after removing empty and total rows")
	}
	return res, nil
}
