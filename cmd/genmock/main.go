// Command genmock writes a deterministic set of synthetic raw City Scan
// extracts, one per dataset, named so that "cityscan run" detects each one.
// The files exercise the cleaning rules: unsorted keys, summary rows, zero
// counts, missing cells, unparseable dates, and split infant age brackets.
//
// Usage:
//
//	go run ./cmd/genmock -out data/raw -city cartagena -seed 42
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", filepath.Join("data", "raw"), "output directory for raw extracts")
	city := flag.String("city", "cartagena", "city name used as the file name prefix")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	files, err := generate(*out, *city, *seed)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println("wrote", f)
	}
	return nil
}

// generate writes every raw extract and returns the written paths.
func generate(dir, city string, seed uint64) ([]string, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	extracts := []struct {
		suffix string
		table  domain.Table
	}{
		{"population-growth", populationGrowth(rng)},
		{"demographics", demographics(rng)},
		{"wsf_stats", builtUpArea(rng)},
		{"lc", landCover(rng)},
		{"monthly-pv", solar(rng)},
		{"flood", flood(rng)},
		{"earthquake-events", earthquakes(rng)},
		{"fwi", fireWeather(rng)},
	}

	paths := make([]string, 0, len(extracts))
	for _, e := range extracts {
		path := filepath.Join(dir, city+"_"+e.suffix+".csv")
		if err := csvfile.WriteFile(path, e.table); err != nil {
			return nil, fmt.Errorf("generate %s: %w", e.suffix, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64, places int) string { return strconv.FormatFloat(v, 'f', places, 64) }

func populationGrowth(rng *rand.Rand) domain.Table {
	t := domain.Table{Header: []string{"Year", "Population"}}
	pop := 800_000 + rng.IntN(200_000)
	for year := 2000; year <= 2020; year++ {
		t.Rows = append(t.Rows, []string{itoa(year), itoa(pop)})
		pop += pop * (10 + rng.IntN(20)) / 1000
	}
	// Newest first.
	for i, j := 0, len(t.Rows)-1; i < j; i, j = i+1, j-1 {
		t.Rows[i], t.Rows[j] = t.Rows[j], t.Rows[i]
	}
	return t
}

func demographics(rng *rand.Rand) domain.Table {
	t := domain.Table{Header: []string{"age_group", "sex", "population"}}
	brackets := []string{"0-1", "1-4", "5-9", "10-14", "15-19", "20-24", "25-29", "30-34", "35-39",
		"40-44", "45-49", "50-54", "55-59", "60-64", "65-69", "70-74", "75-79", "80+"}
	for _, sex := range []string{"f", "m"} {
		for i, b := range brackets {
			base := 40_000 - i*1_800
			if b == "0-1" {
				base = 8_000
			}
			t.Rows = append(t.Rows, []string{b, sex, ftoa(float64(base)+rng.Float64()*2_000, 2)})
		}
	}
	return t
}

func builtUpArea(rng *rand.Rand) domain.Table {
	t := domain.Table{Header: []string{"year", "cumulative sq km"}}
	area := 30 + rng.Float64()*10
	for year := 1985; year <= 2015; year++ {
		t.Rows = append(t.Rows, []string{itoa(year), ftoa(area, 4)})
		area += rng.Float64() * 2.5
	}
	return t
}

func landCover(rng *rand.Rand) domain.Table {
	t := domain.Table{Header: []string{"Land Cover Type", "Pixel Count"}}
	classes := []string{"Tree cover", "Shrubland", "Grassland", "Cropland", "Built-up",
		"Bare / sparse vegetation", "Snow and ice", "Permanent water bodies", "Herbaceous wetland", "Mangroves"}
	total := 0
	for _, c := range classes {
		n := rng.IntN(50_000)
		if c == "Snow and ice" {
			n = 0
		}
		total += n
		t.Rows = append(t.Rows, []string{c, itoa(n)})
	}
	t.Rows = append(t.Rows, []string{"Total", itoa(total)})
	return t
}

func solar(rng *rand.Rand) domain.Table {
	t := domain.Table{Header: []string{"month", "max", "min"}}
	for m := 12; m >= 1; m-- {
		hi := 4 + rng.Float64()*2
		t.Rows = append(t.Rows, []string{itoa(m), ftoa(hi, 4), ftoa(hi-1-rng.Float64(), 4)})
	}
	return t
}

func flood(rng *rand.Rand) domain.Table {
	t := domain.Table{Header: []string{"year", "coastal_2020", "fluvial_2020", "pluvial_2020", "comb_2020"}}
	for _, year := range []int{2050, 1985, 2020, 2080} {
		c, f, p := rng.Float64()*5, rng.Float64()*8, rng.Float64()*12
		t.Rows = append(t.Rows, []string{itoa(year), ftoa(c, 4), ftoa(f, 4), ftoa(p, 4), ftoa(c+f+p, 4)})
	}
	return t
}

func earthquakes(rng *rand.Rand) domain.Table {
	t := domain.Table{Header: []string{"BEGAN", "distance", "eqMagnitude", "text", "line1", "line2", "line3"}}
	dates := []string{"2010-05-03", "1992-11-04 06:12:00", "2004-07-15T10:00:00Z", "unknown", "1975/01/20"}
	for i, d := range dates {
		mag := 4 + rng.Float64()*3
		dist := 20 + rng.Float64()*400
		text := fmt.Sprintf("M %.1f - %dkm from the city, Region %d", mag, int(dist), i)
		t.Rows = append(t.Rows, []string{d, ftoa(dist, 1), ftoa(mag, 2), text, "Region " + itoa(i), "", d})
	}
	return t
}

func fireWeather(rng *rand.Rand) domain.Table {
	t := domain.Table{Header: []string{"week", "pctile_95", "pctile_50"}}
	for w := 53; w >= 1; w-- {
		v := rng.Float64() * 60
		cell := ftoa(v, 4)
		if w == 27 {
			cell = ""
		}
		t.Rows = append(t.Rows, []string{itoa(w), cell, ftoa(v/2, 4)})
	}
	return t
}
