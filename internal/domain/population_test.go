package domain

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulationGrowth(t *testing.T) {
	src := newSource([]string{"Year", "Population"},
		[]string{"2019", "105000"},
		[]string{"2018", "100000"},
		[]string{"2020", "110250"},
	)

	res, err := PopulationGrowth(src, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, "pg", table.Name)
	assert.Equal(t, "pg.csv", table.FileName())
	assert.Equal(t, PopulationGrowthHeader, table.Header)

	want := [][]string{
		{"2018", "100000", ""},
		{"2019", "105000", "5.0"},
		{"2020", "110250", "5.0"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Fatalf("pg rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, res.RowsIn)
	assert.Zero(t, res.RowsDropped)
	assert.Contains(t, res.Summary, Stat{Label: "Years covered", Value: "2018 - 2020"})
	assert.Contains(t, res.Summary, Stat{Label: "Population range", Value: "100,000 - 110,250"})
}

func TestPopulationGrowth_PercentChangeFormula(t *testing.T) {
	pops := []float64{1000, 1234, 1180, 1180, 2500.5}
	src := newSource([]string{"Year", "Population"})
	for i, p := range pops {
		src.rows = append(src.rows, []string{strconv.Itoa(2000 + i), strconv.FormatFloat(p, 'f', -1, 64)})
	}

	res, err := PopulationGrowth(src, DefaultOptions())
	require.NoError(t, err)
	rows := res.Tables[0].Rows
	require.Len(t, rows, len(pops))

	assert.Empty(t, rows[0][2], "first row has no baseline")
	for i := 1; i < len(pops); i++ {
		want := round((pops[i]-pops[i-1])/pops[i-1]*100, 3)
		assert.Equal(t, formatFloat(want), rows[i][2], "row %d", i)
	}
	// Mixed integer and fractional input prints population as floats.
	assert.Equal(t, "1000.0", rows[0][1])
}

func TestPopulationGrowth_DropsInvalidYear(t *testing.T) {
	src := newSource([]string{"Year", "Population"},
		[]string{"2018", "100"},
		[]string{"", "120"},
		[]string{"20x9", "130"},
	)

	res, err := PopulationGrowth(src, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Tables[0].Rows, 1)
	assert.Equal(t, 2, res.RowsDropped)
	assert.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], "line 3")
}

func TestPopulationAgeSex(t *testing.T) {
	src := newSource([]string{"age_group", "sex", "population"},
		[]string{"0-1", "f", "100"},
		[]string{"1-4", "f", "300"},
		[]string{"0-1", "m", "150"},
		[]string{"1-4", "m", "250"},
		[]string{"5-9", "m", "350"},
		[]string{"85-89", "f", "50"},
		[]string{"5-9", "f", "400"},
		[]string{"80+", "m", "400"},
	)

	res, err := PopulationAgeSex(src, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, "pas", table.Name)
	assert.Equal(t, PopulationAgeSexHeader, table.Header)

	want := [][]string{
		{"0-4", "female", "400", "20.0", "2021"},
		{"0-4", "male", "400", "20.0", "2021"},
		{"5-9", "female", "400", "20.0", "2021"},
		{"5-9", "male", "350", "17.5", "2021"},
		{"80+", "male", "400", "20.0", "2021"},
		{"85-89", "female", "50", "2.5", "2021"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Fatalf("pas rows mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "85-89")
	assert.Contains(t, res.Summary, Stat{Label: "Total population", Value: "2,000"})
	assert.Contains(t, res.Summary, Stat{Label: "Sex categories", Value: "2"})
}

func TestPopulationAgeSex_MergesInfantBrackets(t *testing.T) {
	for _, sex := range []string{"f", "m"} {
		t.Run(sex, func(t *testing.T) {
			src := newSource([]string{"age_group", "sex", "population"},
				[]string{"0-1", sex, "12.25"},
				[]string{"1-4", sex, "40.5"},
				[]string{"10-14", sex, "7"},
			)
			res, err := PopulationAgeSex(src, DefaultOptions())
			require.NoError(t, err)

			var merged [][]string
			for _, row := range res.Tables[0].Rows {
				assert.NotEqual(t, "0-1", row[0])
				assert.NotEqual(t, "1-4", row[0])
				if row[0] == "0-4" {
					merged = append(merged, row)
				}
			}
			require.Len(t, merged, 1)
			assert.Equal(t, "52.75", merged[0][2])
		})
	}
}

func TestPopulationAgeSex_CustomYearAndDroppedRows(t *testing.T) {
	opts := DefaultOptions()
	opts.CensusYear = 2020
	src := newSource([]string{"age_group", "sex", "population"},
		[]string{"20-24", "f", "10"},
		[]string{"", "f", "5"},
		[]string{"20-24", "", "5"},
	)

	res, err := PopulationAgeSex(src, opts)
	require.NoError(t, err)
	require.Len(t, res.Tables[0].Rows, 1)
	assert.Equal(t, []string{"20-24", "female", "10", "100.0", "2020"}, res.Tables[0].Rows[0])
	assert.Equal(t, 2, res.RowsDropped)
	assert.Empty(t, res.Warnings)
}

func TestAgeOrder_UnknownBracketsAlphabetical(t *testing.T) {
	brackets := []string{"90+", "0-4", "85-89", "80+"}
	order := ageOrder(brackets, func(s string) string { return s })

	assert.Equal(t, 0, order["0-4"])
	assert.Less(t, order["80+"], order["85-89"])
	assert.Less(t, order["85-89"], order["90+"])
	assert.Equal(t, len(canonicalAgeBrackets), order["85-89"], fmt.Sprint(order))
}
