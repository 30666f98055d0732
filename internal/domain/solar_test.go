package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolar(t *testing.T) {
	src := newSource([]string{"month", "max", "min"},
		[]string{"2", "3.456", "1"},
		[]string{"1", "2.004", "1"},
		[]string{"13", "1", "0"},
		[]string{"x", "9", "0"},
	)

	res, err := Solar(src, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, "pv", table.Name)
	assert.Equal(t, SolarHeader, table.Header)

	want := [][]string{
		{"1", "Jan", "2.0"},
		{"2", "Feb", "3.46"},
		{"13", "", "1.0"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Fatalf("pv rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, res.RowsDropped)
	assert.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Summary, Stat{Label: "Peak month", Value: "Feb (3.46)"})
}

func TestSolar_SeasonalSummary(t *testing.T) {
	src := newSource([]string{"month", "max"})
	values := []string{"2", "2", "3", "4", "5", "6", "6", "6", "5", "4", "3", "2"}
	for i, v := range values {
		src.rows = append(src.rows, []string{monthNumber(i + 1), v})
	}

	res, err := Solar(src, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Tables[0].Rows, 12)
	assert.Contains(t, res.Summary, Stat{Label: "Summer average (Jun-Aug)", Value: "6.00"})
	assert.Contains(t, res.Summary, Stat{Label: "Winter average (Dec-Feb)", Value: "2.00"})
	assert.Contains(t, res.Summary, Stat{Label: "Seasonal variation", Value: "200.0% higher in summer"})
	assert.Contains(t, res.Summary, Stat{Label: "Lowest month", Value: "Jan (2.00)"})
}

func monthNumber(m int) string {
	return [...]string{"", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}[m]
}
