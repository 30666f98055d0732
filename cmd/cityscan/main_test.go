package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/config"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/observability"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		OutputDir:    filepath.Join(t.TempDir(), "processed"),
		CensusYear:   2021,
		KafkaTopic:   "unused",
		KafkaTimeout: time.Second,
	}
}

func runCLI(t *testing.T, cfg *config.Config, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, cfg, slog.New(slog.DiscardHandler), observability.NewMetricsForTesting(), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const rawPopulation = "Year,Population\n2019,105000\n2018,100000\n2020,110250\n"

func TestRun_DatasetCommandDefaultOutput(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "city_population-growth.csv", rawPopulation)

	res := runCLI(t, cfg, "pg", input)
	require.Equal(t, 0, res.code, res.stderr)

	out := cfg.OutputPath("pg.csv")
	assert.FileExists(t, out)
	assert.Contains(t, res.stdout, "Cleaned data saved to: "+out)
	assert.Contains(t, res.stdout, "Population range: 100,000 - 110,250")
}

func TestRun_DatasetCommandExplicitOutput(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "anything.csv", rawPopulation)
	out := filepath.Join(t.TempDir(), "custom", "growth.csv")

	res := runCLI(t, cfg, "pg", input, out)
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "yearName,population,populationGrowthPercentage\n2018,100000,\n2019,105000,5.0\n2020,110250,5.0\n", string(data))
}

func TestRun_AutoDispatch(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "city_fwi.csv", "week,pctile_95\n2,11.2\n")

	res := runCLI(t, cfg, "run", input)
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(cfg.OutputPath("fwi.csv"))
	require.NoError(t, err)
	assert.Equal(t, "week,monthName,fwi,danger\n2,Jan,11.2,Moderate\n", string(data))
}

func TestRun_AutoDispatchUnknownPrintsUsage(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "readme.csv", "a\n1\n")

	res := runCLI(t, cfg, "run", input)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Usage:")
	assert.NoFileExists(t, cfg.OutputPath("readme.csv"))
}

func TestRun_MissingInput(t *testing.T) {
	cfg := testConfig(t)
	res := runCLI(t, cfg, "lc", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Equal(t, 1, res.code)
}

func TestRun_FloodToDirectory(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, "city_flood.csv", "year,pluvial_2020,coastal_2020\n2050,2,1\n1985,1,0.5\n")
	outDir := filepath.Join(t.TempDir(), "floods")

	res := runCLI(t, cfg, "flood", input, outDir)
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(outDir, "cu.csv"))
	assert.FileExists(t, filepath.Join(outDir, "pu.csv"))
	assert.NoFileExists(t, filepath.Join(outDir, "fu.csv"))
}

func TestRun_UrbanGrowthDefaults(t *testing.T) {
	cfg := testConfig(t)
	pgIn := writeInput(t, "city_population-growth.csv", "Year,Population\n1990,1000\n1995,1100\n")
	ubaIn := writeInput(t, "city_wsf_stats.csv", "year,cumulative sq km\n1990,10\n1995,11\n")

	require.Equal(t, 0, runCLI(t, cfg, "run", pgIn).code)
	require.Equal(t, 0, runCLI(t, cfg, "uba", ubaIn).code)

	res := runCLI(t, cfg, "pug")
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, cfg.OutputPath("pug.csv"))
}

func TestRun_UrbanGrowthRejectsSingleArgument(t *testing.T) {
	res := runCLI(t, testConfig(t), "pug", "pg.csv")
	assert.Equal(t, 1, res.code)
}

func TestRun_WritesMetricsTextfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsTextfile = filepath.Join(t.TempDir(), "cityscan.prom")
	input := writeInput(t, "pop.csv", rawPopulation)

	require.Equal(t, 0, runCLI(t, cfg, "pg", input).code)

	data, err := os.ReadFile(cfg.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cityscan_etl_rows_written_total{dataset="pg",table="pg"} 3`)
}

func TestRun_DatasetsCommand(t *testing.T) {
	res := runCLI(t, testConfig(t), "datasets")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "pug    population urban growth")
	assert.Contains(t, res.stdout, "fwi    fire weather index")
}
