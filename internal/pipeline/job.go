package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
)

// Job is a single cleaning request.
type Job struct {
	Kind   domain.Kind
	Inputs []string
	// Output overrides the destination. It is a file path for single-table
	// datasets and a directory for flood. Empty uses Settings.OutputDir.
	Output string
}

// Validate checks the job names a known dataset with the right number of inputs.
func (j Job) Validate() error {
	want := j.Kind.Inputs()
	if want == 0 {
		return fmt.Errorf("job: %w: %s", domain.ErrAmbiguousSelection, j.Kind)
	}
	if len(j.Inputs) != want {
		return fmt.Errorf("job %s: want %d inputs, got %d", j.Kind, want, len(j.Inputs))
	}
	return nil
}

// UrbanGrowthInputs returns the default pg.csv and uba.csv inputs of the
// population urban growth join, both read from the processed directory.
func UrbanGrowthInputs(outputDir string) []string {
	return []string{
		filepath.Join(outputDir, "pg.csv"),
		filepath.Join(outputDir, "uba.csv"),
	}
}

// DetectJob builds a job by inferring the dataset from the input file name.
// A "pug" input is taken as the population growth side of the join and is
// paired with uba.csv from outputDir.
func DetectJob(input, output, outputDir string) (Job, error) {
	kind, err := domain.DetectKind(input)
	if err != nil {
		return Job{}, err
	}
	job := Job{Kind: kind, Inputs: []string{input}, Output: output}
	if kind == domain.KindPopulationUrbanGrowth {
		job.Inputs = []string{input, UrbanGrowthInputs(outputDir)[1]}
	}
	return job, nil
}
