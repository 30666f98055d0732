package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/config"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/pipeline"
)

func newRootCmd(p *pipeline.Pipeline, cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "cityscan",
		Short: "Clean City Scan tabular extracts",
		Long: `Clean raw City Scan tabular extracts into fixed CSV layouts.

Each dataset has its own subcommand. "run" picks the dataset from the input
file name. Outputs default to ` + cfg.OutputDir + `/<dataset>.csv.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	for _, kind := range domain.Kinds() {
		switch kind {
		case domain.KindFlood:
			root.AddCommand(newFloodCmd(p))
		case domain.KindPopulationUrbanGrowth:
			root.AddCommand(newUrbanGrowthCmd(p, cfg))
		default:
			root.AddCommand(newDatasetCmd(p, kind))
		}
	}
	root.AddCommand(newRunCmd(p, cfg), newDatasetsCmd())
	return root
}

func newDatasetCmd(p *pipeline.Pipeline, kind domain.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   kind.String() + " <input> [output]",
		Short: "Clean the " + kind.Title() + " extract into " + kind.String() + ".csv",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := pipeline.Job{Kind: kind, Inputs: args[:1]}
			if len(args) == 2 {
				job.Output = args[1]
			}
			_, err := p.Run(cmd.Context(), job)
			return err
		},
	}
}

func newFloodCmd(p *pipeline.Pipeline) *cobra.Command {
	codes := make([]string, len(domain.FloodTypes))
	for i, ft := range domain.FloodTypes {
		codes[i] = ft.Code + ".csv"
	}
	return &cobra.Command{
		Use:   "flood <input> [output-dir]",
		Short: "Split the flood extract into " + strings.Join(codes, ", "),
		Long: `Split the wide flood extract into one table per flood layer.
Layers whose column is absent are skipped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := pipeline.Job{Kind: domain.KindFlood, Inputs: args[:1]}
			if len(args) == 2 {
				job.Output = args[1]
			}
			_, err := p.Run(cmd.Context(), job)
			return err
		},
	}
}

func newUrbanGrowthCmd(p *pipeline.Pipeline, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "pug [pg.csv uba.csv [output]]",
		Short: "Join processed pg.csv and uba.csv into pug.csv",
		Long: `Join the processed population growth and urban built-up area tables on year.
Without arguments both inputs are read from ` + cfg.OutputDir + `.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 || len(args) > 3 {
				return fmt.Errorf("pug takes no arguments, or pg.csv and uba.csv with an optional output, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			job := pipeline.Job{Kind: domain.KindPopulationUrbanGrowth, Inputs: pipeline.UrbanGrowthInputs(cfg.OutputDir)}
			if len(args) >= 2 {
				job.Inputs = args[:2]
			}
			if len(args) == 3 {
				job.Output = args[2]
			}
			_, err := p.Run(cmd.Context(), job)
			return err
		},
	}
}

func newRunCmd(p *pipeline.Pipeline, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run <input> [output]",
		Short: "Clean an extract, choosing the dataset from its file name",
		Long: `Clean an extract, choosing the dataset from substrings of its file name:
  ` + strings.Join(domain.DetectPatterns(), ", "),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			job, err := pipeline.DetectJob(args[0], output, cfg.OutputDir)
			if err != nil {
				return err
			}
			_, err = p.Run(cmd.Context(), job)
			return err
		},
	}
}

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the supported datasets and their output tables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, kind := range domain.Kinds() {
				fmt.Fprintf(out, "%-6s %s\n", kind.String(), kind.Title())
			}
		},
	}
}
