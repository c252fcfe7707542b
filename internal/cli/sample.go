package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/pipeline"
	"github.com/matzehuels/treeviz/pkg/sample"
)

// sampleCommand creates the sample command for generating random values.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		count   int
		seed    uint64
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a random integer sample",
		Long: `Generate a random integer sample for building a search tree.

Values are drawn uniformly from [0, 99] using a seeded generator, so the
same count and seed always produce the same sample. The output is a JSON
array that 'layout' and 'render' accept via --data-file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := pipeline.Options{Count: count, Seed: seed}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			data, cached, err := runner.Sample(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("generate sample: %w", err)
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			enc := json.NewEncoder(out)
			if err := enc.Encode(data); err != nil {
				return err
			}

			if output != "" {
				printSuccess("Sample generated")
				printFile(output)
				printStats(len(data), 0, cached)
				printNewline()
				printNextStep("Render", fmt.Sprintf("%s render --data-file %s", appName, output))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", pipeline.DefaultCount,
		fmt.Sprintf("number of values (%d-%d)", sample.MinCount, sample.MaxCount))
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// openOutput opens path for writing, or wraps stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// readDataFile loads a JSON integer array written by the sample command.
func readDataFile(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var xs []int
	if err := json.Unmarshal(data, &xs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return xs, nil
}
