package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		dataStr  string
		dataFile string
		noCache  bool
	)
	opts := c.baseOptions()
	opts.Count = pipeline.DefaultCount
	opts.Seed = pipeline.DefaultSeed

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a tree layout without rendering",
		Long: `Compute node and edge positions for a search tree.

The grid strategy places each node at a fixed horizontal slot per depth,
which is fast but lets subtrees collide; colliding cells are reported as
conflicts. The radial strategy places nodes on concentric rings and never
collides. Output is layout JSON consumable by 'render' or external tools.

Results are cached locally for faster subsequent runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := resolveData(dataStr, dataFile)
			if err != nil {
				return err
			}
			opts.Data = data
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", opts.Count, "number of random values")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", opts.Strategy,
		"layout strategy: grid (default), radial")
	cmd.Flags().StringVar(&dataStr, "data", "", "explicit values, comma-separated (overrides count/seed)")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "JSON file with explicit values")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache")

	return cmd
}

// runLayout executes the sample and layout stages and writes layout JSON.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger
	opts.Formats = []string{pipeline.FormatJSON}
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := layout.WriteLayout(result.Layout, out); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	if output != "" {
		printSuccess("Layout complete")
		printFile(output)
		printStats(result.Stats.NodeCount, result.Stats.ConflictCount, result.CacheInfo.LayoutHit)
		printNewline()
		printNextStep("Render", fmt.Sprintf("%s render --layout %s", appName, output))
	}
	prog.done(fmt.Sprintf("layout with %d node(s) written", result.Stats.NodeCount))
	return nil
}

// resolveData merges the two explicit-data flags; --data wins when both are set.
func resolveData(dataStr, dataFile string) ([]int, error) {
	if dataStr != "" {
		return parseData(dataStr)
	}
	if dataFile != "" {
		return readDataFile(dataFile)
	}
	return nil, nil
}
