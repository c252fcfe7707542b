package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/pipeline"
	"github.com/matzehuels/treeviz/pkg/render"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		dataStr    string
		dataFile   string
		layoutFile string
		noCache    bool
	)
	opts := c.baseOptions()
	opts.Count = pipeline.DefaultCount
	opts.Seed = pipeline.DefaultSeed
	opts.Scale = pipeline.DefaultScale

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a search tree to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a search tree visualization.

By default a random sample is generated, inserted into a tree, laid out
with the grid strategy, and written as SVG. Grid cells where subtrees
collide are circled unless --no-conflicts is given. Use --nodelink for a
Graphviz-drawn structural diagram instead of the coordinate layout.

Examples:
  treeviz render                              # default 15-node tree as SVG
  treeviz render -n 30 --seed 7 -s radial     # radial layout
  treeviz render --data 50,25,75,40,60        # explicit values
  treeviz render -f svg,png,json -o tree      # multiple formats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			data, err := resolveData(dataStr, dataFile)
			if err != nil {
				return err
			}
			opts.Data = data

			if layoutFile != "" {
				return c.renderFromLayout(cmd.Context(), layoutFile, output, opts)
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base path (default: tree.<format>)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", opts.Count, "number of random values")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", opts.Strategy,
		"layout strategy: grid (default), radial")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: light (default), dark")
	cmd.Flags().StringVar(&dataStr, "data", "", "explicit values, comma-separated (overrides count/seed)")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "JSON file with explicit values")
	cmd.Flags().StringVar(&layoutFile, "layout", "", "render a previously computed layout JSON file")
	cmd.Flags().BoolVar(&opts.NoConflicts, "no-conflicts", false, "hide conflict markers")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "hide node value labels")
	cmd.Flags().BoolVar(&opts.Nodelink, "nodelink", false, "draw a Graphviz node-link diagram instead")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include depth annotations (nodelink/dot)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "raster scale factor for PNG")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("style", styleCompletion)

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess("Render complete")

	base := basePath(output)
	for _, format := range opts.Formats {
		path := base + "." + format
		if len(opts.Formats) == 1 && output != "" && filepath.Ext(output) != "" {
			path = output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.ConflictCount, result.CacheInfo.RenderHit)

	if result.Stats.ConflictCount > 0 && !opts.NoConflicts {
		printWarning("%d grid cells collide; try --strategy radial", result.Stats.ConflictCount)
	}
	prog.done(fmt.Sprintf("rendered %d format(s)", len(opts.Formats)))
	return nil
}

// renderFromLayout renders a stored layout file without recomputing it.
// Structural formats (dot, nodelink) need the tree and are rejected here.
func (c *CLI) renderFromLayout(ctx context.Context, layoutFile, output string, opts pipeline.Options) error {
	if opts.Nodelink {
		return fmt.Errorf("--nodelink requires tree data; use --data or --count instead of --layout")
	}
	for _, f := range opts.Formats {
		if f == pipeline.FormatDOT {
			return fmt.Errorf("dot output requires tree data; use --data or --count instead of --layout")
		}
	}

	l, err := layout.ReadLayoutFile(layoutFile)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", layoutFile, err)
	}

	artifacts, err := pipeline.Render(l, nil, opts.Formats, opts)
	if err != nil {
		return err
	}

	base := basePath(output)
	if output == "" {
		base = strings.TrimSuffix(layoutFile, filepath.Ext(layoutFile))
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + "." + format
		if len(opts.Formats) == 1 && output != "" && filepath.Ext(output) != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(l.Nodes), len(l.Conflicts), false)
	return nil
}

// basePath derives the base output path, stripping a known format extension.
func basePath(output string) string {
	if output == "" {
		return "tree"
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// styleCompletion suggests valid style names for the --style flag.
func styleCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{render.StyleLightName, render.StyleDarkName}, cobra.ShellCompDirectiveNoFileComp
}
