package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// demoCommand creates the interactive demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		count    int
		seed     uint64
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Explore tree layouts interactively",
		Long: `Open an interactive terminal explorer for tree layouts.

Adjust the sample size with the arrow keys, resample with 'r', and switch
between the grid and radial strategies with tab. Grid cells where subtrees
collide are highlighted; the radial strategy never collides. Press 's' to
export the current view as SVG.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strategy == "" {
				strategy = layout.StrategyGrid
			}
			if err := layout.ValidateStrategy(strategy); err != nil {
				return err
			}

			m := NewDemoModel(count, seed, strategy)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run demo: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", pipeline.DefaultCount, "initial number of values")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "initial random seed")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "initial strategy: grid (default), radial")

	return cmd
}
