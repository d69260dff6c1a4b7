package cli

import (
	"github.com/spf13/cobra"

	"lattice-pricer/internal/pricing"
)

// treePrintLimit caps the step count for text rendering; beyond it the grid
// is still computed but only emitted as JSON.
const treePrintLimit = 12

func newTreeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Display the price lattice node by node",
		Long: `Display the full lattice: underlying price, option value and hedge
ratio per node, plus the risk-neutral probability of each terminal state.
American-exercised nodes are marked with '*'.`,
		Example: `  pricer tree --steps 4
  pricer tree --kind put --style american --steps 5 --family trinomial`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			in, err := inputsFromFlags(cmd)
			if err != nil {
				output.Error("Invalid inputs: %v", err)
				return err
			}

			grid, err := pricing.Evaluate(in)
			if err != nil {
				output.Error("Lattice evaluation failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"price":                  grid.Price(),
					"nodes":                  grid.Nodes(),
					"terminal_probabilities": grid.TerminalProbabilities(),
				})
			}

			if in.Steps > treePrintLimit {
				output.Warning("Tree has %d steps; use --json for machine-readable output or --steps <= %d for text rendering", in.Steps, treePrintLimit)
				output.Printf("Root price: %.4f\n", grid.Price())
				return nil
			}

			displayTree(output, grid)
			return nil
		},
	}

	addMarketFlags(cmd, app.Config)
	return cmd
}

func displayTree(output *Output, grid *pricing.Grid) {
	output.Bold("%s lattice, %d steps, price %.4f", grid.Family, grid.Steps, grid.Price())
	for i := 0; i <= grid.Steps; i++ {
		output.Printf("\nstep %d\n", i)
		for j := 0; j < grid.Width(i); j++ {
			n := grid.At(i, j)
			mark := " "
			if n.Exercised {
				mark = "*"
			}
			output.Printf("  [%2d]%s S=%10.4f  V=%10.4f  d=%8.4f\n",
				n.State, mark, n.Underlying, n.Value, n.Delta)
		}
	}

	output.Printf("\nterminal probabilities\n")
	for j, p := range grid.TerminalProbabilities() {
		output.Printf("  [%2d] p=%.6f\n", j, p)
	}
}
