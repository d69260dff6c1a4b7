package cli

import (
	"math"

	"github.com/spf13/cobra"
)

func newConvergenceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convergence",
		Short: "Analyze price convergence across step counts",
		Long: `Reprice the contract across an ascending range of step counts and
report each lattice price next to the Black-Scholes-Merton reference.

Binomial prices oscillate with odd/even step parity; that is a property of
the discretization, not an error.`,
		Example: `  pricer convergence --range 10,50,100,500
  pricer convergence --family trinomial --kind put --range 10,20,50,100,200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			in, err := inputsFromFlags(cmd)
			if err != nil {
				output.Error("Invalid inputs: %v", err)
				return err
			}
			steps, _ := cmd.Flags().GetIntSlice("range")

			series, err := app.Pricer.Convergence(in, steps)
			if err != nil {
				output.Error("Convergence sweep failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(series)
			}

			output.Bold("%s %s convergence (%s lattice)", in.Style, in.Kind, in.Family)
			if series.HasReference {
				output.Printf("BSM reference: %.6f\n\n", series.Reference)
				output.Printf("%8s %14s %14s\n", "N", "price", "|error|")
				for _, pt := range series.Points {
					output.Printf("%8d %14.6f %14.6f\n",
						pt.Steps, pt.Price, math.Abs(pt.Price-series.Reference))
				}
			} else {
				output.Printf("\n%8s %14s\n", "N", "price")
				for _, pt := range series.Points {
					output.Printf("%8d %14.6f\n", pt.Steps, pt.Price)
				}
			}
			return nil
		},
	}

	addMarketFlags(cmd, app.Config)
	cmd.Flags().IntSlice("range", app.Config.Convergence.Steps, "ascending step counts to sample")
	return cmd
}
