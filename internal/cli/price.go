package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"lattice-pricer/internal/pricing"
	"lattice-pricer/internal/store"
)

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price an option on a lattice",
		Long: `Price an option on a binomial or trinomial lattice.

Outputs the lattice price, finite-difference Greeks, and - for European
vanilla contracts - the closed-form Black-Scholes-Merton reference.`,
		Example: `  pricer price --kind call --spot 100 --strike 100 --steps 200
  pricer price --kind put --style american --family trinomial
  pricer price --kind strangle --strike 95 --strike2 105`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			in, err := inputsFromFlags(cmd)
			if err != nil {
				output.Error("Invalid inputs: %v", err)
				return err
			}

			res, err := app.Pricer.Price(in)
			if err != nil {
				output.Error("Pricing failed: %v", err)
				return err
			}

			if app.Store != nil {
				saveRun(app, res)
			}

			if output.IsJSON() {
				return output.JSON(res)
			}

			output.Bold("%s %s (%s lattice, N=%d)", in.Style, in.Kind, in.Family, in.Steps)
			output.Printf("\n")
			output.Printf("  %-12s %12.4f\n", "Price", res.Price)
			if res.HasReference {
				output.Printf("  %-12s %12.4f  %s\n", "BSM", res.Reference,
					output.DimText("(closed form)"))
			}
			output.Printf("\n")
			output.Printf("  %-12s %12.4f\n", "Delta", res.Greeks.Delta)
			output.Printf("  %-12s %12.4f\n", "Gamma", res.Greeks.Gamma)
			output.Printf("  %-12s %12.4f\n", "Theta", res.Greeks.Theta)
			output.Printf("  %-12s %12.4f\n", "Vega", res.Greeks.Vega)
			output.Printf("  %-12s %12.4f\n", "Rho", res.Greeks.Rho)
			return nil
		},
	}

	addMarketFlags(cmd, app.Config)
	return cmd
}

// saveRun records a completed pricing run in the history store. Failures are
// logged, never surfaced: history is a convenience, not part of the result.
func saveRun(app *App, res *pricing.PricingResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in := res.Inputs
	run := &store.Run{
		Timestamp:     time.Now(),
		Family:        string(in.Family),
		Kind:          string(in.Kind),
		Style:         string(in.Style),
		Spot:          in.Spot,
		Strike:        in.Strike,
		Strike2:       in.Strike2,
		Rate:          in.Rate,
		Volatility:    in.Volatility,
		Maturity:      in.Maturity,
		DividendYield: in.DividendYield,
		Steps:         in.Steps,
		Price:         res.Price,
		Delta:         res.Greeks.Delta,
		Gamma:         res.Greeks.Gamma,
		Theta:         res.Greeks.Theta,
		Vega:          res.Greeks.Vega,
		Rho:           res.Greeks.Rho,
	}
	if err := app.Store.SaveRun(ctx, run); err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to record pricing run")
	}
}
