package cli

import (
	"github.com/spf13/cobra"

	"lattice-pricer/internal/pricing"
)

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Estimate Greeks by finite-difference repricing",
		Long: `Estimate delta, gamma, theta, vega and rho by repricing the contract
under bumped inputs. Each bumped scenario is a full independent lattice run.

For European vanilla contracts the analytic Black-Scholes-Merton Greeks are
shown alongside for comparison.`,
		Example: `  pricer greeks --kind call --steps 300 --family trinomial
  pricer greeks --kind put --style american`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			in, err := inputsFromFlags(cmd)
			if err != nil {
				output.Error("Invalid inputs: %v", err)
				return err
			}

			fd, err := pricing.ComputeGreeks(in, app.Pool.Run)
			if err != nil {
				output.Error("Greeks computation failed: %v", err)
				return err
			}
			analytic, hasAnalytic := pricing.BSMGreeks(in)

			if output.IsJSON() {
				payload := map[string]interface{}{"inputs": in, "greeks": fd}
				if hasAnalytic {
					payload["analytic"] = analytic
				}
				return output.JSON(payload)
			}

			output.Bold("%s %s Greeks (%s lattice, N=%d)", in.Style, in.Kind, in.Family, in.Steps)
			output.Printf("\n")
			if hasAnalytic {
				output.Printf("  %-8s %12s %12s\n", "", "lattice", "analytic")
				rows := []struct {
					name    string
					fd, bsm float64
				}{
					{"Delta", fd.Delta, analytic.Delta},
					{"Gamma", fd.Gamma, analytic.Gamma},
					{"Theta", fd.Theta, analytic.Theta},
					{"Vega", fd.Vega, analytic.Vega},
					{"Rho", fd.Rho, analytic.Rho},
				}
				for _, r := range rows {
					output.Printf("  %-8s %12.4f %12.4f\n", r.name, r.fd, r.bsm)
				}
			} else {
				output.Printf("  %-8s %12.4f\n", "Delta", fd.Delta)
				output.Printf("  %-8s %12.4f\n", "Gamma", fd.Gamma)
				output.Printf("  %-8s %12.4f\n", "Theta", fd.Theta)
				output.Printf("  %-8s %12.4f\n", "Vega", fd.Vega)
				output.Printf("  %-8s %12.4f\n", "Rho", fd.Rho)
			}
			return nil
		},
	}

	addMarketFlags(cmd, app.Config)
	return cmd
}
