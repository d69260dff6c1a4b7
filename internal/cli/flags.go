package cli

import (
	"github.com/spf13/cobra"

	"lattice-pricer/internal/config"
	"lattice-pricer/internal/pricing"
)

// addMarketFlags registers the market-input flags shared by every pricing
// command, defaulted from the loaded configuration.
func addMarketFlags(cmd *cobra.Command, cfg *config.Config) {
	d := cfg.Defaults
	cmd.Flags().Float64("spot", d.Spot, "underlying spot price")
	cmd.Flags().Float64("strike", d.Strike, "strike price")
	cmd.Flags().Float64("strike2", 0, "upper strike (strangle only, must exceed --strike)")
	cmd.Flags().Float64("rate", d.Rate, "annualized risk-free rate (0.05 = 5%)")
	cmd.Flags().Float64("volatility", d.Volatility, "annualized volatility (0.2 = 20%)")
	cmd.Flags().Float64("maturity", d.Maturity, "time to maturity in years")
	cmd.Flags().Float64("dividend", d.DividendYield, "continuous dividend yield")
	cmd.Flags().Int("steps", d.Steps, "lattice time steps")
	cmd.Flags().Float64("exponent", 2, "payoff exponent (power kinds only)")
	cmd.Flags().String("kind", "call", "payoff kind: call, put, straddle, strangle, digital-call, digital-put, power-call, power-put")
	cmd.Flags().String("style", d.Style, "exercise style: european, american")
	cmd.Flags().String("family", d.Family, "lattice family: binomial, trinomial")
}

// inputsFromFlags assembles and validates MarketInputs from command flags.
func inputsFromFlags(cmd *cobra.Command) (pricing.MarketInputs, error) {
	spot, _ := cmd.Flags().GetFloat64("spot")
	strike, _ := cmd.Flags().GetFloat64("strike")
	strike2, _ := cmd.Flags().GetFloat64("strike2")
	rate, _ := cmd.Flags().GetFloat64("rate")
	vol, _ := cmd.Flags().GetFloat64("volatility")
	maturity, _ := cmd.Flags().GetFloat64("maturity")
	div, _ := cmd.Flags().GetFloat64("dividend")
	steps, _ := cmd.Flags().GetInt("steps")
	exponent, _ := cmd.Flags().GetFloat64("exponent")
	kind, _ := cmd.Flags().GetString("kind")
	style, _ := cmd.Flags().GetString("style")
	family, _ := cmd.Flags().GetString("family")

	in := pricing.MarketInputs{
		Spot:          spot,
		Strike:        strike,
		Strike2:       strike2,
		Rate:          rate,
		Volatility:    vol,
		Maturity:      maturity,
		DividendYield: div,
		Steps:         steps,
		Exponent:      exponent,
		Kind:          pricing.OptionKind(kind),
		Style:         pricing.ExerciseStyle(style),
		Family:        pricing.LatticeFamily(family),
	}
	return in, in.Validate()
}
