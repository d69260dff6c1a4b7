package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParams() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	return parameters
}

// Property: Every lattice price is finite and non-negative, and a call is
// never worth more than the underlying itself.
func TestProperty_PricesAreNonNegativeAndBounded(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("non-negative finite prices across kinds and families", prop.ForAll(
		func(spot, strike, rate, vol, maturity float64, steps int, kindIdx, familyIdx, styleIdx int) bool {
			kinds := []OptionKind{Call, Put, Straddle}
			families := []LatticeFamily{Binomial, Trinomial}
			styles := []ExerciseStyle{European, American}
			in := MarketInputs{
				Spot:       spot,
				Strike:     strike,
				Rate:       rate,
				Volatility: vol,
				Maturity:   maturity,
				Steps:      steps,
				Kind:       kinds[kindIdx],
				Style:      styles[styleIdx],
				Family:     families[familyIdx],
			}
			g, err := Evaluate(in)
			if err != nil {
				return false
			}
			price := g.Price()
			if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
				return false
			}
			if in.Kind == Call && price > spot {
				return false
			}
			return true
		},
		gen.Float64Range(50, 150),
		gen.Float64Range(50, 150),
		gen.Float64Range(0, 0.10),
		gen.Float64Range(0.15, 0.50),
		gen.Float64Range(0.1, 2.0),
		gen.IntRange(5, 40),
		gen.IntRange(0, 2),
		gen.IntRange(0, 1),
		gen.IntRange(0, 1),
	))

	properties.TestingRun(t)
}

// Property: An American contract is always worth at least its European
// counterpart, since extra exercise rights cannot have negative value.
func TestProperty_AmericanDominatesEuropean(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("american >= european", prop.ForAll(
		func(spot, strike, rate, vol, maturity float64, steps int, isPut bool) bool {
			in := MarketInputs{
				Spot:       spot,
				Strike:     strike,
				Rate:       rate,
				Volatility: vol,
				Maturity:   maturity,
				Steps:      steps,
				Kind:       Call,
				Style:      European,
				Family:     Binomial,
			}
			if isPut {
				in.Kind = Put
			}
			eu, err := Evaluate(in)
			if err != nil {
				return false
			}
			in.Style = American
			am, err := Evaluate(in)
			if err != nil {
				return false
			}
			return am.Price() >= eu.Price()-1e-9
		},
		gen.Float64Range(50, 150),
		gen.Float64Range(50, 150),
		gen.Float64Range(0, 0.10),
		gen.Float64Range(0.15, 0.50),
		gen.Float64Range(0.1, 2.0),
		gen.IntRange(5, 40),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: Backward induction is linear in the payoff, so a European
// straddle prices exactly as the sum of the call and the put on the same
// lattice.
func TestProperty_StraddleIsCallPlusPut(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("straddle = call + put", prop.ForAll(
		func(spot, strike, rate, vol, maturity float64, steps, familyIdx int) bool {
			families := []LatticeFamily{Binomial, Trinomial}
			in := MarketInputs{
				Spot:       spot,
				Strike:     strike,
				Rate:       rate,
				Volatility: vol,
				Maturity:   maturity,
				Steps:      steps,
				Kind:       Straddle,
				Style:      European,
				Family:     families[familyIdx],
			}
			straddle, err := Evaluate(in)
			if err != nil {
				return false
			}
			in.Kind = Call
			call, err := Evaluate(in)
			if err != nil {
				return false
			}
			in.Kind = Put
			put, err := Evaluate(in)
			if err != nil {
				return false
			}
			return math.Abs(straddle.Price()-(call.Price()+put.Price())) < 1e-9
		},
		gen.Float64Range(50, 150),
		gen.Float64Range(50, 150),
		gen.Float64Range(0, 0.10),
		gen.Float64Range(0.15, 0.50),
		gen.Float64Range(0.1, 2.0),
		gen.IntRange(5, 40),
		gen.IntRange(0, 1),
	))

	properties.TestingRun(t)
}

// Property: With no dividends the binomial transition probability matches the
// risk-free growth exactly, so European prices obey put-call parity
// C - P = S - K*exp(-rT) up to float rounding.
func TestProperty_PutCallParityOnLattice(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("C - P = S - K*exp(-rT)", prop.ForAll(
		func(spot, strike, rate, vol, maturity float64, steps int) bool {
			in := MarketInputs{
				Spot:       spot,
				Strike:     strike,
				Rate:       rate,
				Volatility: vol,
				Maturity:   maturity,
				Steps:      steps,
				Kind:       Call,
				Style:      European,
				Family:     Binomial,
			}
			call, err := Evaluate(in)
			if err != nil {
				return false
			}
			in.Kind = Put
			put, err := Evaluate(in)
			if err != nil {
				return false
			}
			forward := spot - strike*math.Exp(-rate*maturity)
			return math.Abs(call.Price()-put.Price()-forward) < 1e-8
		},
		gen.Float64Range(50, 150),
		gen.Float64Range(50, 150),
		gen.Float64Range(0, 0.10),
		gen.Float64Range(0.15, 0.50),
		gen.Float64Range(0.1, 2.0),
		gen.IntRange(5, 60),
	))

	properties.TestingRun(t)
}

// Property: The terminal state weights of any admissible lattice form a
// probability distribution.
func TestProperty_TerminalProbabilitiesFormDistribution(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("terminal weights sum to one", prop.ForAll(
		func(rate, vol, maturity float64, steps, familyIdx int) bool {
			families := []LatticeFamily{Binomial, Trinomial}
			in := MarketInputs{
				Spot:       100,
				Strike:     100,
				Rate:       rate,
				Volatility: vol,
				Maturity:   maturity,
				Steps:      steps,
				Kind:       Call,
				Style:      European,
				Family:     families[familyIdx],
			}
			g, err := Evaluate(in)
			if err != nil {
				return false
			}
			var sum float64
			for _, p := range g.TerminalProbabilities() {
				if p < 0 || p > 1 {
					return false
				}
				sum += p
			}
			return math.Abs(sum-1) < 1e-9
		},
		gen.Float64Range(0, 0.10),
		gen.Float64Range(0.15, 0.50),
		gen.Float64Range(0.1, 2.0),
		gen.IntRange(2, 60),
		gen.IntRange(0, 1),
	))

	properties.TestingRun(t)
}
