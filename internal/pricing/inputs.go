// Package pricing implements lattice-based option valuation: CRR binomial and
// Boyle trinomial tree construction, backward induction with optional early
// exercise, finite-difference Greeks, and convergence analysis against the
// closed-form Black-Scholes-Merton price.
package pricing

import "fmt"

// OptionKind identifies the payoff family of a contract.
type OptionKind string

const (
	Call        OptionKind = "call"
	Put         OptionKind = "put"
	Straddle    OptionKind = "straddle"
	Strangle    OptionKind = "strangle"
	DigitalCall OptionKind = "digital-call"
	DigitalPut  OptionKind = "digital-put"
	PowerCall   OptionKind = "power-call"
	PowerPut    OptionKind = "power-put"
)

// ExerciseStyle distinguishes European from American exercise.
type ExerciseStyle string

const (
	European ExerciseStyle = "european"
	American ExerciseStyle = "american"
)

// LatticeFamily selects the tree geometry.
type LatticeFamily string

const (
	Binomial  LatticeFamily = "binomial"
	Trinomial LatticeFamily = "trinomial"
)

// MarketInputs is the validated parameter bundle for one pricing call.
// It is passed by value everywhere; callers never observe mutation.
type MarketInputs struct {
	Spot          float64       `json:"spot"`                     // S, current underlying price
	Strike        float64       `json:"strike"`                   // K
	Strike2       float64       `json:"strike2,omitempty"`        // upper strike, strangle only (K2 > K)
	Rate          float64       `json:"rate"`                     // r, annualized continuous risk-free rate
	Volatility    float64       `json:"volatility"`               // sigma, annualized
	Maturity      float64       `json:"maturity"`                 // T, years
	DividendYield float64       `json:"dividend_yield,omitempty"` // q, continuous
	Steps         int           `json:"steps"`                    // N, lattice time steps
	Exponent      float64       `json:"exponent,omitempty"`       // payoff exponent, power kinds only
	Kind          OptionKind    `json:"kind"`
	Style         ExerciseStyle `json:"style"`
	Family        LatticeFamily `json:"family"`
}

// Validate checks the bundle before any computation.
// All failures wrap ErrInvalidParameter.
func (in MarketInputs) Validate() error {
	switch {
	case in.Spot <= 0:
		return fmt.Errorf("%w: spot must be positive, got %v", ErrInvalidParameter, in.Spot)
	case in.Strike <= 0:
		return fmt.Errorf("%w: strike must be positive, got %v", ErrInvalidParameter, in.Strike)
	case in.Volatility <= 0:
		return fmt.Errorf("%w: volatility must be positive, got %v", ErrInvalidParameter, in.Volatility)
	case in.Maturity <= 0:
		return fmt.Errorf("%w: maturity must be positive, got %v", ErrInvalidParameter, in.Maturity)
	case in.DividendYield < 0:
		return fmt.Errorf("%w: dividend yield must be non-negative, got %v", ErrInvalidParameter, in.DividendYield)
	case in.Steps < 1:
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidParameter, in.Steps)
	}

	switch in.Kind {
	case Call, Put, Straddle, DigitalCall, DigitalPut:
	case Strangle:
		if in.Strike2 <= in.Strike {
			return fmt.Errorf("%w: strangle requires K2 > K, got K=%v K2=%v",
				ErrInvalidParameter, in.Strike, in.Strike2)
		}
	case PowerCall, PowerPut:
		if in.Exponent < 1 {
			return fmt.Errorf("%w: power exponent must be at least 1, got %v",
				ErrInvalidParameter, in.Exponent)
		}
	default:
		return fmt.Errorf("%w: unknown option kind %q", ErrInvalidParameter, in.Kind)
	}

	switch in.Style {
	case European, American:
	default:
		return fmt.Errorf("%w: unknown exercise style %q", ErrInvalidParameter, in.Style)
	}

	switch in.Family {
	case Binomial, Trinomial:
	default:
		return fmt.Errorf("%w: unknown lattice family %q", ErrInvalidParameter, in.Family)
	}

	return nil
}

// WithSteps returns a copy of in with the step count replaced.
func (in MarketInputs) WithSteps(n int) MarketInputs {
	in.Steps = n
	return in
}

// IsVanilla reports whether the kind is a plain call or put, the only
// kinds with a closed-form Black-Scholes-Merton counterpart for every Greek.
func (in MarketInputs) IsVanilla() bool {
	return in.Kind == Call || in.Kind == Put
}
