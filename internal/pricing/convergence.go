package pricing

import "fmt"

// ConvergencePoint is one (step count, price) sample of a convergence sweep.
type ConvergencePoint struct {
	Steps int     `json:"steps"`
	Price float64 `json:"price"`
}

// ConvergenceSeries records lattice prices across an ascending range of step
// counts, together with the closed-form Black-Scholes-Merton reference when
// the contract has one. Produced fresh per invocation, never mutated after
// return.
type ConvergenceSeries struct {
	Family       LatticeFamily      `json:"family"`
	Points       []ConvergencePoint `json:"points"`
	Reference    float64            `json:"reference,omitempty"`
	HasReference bool               `json:"has_reference"`
}

// AnalyzeConvergence reprices in at every step count in steps (which must be
// positive and strictly ascending) and records the resulting prices. Each
// iteration is an independent pricing call with no shared mutable state, so
// the runner may execute them concurrently. Binomial prices oscillate with
// odd/even step parity; the series reports them as computed.
func AnalyzeConvergence(in MarketInputs, steps []int, run func(n int, task func(i int))) (ConvergenceSeries, error) {
	if err := in.Validate(); err != nil {
		return ConvergenceSeries{}, err
	}
	if len(steps) == 0 {
		return ConvergenceSeries{}, fmt.Errorf("%w: empty step range", ErrInvalidParameter)
	}
	for i, n := range steps {
		if n < 1 {
			return ConvergenceSeries{}, fmt.Errorf("%w: step count %d must be positive", ErrInvalidParameter, n)
		}
		if i > 0 && n <= steps[i-1] {
			return ConvergenceSeries{}, fmt.Errorf("%w: step range must be strictly ascending", ErrInvalidParameter)
		}
	}

	points := make([]ConvergencePoint, len(steps))
	errs := make([]error, len(steps))
	run(len(steps), func(i int) {
		g, err := Evaluate(in.WithSteps(steps[i]))
		if err != nil {
			errs[i] = err
			return
		}
		points[i] = ConvergencePoint{Steps: steps[i], Price: g.Price()}
	})
	for _, err := range errs {
		if err != nil {
			return ConvergenceSeries{}, err
		}
	}

	series := ConvergenceSeries{Family: in.Family, Points: points}
	if ref, ok := BSMPrice(in); ok {
		series.Reference = ref
		series.HasReference = true
	}
	return series, nil
}
