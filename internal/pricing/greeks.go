package pricing

// Greeks holds the five price sensitivities. Theta is quoted as value lost
// per unit of remaining maturity (a long vanilla option decays, so its theta
// is positive).
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Bump sizes for the finite-difference reprices.
const (
	spotBumpFrac = 0.01      // relative, of spot
	volBumpFrac  = 0.01      // relative, of volatility
	rateBump     = 0.0001    // absolute, one basis point
	thetaBump    = 1.0 / 365 // absolute, one calendar day in years
)

// ComputeGreeks estimates the Greeks by central finite differences: each
// bumped scenario is a full independent lattice run with the same step count
// and family. The runner executes the scenarios; a worker pool can run them
// concurrently since they share no state.
func ComputeGreeks(in MarketInputs, run func(n int, task func(i int))) (Greeks, error) {
	if err := in.Validate(); err != nil {
		return Greeks{}, err
	}

	hS := spotBumpFrac * in.Spot
	hV := volBumpFrac * in.Volatility
	hT := thetaBump
	if in.Maturity-hT <= 0 {
		hT = in.Maturity / 2
	}

	scenarios := []MarketInputs{
		in, // base
		bump(in, func(m *MarketInputs) { m.Spot += hS }),
		bump(in, func(m *MarketInputs) { m.Spot -= hS }),
		bump(in, func(m *MarketInputs) { m.Volatility += hV }),
		bump(in, func(m *MarketInputs) { m.Volatility -= hV }),
		bump(in, func(m *MarketInputs) { m.Rate += rateBump }),
		bump(in, func(m *MarketInputs) { m.Rate -= rateBump }),
		bump(in, func(m *MarketInputs) { m.Maturity -= hT }),
	}

	values := make([]float64, len(scenarios))
	errs := make([]error, len(scenarios))
	run(len(scenarios), func(i int) {
		g, err := Evaluate(scenarios[i])
		if err != nil {
			errs[i] = err
			return
		}
		values[i] = g.Price()
	})
	for _, err := range errs {
		if err != nil {
			return Greeks{}, err
		}
	}

	base := values[0]
	return Greeks{
		Delta: (values[1] - values[2]) / (2 * hS),
		Gamma: (values[1] - 2*base + values[2]) / (hS * hS),
		Vega:  (values[3] - values[4]) / (2 * hV),
		Rho:   (values[5] - values[6]) / (2 * rateBump),
		Theta: (base - values[7]) / hT,
	}, nil
}

func bump(in MarketInputs, mutate func(*MarketInputs)) MarketInputs {
	mutate(&in)
	return in
}
