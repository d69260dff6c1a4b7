package pricing

// PricingResult is the complete output contract for one pricing call: the
// root price, the five Greeks, the full node grid for tree rendering, the
// terminal-state probabilities, and an echo of the inputs. Assembled once,
// never mutated afterwards.
type PricingResult struct {
	Inputs                MarketInputs       `json:"inputs"`
	Price                 float64            `json:"price"`
	Greeks                Greeks             `json:"greeks"`
	Nodes                 []Node             `json:"nodes"`
	TerminalProbabilities []float64          `json:"terminal_probabilities"`
	Reference             float64            `json:"reference,omitempty"`
	HasReference          bool               `json:"has_reference"`
	Convergence           *ConvergenceSeries `json:"convergence,omitempty"`
}

// assembleResult packages the engine, Greeks and optional convergence
// outputs. Pure packaging, no computation.
func assembleResult(in MarketInputs, grid *Grid, greeks Greeks, conv *ConvergenceSeries) *PricingResult {
	res := &PricingResult{
		Inputs:                in,
		Price:                 grid.Price(),
		Greeks:                greeks,
		Nodes:                 grid.Nodes(),
		TerminalProbabilities: grid.TerminalProbabilities(),
		Convergence:           conv,
	}
	if ref, ok := BSMPrice(in); ok {
		res.Reference = ref
		res.HasReference = true
	}
	return res
}
