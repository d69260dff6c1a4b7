package pricing

import (
	"time"

	"github.com/rs/zerolog"

	"lattice-pricer/internal/performance"
)

// Pricer is the calculation boundary consumed by the presentation layer.
// It is safe for concurrent use: every call owns its own lattice and the
// only shared state is the read-only derived-parameter cache.
type Pricer struct {
	logger zerolog.Logger
	pool   *performance.WorkerPool
}

// NewPricer creates a pricer. The pool is optional; without one the repeated
// reprices inside Greeks and convergence calls run sequentially.
func NewPricer(logger zerolog.Logger, pool *performance.WorkerPool) *Pricer {
	return &Pricer{logger: logger, pool: pool}
}

// run dispatches n independent tasks, concurrently when a pool is attached.
func (p *Pricer) run(n int, task func(i int)) {
	if p.pool != nil {
		p.pool.Run(n, task)
		return
	}
	for i := 0; i < n; i++ {
		task(i)
	}
}

// Price values the contract and returns the full result: root price, Greeks,
// node grid and terminal-state probabilities.
func (p *Pricer) Price(in MarketInputs) (*PricingResult, error) {
	start := time.Now()

	grid, err := Evaluate(in)
	if err != nil {
		p.logger.Error().Err(err).
			Str("family", string(in.Family)).Str("kind", string(in.Kind)).
			Msg("Pricing failed")
		return nil, err
	}

	greeks, err := ComputeGreeks(in, p.run)
	if err != nil {
		return nil, err
	}

	res := assembleResult(in, grid, greeks, nil)
	p.logger.Debug().
		Str("family", string(in.Family)).
		Str("kind", string(in.Kind)).
		Int("steps", in.Steps).
		Float64("price", res.Price).
		Dur("duration", time.Since(start)).
		Msg("Pricing run complete")
	return res, nil
}

// Convergence reprices the contract across the given ascending step counts.
func (p *Pricer) Convergence(in MarketInputs, steps []int) (ConvergenceSeries, error) {
	start := time.Now()

	series, err := AnalyzeConvergence(in, steps, p.run)
	if err != nil {
		p.logger.Error().Err(err).
			Str("family", string(in.Family)).Str("kind", string(in.Kind)).
			Msg("Convergence sweep failed")
		return ConvergenceSeries{}, err
	}

	p.logger.Debug().
		Str("family", string(in.Family)).
		Str("kind", string(in.Kind)).
		Int("samples", len(series.Points)).
		Dur("duration", time.Since(start)).
		Msg("Convergence sweep complete")
	return series, nil
}
