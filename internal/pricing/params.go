package pricing

import (
	"fmt"
	"math"
	"sync"
)

// maxLogStep bounds the per-step log move of the underlying. Beyond this the
// discrete branch weights collapse onto one branch and the tree moments no
// longer track the continuous distribution, so the lattice is rejected as
// degenerate instead of silently producing a near-zero probability.
const maxLogStep = 2.0

// LatticeParameters holds the per-step factors and risk-neutral transition
// probabilities derived from one input bundle. For the binomial family the
// middle branch is unused (Mid=1, PMid=0).
type LatticeParameters struct {
	Family   LatticeFamily
	Dt       float64 // step size T/N
	Discount float64 // exp(-r*Dt)
	Up       float64
	Down     float64
	Mid      float64
	PUp      float64
	PMid     float64
	PDown    float64
}

// paramKey is the subset of MarketInputs that determines lattice geometry.
// Spot and strikes scale the tree but never change factors or probabilities.
type paramKey struct {
	rate, sigma, maturity, div float64
	steps                      int
	family                     LatticeFamily
}

// paramCache memoizes derived parameters across Greeks and convergence
// reprices. Entries are recomputed on miss, never mutated.
var paramCache = struct {
	sync.RWMutex
	m map[paramKey]LatticeParameters
}{m: make(map[paramKey]LatticeParameters)}

// DeriveParameters computes the lattice factors and probabilities for in.
// The result is deterministic and cached by the parameter subset that
// affects it. Returns ErrInvalidParameter for malformed inputs and
// ErrDegenerateLattice when a derived probability leaves [0,1].
func DeriveParameters(in MarketInputs) (LatticeParameters, error) {
	if err := in.Validate(); err != nil {
		return LatticeParameters{}, err
	}

	key := paramKey{in.Rate, in.Volatility, in.Maturity, in.DividendYield, in.Steps, in.Family}
	paramCache.RLock()
	cached, ok := paramCache.m[key]
	paramCache.RUnlock()
	if ok {
		return cached, nil
	}

	var (
		lp  LatticeParameters
		err error
	)
	switch in.Family {
	case Binomial:
		lp, err = deriveBinomial(in)
	case Trinomial:
		lp, err = deriveTrinomial(in)
	}
	if err != nil {
		return LatticeParameters{}, err
	}

	paramCache.Lock()
	paramCache.m[key] = lp
	paramCache.Unlock()
	return lp, nil
}

// deriveBinomial applies the Cox-Ross-Rubinstein parameterization:
// u = exp(sigma*sqrt(dt)), d = 1/u, p = (exp((r-q)*dt) - d) / (u - d).
func deriveBinomial(in MarketInputs) (LatticeParameters, error) {
	dt := in.Maturity / float64(in.Steps)
	logStep := in.Volatility * math.Sqrt(dt)
	if logStep > maxLogStep {
		return LatticeParameters{}, fmt.Errorf(
			"%w: binomial step move sigma*sqrt(dt)=%.4f exceeds %.1f (sigma=%v T=%v N=%d)",
			ErrDegenerateLattice, logStep, maxLogStep, in.Volatility, in.Maturity, in.Steps)
	}

	u := math.Exp(logStep)
	d := 1 / u
	growth := math.Exp((in.Rate - in.DividendYield) * dt)
	p := (growth - d) / (u - d)
	if p <= 0 || p >= 1 {
		return LatticeParameters{}, fmt.Errorf(
			"%w: binomial up-probability %.6f outside (0,1) (r=%v q=%v sigma=%v T=%v N=%d)",
			ErrDegenerateLattice, p, in.Rate, in.DividendYield, in.Volatility, in.Maturity, in.Steps)
	}

	return LatticeParameters{
		Family:   Binomial,
		Dt:       dt,
		Discount: math.Exp(-in.Rate * dt),
		Up:       u,
		Down:     d,
		Mid:      1,
		PUp:      p,
		PDown:    1 - p,
	}, nil
}

// deriveTrinomial applies the Boyle parameterization with u = exp(sigma*
// sqrt(2*dt)) and half-step moment-matched probabilities. pm is the residual
// 1 - pu - pd; all three must lie in [0,1].
func deriveTrinomial(in MarketInputs) (LatticeParameters, error) {
	dt := in.Maturity / float64(in.Steps)
	logStep := in.Volatility * math.Sqrt(2*dt)
	if logStep > maxLogStep {
		return LatticeParameters{}, fmt.Errorf(
			"%w: trinomial step move sigma*sqrt(2dt)=%.4f exceeds %.1f (sigma=%v T=%v N=%d)",
			ErrDegenerateLattice, logStep, maxLogStep, in.Volatility, in.Maturity, in.Steps)
	}

	u := math.Exp(logStep)
	d := 1 / u

	halfGrowth := math.Exp((in.Rate - in.DividendYield) * dt / 2)
	halfUp := math.Exp(in.Volatility * math.Sqrt(dt/2))
	halfDown := 1 / halfUp
	spread := halfUp - halfDown

	pu := sq((halfGrowth - halfDown) / spread)
	pd := sq((halfUp - halfGrowth) / spread)
	pm := 1 - pu - pd
	for _, p := range [3]float64{pu, pm, pd} {
		if p < 0 || p > 1 {
			return LatticeParameters{}, fmt.Errorf(
				"%w: trinomial probabilities (pu=%.6f pm=%.6f pd=%.6f) outside [0,1] (r=%v q=%v sigma=%v T=%v N=%d)",
				ErrDegenerateLattice, pu, pm, pd,
				in.Rate, in.DividendYield, in.Volatility, in.Maturity, in.Steps)
		}
	}

	return LatticeParameters{
		Family:   Trinomial,
		Dt:       dt,
		Discount: math.Exp(-in.Rate * dt),
		Up:       u,
		Down:     d,
		Mid:      1,
		PUp:      pu,
		PMid:     pm,
		PDown:    pd,
	}, nil
}

func sq(x float64) float64 { return x * x }
