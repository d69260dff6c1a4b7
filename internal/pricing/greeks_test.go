package pricing

import (
	"errors"
	"math"
	"testing"
)

// Finite-difference Greeks against the analytic ones. The trinomial tree is
// the smoother of the two families, so it carries the tight tolerances; gamma
// stays loose because the second difference amplifies lattice discretization
// noise.
func TestComputeGreeksAgainstClosedForm(t *testing.T) {
	in := baseInputs()
	in.Family = Trinomial
	in.Steps = 300

	got, err := ComputeGreeks(in, runInline)
	if err != nil {
		t.Fatalf("ComputeGreeks: %v", err)
	}
	want, ok := BSMGreeks(in)
	if !ok {
		t.Fatal("no closed-form greeks for test contract")
	}

	checks := []struct {
		name      string
		got, want float64
		tol       float64
	}{
		{"delta", got.Delta, want.Delta, 0.01},
		{"gamma", got.Gamma, want.Gamma, 0.012},
		{"vega", got.Vega, want.Vega, 0.5},
		{"rho", got.Rho, want.Rho, 0.5},
		{"theta", got.Theta, want.Theta, 0.3},
	}
	for _, c := range checks {
		if diff := math.Abs(c.got - c.want); diff > c.tol {
			t.Errorf("%s = %v, closed form %v, diff %v > %v", c.name, c.got, c.want, diff, c.tol)
		}
	}
}

func TestComputeGreeksPut(t *testing.T) {
	in := baseInputs()
	in.Kind = Put
	in.Family = Trinomial
	in.Steps = 300

	got, err := ComputeGreeks(in, runInline)
	if err != nil {
		t.Fatalf("ComputeGreeks: %v", err)
	}
	if got.Delta >= 0 {
		t.Errorf("put delta = %v, want negative", got.Delta)
	}
	if got.Rho >= 0 {
		t.Errorf("put rho = %v, want negative", got.Rho)
	}
	if got.Vega <= 0 {
		t.Errorf("put vega = %v, want positive", got.Vega)
	}
}

func TestComputeGreeksAmerican(t *testing.T) {
	in := baseInputs()
	in.Kind = Put
	in.Style = American
	in.Steps = 200

	got, err := ComputeGreeks(in, runInline)
	if err != nil {
		t.Fatalf("ComputeGreeks: %v", err)
	}
	// No closed form here; sanity-bound the estimates instead.
	if got.Delta < -1 || got.Delta > 0 {
		t.Errorf("american put delta = %v, want in [-1,0]", got.Delta)
	}
	if got.Vega <= 0 {
		t.Errorf("american put vega = %v, want positive", got.Vega)
	}
}

func TestComputeGreeksShortMaturity(t *testing.T) {
	in := baseInputs()
	in.Maturity = 1.0 / 730 // half a day left; the theta bump must clamp, not cross zero
	in.Steps = 50

	if _, err := ComputeGreeks(in, runInline); err != nil {
		t.Fatalf("ComputeGreeks: %v", err)
	}
}

func TestComputeGreeksPropagatesErrors(t *testing.T) {
	in := baseInputs()
	in.Spot = 0
	if _, err := ComputeGreeks(in, runInline); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}

	in = baseInputs()
	in.Volatility = 5
	in.Steps = 1
	if _, err := ComputeGreeks(in, runInline); !errors.Is(err, ErrDegenerateLattice) {
		t.Errorf("err = %v, want ErrDegenerateLattice", err)
	}
}
