package pricing

import (
	"errors"
	"math"
	"testing"
)

func baseInputs() MarketInputs {
	return MarketInputs{
		Spot:       100,
		Strike:     100,
		Rate:       0.05,
		Volatility: 0.2,
		Maturity:   1,
		Steps:      3,
		Kind:       Call,
		Style:      European,
		Family:     Binomial,
	}
}

func TestDeriveParametersCRR(t *testing.T) {
	in := baseInputs()
	in.Steps = 1

	lp, err := DeriveParameters(in)
	if err != nil {
		t.Fatalf("DeriveParameters: %v", err)
	}

	// u = exp(0.2), d = 1/u, p = (exp(0.05) - d) / (u - d)
	if math.Abs(lp.Up-1.221403) > 1e-6 {
		t.Errorf("up factor = %v, want 1.221403", lp.Up)
	}
	if math.Abs(lp.Down-0.818731) > 1e-6 {
		t.Errorf("down factor = %v, want 0.818731", lp.Down)
	}
	if math.Abs(lp.PUp-0.577491) > 1e-5 {
		t.Errorf("up probability = %v, want 0.577491", lp.PUp)
	}
	if math.Abs(lp.Up*lp.Down-1) > 1e-12 {
		t.Errorf("u*d = %v, want 1", lp.Up*lp.Down)
	}
	if math.Abs(lp.PUp+lp.PDown-1) > 1e-12 {
		t.Errorf("probabilities sum to %v", lp.PUp+lp.PDown)
	}

	// The risk-neutral step must reproduce the forward growth exactly.
	growth := lp.PUp*lp.Up + lp.PDown*lp.Down
	if math.Abs(growth-math.Exp(0.05*lp.Dt)) > 1e-12 {
		t.Errorf("one-step expectation = %v, want %v", growth, math.Exp(0.05*lp.Dt))
	}
}

func TestDeriveParametersBoyle(t *testing.T) {
	in := baseInputs()
	in.Family = Trinomial
	in.Steps = 50

	lp, err := DeriveParameters(in)
	if err != nil {
		t.Fatalf("DeriveParameters: %v", err)
	}

	if math.Abs(lp.Up-math.Exp(0.2*math.Sqrt(2*lp.Dt))) > 1e-12 {
		t.Errorf("up factor = %v", lp.Up)
	}
	if lp.Mid != 1 {
		t.Errorf("mid factor = %v, want 1", lp.Mid)
	}
	sum := lp.PUp + lp.PMid + lp.PDown
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("probabilities sum to %v", sum)
	}
	for _, p := range []float64{lp.PUp, lp.PMid, lp.PDown} {
		if p < 0 || p > 1 {
			t.Errorf("probability %v outside [0,1]", p)
		}
	}
}

func TestDeriveParametersDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MarketInputs)
	}{
		{"binomial extreme volatility", func(in *MarketInputs) {
			in.Volatility = 5.0
			in.Steps = 1
		}},
		{"trinomial extreme volatility", func(in *MarketInputs) {
			in.Volatility = 5.0
			in.Steps = 1
			in.Family = Trinomial
		}},
		{"binomial drift exceeds up factor", func(in *MarketInputs) {
			in.Rate = 1.0
			in.Volatility = 0.1
			in.Steps = 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInputs()
			tt.mutate(&in)
			_, err := DeriveParameters(in)
			if !errors.Is(err, ErrDegenerateLattice) {
				t.Errorf("err = %v, want ErrDegenerateLattice", err)
			}
		})
	}
}

func TestDeriveParametersInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MarketInputs)
	}{
		{"zero spot", func(in *MarketInputs) { in.Spot = 0 }},
		{"negative strike", func(in *MarketInputs) { in.Strike = -100 }},
		{"zero volatility", func(in *MarketInputs) { in.Volatility = 0 }},
		{"zero maturity", func(in *MarketInputs) { in.Maturity = 0 }},
		{"zero steps", func(in *MarketInputs) { in.Steps = 0 }},
		{"negative dividend", func(in *MarketInputs) { in.DividendYield = -0.01 }},
		{"strangle strikes inverted", func(in *MarketInputs) {
			in.Kind = Strangle
			in.Strike2 = 90
		}},
		{"unknown kind", func(in *MarketInputs) { in.Kind = "butterfly" }},
		{"unknown family", func(in *MarketInputs) { in.Family = "quadrinomial" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInputs()
			tt.mutate(&in)
			_, err := DeriveParameters(in)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestDeriveParametersCached(t *testing.T) {
	in := baseInputs()
	in.Steps = 77

	first, err := DeriveParameters(in)
	if err != nil {
		t.Fatalf("DeriveParameters: %v", err)
	}

	// Spot and strike scale the tree but never the derived parameters, so a
	// bumped-spot reprice must hit the same cache entry.
	in.Spot = 101
	second, err := DeriveParameters(in)
	if err != nil {
		t.Fatalf("DeriveParameters: %v", err)
	}
	if first != second {
		t.Errorf("cache returned different parameters: %+v vs %+v", first, second)
	}
}
