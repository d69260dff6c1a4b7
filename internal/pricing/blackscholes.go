package pricing

import "math"

// Closed-form Black-Scholes-Merton prices and Greeks with a continuous
// dividend yield. These serve as the convergence reference for European
// vanilla contracts and as the benchmark for the finite-difference Greeks.

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

func bsmD1(s, k, r, q, sigma, t float64) float64 {
	return (math.Log(s/k) + (r-q+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
}

// BSMPrice returns the closed-form price for in when one exists: European
// exercise with a call, put, straddle, strangle or digital payoff. The second
// return is false when the contract has no closed form (American style or
// power payoffs).
func BSMPrice(in MarketInputs) (float64, bool) {
	if in.Style != European {
		return 0, false
	}
	switch in.Kind {
	case Call:
		return bsmVanilla(in, in.Strike, true), true
	case Put:
		return bsmVanilla(in, in.Strike, false), true
	case Straddle:
		return bsmVanilla(in, in.Strike, true) + bsmVanilla(in, in.Strike, false), true
	case Strangle:
		return bsmVanilla(in, in.Strike, false) + bsmVanilla(in, in.Strike2, true), true
	case DigitalCall:
		d2 := bsmD1(in.Spot, in.Strike, in.Rate, in.DividendYield, in.Volatility, in.Maturity) -
			in.Volatility*math.Sqrt(in.Maturity)
		return digitalPayout * math.Exp(-in.Rate*in.Maturity) * normCDF(d2), true
	case DigitalPut:
		d2 := bsmD1(in.Spot, in.Strike, in.Rate, in.DividendYield, in.Volatility, in.Maturity) -
			in.Volatility*math.Sqrt(in.Maturity)
		return digitalPayout * math.Exp(-in.Rate*in.Maturity) * normCDF(-d2), true
	}
	return 0, false
}

// bsmVanilla prices a single European call or put struck at k.
func bsmVanilla(in MarketInputs, k float64, call bool) float64 {
	s, r, q, sigma, t := in.Spot, in.Rate, in.DividendYield, in.Volatility, in.Maturity
	d1 := bsmD1(s, k, r, q, sigma, t)
	d2 := d1 - sigma*math.Sqrt(t)
	if call {
		return s*math.Exp(-q*t)*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2)
	}
	return k*math.Exp(-r*t)*normCDF(-d2) - s*math.Exp(-q*t)*normCDF(-d1)
}

// BSMGreeks returns the analytic Greeks for European vanilla contracts.
// Theta follows the engine's sign convention: value lost per unit of
// remaining maturity, i.e. +dV/dT.
func BSMGreeks(in MarketInputs) (Greeks, bool) {
	if in.Style != European || !in.IsVanilla() {
		return Greeks{}, false
	}

	s, k := in.Spot, in.Strike
	r, q, sigma, t := in.Rate, in.DividendYield, in.Volatility, in.Maturity
	sqrtT := math.Sqrt(t)
	d1 := bsmD1(s, k, r, q, sigma, t)
	d2 := d1 - sigma*sqrtT
	dfQ := math.Exp(-q * t)
	dfR := math.Exp(-r * t)

	g := Greeks{
		Gamma: dfQ * normPDF(d1) / (s * sigma * sqrtT),
		Vega:  s * dfQ * normPDF(d1) * sqrtT,
	}
	if in.Kind == Call {
		g.Delta = dfQ * normCDF(d1)
		g.Rho = k * t * dfR * normCDF(d2)
		g.Theta = s*dfQ*normPDF(d1)*sigma/(2*sqrtT) + r*k*dfR*normCDF(d2) - q*s*dfQ*normCDF(d1)
	} else {
		g.Delta = dfQ * (normCDF(d1) - 1)
		g.Rho = -k * t * dfR * normCDF(-d2)
		g.Theta = s*dfQ*normPDF(d1)*sigma/(2*sqrtT) - r*k*dfR*normCDF(-d2) + q*s*dfQ*normCDF(-d1)
	}
	return g, true
}
