package pricing

import (
	"fmt"
	"math"
)

// digitalPayout is the cash-or-nothing amount paid by digital kinds.
const digitalPayout = 1.0

// Payoff returns the exercise value at underlying price s for the four
// strike-based payoff families. Strangle requires k2 > k; the lower strike k
// carries the put, the upper strike k2 the call.
func Payoff(kind OptionKind, s, k, k2 float64) (float64, error) {
	switch kind {
	case Call:
		return math.Max(s-k, 0), nil
	case Put:
		return math.Max(k-s, 0), nil
	case Straddle:
		return math.Max(s-k, 0) + math.Max(k-s, 0), nil
	case Strangle:
		if k2 <= k {
			return 0, fmt.Errorf("%w: strangle requires K2 > K, got K=%v K2=%v",
				ErrInvalidParameter, k, k2)
		}
		return math.Max(k-s, 0) + math.Max(s-k2, 0), nil
	default:
		return 0, fmt.Errorf("%w: unknown option kind %q", ErrInvalidParameter, kind)
	}
}

// Intrinsic returns the exercise value at underlying price s for an already
// validated input bundle, covering every supported kind.
func (in MarketInputs) Intrinsic(s float64) float64 {
	switch in.Kind {
	case Call:
		return math.Max(s-in.Strike, 0)
	case Put:
		return math.Max(in.Strike-s, 0)
	case Straddle:
		return math.Abs(s - in.Strike)
	case Strangle:
		return math.Max(in.Strike-s, 0) + math.Max(s-in.Strike2, 0)
	case DigitalCall:
		if s > in.Strike {
			return digitalPayout
		}
		return 0
	case DigitalPut:
		if s < in.Strike {
			return digitalPayout
		}
		return 0
	case PowerCall:
		if s > in.Strike {
			return math.Pow(s-in.Strike, in.Exponent)
		}
		return 0
	case PowerPut:
		if s < in.Strike {
			return math.Pow(in.Strike-s, in.Exponent)
		}
		return 0
	}
	return 0
}
