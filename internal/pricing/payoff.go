package pricing

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultPayoffPoints is the resolution of the payoff spot axis.
const DefaultPayoffPoints = 100

// PayoffCurve describes an option's value at expiration over a range of
// terminal spot prices, net of the premium paid today.
type PayoffCurve struct {
	Spot       []float64 `json:"spot"`
	Payoff     []float64 `json:"payoff"`
	ProfitLoss []float64 `json:"profit_loss"`
	Premium    float64   `json:"premium"`
	Breakeven  float64   `json:"breakeven"`
	MaxLoss    float64   `json:"max_loss"`
	MaxProfit  float64   `json:"max_profit"` // +Inf for calls
}

// Payoff prices the option at the base inputs, then maps expiry payoff and
// profit/loss over terminal spots spanning S·[0.5, 1.5]. Breakeven is
// K+premium for calls and K−premium for puts; max loss is the premium.
func Payoff(in MarketInputs, typ OptionType, points int) (*PayoffCurve, error) {
	premium, err := Price(in.S, in.K, in.R, in.Sigma, in.T, typ)
	if err != nil {
		return nil, err
	}
	if points < 2 {
		points = DefaultPayoffPoints
	}

	curve := &PayoffCurve{
		Spot:       floats.Span(make([]float64, points), in.S*0.5, in.S*1.5),
		Payoff:     make([]float64, points),
		ProfitLoss: make([]float64, points),
		Premium:    premium,
		MaxLoss:    premium,
	}
	for i, s := range curve.Spot {
		var pay float64
		if typ == Call {
			pay = math.Max(s-in.K, 0)
		} else {
			pay = math.Max(in.K-s, 0)
		}
		curve.Payoff[i] = pay
		curve.ProfitLoss[i] = pay - premium
	}

	if typ == Call {
		curve.Breakeven = in.K + premium
		curve.MaxProfit = math.Inf(1)
	} else {
		curve.Breakeven = in.K - premium
		curve.MaxProfit = in.K - premium
	}
	return curve, nil
}
