package pricing

import (
	"fmt"
	"math"
)

// ImpliedVolATM recovers the volatility implied by the market's at-the-money
// quotes using Newton-Raphson on the call price, seeded at 20%. The market
// price is taken as the call/put midpoint, which at the money prices both
// branches consistently.
//
// The core pricing path never calls this; it exists for callers that want a
// volatility from quoted premiums instead of a chain-supplied IV.
func ImpliedVolATM(S, K, T, r float64, callPrice, putPrice float64) (float64, error) {
	if T <= 0 {
		return 0, domainErrorf("time to expiry must be > 0, got %v", T)
	}

	marketPrice := (callPrice + putPrice) / 2
	sigma := DefaultVolatility

	const (
		maxIter = 100
		tol     = 1e-6
	)

	for i := 0; i < maxIter; i++ {
		price, err := Price(S, K, r, sigma, T, Call)
		if err != nil {
			return 0, err
		}
		diff := price - marketPrice
		if math.Abs(diff) < tol {
			return sigma, nil
		}

		greeks, err := Greeks(S, K, r, sigma, T, Call)
		if err != nil {
			return 0, err
		}
		// Greeks reports vega per 1% move; Newton needs the per-unit slope.
		vega := greeks.Vega * 100
		if vega < 1e-8 {
			break
		}

		sigma -= diff / vega

		// Guardrails
		if sigma <= 0 {
			sigma = 1e-4
		}
		if sigma > 5 {
			sigma = 5
		}
	}

	return 0, fmt.Errorf("implied vol did not converge")
}
