package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// tradingDaysPerYear annualizes daily return volatility (√252 convention).
const tradingDaysPerYear = 252

// DefaultVolatility is the documented fallback returned by
// HistoricalVolatility when the close series yields fewer than two usable
// returns. It is a display-smoothing default, not an estimate; callers must
// check the ok flag before treating the value as ground truth.
const DefaultVolatility = 0.20

// HistoricalVolatility computes the trailing annualized volatility of a
// chronological close-price series: simple percentage returns over
// consecutive pairs, sample standard deviation of the most recent `window`
// returns, multiplied by √252.
//
// The window is clamped to [2, number of returns]. Pairs with a non-positive
// earlier close are skipped as unusable. On a degenerate series (fewer than
// two usable returns) it returns (DefaultVolatility, false).
func HistoricalVolatility(closes []float64, window int) (float64, bool) {
	returns := make([]float64, 0, max(len(closes)-1, 0))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 {
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	if len(returns) < 2 {
		return DefaultVolatility, false
	}
	if window < 2 {
		window = 2
	}
	if window > len(returns) {
		window = len(returns)
	}
	trailing := returns[len(returns)-window:]
	return stat.StdDev(trailing, nil) * math.Sqrt(tradingDaysPerYear), true
}
