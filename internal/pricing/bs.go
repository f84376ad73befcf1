// Package pricing implements closed-form European option pricing and risk
// sensitivities under the Black-Scholes model, plus the derived analytics
// (historical volatility, sensitivity sweeps, payoff curves) that drive the
// application's displays.
//
// Every function in this package is pure: no I/O, no shared mutable state,
// no allocation beyond return values. Invalid numeric inputs fail fast with
// a *DomainError at the public boundary instead of leaking NaN into a chart.
package pricing

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal is the standard normal distribution used for Φ (CDF) and φ (Prob)
// throughout the package. All five Greeks and the price share it so there is
// no drift between the CDF approximation used by different formulas.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// OptionType selects which closed-form branch of every formula applies.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ParseOptionType normalizes a user-supplied option type string.
// Accepts "call"/"c" and "put"/"p" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return "", &DomainError{msg: fmt.Sprintf("unrecognized option type %q (want call or put)", s)}
}

// DomainError reports an input outside the valid numeric domain of the
// Black-Scholes formulas (non-positive S, K, sigma, or T, or an unrecognized
// option type / sweep selector).
type DomainError struct {
	msg string
}

func (e *DomainError) Error() string { return "pricing: " + e.msg }

func domainErrorf(format string, args ...any) *DomainError {
	return &DomainError{msg: fmt.Sprintf(format, args...)}
}

// MarketInputs bundles the five Black-Scholes inputs.
type MarketInputs struct {
	S     float64 // spot price of the underlying
	K     float64 // strike price
	R     float64 // risk-free rate, annualized
	Sigma float64 // volatility, annualized
	T     float64 // time to expiry in years
}

// Validate checks the strict-positivity invariants: S, K, Sigma and T must
// all be > 0 (log(S/K) and division by sigma*sqrt(T) require it). The rate
// may be any real value.
func (in MarketInputs) Validate() error {
	return validate(in.S, in.K, in.Sigma, in.T)
}

func validate(S, K, sigma, T float64) error {
	switch {
	case !(S > 0):
		return domainErrorf("spot must be > 0, got %v", S)
	case !(K > 0):
		return domainErrorf("strike must be > 0, got %v", K)
	case !(sigma > 0):
		return domainErrorf("volatility must be > 0, got %v", sigma)
	case !(T > 0):
		return domainErrorf("time to expiry must be > 0, got %v", T)
	}
	return nil
}

// D1D2 computes the Black-Scholes intermediate terms
//
//	d1 = (ln(S/K) + (r + sigma²/2)·T) / (sigma·√T)
//	d2 = d1 − sigma·√T
//
// It fails with a *DomainError when S, K, sigma, or T is not strictly
// positive; those inputs produce non-finite values under IEEE arithmetic.
func D1D2(S, K, r, sigma, T float64) (d1, d2 float64, err error) {
	if err := validate(S, K, sigma, T); err != nil {
		return 0, 0, err
	}
	sqrtT := math.Sqrt(T)
	d1 = (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 = d1 - sigma*sqrtT
	return d1, d2, nil
}

// Price returns the Black-Scholes present value of one European option,
// per share (unscaled by contract multiplier):
//
//	Call: S·Φ(d1) − K·e^(−rT)·Φ(d2)
//	Put:  K·e^(−rT)·Φ(−d2) − S·Φ(−d1)
func Price(S, K, r, sigma, T float64, typ OptionType) (float64, error) {
	d1, d2, err := D1D2(S, K, r, sigma, T)
	if err != nil {
		return 0, err
	}
	discount := math.Exp(-r * T)
	switch typ {
	case Call:
		return S*stdNormal.CDF(d1) - K*discount*stdNormal.CDF(d2), nil
	case Put:
		return K*discount*stdNormal.CDF(-d2) - S*stdNormal.CDF(-d1), nil
	}
	return 0, domainErrorf("unrecognized option type %q (want call or put)", typ)
}

// GreeksResult holds the five first-order sensitivities of the option price.
//
// Unit conventions (load-bearing for every display caller):
//   - Delta, Gamma are per $1 move in the underlying.
//   - Vega and Rho are per 1-percentage-point move (the annualized figure
//     divided by 100).
//   - Theta is per calendar day (the annualized figure divided by 365),
//     signed as value lost per day holding the option.
type GreeksResult struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// GreekNames lists the Greeks in display order; it is also the key set of
// SensitivitySweep.Greeks.
var GreekNames = []string{"delta", "gamma", "vega", "theta", "rho"}

// byName selects one Greek from the record by its lower-case name.
func (g GreeksResult) byName(name string) (float64, bool) {
	switch name {
	case "delta":
		return g.Delta, true
	case "gamma":
		return g.Gamma, true
	case "vega":
		return g.Vega, true
	case "theta":
		return g.Theta, true
	case "rho":
		return g.Rho, true
	}
	return 0, false
}

// Greeks returns all five sensitivities computed from a single shared
// (d1, d2) pair, guaranteeing internal consistency with Price. Same domain
// requirements as D1D2.
func Greeks(S, K, r, sigma, T float64, typ OptionType) (GreeksResult, error) {
	d1, d2, err := D1D2(S, K, r, sigma, T)
	if err != nil {
		return GreeksResult{}, err
	}

	sqrtT := math.Sqrt(T)
	discount := math.Exp(-r * T)
	pdfD1 := stdNormal.Prob(d1)

	g := GreeksResult{
		Gamma: pdfD1 / (S * sigma * sqrtT),
		Vega:  S * pdfD1 * sqrtT / 100,
	}

	switch typ {
	case Call:
		g.Delta = stdNormal.CDF(d1)
		g.Theta = (-S*pdfD1*sigma/(2*sqrtT) - r*K*discount*stdNormal.CDF(d2)) / 365
		g.Rho = K * T * discount * stdNormal.CDF(d2) / 100
	case Put:
		g.Delta = stdNormal.CDF(d1) - 1
		g.Theta = (-S*pdfD1*sigma/(2*sqrtT) + r*K*discount*stdNormal.CDF(-d2)) / 365
		g.Rho = -K * T * discount * stdNormal.CDF(-d2) / 100
	default:
		return GreeksResult{}, domainErrorf("unrecognized option type %q (want call or put)", typ)
	}
	return g, nil
}
