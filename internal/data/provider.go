// Package data supplies the market inputs the pricing engine consumes:
// spot quotes, trailing daily closes, option expiries, and per-strike option
// quotes. Providers chain through Secondary() so a primary source can fall
// back to another implementation per call.
package data

import (
	"math"
	"sort"
	"time"
)

// Quote is a snapshot of the underlying.
type Quote struct {
	Ticker string    `json:"ticker"`
	Price  float64   `json:"price"`
	Time   time.Time `json:"time"`
}

// OptionQuote is one row of an option chain for a given expiry and type.
type OptionQuote struct {
	Strike       float64 `json:"strike"`
	Last         float64 `json:"last"`
	Bid          float64 `json:"bid"`
	Ask          float64 `json:"ask"`
	Volume       int64   `json:"volume"`
	OpenInterest int64   `json:"open_interest"`
	ImpliedVol   float64 `json:"implied_vol"` // annualized, as a decimal
}

// Provider supplies market data.
type Provider interface {
	Secondary() Provider
	GetQuote(ticker string) (Quote, error)
	GetDailyCloses(ticker string, lookbackDays int) ([]float64, error)
	GetExpiries(ticker string) ([]time.Time, error)
	GetOptionChain(ticker string, expiry time.Time, optType string) ([]OptionQuote, error)
}

// ClosestStrike returns the chain row whose strike is nearest to target.
// The chain must be sorted by strike ascending, as every Provider returns it.
func ClosestStrike(chain []OptionQuote, target float64) (OptionQuote, bool) {
	n := len(chain)
	if n == 0 {
		return OptionQuote{}, false
	}

	i := sort.Search(n, func(i int) bool {
		return chain[i].Strike >= target
	})

	if i == 0 {
		return chain[0], true
	}
	if i == n {
		return chain[n-1], true
	}

	before := chain[i-1]
	after := chain[i]
	if math.Abs(before.Strike-target) < math.Abs(after.Strike-target) {
		return before, true
	}
	return after, true
}
