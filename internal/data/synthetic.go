package data

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

// synthDataProvider implements Provider with generated data for offline runs.
// Closes follow a geometric random walk; option quotes are Black-Scholes
// consistent at a fixed 20% volatility so the whole pipeline stays coherent
// without a network.
type synthDataProvider struct {
	rng       *rand.Rand
	spot      float64
	secondary Provider
}

const synthVol = 0.20

// NewSyntheticProvider returns a provider seeded from the clock.
func NewSyntheticProvider() Provider {
	return NewSyntheticProviderSeeded(time.Now().UnixNano())
}

// NewSyntheticProviderSeeded returns a deterministic provider for tests.
func NewSyntheticProviderSeeded(seed int64) Provider {
	rng := rand.New(rand.NewSource(seed))
	return &synthDataProvider{
		rng:  rng,
		spot: 100 + float64(rng.Intn(200)),
	}
}

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

func (synthDataProv *synthDataProvider) GetQuote(ticker string) (Quote, error) {
	return Quote{Ticker: ticker, Price: synthDataProv.spot, Time: time.Now().UTC()}, nil
}

// GetDailyCloses walks the price backward so the series ends at the quoted
// spot, one step per weekday.
func (synthDataProv *synthDataProvider) GetDailyCloses(ticker string, lookbackDays int) ([]float64, error) {
	if lookbackDays < 1 {
		return nil, fmt.Errorf("lookback must be >= 1, got %d", lookbackDays)
	}
	dailyStd := synthVol / math.Sqrt(252)

	closes := make([]float64, lookbackDays)
	price := synthDataProv.spot
	for i := lookbackDays - 1; i >= 0; i-- {
		closes[i] = price
		price /= 1 + synthDataProv.rng.NormFloat64()*dailyStd
	}
	return closes, nil
}

// GetExpiries returns the next four weekly Fridays.
func (synthDataProv *synthDataProvider) GetExpiries(ticker string) ([]time.Time, error) {
	d := time.Now().UTC()
	for d.Weekday() != time.Friday {
		d = d.AddDate(0, 0, 1)
	}
	expiries := make([]time.Time, 0, 4)
	for i := 0; i < 4; i++ {
		expiries = append(expiries, time.Date(d.Year(), d.Month(), d.Day(), 20, 0, 0, 0, time.UTC))
		d = d.AddDate(0, 0, 7)
	}
	return expiries, nil
}

// GetOptionChain builds strikes at 5-point intervals around spot and prices
// them with the engine at the fixed synthetic volatility.
func (synthDataProv *synthDataProvider) GetOptionChain(ticker string, expiry time.Time, optType string) ([]OptionQuote, error) {
	typ, err := pricing.ParseOptionType(optType)
	if err != nil {
		return nil, err
	}

	const interval = 5.0
	atm := math.Round(synthDataProv.spot/interval) * interval
	T := pricing.TimeToExpiry(expiry, time.Now())

	chain := make([]OptionQuote, 0, 9)
	for k := atm - 4*interval; k <= atm+4*interval; k += interval {
		if k <= 0 {
			continue
		}
		theo, err := pricing.Price(synthDataProv.spot, k, 0.05, synthVol, T, typ)
		if err != nil {
			return nil, err
		}
		spread := math.Max(0.01, theo*0.02)
		chain = append(chain, OptionQuote{
			Strike:       k,
			Last:         theo,
			Bid:          math.Max(0, theo-spread),
			Ask:          theo + spread,
			Volume:       int64(100 + synthDataProv.rng.Intn(5000)),
			OpenInterest: int64(500 + synthDataProv.rng.Intn(20000)),
			ImpliedVol:   synthVol,
		})
	}
	return chain, nil
}
