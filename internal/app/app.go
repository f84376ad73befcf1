// Package app wires the market-data providers to the pricing engine. One
// Run is one refresh of the full analysis: fetch the quote and close
// history, resolve the volatility source, then compute price, Greeks,
// historical volatility, and payoff figures.
package app

import (
	"fmt"
	"time"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Config describes one option analysis request.
type Config struct {
	Ticker        string             `json:"ticker"`
	OptionType    pricing.OptionType `json:"option_type"`
	Strike        float64            `json:"strike"`
	Expiry        time.Time          `json:"expiry"`
	RiskFreeRate  float64            `json:"risk_free_rate"`
	ManualVol     float64            `json:"manual_vol"`      // used when UseMarketIV is false or no quote exists
	UseMarketIV   bool               `json:"use_market_iv"`   // prefer the chain-quoted implied volatility
	Contracts     int                `json:"contracts"`       // defaults to 1
	Multiplier    int                `json:"multiplier"`      // shares per contract, defaults to 100
	HistVolWindow int                `json:"hist_vol_window"` // trailing return window, defaults to 30
	LookbackDays  int                `json:"lookback_days"`   // close history depth, defaults to 90
}

// Volatility sources reported on an Analysis.
const (
	VolSourceMarket  = "market"  // chain-quoted implied volatility
	VolSourceManual  = "manual"  // operator-supplied
	VolSourceDefault = "default" // engine fallback constant
)

// Analysis is the result of one pipeline run.
type Analysis struct {
	Quote            data.Quote           `json:"quote"`
	Option           *data.OptionQuote    `json:"option,omitempty"` // chain row at the nearest strike, when available
	TimeToExpiry     float64              `json:"time_to_expiry"`
	Volatility       float64              `json:"volatility"`
	VolSource        string               `json:"vol_source"`
	Price            float64              `json:"price"`
	TotalValue       float64              `json:"total_value"` // price x contracts x multiplier
	Breakeven        float64              `json:"breakeven"`
	Greeks           pricing.GreeksResult `json:"greeks"`
	HistVol          float64              `json:"hist_vol"`
	HistVolIsDefault bool                 `json:"hist_vol_is_default"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// normalize fills defaulted Config fields in place.
func (cfg *Config) normalize() error {
	if cfg.Ticker == "" {
		return fmt.Errorf("ticker required")
	}
	if cfg.Strike <= 0 {
		return fmt.Errorf("strike must be > 0, got %v", cfg.Strike)
	}
	if cfg.Expiry.IsZero() {
		return fmt.Errorf("expiry required")
	}
	if cfg.Contracts < 1 {
		cfg.Contracts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 100
	}
	if cfg.HistVolWindow < 1 {
		cfg.HistVolWindow = 30
	}
	if cfg.LookbackDays < 2 {
		cfg.LookbackDays = 90
	}
	return nil
}

// Run executes the full analysis pipeline against the given provider.
func Run(cfg Config, prov data.Provider) (*Analysis, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	quote, err := prov.GetQuote(cfg.Ticker)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", cfg.Ticker, err)
	}
	logger.Debugf("quote %s = %.2f", cfg.Ticker, quote.Price)

	now := time.Now()
	T := pricing.TimeToExpiry(cfg.Expiry, now)

	res := &Analysis{
		Quote:        quote,
		TimeToExpiry: T,
		GeneratedAt:  now.UTC(),
	}

	// Resolve the volatility source: chain IV when asked for and
	// available, otherwise the manual figure.
	res.Volatility = cfg.ManualVol
	res.VolSource = VolSourceManual
	if cfg.UseMarketIV {
		chain, err := prov.GetOptionChain(cfg.Ticker, cfg.Expiry, string(cfg.OptionType))
		if err != nil {
			logger.Debugf("option chain unavailable for %s: %v", cfg.Ticker, err)
		} else if row, ok := data.ClosestStrike(chain, cfg.Strike); ok {
			res.Option = &row
			if row.ImpliedVol > 0 {
				res.Volatility = row.ImpliedVol
				res.VolSource = VolSourceMarket
				logger.Debugf("using market IV %.4f at strike %.2f", row.ImpliedVol, row.Strike)
			}
		}
	}
	if res.Volatility <= 0 {
		res.Volatility = pricing.DefaultVolatility
		res.VolSource = VolSourceDefault
		logger.Infof("no volatility available for %s, using default %.0f%%", cfg.Ticker, res.Volatility*100)
	}

	price, err := pricing.Price(quote.Price, cfg.Strike, cfg.RiskFreeRate, res.Volatility, T, cfg.OptionType)
	if err != nil {
		return nil, err
	}
	greeks, err := pricing.Greeks(quote.Price, cfg.Strike, cfg.RiskFreeRate, res.Volatility, T, cfg.OptionType)
	if err != nil {
		return nil, err
	}
	res.Price = price
	res.Greeks = greeks
	res.TotalValue = price * float64(cfg.Contracts) * float64(cfg.Multiplier)

	if cfg.OptionType == pricing.Put {
		res.Breakeven = cfg.Strike - price
	} else {
		res.Breakeven = cfg.Strike + price
	}

	closes, err := prov.GetDailyCloses(cfg.Ticker, cfg.LookbackDays)
	if err != nil {
		// Historical volatility is a display figure; a missing close
		// history degrades to the engine default rather than failing
		// the whole analysis.
		logger.Errorf("close history for %s: %v", cfg.Ticker, err)
		closes = nil
	}
	histVol, ok := pricing.HistoricalVolatility(closes, cfg.HistVolWindow)
	res.HistVol = histVol
	res.HistVolIsDefault = !ok

	return res, nil
}

// Inputs returns the resolved MarketInputs this analysis was priced with,
// for feeding sweeps and surfaces of the same scenario.
func (a *Analysis) Inputs(cfg Config) pricing.MarketInputs {
	return pricing.MarketInputs{
		S:     a.Quote.Price,
		K:     cfg.Strike,
		R:     cfg.RiskFreeRate,
		Sigma: a.Volatility,
		T:     a.TimeToExpiry,
	}
}
