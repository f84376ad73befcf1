package app

import (
	"math"
	"testing"
	"time"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

func testConfig() Config {
	return Config{
		Ticker:       "TEST",
		OptionType:   pricing.Call,
		Strike:       100,
		Expiry:       time.Now().AddDate(0, 1, 0),
		RiskFreeRate: 0.05,
		ManualVol:    0.2,
	}
}

func TestRunWithManualVol(t *testing.T) {
	prov := data.NewSyntheticProviderSeeded(1)
	cfg := testConfig()

	res, err := Run(cfg, prov)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.VolSource != VolSourceManual || res.Volatility != 0.2 {
		t.Errorf("vol source = %s/%v, want manual/0.2", res.VolSource, res.Volatility)
	}
	if res.Price <= 0 {
		t.Errorf("price = %v, want > 0", res.Price)
	}
	// Defaults: 1 contract × 100 multiplier.
	if !almostEqual(res.TotalValue, res.Price*100) {
		t.Errorf("total value = %v, want %v", res.TotalValue, res.Price*100)
	}
	if !almostEqual(res.Breakeven, cfg.Strike+res.Price) {
		t.Errorf("call breakeven = %v, want %v", res.Breakeven, cfg.Strike+res.Price)
	}
	if res.HistVolIsDefault {
		t.Error("synthetic close history should yield a real hist-vol estimate")
	}
	if res.TimeToExpiry <= 0 {
		t.Errorf("time to expiry = %v", res.TimeToExpiry)
	}

	// The reported figures are internally consistent with the engine.
	want, err := pricing.Price(res.Quote.Price, cfg.Strike, cfg.RiskFreeRate, res.Volatility, res.TimeToExpiry, cfg.OptionType)
	if err != nil {
		t.Fatalf("reprice: %v", err)
	}
	if !almostEqual(res.Price, want) {
		t.Errorf("price %v != engine %v", res.Price, want)
	}
}

func TestRunWithMarketIV(t *testing.T) {
	prov := data.NewSyntheticProviderSeeded(2)
	cfg := testConfig()
	cfg.UseMarketIV = true

	quote, err := prov.GetQuote(cfg.Ticker)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	cfg.Strike = quote.Price // near the money so a chain row exists

	res, err := Run(cfg, prov)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.VolSource != VolSourceMarket {
		t.Fatalf("vol source = %s, want market", res.VolSource)
	}
	if res.Option == nil {
		t.Fatal("expected a selected chain row")
	}
	if res.Volatility != res.Option.ImpliedVol {
		t.Errorf("volatility %v != chain IV %v", res.Volatility, res.Option.ImpliedVol)
	}
}

func TestRunDefaultVolFallback(t *testing.T) {
	prov := data.NewSyntheticProviderSeeded(3)
	cfg := testConfig()
	cfg.ManualVol = 0 // nothing supplied, market IV not requested

	res, err := Run(cfg, prov)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.VolSource != VolSourceDefault || res.Volatility != pricing.DefaultVolatility {
		t.Errorf("vol source = %s/%v, want default/%v", res.VolSource, res.Volatility, pricing.DefaultVolatility)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	prov := data.NewSyntheticProviderSeeded(4)

	bad := []Config{
		{},
		{Ticker: "TEST", Strike: -1, Expiry: time.Now().AddDate(0, 1, 0)},
		{Ticker: "TEST", Strike: 100},
	}
	for i, cfg := range bad {
		if _, err := Run(cfg, prov); err == nil {
			t.Errorf("config %d: expected error", i)
		}
	}
}

func TestAnalysisInputs(t *testing.T) {
	prov := data.NewSyntheticProviderSeeded(5)
	cfg := testConfig()

	res, err := Run(cfg, prov)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	in := res.Inputs(cfg)
	if err := in.Validate(); err != nil {
		t.Fatalf("inputs invalid: %v", err)
	}
	if in.S != res.Quote.Price || in.Sigma != res.Volatility || in.T != res.TimeToExpiry {
		t.Error("inputs do not round-trip the analysis")
	}

	// The resolved inputs feed the sweep generator directly.
	if _, err := pricing.Sweep(in, cfg.OptionType, pricing.SweepSpot, 0, 10); err != nil {
		t.Fatalf("sweep from analysis inputs: %v", err)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
