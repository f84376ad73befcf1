package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/contactkeval/option-pricer/internal/app"
	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/report"
)

func main() {
	ticker := flag.String("ticker", "AAPL", "underlying ticker symbol")
	optType := flag.String("type", "call", "option type: call or put")
	strike := flag.Float64("strike", 0, "strike price (0 = nearest to spot)")
	expiry := flag.String("expiry", "", "expiration date YYYY-MM-DD (default ~30 days out)")
	rate := flag.Float64("rate", 0.05, "annual risk-free rate (decimal)")
	vol := flag.Float64("vol", 0.20, "annual volatility (decimal), used unless -market-iv")
	marketIV := flag.Bool("market-iv", false, "use the chain-quoted implied volatility")
	contracts := flag.Int("contracts", 1, "number of contracts")
	multiplier := flag.Int("multiplier", 100, "shares per contract")
	window := flag.Int("window", 30, "historical volatility window (days)")
	lookback := flag.Int("lookback", 90, "close history depth (days)")
	sweep := flag.String("sweep", "", "also sweep a parameter: spot, strike, volatility, or time")
	outDir := flag.String("out", "", "directory for JSON/CSV reports (empty = console only)")
	closesCSV := flag.String("closes", "", "optional CSV file of daily closes (date,close)")
	offline := flag.Bool("offline", false, "use synthetic market data instead of Yahoo")
	interactive := flag.Bool("interactive", false, "prompt for parameters instead of flags")
	watch := flag.Duration("watch", 0, "re-run on this interval (e.g. 10s); 0 = run once")
	rest := flag.Bool("rest", false, "run as REST server (serve analyses over HTTP)")
	port := flag.String("port", ":8080", "REST server listen address")
	verbosity := flag.Int("v", 1, "log verbosity: 0=error 1=info 2=debug 3=trace")
	flag.Parse()

	logger.SetVerbosity(*verbosity)
	if err := godotenv.Load(); err == nil {
		logger.Debugf("loaded .env")
	}

	prov := buildProvider(*offline, *closesCSV)

	cfg := app.Config{
		Ticker:        *ticker,
		Strike:        *strike,
		RiskFreeRate:  *rate,
		ManualVol:     *vol,
		UseMarketIV:   *marketIV,
		Contracts:     *contracts,
		Multiplier:    *multiplier,
		HistVolWindow: *window,
		LookbackDays:  *lookback,
	}

	typ, err := pricing.ParseOptionType(*optType)
	if err != nil {
		log.Fatalf("invalid -type: %v", err)
	}
	cfg.OptionType = typ

	if *expiry != "" {
		d, err := time.Parse("2006-01-02", *expiry)
		if err != nil {
			log.Fatalf("invalid -expiry: %v", err)
		}
		cfg.Expiry = d
	} else {
		cfg.Expiry = time.Now().AddDate(0, 0, 30)
	}

	if *interactive {
		cfg = promptConfig(NewPrompter(), cfg)
	}
	if cfg.Strike <= 0 {
		cfg.Strike = nearestStrike(prov, cfg)
	}

	if *rest {
		serveREST(*port, cfg, prov)
		return
	}

	runOnce := func() {
		res, err := app.Run(cfg, prov)
		if err != nil {
			logger.Errorf("analysis failed: %v", err)
			return
		}
		printAnalysis(cfg, res)
		if *outDir != "" {
			writeReports(cfg, res, *sweep, *outDir)
		}
	}

	runOnce()
	if *watch <= 0 {
		return
	}

	logger.Infof("watching %s every %v, Ctrl-C to stop", cfg.Ticker, *watch)
	tick := time.NewTicker(*watch)
	defer tick.Stop()
	for range tick.C {
		runOnce()
	}
}

// buildProvider assembles the provider chain: an optional local CSV source
// in front, Yahoo (falling back to synthetic data) or synthetic-only behind.
func buildProvider(offline bool, closesCSV string) data.Provider {
	var prov data.Provider
	if offline {
		prov = data.NewSyntheticProvider()
		logger.Infof("synthetic provider enabled")
	} else {
		prov = data.NewYahooDataProvider(data.NewSyntheticProvider())
	}
	if closesCSV != "" {
		prov = data.NewCSVDataProvider(closesCSV, prov)
		logger.Infof("local closes from %s", closesCSV)
	}
	return prov
}

// nearestStrike resolves a zero strike to the chain strike closest to spot,
// or to the spot price itself when no chain is available.
func nearestStrike(prov data.Provider, cfg app.Config) float64 {
	quote, err := prov.GetQuote(cfg.Ticker)
	if err != nil {
		log.Fatalf("resolving strike: %v", err)
	}
	chain, err := prov.GetOptionChain(cfg.Ticker, cfg.Expiry, string(cfg.OptionType))
	if err == nil {
		if row, ok := data.ClosestStrike(chain, quote.Price); ok {
			logger.Infof("using nearest strike %.2f (spot %.2f)", row.Strike, quote.Price)
			return row.Strike
		}
	}
	logger.Infof("no chain for %s, using spot %.2f as strike", cfg.Ticker, quote.Price)
	return quote.Price
}

// promptConfig walks the operator through the inputs, seeded with the
// flag-derived defaults.
func promptConfig(p *Prompter, cfg app.Config) app.Config {
	cfg.Ticker = p.String("Ticker", cfg.Ticker)

	types := []string{"call", "put"}
	defIdx := 0
	if cfg.OptionType == pricing.Put {
		defIdx = 1
	}
	cfg.OptionType = pricing.OptionType(types[p.Choice("Option type", types, defIdx)])

	cfg.Expiry = p.Date("Expiration date", cfg.Expiry)
	cfg.Strike = p.Float("Strike price (0 = nearest to spot)", cfg.Strike)
	cfg.RiskFreeRate = p.Float("Risk-free rate (decimal)", cfg.RiskFreeRate)
	cfg.UseMarketIV = p.YesNo("Use market implied volatility?", cfg.UseMarketIV)
	if !cfg.UseMarketIV {
		cfg.ManualVol = p.Float("Volatility (decimal)", cfg.ManualVol)
	}
	cfg.Contracts = p.Int("Number of contracts", cfg.Contracts)
	cfg.Multiplier = p.Int("Contract multiplier", cfg.Multiplier)
	cfg.HistVolWindow = p.Int("Historical vol window (days)", cfg.HistVolWindow)
	return cfg
}

func printAnalysis(cfg app.Config, res *app.Analysis) {
	fmt.Printf("\n%s %s K=%.2f exp=%s (T=%.4fy)\n",
		res.Quote.Ticker, cfg.OptionType, cfg.Strike, cfg.Expiry.Format("2006-01-02"), res.TimeToExpiry)
	fmt.Printf("  spot       %10.2f\n", res.Quote.Price)
	fmt.Printf("  vol        %10.2f%%  (%s)\n", res.Volatility*100, res.VolSource)
	fmt.Printf("  price      %10.4f\n", res.Price)
	fmt.Printf("  total      %10.2f  (%d × %d)\n", res.TotalValue, cfg.Contracts, cfg.Multiplier)
	fmt.Printf("  breakeven  %10.2f\n", res.Breakeven)
	fmt.Printf("  delta %8.4f  gamma %8.4f  vega %8.4f  theta %8.4f  rho %8.4f\n",
		res.Greeks.Delta, res.Greeks.Gamma, res.Greeks.Vega, res.Greeks.Theta, res.Greeks.Rho)
	histNote := ""
	if res.HistVolIsDefault {
		histNote = "  (default, insufficient history)"
	}
	fmt.Printf("  hist vol   %10.2f%%%s\n", res.HistVol*100, histNote)
	if res.Option != nil {
		fmt.Printf("  market     last=%.2f bid=%.2f ask=%.2f vol=%d oi=%d iv=%.1f%%\n",
			res.Option.Last, res.Option.Bid, res.Option.Ask,
			res.Option.Volume, res.Option.OpenInterest, res.Option.ImpliedVol*100)
	}
}

func writeReports(cfg app.Config, res *app.Analysis, sweepParam, outDir string) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		logger.Errorf("could not create output dir %s: %v", outDir, err)
		return
	}
	if err := report.WriteJSON(res, outDir); err != nil {
		logger.Errorf("write analysis.json: %v", err)
	}
	if sweepParam == "" {
		return
	}
	sw, err := pricing.Sweep(res.Inputs(cfg), cfg.OptionType, pricing.SweepParam(sweepParam), 0, 0)
	if err != nil {
		logger.Errorf("sweep %s: %v", sweepParam, err)
		return
	}
	if err := report.WriteSweepCSV(sw, pricing.SweepParam(sweepParam), outDir); err != nil {
		logger.Errorf("write sweep csv: %v", err)
	}
	logger.Infof("reports written to %s", outDir)
}

// serveREST exposes the analysis over HTTP: POST /run with an app.Config
// body (missing fields default from the CLI flags), GET /health.
func serveREST(addr string, base app.Config, prov data.Provider) {
	mux := http.NewServeMux()
	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		logger.Infof("received /run request")
		cfg := base
		if r.Body != nil {
			defer r.Body.Close()
			if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil && r.ContentLength > 0 {
				http.Error(w, fmt.Sprintf("invalid config: %v", err), http.StatusBadRequest)
				return
			}
		}
		res, err := app.Run(cfg, prov)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	logger.Infof("starting REST server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
