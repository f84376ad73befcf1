// Yahoo-backed Provider implementation.
//
// Uses raw HTTP calls against the public query1.finance.yahoo.com chart and
// options endpoints instead of a vendor SDK, with fallback delegation to a
// secondary provider on any failure.
package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// yahooDataProvider implements the Provider interface using Yahoo Finance.
type yahooDataProvider struct {
	client    *http.Client
	baseURL   string
	secondary Provider
}

// yahooChartResp models the v8 chart endpoint response.
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// yahooOptionQuote is one contract row of the v7 options endpoint.
type yahooOptionQuote struct {
	Strike            float64 `json:"strike"`
	LastPrice         float64 `json:"lastPrice"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	Volume            int64   `json:"volume"`
	OpenInterest      int64   `json:"openInterest"`
	ImpliedVolatility float64 `json:"impliedVolatility"`
}

// yahooOptionsResp models the v7 options endpoint response.
type yahooOptionsResp struct {
	OptionChain struct {
		Result []struct {
			ExpirationDates []int64 `json:"expirationDates"`
			Options         []struct {
				Calls []yahooOptionQuote `json:"calls"`
				Puts  []yahooOptionQuote `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"optionChain"`
}

// NewYahooDataProvider constructs a Yahoo-backed provider with an HTTP
// client tuned the same way as the rest of the application's providers.
func NewYahooDataProvider(secondary Provider) Provider {
	logger.Infof("initializing Yahoo data provider")

	return &yahooDataProvider{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		baseURL:   "https://query1.finance.yahoo.com",
		secondary: secondary,
	}
}

// Secondary returns the configured fallback Provider, if any.
func (yahooDataProv *yahooDataProvider) Secondary() Provider {
	return yahooDataProv.secondary
}

// getJSON issues a GET and decodes the JSON body into out.
func (yahooDataProv *yahooDataProvider) getJSON(rawURL string, out any) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	// Yahoo rejects requests without a browser-like agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (option-pricer)")
	req.Header.Set("Accept", "application/json")

	logger.Tracef("GET %s", rawURL)
	resp, err := yahooDataProv.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo status %d for %s", resp.StatusCode, rawURL)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (yahooDataProv *yahooDataProvider) chart(ticker string, lookbackDays int) (*yahooChartResp, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%dd&interval=1d",
		yahooDataProv.baseURL, url.PathEscape(ticker), lookbackDays)

	var body yahooChartResp
	if err := yahooDataProv.getJSON(u, &body); err != nil {
		return nil, err
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart: no result for %s", ticker)
	}
	return &body, nil
}

// GetQuote returns the latest regular-market price for the ticker.
func (yahooDataProv *yahooDataProvider) GetQuote(ticker string) (Quote, error) {
	body, err := yahooDataProv.chart(ticker, 1)
	if err != nil {
		if yahooDataProv.secondary != nil {
			logger.Debugf("yahoo quote failed (%v), trying secondary", err)
			return yahooDataProv.secondary.GetQuote(ticker)
		}
		return Quote{}, err
	}

	meta := body.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return Quote{}, fmt.Errorf("yahoo quote: no market price for %s", ticker)
	}
	return Quote{
		Ticker: ticker,
		Price:  meta.RegularMarketPrice,
		Time:   time.Unix(meta.RegularMarketTime, 0).UTC(),
	}, nil
}

// GetDailyCloses returns up to lookbackDays trailing daily closes in
// chronological order. Null closes (holidays, halts) are skipped.
func (yahooDataProv *yahooDataProvider) GetDailyCloses(ticker string, lookbackDays int) ([]float64, error) {
	body, err := yahooDataProv.chart(ticker, lookbackDays)
	if err != nil {
		if yahooDataProv.secondary != nil {
			logger.Debugf("yahoo closes failed (%v), trying secondary", err)
			return yahooDataProv.secondary.GetDailyCloses(ticker, lookbackDays)
		}
		return nil, err
	}

	result := body.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart: no quote series for %s", ticker)
	}
	raw := result.Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, c := range raw {
		if c > 0 {
			closes = append(closes, c)
		}
	}
	logger.Debugf("yahoo: %d closes for %s over %dd", len(closes), ticker, lookbackDays)
	return closes, nil
}

func (yahooDataProv *yahooDataProvider) options(ticker string, expiry time.Time) (*yahooOptionsResp, error) {
	u := fmt.Sprintf("%s/v7/finance/options/%s", yahooDataProv.baseURL, url.PathEscape(ticker))
	if !expiry.IsZero() {
		u += fmt.Sprintf("?date=%d", expiry.UTC().Unix())
	}

	var body yahooOptionsResp
	if err := yahooDataProv.getJSON(u, &body); err != nil {
		return nil, err
	}
	if len(body.OptionChain.Result) == 0 {
		return nil, fmt.Errorf("yahoo options: no chain for %s", ticker)
	}
	return &body, nil
}

// GetExpiries lists the available option expiration dates, ascending.
func (yahooDataProv *yahooDataProvider) GetExpiries(ticker string) ([]time.Time, error) {
	body, err := yahooDataProv.options(ticker, time.Time{})
	if err != nil {
		if yahooDataProv.secondary != nil {
			logger.Debugf("yahoo expiries failed (%v), trying secondary", err)
			return yahooDataProv.secondary.GetExpiries(ticker)
		}
		return nil, err
	}

	stamps := body.OptionChain.Result[0].ExpirationDates
	expiries := make([]time.Time, 0, len(stamps))
	for _, ts := range stamps {
		expiries = append(expiries, time.Unix(ts, 0).UTC())
	}
	sort.Slice(expiries, func(i, j int) bool { return expiries[i].Before(expiries[j]) })
	return expiries, nil
}

// GetOptionChain returns the call or put side of the chain for one expiry,
// sorted by strike ascending.
func (yahooDataProv *yahooDataProvider) GetOptionChain(ticker string, expiry time.Time, optType string) ([]OptionQuote, error) {
	body, err := yahooDataProv.options(ticker, expiry)
	if err != nil {
		if yahooDataProv.secondary != nil {
			logger.Debugf("yahoo chain failed (%v), trying secondary", err)
			return yahooDataProv.secondary.GetOptionChain(ticker, expiry, optType)
		}
		return nil, err
	}

	result := body.OptionChain.Result[0]
	if len(result.Options) == 0 {
		return nil, fmt.Errorf("yahoo options: empty chain for %s %s", ticker, expiry.Format("2006-01-02"))
	}

	var raw []yahooOptionQuote
	switch optType {
	case "call":
		raw = result.Options[0].Calls
	case "put":
		raw = result.Options[0].Puts
	default:
		return nil, fmt.Errorf("yahoo options: unknown option type %q", optType)
	}

	chain := make([]OptionQuote, 0, len(raw))
	for _, q := range raw {
		chain = append(chain, OptionQuote{
			Strike:       q.Strike,
			Last:         q.LastPrice,
			Bid:          q.Bid,
			Ask:          q.Ask,
			Volume:       q.Volume,
			OpenInterest: q.OpenInterest,
			ImpliedVol:   q.ImpliedVolatility,
		})
	}
	sort.Slice(chain, func(i, j int) bool { return chain[i].Strike < chain[j].Strike })
	logger.Debugf("yahoo: %d %s contracts for %s %s", len(chain), optType, ticker, expiry.Format("2006-01-02"))
	return chain, nil
}
