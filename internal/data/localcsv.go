package data

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// csvDataProvider serves daily closes from a local CSV file and delegates
// everything else to the secondary provider. Useful for canned historical
// series and offline volatility work.
type csvDataProvider struct {
	path      string
	secondary Provider
}

// closeRow is one record of the closes file. Expected header: date,close
// with rows in chronological order.
type closeRow struct {
	Date  string  `csv:"date"`
	Close float64 `csv:"close"`
}

// NewCSVDataProvider constructs a provider reading closes from path.
func NewCSVDataProvider(path string, secondary Provider) Provider {
	return &csvDataProvider{path: path, secondary: secondary}
}

func (csvDataProv *csvDataProvider) Secondary() Provider {
	return csvDataProv.secondary
}

func (csvDataProv *csvDataProvider) GetQuote(ticker string) (Quote, error) {
	closes, err := csvDataProv.GetDailyCloses(ticker, 1)
	if err == nil && len(closes) > 0 {
		return Quote{Ticker: ticker, Price: closes[len(closes)-1], Time: time.Now().UTC()}, nil
	}
	if csvDataProv.secondary != nil {
		return csvDataProv.secondary.GetQuote(ticker)
	}
	return Quote{}, fmt.Errorf("no closes in %s for quote", csvDataProv.path)
}

// GetDailyCloses returns the trailing lookbackDays closes from the file.
func (csvDataProv *csvDataProvider) GetDailyCloses(ticker string, lookbackDays int) ([]float64, error) {
	f, err := os.Open(csvDataProv.path)
	if err != nil {
		if csvDataProv.secondary != nil {
			logger.Debugf("csv closes failed (%v), trying secondary", err)
			return csvDataProv.secondary.GetDailyCloses(ticker, lookbackDays)
		}
		return nil, err
	}
	defer f.Close()

	var rows []closeRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", csvDataProv.path, err)
	}

	closes := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.Close > 0 {
			closes = append(closes, row.Close)
		}
	}
	if lookbackDays > 0 && len(closes) > lookbackDays {
		closes = closes[len(closes)-lookbackDays:]
	}
	logger.Debugf("csv: %d closes from %s", len(closes), csvDataProv.path)
	return closes, nil
}

func (csvDataProv *csvDataProvider) GetExpiries(ticker string) ([]time.Time, error) {
	if csvDataProv.secondary != nil {
		return csvDataProv.secondary.GetExpiries(ticker)
	}
	return nil, fmt.Errorf("GetExpiries not implemented for csvDataProvider")
}

func (csvDataProv *csvDataProvider) GetOptionChain(ticker string, expiry time.Time, optType string) ([]OptionQuote, error) {
	if csvDataProv.secondary != nil {
		return csvDataProv.secondary.GetOptionChain(ticker, expiry, optType)
	}
	return nil, fmt.Errorf("GetOptionChain not implemented for csvDataProvider")
}
