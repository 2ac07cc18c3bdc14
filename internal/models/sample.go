package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SampleSource labels rows substituted from the built-in sample dataset so
// they are never mistaken for provider data.
const SampleSource = "sample"

type sampleRow struct {
	market        string
	ticker        string
	name          string
	shares        int64
	purchasePrice string
	currentPrice  string
	yield         string
	annual        string
}

// The fixed 5-row sample portfolio used when no input file is readable or no
// provider returned data for any ticker.
var sampleRows = []sampleRow{
	{"NYSE", "AAPL", "Apple Inc.", 10, "150.0", "175.0", "0.5", "0.88"},
	{"NASDAQ", "MSFT", "Microsoft Corporation", 5, "250.0", "280.0", "0.8", "2.24"},
	{"NYSE", "JNJ", "Johnson & Johnson", 8, "160.0", "155.0", "2.7", "4.19"},
	{"NYSE", "PG", "Procter & Gamble Co.", 15, "140.0", "145.0", "2.4", "3.48"},
	{"NYSE", "KO", "Coca-Cola Company", 20, "55.0", "58.0", "2.9", "1.68"},
}

// SampleHoldings returns the fixed sample portfolio without valuation data,
// as substituted for an unreadable input file.
func SampleHoldings() []*Holding {
	holdings := make([]*Holding, 0, len(sampleRows))
	for _, row := range sampleRows {
		holdings = append(holdings, &Holding{
			Market:        row.market,
			Ticker:        row.ticker,
			CompanyName:   row.name,
			Shares:        row.shares,
			PurchasePrice: decimal.RequireFromString(row.purchasePrice),
		})
	}
	return holdings
}

// SampleQuotes returns the hardcoded sample prices keyed by ticker.
func SampleQuotes(asOf time.Time) map[string]*PriceQuote {
	quotes := make(map[string]*PriceQuote, len(sampleRows))
	for _, row := range sampleRows {
		quotes[row.ticker] = &PriceQuote{
			Ticker: row.ticker,
			Price:  decimal.RequireFromString(row.currentPrice),
			AsOf:   asOf,
			Source: SampleSource,
		}
	}
	return quotes
}

// SampleDividends returns the hardcoded sample dividend records. All sample
// tickers pay quarterly; the single-payment amount is annual/4.
func SampleDividends(asOf time.Time) []*DividendRecord {
	four := decimal.NewFromInt(4)
	records := make([]*DividendRecord, 0, len(sampleRows))
	for _, row := range sampleRows {
		annual := decimal.RequireFromString(row.annual)
		records = append(records, &DividendRecord{
			Ticker:         row.ticker,
			CompanyName:    row.name,
			DividendAmount: annual.Div(four),
			DividendYield:  decimal.RequireFromString(row.yield),
			Frequency:      FrequencyQuarterly,
			AnnualDividend: annual,
			Source:         SampleSource,
			LastUpdated:    asOf,
		})
	}
	return records
}
