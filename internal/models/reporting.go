package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DividendIncome is a holding joined with its canonical dividend record,
// carrying the share-weighted income figures the report consumes.
type DividendIncome struct {
	Ticker         string          `json:"ticker"`
	CompanyName    string          `json:"company_name"`
	Shares         int64           `json:"shares"`
	DividendAmount decimal.Decimal `json:"dividend_amount"`
	DividendYield  decimal.Decimal `json:"dividend_yield"`
	Frequency      Frequency       `json:"frequency"`
	AnnualDividend decimal.Decimal `json:"annual_dividend"`

	// DividendIncome = dividend_amount x shares (single payment);
	// AnnualDividendIncome = annual_dividend x shares.
	DividendIncome       decimal.Decimal `json:"dividend_income"`
	AnnualDividendIncome decimal.Decimal `json:"annual_dividend_income"`
}

// MonthlyProjection is one month's projected dividend cash flow together
// with the running cumulative total across months.
type MonthlyProjection struct {
	Month      int             `json:"month"`
	MonthName  string          `json:"month_name"`
	Amount     decimal.Decimal `json:"amount"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// PortfolioSummary aggregates the headline report figures.
type PortfolioSummary struct {
	HoldingCount         int             `json:"holding_count"`
	TotalValue           decimal.Decimal `json:"total_value"`
	AvgProfitLossPercent decimal.Decimal `json:"avg_profit_loss_percent"`
	AnnualDividendIncome decimal.Decimal `json:"annual_dividend_income"`
	AvgDividendYield     decimal.Decimal `json:"avg_dividend_yield"`
}

// Report is the full payload consumed by the report generator.
type Report struct {
	GeneratedAt      time.Time           `json:"generated_at"`
	Summary          PortfolioSummary    `json:"summary"`
	Holdings         []*Holding          `json:"holdings"`
	Dividends        []*DividendIncome   `json:"dividends"`
	Projection       []MonthlyProjection `json:"projection"`
	ExchangeRate     decimal.Decimal     `json:"exchange_rate"`
	CurrencyPair     string              `json:"currency_pair"`
	RateFallbackUsed bool                `json:"rate_fallback_used"`
}

// RunResult describes the outcome of one refresh run. Sample substitutions
// are explicit flags here so downstream consumers never have to infer them
// from success counters.
type RunResult struct {
	RunID       string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	TickerCount      int      `json:"ticker_count"`
	SucceededTickers []string `json:"succeeded_tickers"`
	FailedTickers    []string `json:"failed_tickers"`

	// SampleInput means the holdings snapshot came from the built-in sample
	// portfolio because the input file was missing or unreadable.
	SampleInput bool `json:"sample_input"`
	// SampleDataUsed means zero tickers succeeded and the fixed sample
	// dataset was substituted so downstream reporting has non-empty input.
	SampleDataUsed bool `json:"sample_data_used"`

	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	RateFallbackUsed bool            `json:"rate_fallback_used"`

	Canceled bool `json:"canceled"`
}
