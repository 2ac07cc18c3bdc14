package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is the normalized price shape returned by all providers. It is
// produced per run and never persisted beyond deriving a holding valuation.
type PriceQuote struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
	AsOf   time.Time       `json:"as_of"`
	Source string          `json:"source"`
}

func (q *PriceQuote) Validate() error {
	if q.Ticker == "" {
		return errors.New("ticker is required")
	}
	if !q.Price.IsPositive() {
		return errors.New("price must be positive")
	}
	if q.Source == "" {
		return errors.New("source is required")
	}
	return nil
}

// DividendPayment is a single dated entry from a provider's dividend history,
// most recent first.
type DividendPayment struct {
	ExDate time.Time       `json:"ex_date"`
	Amount decimal.Decimal `json:"amount"`
}

// CompanyProfile carries the summary figures a provider exposes for a ticker.
// Providers that have no dated dividend history may still fill the annual
// rate and last payment, which is enough for ratio-based frequency
// classification.
type CompanyProfile struct {
	Ticker         string          `json:"ticker"`
	CompanyName    string          `json:"company_name"`
	AnnualDividend decimal.Decimal `json:"annual_dividend"`
	LastDividend   decimal.Decimal `json:"last_dividend"`
	DividendYield  decimal.Decimal `json:"dividend_yield"`
	ExDividendDate *time.Time      `json:"ex_dividend_date,omitempty"`
}

// HasDividendData reports whether the profile carries any dividend figures.
func (p *CompanyProfile) HasDividendData() bool {
	return p.AnnualDividend.IsPositive() || p.LastDividend.IsPositive()
}
