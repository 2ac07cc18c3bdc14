package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyPair is the pair tracked for currency-toggled display.
const DefaultCurrencyPair = "USD/KRW"

// ExchangeRate is one observation of a currency pair. Rows are append-only;
// readers always take the most recent entry and fall back to a configured
// constant when none exist.
type ExchangeRate struct {
	ID           int             `json:"id" gorm:"primaryKey;autoIncrement"`
	CurrencyPair string          `json:"currency_pair" gorm:"column:currency_pair;type:varchar(10);not null;index"`
	Rate         decimal.Decimal `json:"rate" gorm:"column:rate;type:decimal(20,8);not null"`
	Source       string          `json:"source" gorm:"column:source;type:varchar(50)"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the ExchangeRate model
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}

// Validate validates the exchange rate data
func (r *ExchangeRate) Validate() error {
	if r.CurrencyPair == "" {
		return errors.New("currency_pair is required")
	}
	if !r.Rate.IsPositive() {
		return errors.New("rate must be positive")
	}
	return nil
}
