package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency classifies how often a security pays dividends.
type Frequency string

const (
	FrequencyMonthly    Frequency = "Monthly"
	FrequencyQuarterly  Frequency = "Quarterly"
	FrequencySemiAnnual Frequency = "Semi-Annual"
	FrequencyAnnual     Frequency = "Annual"
	FrequencyIrregular  Frequency = "Irregular"
	FrequencyUnknown    Frequency = "Unknown"
)

// IsValidFrequency checks if the frequency label is one of the six canonical values
func IsValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiAnnual,
		FrequencyAnnual, FrequencyIrregular, FrequencyUnknown:
		return true
	}
	return false
}

// DividendRecord is the canonical dividend shape all provider payloads are
// normalized into. Records are upserted keyed by ticker; the latest write
// wins and no history is retained.
type DividendRecord struct {
	ID          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Ticker      string `json:"ticker" gorm:"column:ticker;type:varchar(20);not null;uniqueIndex"`
	CompanyName string `json:"company_name" gorm:"column:company_name;type:varchar(255)"`

	ExDividendDate *time.Time `json:"ex_dividend_date,omitempty" gorm:"column:ex_dividend_date"`
	PaymentDate    *time.Time `json:"payment_date,omitempty" gorm:"column:payment_date"`

	// DividendAmount is the most recent single payment per share.
	DividendAmount decimal.Decimal `json:"dividend_amount" gorm:"column:dividend_amount;type:decimal(20,8)"`
	DividendYield  decimal.Decimal `json:"dividend_yield" gorm:"column:dividend_yield;type:decimal(20,8)"`
	Frequency      Frequency       `json:"frequency" gorm:"column:frequency;type:varchar(20)"`
	AnnualDividend decimal.Decimal `json:"annual_dividend" gorm:"column:annual_dividend;type:decimal(20,8)"`

	Source      string    `json:"source" gorm:"column:source;type:varchar(50)"`
	LastUpdated time.Time `json:"last_updated" gorm:"column:last_updated"`
}

// TableName returns the table name for the DividendRecord model
func (DividendRecord) TableName() string {
	return "dividends"
}

// Validate validates the dividend record data
func (d *DividendRecord) Validate() error {
	if d.Ticker == "" {
		return errors.New("ticker is required")
	}
	if !IsValidFrequency(d.Frequency) {
		return errors.New("frequency must be one of the canonical labels")
	}
	if d.DividendAmount.IsNegative() {
		return errors.New("dividend_amount must not be negative")
	}
	if d.AnnualDividend.IsNegative() {
		return errors.New("annual_dividend must not be negative")
	}
	return nil
}
