package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents a single stock position. The snapshot of all holdings
// is replaced wholesale on every refresh run; valuation columns are written
// back once a price has been fetched.
type Holding struct {
	ID          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Market      string `json:"market" gorm:"column:market;type:varchar(20)"`
	Ticker      string `json:"ticker" gorm:"column:ticker;type:varchar(20);not null;uniqueIndex"`
	CompanyName string `json:"company_name" gorm:"column:company_name;type:varchar(255);not null"`

	Shares        int64           `json:"shares" gorm:"column:shares;not null"`
	PurchasePrice decimal.Decimal `json:"purchase_price" gorm:"column:purchase_price;type:decimal(20,8);not null"`

	// Valuation write-back fields, zero until a quote has been applied.
	CurrentPrice      decimal.Decimal `json:"current_price" gorm:"column:current_price;type:decimal(20,8)"`
	TotalValue        decimal.Decimal `json:"total_value" gorm:"column:total_value;type:decimal(20,8)"`
	ProfitLossAmount  decimal.Decimal `json:"profit_loss_amount" gorm:"column:profit_loss_amount;type:decimal(20,8)"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent" gorm:"column:profit_loss_percent;type:decimal(20,8)"`

	LastUpdated time.Time `json:"last_updated" gorm:"column:last_updated"`
}

// TableName returns the table name for the Holding model
func (Holding) TableName() string {
	return "holdings"
}

// Validate validates the holding data
func (h *Holding) Validate() error {
	if h.Ticker == "" {
		return errors.New("ticker is required")
	}
	if h.CompanyName == "" {
		return errors.New("company_name is required")
	}
	if h.Shares <= 0 {
		return errors.New("shares must be positive")
	}
	if h.PurchasePrice.IsNegative() {
		return errors.New("purchase_price must not be negative")
	}
	return nil
}

// Valued reports whether a valuation has been written back to the holding.
func (h *Holding) Valued() bool {
	return h.CurrentPrice.IsPositive()
}
