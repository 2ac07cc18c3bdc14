package services

import (
	"github.com/shopspring/decimal"

	"github.com/binss1/stock-dividend-tracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Valuate applies a price quote to a holding, computing total value and
// profit/loss. A zero purchase price yields a zero percentage rather than a
// division error.
func Valuate(h models.Holding, q models.PriceQuote) models.Holding {
	shares := decimal.NewFromInt(h.Shares)

	h.CurrentPrice = q.Price
	h.TotalValue = shares.Mul(q.Price)
	h.ProfitLossAmount = shares.Mul(q.Price.Sub(h.PurchasePrice))
	if h.PurchasePrice.IsZero() {
		h.ProfitLossPercent = decimal.Zero
	} else {
		h.ProfitLossPercent = q.Price.Sub(h.PurchasePrice).Div(h.PurchasePrice).Mul(hundred)
	}
	h.LastUpdated = q.AsOf
	return h
}
