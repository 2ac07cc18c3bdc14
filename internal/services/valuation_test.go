package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/binss1/stock-dividend-tracker/internal/models"
)

func TestValuate(t *testing.T) {
	asOf := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	holding := models.Holding{
		Ticker:        "AAPL",
		Shares:        10,
		PurchasePrice: decimal.NewFromInt(150),
	}
	quote := models.PriceQuote{
		Ticker: "AAPL",
		Price:  decimal.NewFromInt(175),
		AsOf:   asOf,
		Source: "fmp",
	}

	valued := Valuate(holding, quote)

	if !valued.CurrentPrice.Equal(decimal.NewFromInt(175)) {
		t.Fatalf("expected current price 175, got %s", valued.CurrentPrice)
	}
	if !valued.TotalValue.Equal(decimal.NewFromInt(1750)) {
		t.Fatalf("expected total value 1750, got %s", valued.TotalValue)
	}
	if !valued.ProfitLossAmount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected P/L 250, got %s", valued.ProfitLossAmount)
	}
	// (175-150)/150 * 100
	want := decimal.RequireFromString("16.6666666666666667")
	if valued.ProfitLossPercent.Sub(want).Abs().GreaterThan(decimal.RequireFromString("0.0001")) {
		t.Fatalf("expected P/L percent ~16.67, got %s", valued.ProfitLossPercent)
	}
	if !valued.LastUpdated.Equal(asOf) {
		t.Fatalf("expected last updated %s, got %s", asOf, valued.LastUpdated)
	}
}

func TestValuateLoss(t *testing.T) {
	holding := models.Holding{Ticker: "JNJ", Shares: 8, PurchasePrice: decimal.NewFromInt(160)}
	quote := models.PriceQuote{Ticker: "JNJ", Price: decimal.NewFromInt(155), AsOf: time.Now(), Source: "fmp"}

	valued := Valuate(holding, quote)
	if !valued.ProfitLossAmount.Equal(decimal.NewFromInt(-40)) {
		t.Fatalf("expected P/L -40, got %s", valued.ProfitLossAmount)
	}
	if !valued.ProfitLossPercent.IsNegative() {
		t.Fatalf("expected negative P/L percent, got %s", valued.ProfitLossPercent)
	}
}

func TestValuateZeroPurchasePrice(t *testing.T) {
	holding := models.Holding{Ticker: "FREE", Shares: 3, PurchasePrice: decimal.Zero}
	quote := models.PriceQuote{Ticker: "FREE", Price: decimal.NewFromInt(10), AsOf: time.Now(), Source: "fmp"}

	valued := Valuate(holding, quote)
	if !valued.ProfitLossPercent.IsZero() {
		t.Fatalf("expected zero P/L percent, got %s", valued.ProfitLossPercent)
	}
	if !valued.ProfitLossAmount.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected P/L 30, got %s", valued.ProfitLossAmount)
	}
}
