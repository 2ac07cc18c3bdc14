package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/binss1/stock-dividend-tracker/internal/models"
)

func newTestReportService(t *testing.T) (*ReportService, *memHoldingRepo, *memDividendRepo, *memFXRepo) {
	t.Helper()
	holdings := newMemHoldingRepo()
	dividends := newMemDividendRepo()
	fxRates := &memFXRepo{}
	svc := NewReportService(holdings, dividends, fxRates, decimal.NewFromInt(1350), zap.NewNop())
	return svc, holdings, dividends, fxRates
}

func seedHolding(t *testing.T, repo *memHoldingRepo, ticker string, shares int64, purchase, current string) {
	t.Helper()
	h := &models.Holding{
		Market:        "NYSE",
		Ticker:        ticker,
		CompanyName:   ticker + " Co",
		Shares:        shares,
		PurchasePrice: decimal.RequireFromString(purchase),
	}
	repo.holdings[ticker] = h
	if current != "" {
		price := decimal.RequireFromString(current)
		valued := Valuate(*h, models.PriceQuote{Ticker: ticker, Price: price, AsOf: time.Now(), Source: "test"})
		*h = valued
	}
}

func TestBuildReport(t *testing.T) {
	svc, holdings, dividends, fxRates := newTestReportService(t)
	seedHolding(t, holdings, "AAPL", 10, "150", "175")
	seedHolding(t, holdings, "MSFT", 5, "250", "280")
	seedHolding(t, holdings, "NOPAY", 3, "20", "25")

	dividends.records["AAPL"] = &models.DividendRecord{
		Ticker: "AAPL", DividendAmount: decimal.RequireFromString("0.22"),
		DividendYield: decimal.RequireFromString("0.5"),
		Frequency:     models.FrequencyQuarterly, AnnualDividend: decimal.RequireFromString("0.88"),
	}
	dividends.records["MSFT"] = &models.DividendRecord{
		Ticker: "MSFT", DividendAmount: decimal.RequireFromString("0.56"),
		DividendYield: decimal.RequireFromString("0.8"),
		Frequency:     models.FrequencyQuarterly, AnnualDividend: decimal.RequireFromString("2.24"),
	}
	fxRates.rates = append(fxRates.rates, &models.ExchangeRate{
		CurrencyPair: models.DefaultCurrencyPair,
		Rate:         decimal.NewFromInt(1310),
		Source:       "alphavantage",
	})

	report, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Summary.HoldingCount != 3 {
		t.Fatalf("expected 3 holdings, got %d", report.Summary.HoldingCount)
	}
	// Inner join: NOPAY has no dividend record and drops out.
	if len(report.Dividends) != 2 {
		t.Fatalf("expected 2 dividend rows, got %d", len(report.Dividends))
	}
	for _, row := range report.Dividends {
		switch row.Ticker {
		case "AAPL":
			if !row.AnnualDividendIncome.Equal(decimal.RequireFromString("8.8")) {
				t.Fatalf("AAPL: expected annual income 8.8, got %s", row.AnnualDividendIncome)
			}
			if !row.DividendIncome.Equal(decimal.RequireFromString("2.2")) {
				t.Fatalf("AAPL: expected payment income 2.2, got %s", row.DividendIncome)
			}
		case "MSFT":
			if !row.AnnualDividendIncome.Equal(decimal.RequireFromString("11.2")) {
				t.Fatalf("MSFT: expected annual income 11.2, got %s", row.AnnualDividendIncome)
			}
		}
	}
	// 8.8 + 11.2
	if !report.Summary.AnnualDividendIncome.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected total annual income 20, got %s", report.Summary.AnnualDividendIncome)
	}
	// 1750 + 1400 + 75
	if !report.Summary.TotalValue.Equal(decimal.NewFromInt(3225)) {
		t.Fatalf("expected total value 3225, got %s", report.Summary.TotalValue)
	}

	if len(report.Projection) != 12 {
		t.Fatalf("expected 12 projection months, got %d", len(report.Projection))
	}
	// Both quarterly: (0.88*10 + 2.24*5)/4 = 5 per payout month.
	if !report.Projection[2].Amount.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected 5 in March, got %s", report.Projection[2].Amount)
	}

	if report.RateFallbackUsed || !report.ExchangeRate.Equal(decimal.NewFromInt(1310)) {
		t.Fatalf("unexpected rate: %+v", report)
	}
	if report.CurrencyPair != models.DefaultCurrencyPair {
		t.Fatalf("unexpected pair %q", report.CurrencyPair)
	}
}

func TestBuildReportFallbackRate(t *testing.T) {
	svc, _, _, _ := newTestReportService(t)

	report, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.RateFallbackUsed {
		t.Fatal("expected fallback flag with no stored rate")
	}
	if !report.ExchangeRate.Equal(decimal.NewFromInt(1350)) {
		t.Fatalf("expected fallback rate 1350, got %s", report.ExchangeRate)
	}
}

func TestBuildReportFlagsStoredFallback(t *testing.T) {
	svc, _, _, fxRates := newTestReportService(t)
	fxRates.rates = append(fxRates.rates, &models.ExchangeRate{
		CurrencyPair: models.DefaultCurrencyPair,
		Rate:         decimal.NewFromInt(1350),
		Source:       "fallback",
	})

	report, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.RateFallbackUsed {
		t.Fatal("expected fallback flag for stored fallback rate")
	}
}

func TestLatestRateSynthetic(t *testing.T) {
	svc, _, _, _ := newTestReportService(t)

	rate, err := svc.LatestRate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate.Source != "fallback" || !rate.Rate.Equal(decimal.NewFromInt(1350)) {
		t.Fatalf("unexpected synthetic rate: %+v", rate)
	}
}
