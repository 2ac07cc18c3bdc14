package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/binss1/stock-dividend-tracker/internal/models"
)

// MarketDataProvider is the capability interface every external data source
// implements. A provider that cannot serve a capability for a ticker returns
// errors.ErrNotFound; malformed payloads are mapped to the same error at the
// provider boundary so they never escape the batch loop. Adding a provider
// means implementing this interface, no gateway changes.
type MarketDataProvider interface {
	Name() string
	FetchPrice(ctx context.Context, ticker string) (*models.PriceQuote, error)
	// FetchDividendHistory returns dated payments, most recent first.
	FetchDividendHistory(ctx context.Context, ticker string) ([]models.DividendPayment, error)
	FetchCompanyProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error)
}

// ExchangeRateProvider fetches the spot rate for a currency pair.
type ExchangeRateProvider interface {
	FetchRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}
