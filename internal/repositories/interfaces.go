package repositories

import (
	"context"

	"github.com/binss1/stock-dividend-tracker/internal/models"
)

// HoldingRepository persists the portfolio snapshot. The snapshot is
// replaced wholesale on every run; valuations are written back per ticker.
type HoldingRepository interface {
	ReplaceAll(ctx context.Context, holdings []*models.Holding) error
	UpdateValuation(ctx context.Context, holding *models.Holding) error
	List(ctx context.Context) ([]*models.Holding, error)
}

// DividendRepository persists canonical dividend records keyed by ticker,
// last write wins.
type DividendRepository interface {
	Upsert(ctx context.Context, record *models.DividendRecord) error
	List(ctx context.Context) ([]*models.DividendRecord, error)
}

// FXRateRepository is an append-only log of exchange rate observations;
// reads always take the most recent entry for a pair.
type FXRateRepository interface {
	Append(ctx context.Context, rate *models.ExchangeRate) error
	Latest(ctx context.Context, pair string) (*models.ExchangeRate, error)
}
