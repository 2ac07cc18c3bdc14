package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/binss1/stock-dividend-tracker/internal/errors"
	"github.com/binss1/stock-dividend-tracker/internal/models"
)

// MarketDataGateway walks an ordered list of providers and returns the first
// usable answer. A provider that errors, times out or returns an unusable
// payload is skipped, never fatal. Only full exhaustion surfaces as
// ErrNotFound.
type MarketDataGateway struct {
	providers []MarketDataProvider
	log       *zap.Logger
}

// NewMarketDataGateway creates a gateway over providers in priority order
func NewMarketDataGateway(providers []MarketDataProvider, log *zap.Logger) *MarketDataGateway {
	return &MarketDataGateway{providers: providers, log: log}
}

// Price returns the first positive quote any provider produces, stamped with
// that provider's name.
func (g *MarketDataGateway) Price(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	for _, p := range g.providers {
		quote, err := p.FetchPrice(ctx, ticker)
		if err != nil {
			g.log.Debug("price lookup failed",
				zap.String("provider", p.Name()),
				zap.String("ticker", ticker),
				zap.Error(err))
			continue
		}
		if quote == nil || !quote.Price.IsPositive() {
			g.log.Debug("price lookup returned unusable quote",
				zap.String("provider", p.Name()),
				zap.String("ticker", ticker))
			continue
		}
		quote.Source = p.Name()
		return quote, nil
	}
	return nil, apperrors.ErrNotFound
}

// Dividend builds a dividend record from the first provider that yields
// either a dated payment history or a profile with dividend data. The dated
// history is preferred because it pins the exact ex-dividend date and lets
// the interval strategy classify the payout frequency.
func (g *MarketDataGateway) Dividend(ctx context.Context, ticker string, currentPrice decimal.Decimal) (*models.DividendRecord, error) {
	for _, p := range g.providers {
		history, err := p.FetchDividendHistory(ctx, ticker)
		if err == nil && len(history) > 0 {
			companyName := ""
			if profile, perr := p.FetchCompanyProfile(ctx, ticker); perr == nil && profile != nil {
				companyName = profile.CompanyName
			}
			record := NormalizeHistory(ticker, companyName, history, currentPrice)
			record.Source = p.Name()
			return record, nil
		}

		profile, err := p.FetchCompanyProfile(ctx, ticker)
		if err != nil {
			g.log.Debug("dividend lookup failed",
				zap.String("provider", p.Name()),
				zap.String("ticker", ticker),
				zap.Error(err))
			continue
		}
		if record := NormalizeSummary(ticker, profile, currentPrice); record != nil {
			record.Source = p.Name()
			return record, nil
		}
		g.log.Debug("provider has no dividend data",
			zap.String("provider", p.Name()),
			zap.String("ticker", ticker))
	}
	return nil, apperrors.ErrNotFound
}
