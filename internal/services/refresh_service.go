package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/binss1/stock-dividend-tracker/internal/ingest"
	"github.com/binss1/stock-dividend-tracker/internal/models"
	"github.com/binss1/stock-dividend-tracker/internal/repositories"
)

// RefreshService runs the full ingest-enrich-persist cycle. Runs are
// strictly sequential; a second Run blocks until the first finishes.
// Individual ticker failures never abort the run.
type RefreshService struct {
	gateway   *MarketDataGateway
	fx        ExchangeRateProvider // nil when no rate provider is configured
	holdings  repositories.HoldingRepository
	dividends repositories.DividendRepository
	fxRates   repositories.FXRateRepository
	loader    *ingest.Loader
	batcher   *Batcher

	fallbackRate decimal.Decimal
	currencyPair string
	log          *zap.Logger

	runLock chan struct{}
}

// NewRefreshService wires the refresh pipeline together
func NewRefreshService(
	gateway *MarketDataGateway,
	fx ExchangeRateProvider,
	holdings repositories.HoldingRepository,
	dividends repositories.DividendRepository,
	fxRates repositories.FXRateRepository,
	loader *ingest.Loader,
	batcher *Batcher,
	fallbackRate decimal.Decimal,
	log *zap.Logger,
) *RefreshService {
	return &RefreshService{
		gateway:      gateway,
		fx:           fx,
		holdings:     holdings,
		dividends:    dividends,
		fxRates:      fxRates,
		loader:       loader,
		batcher:      batcher,
		fallbackRate: fallbackRate,
		currencyPair: models.DefaultCurrencyPair,
		log:          log,
		runLock:      make(chan struct{}, 1),
	}
}

// Run executes one refresh cycle and reports what happened. The returned
// error is non-nil only for persistence failures that invalidate the whole
// run; provider failures are recorded in the result instead.
func (s *RefreshService) Run(ctx context.Context) (*models.RunResult, error) {
	select {
	case s.runLock <- struct{}{}:
		defer func() { <-s.runLock }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	result := &models.RunResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	s.log.Info("refresh run started", zap.String("run_id", result.RunID))

	holdings, sampleInput := s.loader.Load()
	result.SampleInput = sampleInput
	result.TickerCount = len(holdings)

	if err := s.holdings.ReplaceAll(ctx, holdings); err != nil {
		return nil, fmt.Errorf("failed to replace holdings: %w", err)
	}

	s.refreshExchangeRate(ctx, result)
	s.enrichHoldings(ctx, holdings, result)

	if len(result.SucceededTickers) == 0 && !result.Canceled {
		if err := s.seedSampleData(ctx); err != nil {
			return nil, err
		}
		result.SampleDataUsed = true
		s.log.Warn("no ticker succeeded, substituted sample dataset",
			zap.String("run_id", result.RunID))
	}

	result.CompletedAt = time.Now().UTC()
	s.log.Info("refresh run finished",
		zap.String("run_id", result.RunID),
		zap.Int("tickers", result.TickerCount),
		zap.Int("succeeded", len(result.SucceededTickers)),
		zap.Int("failed", len(result.FailedTickers)),
		zap.Bool("canceled", result.Canceled))
	return result, nil
}

// refreshExchangeRate records the current rate, falling back to the
// configured constant when no provider is wired or the lookup fails.
func (s *RefreshService) refreshExchangeRate(ctx context.Context, result *models.RunResult) {
	from, to := splitPair(s.currencyPair)

	if s.fx != nil {
		rate, err := s.fx.FetchRate(ctx, from, to)
		if err == nil && rate.IsPositive() {
			result.ExchangeRate = rate
			s.appendRate(ctx, rate, "alphavantage")
			return
		}
		s.log.Warn("exchange rate lookup failed, using fallback",
			zap.String("pair", s.currencyPair),
			zap.Error(err))
	}

	result.ExchangeRate = s.fallbackRate
	result.RateFallbackUsed = true
	s.appendRate(ctx, s.fallbackRate, "fallback")
}

func (s *RefreshService) appendRate(ctx context.Context, rate decimal.Decimal, source string) {
	err := s.fxRates.Append(ctx, &models.ExchangeRate{
		CurrencyPair: s.currencyPair,
		Rate:         rate,
		Source:       source,
	})
	if err != nil {
		s.log.Error("failed to record exchange rate", zap.Error(err))
	}
}

// enrichHoldings walks the batched tickers, fetching prices and dividend
// records through the gateway and writing back what it finds. Cancellation
// is honored between batches only; the batch in flight completes.
func (s *RefreshService) enrichHoldings(ctx context.Context, holdings []*models.Holding, result *models.RunResult) {
	byTicker := make(map[string]*models.Holding, len(holdings))
	tickers := make([]string, 0, len(holdings))
	for _, h := range holdings {
		byTicker[h.Ticker] = h
		tickers = append(tickers, h.Ticker)
	}

	batches := s.batcher.Partition(tickers)
	for i, batch := range batches {
		if i > 0 {
			if err := s.batcher.Wait(ctx); err != nil {
				result.Canceled = true
				return
			}
		}

		for _, ticker := range batch {
			if s.refreshTicker(ctx, byTicker[ticker]) {
				result.SucceededTickers = append(result.SucceededTickers, ticker)
			} else {
				result.FailedTickers = append(result.FailedTickers, ticker)
			}
		}
	}
}

// refreshTicker reports whether at least the price lookup and valuation
// write-back succeeded. A missing dividend record is not a failure; plenty
// of securities pay none.
func (s *RefreshService) refreshTicker(ctx context.Context, holding *models.Holding) bool {
	quote, err := s.gateway.Price(ctx, holding.Ticker)
	if err != nil {
		s.log.Warn("no provider returned a price",
			zap.String("ticker", holding.Ticker),
			zap.Error(err))
		return false
	}

	valued := Valuate(*holding, *quote)
	if err := s.holdings.UpdateValuation(ctx, &valued); err != nil {
		s.log.Error("failed to store valuation",
			zap.String("ticker", holding.Ticker),
			zap.Error(err))
		return false
	}

	record, err := s.gateway.Dividend(ctx, holding.Ticker, quote.Price)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Debug("no dividend data",
				zap.String("ticker", holding.Ticker),
				zap.Error(err))
		}
		return true
	}
	if record.CompanyName == "" {
		record.CompanyName = holding.CompanyName
	}
	if err := s.dividends.Upsert(ctx, record); err != nil {
		s.log.Error("failed to store dividend record",
			zap.String("ticker", holding.Ticker),
			zap.Error(err))
	}
	return true
}

// seedSampleData values the sample portfolio with its hardcoded prices and
// stores the matching dividend records.
func (s *RefreshService) seedSampleData(ctx context.Context) error {
	now := time.Now().UTC()
	quotes := models.SampleQuotes(now)

	sample := models.SampleHoldings()
	if err := s.holdings.ReplaceAll(ctx, sample); err != nil {
		return fmt.Errorf("failed to seed sample holdings: %w", err)
	}
	for _, h := range sample {
		quote, ok := quotes[h.Ticker]
		if !ok {
			continue
		}
		valued := Valuate(*h, *quote)
		if err := s.holdings.UpdateValuation(ctx, &valued); err != nil {
			return fmt.Errorf("failed to value sample holding: %w", err)
		}
	}
	for _, record := range models.SampleDividends(now) {
		if err := s.dividends.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to seed sample dividend: %w", err)
		}
	}
	return nil
}

func splitPair(pair string) (string, string) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '/' {
			return pair[:i], pair[i+1:]
		}
	}
	return pair, ""
}
