package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/binss1/stock-dividend-tracker/internal/models"
	"github.com/binss1/stock-dividend-tracker/internal/repositories"
)

// ReportService assembles the portfolio report from whatever the last
// refresh run persisted. It performs no provider calls of its own.
type ReportService struct {
	holdings  repositories.HoldingRepository
	dividends repositories.DividendRepository
	fxRates   repositories.FXRateRepository

	fallbackRate decimal.Decimal
	currencyPair string
	log          *zap.Logger
}

// NewReportService creates a report service
func NewReportService(
	holdings repositories.HoldingRepository,
	dividends repositories.DividendRepository,
	fxRates repositories.FXRateRepository,
	fallbackRate decimal.Decimal,
	log *zap.Logger,
) *ReportService {
	return &ReportService{
		holdings:     holdings,
		dividends:    dividends,
		fxRates:      fxRates,
		fallbackRate: fallbackRate,
		currencyPair: models.DefaultCurrencyPair,
		log:          log,
	}
}

// Build assembles the full report: valued holdings, the holdings-dividends
// join, the monthly projection and the latest exchange rate.
func (s *ReportService) Build(ctx context.Context) (*models.Report, error) {
	holdings, err := s.holdings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	records, err := s.dividends.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dividends: %w", err)
	}

	report := &models.Report{
		GeneratedAt:  time.Now().UTC(),
		Holdings:     holdings,
		Dividends:    s.joinDividends(holdings, records),
		CurrencyPair: s.currencyPair,
	}
	report.Projection = Project(records, sharesByTicker(holdings))
	report.Summary = summarize(holdings, report.Dividends)

	latest, err := s.fxRates.Latest(ctx, s.currencyPair)
	if err != nil {
		return nil, fmt.Errorf("failed to read exchange rate: %w", err)
	}
	if latest != nil {
		report.ExchangeRate = latest.Rate
		report.RateFallbackUsed = latest.Source == "fallback"
	} else {
		report.ExchangeRate = s.fallbackRate
		report.RateFallbackUsed = true
	}
	return report, nil
}

// Projection returns just the monthly projection rows.
func (s *ReportService) Projection(ctx context.Context) ([]models.MonthlyProjection, error) {
	holdings, err := s.holdings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	records, err := s.dividends.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dividends: %w", err)
	}
	return Project(records, sharesByTicker(holdings)), nil
}

// Holdings returns the persisted holdings snapshot.
func (s *ReportService) Holdings(ctx context.Context) ([]*models.Holding, error) {
	return s.holdings.List(ctx)
}

// Dividends returns the holdings-dividends join rows.
func (s *ReportService) Dividends(ctx context.Context) ([]*models.DividendIncome, error) {
	holdings, err := s.holdings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	records, err := s.dividends.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dividends: %w", err)
	}
	return s.joinDividends(holdings, records), nil
}

// LatestRate returns the most recent stored exchange rate, or a synthetic
// fallback entry when none has been recorded yet.
func (s *ReportService) LatestRate(ctx context.Context) (*models.ExchangeRate, error) {
	latest, err := s.fxRates.Latest(ctx, s.currencyPair)
	if err != nil {
		return nil, fmt.Errorf("failed to read exchange rate: %w", err)
	}
	if latest == nil {
		return &models.ExchangeRate{
			CurrencyPair: s.currencyPair,
			Rate:         s.fallbackRate,
			Source:       "fallback",
		}, nil
	}
	return latest, nil
}

// joinDividends is an inner join by ticker; holdings without a dividend
// record and records for tickers no longer held both drop out.
func (s *ReportService) joinDividends(holdings []*models.Holding, records []*models.DividendRecord) []*models.DividendIncome {
	byTicker := make(map[string]*models.DividendRecord, len(records))
	for _, record := range records {
		byTicker[record.Ticker] = record
	}

	incomes := make([]*models.DividendIncome, 0, len(holdings))
	for _, holding := range holdings {
		record, ok := byTicker[holding.Ticker]
		if !ok {
			continue
		}
		shares := decimal.NewFromInt(holding.Shares)
		incomes = append(incomes, &models.DividendIncome{
			Ticker:               holding.Ticker,
			CompanyName:          holding.CompanyName,
			Shares:               holding.Shares,
			DividendAmount:       record.DividendAmount,
			DividendYield:        record.DividendYield,
			Frequency:            record.Frequency,
			AnnualDividend:       record.AnnualDividend,
			DividendIncome:       record.DividendAmount.Mul(shares),
			AnnualDividendIncome: record.AnnualDividend.Mul(shares),
		})
	}
	return incomes
}

func summarize(holdings []*models.Holding, incomes []*models.DividendIncome) models.PortfolioSummary {
	summary := models.PortfolioSummary{HoldingCount: len(holdings)}

	plSum := decimal.Zero
	valued := 0
	for _, h := range holdings {
		summary.TotalValue = summary.TotalValue.Add(h.TotalValue)
		if h.Valued() {
			plSum = plSum.Add(h.ProfitLossPercent)
			valued++
		}
	}
	if valued > 0 {
		summary.AvgProfitLossPercent = plSum.Div(decimal.NewFromInt(int64(valued)))
	}

	yieldSum := decimal.Zero
	for _, income := range incomes {
		summary.AnnualDividendIncome = summary.AnnualDividendIncome.Add(income.AnnualDividendIncome)
		yieldSum = yieldSum.Add(income.DividendYield)
	}
	if len(incomes) > 0 {
		summary.AvgDividendYield = yieldSum.Div(decimal.NewFromInt(int64(len(incomes))))
	}
	return summary
}

func sharesByTicker(holdings []*models.Holding) map[string]int64 {
	shares := make(map[string]int64, len(holdings))
	for _, h := range holdings {
		shares[h.Ticker] = h.Shares
	}
	return shares
}
