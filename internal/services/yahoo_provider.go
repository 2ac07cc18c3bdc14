package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/binss1/stock-dividend-tracker/internal/errors"
	"github.com/binss1/stock-dividend-tracker/internal/models"
)

// YahooProvider reads the public quoteSummary endpoint. It needs no API key,
// which makes it the usual middle entry in the provider priority list. Its
// profile carries both the trailing annual dividend rate and the last single
// payment, so records normalized from it use the ratio strategy.
type YahooProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooProvider creates a Yahoo Finance provider
func NewYahooProvider(timeout time.Duration) *YahooProvider {
	return &YahooProvider{
		baseURL:    "https://query1.finance.yahoo.com/v10/finance/quoteSummary",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *YahooProvider) Name() string {
	return "yahoo"
}

// yahooNumber is Yahoo's {"raw": 1.23, "fmt": "1.23"} wrapper.
type yahooNumber struct {
	Raw decimal.Decimal `json:"raw"`
}

type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				RegularMarketPrice yahooNumber `json:"regularMarketPrice"`
				LongName           string      `json:"longName"`
			} `json:"price"`
			SummaryDetail struct {
				DividendRate   yahooNumber `json:"dividendRate"`
				DividendYield  yahooNumber `json:"dividendYield"`
				ExDividendDate struct {
					Raw int64 `json:"raw"`
				} `json:"exDividendDate"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				LastDividendValue yahooNumber `json:"lastDividendValue"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

func (p *YahooProvider) FetchPrice(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	payload, err := p.fetchSummary(ctx, ticker, "price")
	if err != nil {
		return nil, err
	}

	price := payload.QuoteSummary.Result[0].Price.RegularMarketPrice.Raw
	if !price.IsPositive() {
		return nil, apperrors.ErrNotFound
	}

	return &models.PriceQuote{
		Ticker: ticker,
		Price:  price,
		AsOf:   time.Now().UTC(),
		Source: p.Name(),
	}, nil
}

func (p *YahooProvider) FetchDividendHistory(ctx context.Context, ticker string) ([]models.DividendPayment, error) {
	return nil, apperrors.ErrNotFound
}

func (p *YahooProvider) FetchCompanyProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	payload, err := p.fetchSummary(ctx, ticker, "price,summaryDetail,defaultKeyStatistics")
	if err != nil {
		return nil, err
	}

	result := payload.QuoteSummary.Result[0]
	profile := &models.CompanyProfile{
		Ticker:         ticker,
		CompanyName:    result.Price.LongName,
		AnnualDividend: result.SummaryDetail.DividendRate.Raw,
		LastDividend:   result.DefaultKeyStatistics.LastDividendValue.Raw,
	}
	// Yahoo reports yield as a fraction, e.g. 0.027 for 2.7%.
	if yield := result.SummaryDetail.DividendYield.Raw; yield.IsPositive() {
		profile.DividendYield = yield.Mul(decimal.NewFromInt(100))
	}
	if ts := result.SummaryDetail.ExDividendDate.Raw; ts > 0 {
		exDate := time.Unix(ts, 0).UTC()
		profile.ExDividendDate = &exDate
	}
	return profile, nil
}

func (p *YahooProvider) fetchSummary(ctx context.Context, ticker, modules string) (*yahooQuoteSummary, error) {
	url := fmt.Sprintf("%s/%s?modules=%s", p.baseURL, ticker, modules)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Yahoo rejects requests without a browser-like user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stock-dividend-tracker)")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrNotFound
	}

	var payload yahooQuoteSummary
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.ErrNotFound
	}
	if len(payload.QuoteSummary.Result) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &payload, nil
}
