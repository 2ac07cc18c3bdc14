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

// AlphaVantageProvider serves quotes and dividend summaries from Alpha
// Vantage, and doubles as the exchange rate provider for the refresh run.
// Alpha Vantage has no dated dividend history endpoint on the free tier, so
// FetchDividendHistory always reports not found and the gateway falls back
// to the company overview.
type AlphaVantageProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAlphaVantageProvider creates an Alpha Vantage provider
func NewAlphaVantageProvider(apiKey string, timeout time.Duration) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		apiKey:     apiKey,
		baseURL:    "https://www.alphavantage.co",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *AlphaVantageProvider) Name() string {
	return "alphavantage"
}

type avGlobalQuote struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

func (p *AlphaVantageProvider) FetchPrice(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	url := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s", p.baseURL, ticker, p.apiKey)

	var payload avGlobalQuote
	if err := p.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(payload.GlobalQuote.Price)
	if err != nil || !price.IsPositive() {
		return nil, apperrors.ErrNotFound
	}

	return &models.PriceQuote{
		Ticker: ticker,
		Price:  price,
		AsOf:   time.Now().UTC(),
		Source: p.Name(),
	}, nil
}

func (p *AlphaVantageProvider) FetchDividendHistory(ctx context.Context, ticker string) ([]models.DividendPayment, error) {
	return nil, apperrors.ErrNotFound
}

type avOverview struct {
	Symbol           string `json:"Symbol"`
	Name             string `json:"Name"`
	DividendPerShare string `json:"DividendPerShare"`
	DividendYield    string `json:"DividendYield"`
	ExDividendDate   string `json:"ExDividendDate"`
}

func (p *AlphaVantageProvider) FetchCompanyProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	url := fmt.Sprintf("%s/query?function=OVERVIEW&symbol=%s&apikey=%s", p.baseURL, ticker, p.apiKey)

	var payload avOverview
	if err := p.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if payload.Symbol == "" {
		return nil, apperrors.ErrNotFound
	}

	profile := &models.CompanyProfile{
		Ticker:         ticker,
		CompanyName:    payload.Name,
		AnnualDividend: parseAVDecimal(payload.DividendPerShare),
	}
	// Alpha Vantage reports yield as a fraction, e.g. 0.0054 for 0.54%.
	if yield := parseAVDecimal(payload.DividendYield); yield.IsPositive() {
		profile.DividendYield = yield.Mul(decimal.NewFromInt(100))
	}
	if exDate, err := time.Parse("2006-01-02", payload.ExDividendDate); err == nil {
		profile.ExDividendDate = &exDate
	}
	return profile, nil
}

type avExchangeRate struct {
	RealtimeRate struct {
		Rate string `json:"5. Exchange Rate"`
	} `json:"Realtime Currency Exchange Rate"`
}

// FetchRate implements ExchangeRateProvider.
func (p *AlphaVantageProvider) FetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/query?function=CURRENCY_EXCHANGE_RATE&from_currency=%s&to_currency=%s&apikey=%s",
		p.baseURL, from, to, p.apiKey)

	var payload avExchangeRate
	if err := p.getJSON(ctx, url, &payload); err != nil {
		return decimal.Zero, err
	}

	rate, err := decimal.NewFromString(payload.RealtimeRate.Rate)
	if err != nil || !rate.IsPositive() {
		return decimal.Zero, apperrors.ErrNotFound
	}
	return rate, nil
}

// parseAVDecimal tolerates the "None" and "-" placeholders Alpha Vantage
// uses for missing fundamentals.
func parseAVDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (p *AlphaVantageProvider) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("alphavantage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.ErrNotFound
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.ErrNotFound
	}
	return nil
}
