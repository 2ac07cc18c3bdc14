package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/binss1/stock-dividend-tracker/internal/errors"
	"github.com/binss1/stock-dividend-tracker/internal/models"
)

// FMPProvider fetches quotes, dividend histories and company profiles from
// Financial Modeling Prep. It is the only provider with a dated dividend
// history, so records normalized from it use the interval strategy.
type FMPProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewFMPProvider creates a Financial Modeling Prep provider
func NewFMPProvider(apiKey string, timeout time.Duration) *FMPProvider {
	return &FMPProvider{
		apiKey:     apiKey,
		baseURL:    "https://financialmodelingprep.com/api/v3",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *FMPProvider) Name() string {
	return "fmp"
}

type fmpQuote struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

func (p *FMPProvider) FetchPrice(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	url := fmt.Sprintf("%s/quote/%s?apikey=%s", p.baseURL, ticker, p.apiKey)

	var payload []fmpQuote
	if err := p.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 || !payload[0].Price.IsPositive() {
		return nil, apperrors.ErrNotFound
	}

	return &models.PriceQuote{
		Ticker: ticker,
		Price:  payload[0].Price,
		AsOf:   time.Now().UTC(),
		Source: p.Name(),
	}, nil
}

type fmpDividendHistory struct {
	Symbol     string             `json:"symbol"`
	Historical []fmpDividendEntry `json:"historical"`
}

type fmpDividendEntry struct {
	Date     string          `json:"date"`
	Dividend decimal.Decimal `json:"dividend"`
}

func (p *FMPProvider) FetchDividendHistory(ctx context.Context, ticker string) ([]models.DividendPayment, error) {
	url := fmt.Sprintf("%s/historical-price-full/stock_dividend/%s?apikey=%s", p.baseURL, ticker, p.apiKey)

	var payload fmpDividendHistory
	if err := p.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	payments := make([]models.DividendPayment, 0, len(payload.Historical))
	for _, entry := range payload.Historical {
		exDate, err := time.Parse("2006-01-02", entry.Date)
		if err != nil || !entry.Dividend.IsPositive() {
			continue
		}
		payments = append(payments, models.DividendPayment{ExDate: exDate, Amount: entry.Dividend})
	}
	if len(payments) == 0 {
		return nil, apperrors.ErrNotFound
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].ExDate.After(payments[j].ExDate)
	})
	return payments, nil
}

type fmpProfile struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	LastDiv     decimal.Decimal `json:"lastDiv"`
}

func (p *FMPProvider) FetchCompanyProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	url := fmt.Sprintf("%s/profile/%s?apikey=%s", p.baseURL, ticker, p.apiKey)

	var payload []fmpProfile
	if err := p.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &models.CompanyProfile{
		Ticker:       ticker,
		CompanyName:  payload[0].CompanyName,
		LastDividend: payload[0].LastDiv,
	}, nil
}

// getJSON performs the request and maps transport errors, non-2xx statuses
// and undecodable bodies to ErrNotFound so callers fall through to the next
// provider instead of aborting the batch.
func (p *FMPProvider) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fmp request failed: %w", err)
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
