package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "github.com/binss1/stock-dividend-tracker/internal/errors"
)

func newTestAVProvider(ts *httptest.Server) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		apiKey:     "test-key",
		baseURL:    ts.URL,
		httpClient: ts.Client(),
	}
}

func TestAlphaVantageFetchPrice(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("function") != "GLOBAL_QUOTE" {
			t.Errorf("unexpected function %s", r.URL.Query().Get("function"))
		}
		fmt.Fprint(w, `{"Global Quote":{"01. symbol":"KO","05. price":"58.0000"}}`)
	}))
	defer ts.Close()

	quote, err := newTestAVProvider(ts).FetchPrice(context.Background(), "KO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Price.Equal(decimal.RequireFromString("58")) {
		t.Fatalf("expected 58, got %s", quote.Price)
	}
	if quote.Source != "alphavantage" {
		t.Fatalf("expected source alphavantage, got %s", quote.Source)
	}
}

func TestAlphaVantageFetchPriceRateLimited(t *testing.T) {
	// Alpha Vantage signals rate limiting with a 200 and a note body.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note":"Thank you for using Alpha Vantage!"}`)
	}))
	defer ts.Close()

	_, err := newTestAVProvider(ts).FetchPrice(context.Background(), "KO")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAlphaVantageFetchCompanyProfile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"Symbol":"KO",
			"Name":"Coca-Cola Company",
			"DividendPerShare":"1.68",
			"DividendYield":"0.029",
			"ExDividendDate":"2026-06-15"
		}`)
	}))
	defer ts.Close()

	profile, err := newTestAVProvider(ts).FetchCompanyProfile(context.Background(), "KO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.CompanyName != "Coca-Cola Company" {
		t.Fatalf("unexpected name %q", profile.CompanyName)
	}
	if !profile.AnnualDividend.Equal(decimal.RequireFromString("1.68")) {
		t.Fatalf("unexpected annual %s", profile.AnnualDividend)
	}
	if !profile.DividendYield.Equal(decimal.RequireFromString("2.9")) {
		t.Fatalf("expected yield converted to 2.9, got %s", profile.DividendYield)
	}
	if profile.ExDividendDate == nil || profile.ExDividendDate.Format("2006-01-02") != "2026-06-15" {
		t.Fatalf("unexpected ex-date %v", profile.ExDividendDate)
	}
}

func TestAlphaVantageFetchCompanyProfileNonePlaceholders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"Symbol":"TSLA",
			"Name":"Tesla Inc",
			"DividendPerShare":"None",
			"DividendYield":"None",
			"ExDividendDate":"None"
		}`)
	}))
	defer ts.Close()

	profile, err := newTestAVProvider(ts).FetchCompanyProfile(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.HasDividendData() {
		t.Fatalf("expected no dividend data, got %+v", profile)
	}
	if profile.ExDividendDate != nil {
		t.Fatalf("expected nil ex-date, got %v", profile.ExDividendDate)
	}
}

func TestAlphaVantageFetchCompanyProfileUnknownSymbol(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	_, err := newTestAVProvider(ts).FetchCompanyProfile(context.Background(), "NOPE")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAlphaVantageFetchDividendHistoryUnsupported(t *testing.T) {
	p := NewAlphaVantageProvider("k", 0)
	_, err := p.FetchDividendHistory(context.Background(), "KO")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAlphaVantageFetchRate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("function") != "CURRENCY_EXCHANGE_RATE" {
			t.Errorf("unexpected function %s", q.Get("function"))
		}
		if q.Get("from_currency") != "USD" || q.Get("to_currency") != "KRW" {
			t.Errorf("unexpected pair %s/%s", q.Get("from_currency"), q.Get("to_currency"))
		}
		fmt.Fprint(w, `{"Realtime Currency Exchange Rate":{"5. Exchange Rate":"1324.50000000"}}`)
	}))
	defer ts.Close()

	rate, err := newTestAVProvider(ts).FetchRate(context.Background(), "USD", "KRW")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("1324.5")) {
		t.Fatalf("expected 1324.5, got %s", rate)
	}
}

func TestAlphaVantageFetchRateMissing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	_, err := newTestAVProvider(ts).FetchRate(context.Background(), "USD", "KRW")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

var (
	_ ExchangeRateProvider = (*AlphaVantageProvider)(nil)
	_ MarketDataProvider   = (*AlphaVantageProvider)(nil)
	_ MarketDataProvider   = (*FMPProvider)(nil)
	_ MarketDataProvider   = (*YahooProvider)(nil)
)
