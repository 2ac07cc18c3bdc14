package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Provider name keys used in PROVIDER_PRIORITY.
const (
	ProviderFMP          = "fmp"
	ProviderYahoo        = "yahoo"
	ProviderAlphaVantage = "alphavantage"
)

// Config holds every tunable of the tracker. All values come from the
// environment (optionally a .env file) and are injected at construction so
// tests can build deterministic configurations.
type Config struct {
	Port    string
	CSVPath string

	FMPAPIKey          string
	AlphaVantageAPIKey string

	// ProviderPriority is the ordered fallback chain of market data
	// providers, first entry tried first.
	ProviderPriority []string

	BatchSize   int
	BatchPause  time.Duration
	HTTPTimeout time.Duration

	RefreshInterval time.Duration

	// FXFallbackRate is substituted (and flagged) when no live rate for
	// the tracked pair can be fetched and none is stored.
	FXFallbackRate decimal.Decimal
}

// Load builds a Config from the environment. A .env file is honored when
// present but never required.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		CSVPath:            getEnv("CSV_PATH", "data/holdings.csv"),
		FMPAPIKey:          os.Getenv("FMP_API_KEY"),
		AlphaVantageAPIKey: os.Getenv("ALPHAVANTAGE_API_KEY"),
		ProviderPriority:   getEnvList("PROVIDER_PRIORITY", []string{ProviderFMP, ProviderYahoo, ProviderAlphaVantage}),
		BatchSize:          getEnvInt("BATCH_SIZE", 5),
		BatchPause:         getEnvDuration("BATCH_PAUSE", 2*time.Second),
		HTTPTimeout:        getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		RefreshInterval:    getEnvDuration("REFRESH_INTERVAL", 24*time.Hour),
		FXFallbackRate:     getEnvDecimal("FX_FALLBACK_RATE", decimal.NewFromInt(1350)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil && d.IsPositive() {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			list = append(list, p)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
