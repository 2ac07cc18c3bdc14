package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/binss1/stock-dividend-tracker/internal/config"
	"github.com/binss1/stock-dividend-tracker/internal/db"
	"github.com/binss1/stock-dividend-tracker/internal/handlers"
	"github.com/binss1/stock-dividend-tracker/internal/ingest"
	"github.com/binss1/stock-dividend-tracker/internal/logger"
	"github.com/binss1/stock-dividend-tracker/internal/repositories"
	"github.com/binss1/stock-dividend-tracker/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	// Database connection
	database, err := db.Connect(db.NewConfig())
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}
	zlog.Info("database connection established")

	// Repositories
	holdingRepo := repositories.NewHoldingRepository(database)
	dividendRepo := repositories.NewDividendRepository(database)
	fxRateRepo := repositories.NewFXRateRepository(database)

	// Services
	providers, fxProvider := buildProviders(cfg, zlog)
	gateway := services.NewMarketDataGateway(providers, zlog)
	batcher := services.NewBatcher(cfg.BatchSize, cfg.BatchPause)
	loader := ingest.NewLoader(cfg.CSVPath, zlog)
	refreshService := services.NewRefreshService(
		gateway, fxProvider,
		holdingRepo, dividendRepo, fxRateRepo,
		loader, batcher, cfg.FXFallbackRate, zlog)
	reportService := services.NewReportService(
		holdingRepo, dividendRepo, fxRateRepo, cfg.FXFallbackRate, zlog)

	// Handlers
	reportHandler := handlers.NewReportHandler(reportService)
	refreshHandler := handlers.NewRefreshHandler(refreshService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Scheduled refresh, first run immediately on startup
	scheduler := gocron.NewScheduler(time.UTC)
	_, err = scheduler.Every(cfg.RefreshInterval).StartImmediately().Do(func() {
		if _, err := refreshService.Run(ctx); err != nil {
			zlog.Error("scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		zlog.Fatal("failed to schedule refresh", zap.Error(err))
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	// Routes
	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "stock-dividend-tracker",
		})
	})

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/report", reportHandler.HandleReport).Methods(http.MethodGet)
	api.HandleFunc("/holdings", reportHandler.HandleHoldings).Methods(http.MethodGet)
	api.HandleFunc("/dividends", reportHandler.HandleDividends).Methods(http.MethodGet)
	api.HandleFunc("/projection", reportHandler.HandleProjection).Methods(http.MethodGet)
	api.HandleFunc("/fx/latest", reportHandler.HandleLatestRate).Methods(http.MethodGet)
	api.HandleFunc("/refresh", refreshHandler.HandleRefresh).Methods(http.MethodPost)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsMiddleware(router),
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildProviders instantiates the market data providers named in the
// priority list. Keyed providers with no configured key are skipped with a
// warning so a partially configured deployment still works.
func buildProviders(cfg *config.Config, zlog *zap.Logger) ([]services.MarketDataProvider, services.ExchangeRateProvider) {
	var providers []services.MarketDataProvider
	var fxProvider services.ExchangeRateProvider

	for _, name := range cfg.ProviderPriority {
		switch name {
		case config.ProviderFMP:
			if cfg.FMPAPIKey == "" {
				zlog.Warn("skipping provider, no API key configured", zap.String("provider", name))
				continue
			}
			providers = append(providers, services.NewFMPProvider(cfg.FMPAPIKey, cfg.HTTPTimeout))
		case config.ProviderYahoo:
			providers = append(providers, services.NewYahooProvider(cfg.HTTPTimeout))
		case config.ProviderAlphaVantage:
			if cfg.AlphaVantageAPIKey == "" {
				zlog.Warn("skipping provider, no API key configured", zap.String("provider", name))
				continue
			}
			av := services.NewAlphaVantageProvider(cfg.AlphaVantageAPIKey, cfg.HTTPTimeout)
			providers = append(providers, av)
			fxProvider = av
		default:
			zlog.Warn("unknown provider in priority list", zap.String("provider", name))
		}
	}

	if len(providers) == 0 {
		zlog.Warn("no market data providers configured, refresh runs will substitute sample data")
	}
	return providers, fxProvider
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
