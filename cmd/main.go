package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/data"
	"github.com/KotFed0t/portfolio_tracker/data/cache"
	"github.com/KotFed0t/portfolio_tracker/data/repository/postgres"
	"github.com/KotFed0t/portfolio_tracker/internal/externalApi/alphaVantageApi"
	"github.com/KotFed0t/portfolio_tracker/internal/httpserver"
	"github.com/KotFed0t/portfolio_tracker/internal/reportGenerator/xlsxGenerator"
	"github.com/KotFed0t/portfolio_tracker/internal/scheduler"
	"github.com/KotFed0t/portfolio_tracker/internal/service/analyticsService"
	"github.com/KotFed0t/portfolio_tracker/internal/service/entityService"
	"github.com/KotFed0t/portfolio_tracker/internal/service/healthService"
	"github.com/KotFed0t/portfolio_tracker/internal/service/stockDataService"
	"github.com/KotFed0t/portfolio_tracker/internal/transport/rest"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	// money values are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	pgClient := data.NewPostgresClient(cfg)
	defer pgClient.Close()

	pgRepo := postgres.NewPostgres(cfg, pgClient)

	redisClient := data.NewRedisClient(cfg)
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg)

	alphaVantageClient := alphaVantageApi.New(cfg)

	healthSrv := healthService.New(
		pgRepo,
		redisCache,
		alphaVantageClient,
		cfg.Jobs.PriceFeedProbeTicker,
		cfg.Jobs.PriceFeedProbeInterval,
	)

	stockDataSrv := stockDataService.New(
		alphaVantageClient,
		stockDataService.NewMockGenerator(),
		stockDataService.WithFeedObserver(healthSrv),
	)

	analyticsSrv := analyticsService.New(pgRepo, stockDataSrv, xlsxGenerator.New())

	sched := scheduler.New(cfg.Jobs.Timeout)
	if cfg.Jobs.PriceFeedProbeEnabled {
		sched.NewIntervalJob("probe price feed", healthSrv.ProbePriceFeed, cfg.Jobs.PriceFeedProbeInterval, false)
	}
	sched.Start()

	ctrl := rest.NewController(cfg, rest.Services{
		UserAccounts: entityService.NewUserAccountService(pgRepo, redisCache),
		Portfolios:   entityService.NewPortfolioService(pgRepo, redisCache),
		Assets:       entityService.NewAssetService(pgRepo, redisCache),
		Analytics:    analyticsSrv,
		StockData:    stockDataSrv,
		Health:       healthSrv,
	})

	httpServer := httpserver.New(cfg, ctrl)
	httpServer.Start()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt

	sched.Stop()
	httpServer.Stop()
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
