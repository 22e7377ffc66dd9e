package rest

import (
	"context"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/go-playground/validator/v10"
)

type UserAccountService interface {
	Create(ctx context.Context, login, email, password string) (model.UserAccount, error)
	Update(ctx context.Context, userID int64, login, email, password string) (model.UserAccount, error)
	PartialUpdate(ctx context.Context, userID int64, changes model.UserAccountChanges) (model.UserAccount, error)
	Get(ctx context.Context, userID int64) (model.UserAccount, error)
	List(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.UserAccount], error)
	Delete(ctx context.Context, userID int64) error
}

type PortfolioService interface {
	Create(ctx context.Context, portfolio model.Portfolio) (model.Portfolio, error)
	Update(ctx context.Context, portfolio model.Portfolio) (model.Portfolio, error)
	PartialUpdate(ctx context.Context, portfolioID int64, changes model.PortfolioChanges) (model.Portfolio, error)
	Get(ctx context.Context, portfolioID int64) (model.Portfolio, error)
	List(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.Portfolio], error)
	Delete(ctx context.Context, portfolioID int64) error
}

type AssetService interface {
	Create(ctx context.Context, asset model.Asset) (model.Asset, error)
	Update(ctx context.Context, asset model.Asset) (model.Asset, error)
	PartialUpdate(ctx context.Context, assetID int64, changes model.AssetChanges) (model.Asset, error)
	Get(ctx context.Context, assetID int64) (model.Asset, error)
	List(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.Asset], error)
	Delete(ctx context.Context, assetID int64) error
}

type AnalyticsService interface {
	CalculateMetrics(ctx context.Context, portfolioID int64) (model.MetricsReport, error)
	ExportMetrics(ctx context.Context, portfolioID int64) (fileBytes []byte, fileExtension string, err error)
}

type StockDataService interface {
	GetQuote(ctx context.Context, ticker string) model.PriceQuote
	GetHistoricalData(ctx context.Context, ticker string) model.HistoricalData
}

type HealthService interface {
	Check(ctx context.Context) model.Health
}

type Services struct {
	UserAccounts UserAccountService
	Portfolios   PortfolioService
	Assets       AssetService
	Analytics    AnalyticsService
	StockData    StockDataService
	Health       HealthService
}

type Controller struct {
	cfg      *config.Config
	services Services
	validate *validator.Validate
}

func NewController(cfg *config.Config, services Services) *Controller {
	return &Controller{
		cfg:      cfg,
		services: services,
		validate: newValidator(),
	}
}
