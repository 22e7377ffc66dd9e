package httpserver

import (
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/transport/rest"
	customMW "github.com/KotFed0t/portfolio_tracker/internal/transport/rest/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type HTTPServer struct {
	app  *fiber.App
	ctrl *rest.Controller
	cfg  *config.Config
}

func New(cfg *config.Config, ctrl *rest.Controller) *HTTPServer {
	app := fiber.New(fiber.Config{
		AppName:               cfg.HTTP.AppName,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		ErrorHandler:          ctrl.ErrorHandler,
		DisableStartupMessage: true,
	})

	s := &HTTPServer{app: app, ctrl: ctrl, cfg: cfg}

	app.Use(customMW.Logger(), recover.New())
	s.setupRoutes()

	return s
}

// App exposes the router for in-process requests.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func (s *HTTPServer) Start() {
	go func() {
		if err := s.app.Listen(s.cfg.HTTP.Addr); err != nil {
			slog.Error("http server stopped with error", slog.String("err", err.Error()))
		}
	}()
	slog.Info("http server started!", slog.String("addr", s.cfg.HTTP.Addr))
}

func (s *HTTPServer) Stop() {
	slog.Info("start stopping http server")
	if err := s.app.ShutdownWithTimeout(s.cfg.HTTP.ShutdownTimeout); err != nil {
		slog.Error("error while shutting down http server", slog.String("err", err.Error()))
	}
	slog.Info("http server stopped")
}

func (s *HTTPServer) setupRoutes() {
	api := s.app.Group(s.cfg.HTTP.BasePath)

	userAccounts := api.Group("/user-accounts")
	userAccounts.Post("", s.ctrl.CreateUserAccount)
	userAccounts.Get("", s.ctrl.GetUserAccounts)
	userAccounts.Get("/:id", s.ctrl.GetUserAccount)
	userAccounts.Put("/:id", s.ctrl.UpdateUserAccount)
	userAccounts.Patch("/:id", s.ctrl.PartialUpdateUserAccount)
	userAccounts.Delete("/:id", s.ctrl.DeleteUserAccount)

	portfolios := api.Group("/portfolios")
	portfolios.Post("", s.ctrl.CreatePortfolio)
	portfolios.Get("", s.ctrl.GetPortfolios)
	portfolios.Get("/:id", s.ctrl.GetPortfolio)
	portfolios.Put("/:id", s.ctrl.UpdatePortfolio)
	portfolios.Patch("/:id", s.ctrl.PartialUpdatePortfolio)
	portfolios.Delete("/:id", s.ctrl.DeletePortfolio)

	assets := api.Group("/assets")
	assets.Post("", s.ctrl.CreateAsset)
	assets.Get("", s.ctrl.GetAssets)
	assets.Get("/:id", s.ctrl.GetAsset)
	assets.Put("/:id", s.ctrl.UpdateAsset)
	assets.Patch("/:id", s.ctrl.PartialUpdateAsset)
	assets.Delete("/:id", s.ctrl.DeleteAsset)

	analytics := api.Group("/portfolio-analytics")
	analytics.Get("/portfolio/:id/metrics", s.ctrl.GetPortfolioMetrics)
	analytics.Get("/portfolio/:id/metrics/xlsx", s.ctrl.ExportPortfolioMetrics)
	analytics.Get("/stock/:ticker/price", s.ctrl.GetStockPrice)
	analytics.Get("/stock/:ticker/historical", s.ctrl.GetHistoricalData)

	s.app.Get("/management/health", s.ctrl.Health)
}
