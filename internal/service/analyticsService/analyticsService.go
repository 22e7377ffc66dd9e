package analyticsService

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

const percentPrecision = 4

type HoldingsStore interface {
	GetHoldingsByPortfolio(ctx context.Context, portfolioID int64) ([]model.Holding, error)
}

type PriceSource interface {
	GetCurrentPrice(ctx context.Context, ticker string) decimal.Decimal
}

type ReportGenerator interface {
	Generate(ctx context.Context, portfolioID int64, report model.MetricsReport) (fileBytes []byte, fileExtension string, err error)
}

type AnalyticsService struct {
	holdings        HoldingsStore
	prices          PriceSource
	reportGenerator ReportGenerator
}

func New(holdings HoldingsStore, prices PriceSource, reportGenerator ReportGenerator) *AnalyticsService {
	return &AnalyticsService{
		holdings:        holdings,
		prices:          prices,
		reportGenerator: reportGenerator,
	}
}

// CalculateMetrics values every holding at the current price, one lookup per
// holding in store order. The price source always answers, so the report is
// either complete or the call fails on loading holdings.
func (s *AnalyticsService) CalculateMetrics(ctx context.Context, portfolioID int64) (report model.MetricsReport, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AnalyticsService.CalculateMetrics"

	slog.Debug("CalculateMetrics start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("portfolioID", portfolioID))
	defer func() {
		slog.Debug("CalculateMetrics finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("portfolioID", portfolioID))
	}()

	holdings, err := s.holdings.GetHoldingsByPortfolio(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("portfolio not found", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("portfolioID", portfolioID))
			return model.MetricsReport{}, service.ErrNotFound
		}
		slog.Error("got error from holdings.GetHoldingsByPortfolio", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.MetricsReport{}, err
	}

	report.Assets = make([]model.AssetDetail, 0, len(holdings))

	for _, h := range holdings {
		currentPrice := s.prices.GetCurrentPrice(ctx, h.Ticker)
		quantity := decimal.NewFromInt(int64(h.Quantity))

		assetValue := currentPrice.Mul(quantity)
		assetCost := h.AvgPrice.Mul(quantity)
		gainLoss := assetValue.Sub(assetCost)

		report.TotalValue = report.TotalValue.Add(assetValue)
		report.TotalCost = report.TotalCost.Add(assetCost)

		report.Assets = append(report.Assets, model.AssetDetail{
			Ticker:          h.Ticker,
			Quantity:        h.Quantity,
			AvgPrice:        h.AvgPrice,
			CurrentPrice:    currentPrice,
			CurrentValue:    assetValue,
			GainLoss:        gainLoss,
			GainLossPercent: gainLossPercent(gainLoss, assetCost),
		})
	}

	report.TotalGainLoss = report.TotalValue.Sub(report.TotalCost)
	report.TotalGainLossPercent = gainLossPercent(report.TotalGainLoss, report.TotalCost)
	report.DiversificationScore = DiversificationScore(holdings)
	report.RecommendedAsset = RecommendAsset(holdings)

	slog.Info(
		"portfolio metrics calculated",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.Int64("portfolioID", portfolioID),
		slog.Int("assets", len(report.Assets)),
		slog.String("totalValue", report.TotalValue.String()),
	)

	return report, nil
}

func (s *AnalyticsService) ExportMetrics(ctx context.Context, portfolioID int64) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AnalyticsService.ExportMetrics"

	report, err := s.CalculateMetrics(ctx, portfolioID)
	if err != nil {
		return nil, "", err
	}

	fileBytes, fileExtension, err = s.reportGenerator.Generate(ctx, portfolioID, report)
	if err != nil {
		slog.Error("got error from reportGenerator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	return fileBytes, fileExtension, nil
}

// gainLossPercent is gain / cost * 100 with the quotient rounded half-up to
// four places, and zero when there is no cost basis.
func gainLossPercent(gainLoss, cost decimal.Decimal) decimal.Decimal {
	if !cost.IsPositive() {
		return decimal.Zero
	}
	return gainLoss.DivRound(cost, percentPrecision).Mul(hundred)
}
