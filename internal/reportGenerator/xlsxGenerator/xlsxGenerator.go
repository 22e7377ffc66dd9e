package xlsxGenerator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/xuri/excelize/v2"
)

const (
	summaryHeaderColor = "#cfe2f3"
	assetsHeaderColor  = "#d9ead3"
	assetsFirstRow     = 11
)

var assetColumns = []string{"ticker", "quantity", "avg price", "current price", "current value", "gain/loss", "gain/loss %"}

type XLSXGenerator struct{}

func New() *XLSXGenerator {
	return &XLSXGenerator{}
}

func (g *XLSXGenerator) Generate(ctx context.Context, portfolioID int64, report model.MetricsReport) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("portfolioID", portfolioID))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	sheetName := SheetName(portfolioID)
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		slog.Error("got error while renaming Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := g.fillSummary(f, sheetName, report); err != nil {
		slog.Error("got error while filling summary", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := g.fillAssets(f, sheetName, report.Assets); err != nil {
		slog.Error("got error while filling assets", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while Saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func SheetName(portfolioID int64) string {
	return fmt.Sprintf("Portfolio %d", portfolioID)
}

func (g *XLSXGenerator) headerStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{color},
		},
	})
}

func (g *XLSXGenerator) fillSummary(f *excelize.File, sheetName string, report model.MetricsReport) error {
	err := f.MergeCell(sheetName, "A1", "B1")
	if err != nil {
		return err
	}

	_ = f.SetCellStr(sheetName, "A1", "Summary")

	styleID, err := g.headerStyle(f, summaryHeaderColor)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheetName, "A1", "A1", styleID); err != nil {
		return fmt.Errorf("apply style: %w", err)
	}

	rows := []struct {
		label string
		value any
	}{
		{"total value", report.TotalValue.InexactFloat64()},
		{"total cost", report.TotalCost.InexactFloat64()},
		{"total gain/loss", report.TotalGainLoss.InexactFloat64()},
		{"total gain/loss %", report.TotalGainLossPercent.InexactFloat64()},
		{"diversification score", report.DiversificationScore.InexactFloat64()},
		{"recommended asset", report.RecommendedAsset},
	}

	for i, row := range rows {
		_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", i+2), row.label)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+2), row.value)
	}

	return nil
}

func (g *XLSXGenerator) fillAssets(f *excelize.File, sheetName string, assets []model.AssetDetail) error {
	titleRow := assetsFirstRow - 2

	lastCol, err := excelize.ColumnNumberToName(len(assetColumns))
	if err != nil {
		return err
	}

	err = f.MergeCell(sheetName, fmt.Sprintf("A%d", titleRow), fmt.Sprintf("%s%d", lastCol, titleRow))
	if err != nil {
		return err
	}

	_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", titleRow), "Assets")

	styleID, err := g.headerStyle(f, assetsHeaderColor)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", titleRow), fmt.Sprintf("A%d", titleRow), styleID); err != nil {
		return fmt.Errorf("apply style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", titleRow+1), &assetColumns); err != nil {
		return err
	}

	for i, asset := range assets {
		row := []any{
			asset.Ticker,
			asset.Quantity,
			asset.AvgPrice.InexactFloat64(),
			asset.CurrentPrice.InexactFloat64(),
			asset.CurrentValue.InexactFloat64(),
			asset.GainLoss.InexactFloat64(),
			asset.GainLossPercent.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", assetsFirstRow+i), &row); err != nil {
			return err
		}
	}

	return nil
}
