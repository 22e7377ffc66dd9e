package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (ctrl *Controller) GetPortfolioMetrics(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, err := pathID(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	report, err := ctrl.services.Analytics.CalculateMetrics(ctx, id)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	return c.JSON(report)
}

func (ctrl *Controller) ExportPortfolioMetrics(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, err := pathID(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	fileBytes, fileExtension, err := ctrl.services.Analytics.ExportMetrics(ctx, id)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="portfolio-%d-metrics%s"`, id, fileExtension))
	return c.Status(http.StatusOK).Send(fileBytes)
}

func (ctrl *Controller) GetStockPrice(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	ticker, err := tickerParam(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	return c.JSON(ctrl.services.StockData.GetQuote(ctx, ticker))
}

func (ctrl *Controller) GetHistoricalData(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	ticker, err := tickerParam(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	return c.JSON(ctrl.services.StockData.GetHistoricalData(ctx, ticker))
}

func tickerParam(c *fiber.Ctx) (string, error) {
	ticker := strings.TrimSpace(c.Params("ticker"))
	if ticker == "" {
		return "", fiber.NewError(http.StatusBadRequest, "ticker is required")
	}
	return ticker, nil
}
