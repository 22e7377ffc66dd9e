package rest

import (
	"fmt"
	"net/http"

	"github.com/KotFed0t/portfolio_tracker/internal/converter/restConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model/restModel"
	"github.com/KotFed0t/portfolio_tracker/internal/service/entityService"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/gofiber/fiber/v2"
)

const entityPortfolio = entityService.EntityPortfolio

func (ctrl *Controller) CreatePortfolio(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	var dto restModel.PortfolioDTO
	if err := decodeBody(c, &dto); err != nil {
		return ctrl.writeError(c, err)
	}
	if dto.ID != nil {
		return ctrl.badRequest(c, entityPortfolio, "idexists")
	}
	if err := ctrl.validateFull(entityPortfolio, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	portfolio, err := ctrl.services.Portfolios.Create(ctx, restConverter.Portfolio(dto))
	if err != nil {
		return ctrl.writeError(c, err)
	}

	c.Location(fmt.Sprintf("%s/portfolios/%d", ctrl.cfg.HTTP.BasePath, portfolio.ID))
	ctrl.setEntityAlert(c, entityPortfolio, "created", portfolio.ID)
	return c.Status(http.StatusCreated).JSON(restConverter.PortfolioResponse(portfolio))
}

func (ctrl *Controller) UpdatePortfolio(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	_, dto, err := ctrl.portfolioBody(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}
	if err := ctrl.validateFull(entityPortfolio, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	portfolio, err := ctrl.services.Portfolios.Update(ctx, restConverter.Portfolio(dto))
	if err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityPortfolio, "updated", portfolio.ID)
	return c.JSON(restConverter.PortfolioResponse(portfolio))
}

func (ctrl *Controller) PartialUpdatePortfolio(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, dto, err := ctrl.portfolioBody(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}
	if err := ctrl.validatePartial(entityPortfolio, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	portfolio, err := ctrl.services.Portfolios.PartialUpdate(ctx, id, restConverter.PortfolioChanges(dto))
	if err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityPortfolio, "updated", portfolio.ID)
	return c.JSON(restConverter.PortfolioResponse(portfolio))
}

func (ctrl *Controller) GetPortfolios(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	pageRequest, err := ctrl.parsePageRequest(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	page, err := ctrl.services.Portfolios.List(ctx, pageRequest)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	setPaginationHeaders(c, pageRequest, page.Total)
	return c.JSON(restConverter.Items(page.Items, restConverter.PortfolioResponse))
}

func (ctrl *Controller) GetPortfolio(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, err := pathID(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	portfolio, err := ctrl.services.Portfolios.Get(ctx, id)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	return c.JSON(restConverter.PortfolioResponse(portfolio))
}

func (ctrl *Controller) DeletePortfolio(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, err := pathID(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	if err := ctrl.services.Portfolios.Delete(ctx, id); err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityPortfolio, "deleted", id)
	return c.SendStatus(http.StatusNoContent)
}

func (ctrl *Controller) portfolioBody(c *fiber.Ctx) (int64, restModel.PortfolioDTO, error) {
	var dto restModel.PortfolioDTO

	id, err := pathID(c)
	if err != nil {
		return 0, dto, err
	}
	if err := decodeBody(c, &dto); err != nil {
		return 0, dto, err
	}
	if err := checkBodyID(entityPortfolio, id, dto.ID); err != nil {
		return 0, dto, err
	}
	return id, dto, nil
}
