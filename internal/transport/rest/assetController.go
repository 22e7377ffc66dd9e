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

const entityAsset = entityService.EntityAsset

func (ctrl *Controller) CreateAsset(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	var dto restModel.AssetDTO
	if err := decodeBody(c, &dto); err != nil {
		return ctrl.writeError(c, err)
	}
	if dto.ID != nil {
		return ctrl.badRequest(c, entityAsset, "idexists")
	}
	if err := ctrl.validateFull(entityAsset, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	asset, err := ctrl.services.Assets.Create(ctx, restConverter.Asset(dto))
	if err != nil {
		return ctrl.writeError(c, err)
	}

	c.Location(fmt.Sprintf("%s/assets/%d", ctrl.cfg.HTTP.BasePath, asset.ID))
	ctrl.setEntityAlert(c, entityAsset, "created", asset.ID)
	return c.Status(http.StatusCreated).JSON(restConverter.AssetResponse(asset))
}

func (ctrl *Controller) UpdateAsset(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	_, dto, err := ctrl.assetBody(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}
	if err := ctrl.validateFull(entityAsset, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	asset, err := ctrl.services.Assets.Update(ctx, restConverter.Asset(dto))
	if err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityAsset, "updated", asset.ID)
	return c.JSON(restConverter.AssetResponse(asset))
}

func (ctrl *Controller) PartialUpdateAsset(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, dto, err := ctrl.assetBody(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}
	if err := ctrl.validatePartial(entityAsset, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	asset, err := ctrl.services.Assets.PartialUpdate(ctx, id, restConverter.AssetChanges(dto))
	if err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityAsset, "updated", asset.ID)
	return c.JSON(restConverter.AssetResponse(asset))
}

func (ctrl *Controller) GetAssets(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	pageRequest, err := ctrl.parsePageRequest(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	page, err := ctrl.services.Assets.List(ctx, pageRequest)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	setPaginationHeaders(c, pageRequest, page.Total)
	return c.JSON(restConverter.Items(page.Items, restConverter.AssetResponse))
}

func (ctrl *Controller) GetAsset(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, err := pathID(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	asset, err := ctrl.services.Assets.Get(ctx, id)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	return c.JSON(restConverter.AssetResponse(asset))
}

func (ctrl *Controller) DeleteAsset(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, err := pathID(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	if err := ctrl.services.Assets.Delete(ctx, id); err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityAsset, "deleted", id)
	return c.SendStatus(http.StatusNoContent)
}

func (ctrl *Controller) assetBody(c *fiber.Ctx) (int64, restModel.AssetDTO, error) {
	var dto restModel.AssetDTO

	id, err := pathID(c)
	if err != nil {
		return 0, dto, err
	}
	if err := decodeBody(c, &dto); err != nil {
		return 0, dto, err
	}
	if err := checkBodyID(entityAsset, id, dto.ID); err != nil {
		return 0, dto, err
	}
	return id, dto, nil
}
