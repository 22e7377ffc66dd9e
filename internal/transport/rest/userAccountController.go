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

const entityUserAccount = entityService.EntityUserAccount

func (ctrl *Controller) CreateUserAccount(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	var dto restModel.UserAccountDTO
	if err := decodeBody(c, &dto); err != nil {
		return ctrl.writeError(c, err)
	}
	if dto.ID != nil {
		return ctrl.badRequest(c, entityUserAccount, "idexists")
	}
	if err := ctrl.validateFull(entityUserAccount, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	user, err := ctrl.services.UserAccounts.Create(ctx, *dto.Login, *dto.Email, *dto.Password)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	c.Location(fmt.Sprintf("%s/user-accounts/%d", ctrl.cfg.HTTP.BasePath, user.ID))
	ctrl.setEntityAlert(c, entityUserAccount, "created", user.ID)
	return c.Status(http.StatusCreated).JSON(restConverter.UserAccountResponse(user))
}

func (ctrl *Controller) UpdateUserAccount(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, dto, err := ctrl.userAccountBody(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}
	if err := ctrl.validateFull(entityUserAccount, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	user, err := ctrl.services.UserAccounts.Update(ctx, id, *dto.Login, *dto.Email, *dto.Password)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityUserAccount, "updated", user.ID)
	return c.JSON(restConverter.UserAccountResponse(user))
}

func (ctrl *Controller) PartialUpdateUserAccount(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, dto, err := ctrl.userAccountBody(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}
	if err := ctrl.validatePartial(entityUserAccount, dto); err != nil {
		return ctrl.writeError(c, err)
	}

	user, err := ctrl.services.UserAccounts.PartialUpdate(ctx, id, restConverter.UserAccountChanges(dto))
	if err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityUserAccount, "updated", user.ID)
	return c.JSON(restConverter.UserAccountResponse(user))
}

func (ctrl *Controller) GetUserAccounts(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	pageRequest, err := ctrl.parsePageRequest(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	page, err := ctrl.services.UserAccounts.List(ctx, pageRequest)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	setPaginationHeaders(c, pageRequest, page.Total)
	return c.JSON(restConverter.Items(page.Items, restConverter.UserAccountResponse))
}

func (ctrl *Controller) GetUserAccount(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, err := pathID(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	user, err := ctrl.services.UserAccounts.Get(ctx, id)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	return c.JSON(restConverter.UserAccountResponse(user))
}

func (ctrl *Controller) DeleteUserAccount(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	id, err := pathID(c)
	if err != nil {
		return ctrl.writeError(c, err)
	}

	if err := ctrl.services.UserAccounts.Delete(ctx, id); err != nil {
		return ctrl.writeError(c, err)
	}

	ctrl.setEntityAlert(c, entityUserAccount, "deleted", id)
	return c.SendStatus(http.StatusNoContent)
}

// userAccountBody decodes the body of PUT and PATCH and checks that its id matches the path.
func (ctrl *Controller) userAccountBody(c *fiber.Ctx) (int64, restModel.UserAccountDTO, error) {
	var dto restModel.UserAccountDTO

	id, err := pathID(c)
	if err != nil {
		return 0, dto, err
	}
	if err := decodeBody(c, &dto); err != nil {
		return 0, dto, err
	}
	if err := checkBodyID(entityUserAccount, id, dto.ID); err != nil {
		return 0, dto, err
	}
	return id, dto, nil
}
