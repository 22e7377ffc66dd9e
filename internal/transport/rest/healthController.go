package rest

import (
	"net/http"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/gofiber/fiber/v2"
)

func (ctrl *Controller) Health(c *fiber.Ctx) error {
	ctx := utils.CreateCtxWithRqID(c)

	health := ctrl.services.Health.Check(ctx)
	if health.Status != model.StatusUp {
		return c.Status(http.StatusServiceUnavailable).JSON(health)
	}

	return c.JSON(health)
}
