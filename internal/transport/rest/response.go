package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/KotFed0t/portfolio_tracker/internal/model/restModel"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (ctrl *Controller) alertHeader() string {
	return fmt.Sprintf("X-%s-alert", ctrl.cfg.HTTP.AppName)
}

func (ctrl *Controller) errorHeader() string {
	return fmt.Sprintf("X-%s-error", ctrl.cfg.HTTP.AppName)
}

func (ctrl *Controller) paramsHeader() string {
	return fmt.Sprintf("X-%s-params", ctrl.cfg.HTTP.AppName)
}

// setEntityAlert sets headers like "X-portfolioApp-alert: portfolioApp.asset.created".
func (ctrl *Controller) setEntityAlert(c *fiber.Ctx, entity, action string, id int64) {
	c.Set(ctrl.alertHeader(), fmt.Sprintf("%s.%s.%s", ctrl.cfg.HTTP.AppName, entity, action))
	c.Set(ctrl.paramsHeader(), strconv.FormatInt(id, 10))
}

func (ctrl *Controller) setFailureAlert(c *fiber.Ctx, entity, key string) {
	c.Set(ctrl.errorHeader(), "error."+key)
	c.Set(ctrl.paramsHeader(), entity)
}

func (ctrl *Controller) badRequest(c *fiber.Ctx, entity, key string) error {
	return ctrl.writeError(c, service.NewValidationError(entity, key))
}

func (ctrl *Controller) writeError(c *fiber.Ctx, err error) error {
	rqID, _ := c.Locals("rqID").(string)

	var validationErr *service.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		ctrl.setFailureAlert(c, validationErr.Entity, validationErr.Key)
		resp := restModel.ErrorResponse{
			Title:      "Bad Request",
			Status:     http.StatusBadRequest,
			Detail:     validationErr.Error(),
			EntityName: validationErr.Entity,
			ErrorKey:   validationErr.Key,
		}
		for _, f := range validationErr.Fields {
			resp.FieldErrors = append(resp.FieldErrors, restModel.FieldErrorResponse{
				ObjectName: validationErr.Entity,
				Field:      f.Field,
				Message:    f.Message,
			})
		}
		return c.Status(http.StatusBadRequest).JSON(resp)
	case errors.Is(err, service.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(restModel.ErrorResponse{
			Title:  "Not Found",
			Status: http.StatusNotFound,
		})
	case errors.Is(err, service.ErrBadRequest):
		return c.Status(http.StatusBadRequest).JSON(restModel.ErrorResponse{
			Title:  "Bad Request",
			Status: http.StatusBadRequest,
			Detail: err.Error(),
		})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(restModel.ErrorResponse{
			Title:  http.StatusText(fiberErr.Code),
			Status: fiberErr.Code,
			Detail: fiberErr.Message,
		})
	default:
		slog.Error("unhandled error", slog.String("rqID", rqID), slog.String("path", c.Path()), slog.String("err", err.Error()))
		return c.Status(http.StatusInternalServerError).JSON(restModel.ErrorResponse{
			Title:  "Internal Server Error",
			Status: http.StatusInternalServerError,
		})
	}
}

// ErrorHandler renders errors escaping the handlers, such as unknown routes or recovered panics.
func (ctrl *Controller) ErrorHandler(c *fiber.Ctx, err error) error {
	return ctrl.writeError(c, err)
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid id path parameter")
	}
	return id, nil
}

func decodeBody(c *fiber.Ctx, out any) error {
	if err := c.App().Config().JSONDecoder(c.Body(), out); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}
	return nil
}

func checkBodyID(entity string, pathID int64, bodyID *int64) error {
	if bodyID == nil {
		return service.NewValidationError(entity, "idnull")
	}
	if *bodyID != pathID {
		return service.NewValidationError(entity, "idinvalid")
	}
	return nil
}
