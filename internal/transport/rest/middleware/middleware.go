package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()

		rqID := c.Get(RequestIDHeader)
		if rqID == "" {
			rqID = uuid.NewString()
		}
		c.Locals("rqID", rqID)
		c.Set(RequestIDHeader, rqID)

		slog.Info(
			"start request",
			slog.String("rqID", rqID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
		)

		err := c.Next()

		slog.Info(
			"request finished",
			slog.String("rqID", rqID),
			slog.Int("status", c.Response().StatusCode()),
			slog.String("request duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())),
		)

		return err
	}
}
