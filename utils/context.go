package utils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type rqIDKey struct{}

func GetRequestIDFromCtx(ctx context.Context) string {
	rqID, ok := ctx.Value(rqIDKey{}).(string)
	if !ok {
		return ""
	}
	return rqID
}

func CtxWithRqID(ctx context.Context, rqID string) context.Context {
	return context.WithValue(ctx, rqIDKey{}, rqID)
}

func CreateCtxWithRqID(c *fiber.Ctx) context.Context {
	rqID, ok := c.Locals("rqID").(string)
	if !ok {
		return CtxWithRqID(c.UserContext(), uuid.NewString())
	}
	return CtxWithRqID(c.UserContext(), rqID)
}
