package utils

import (
	"context"
	"testing"
)

func TestGetRequestIDFromCtx(t *testing.T) {
	if got := GetRequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("GetRequestIDFromCtx(empty) = %q, want empty", got)
	}

	ctx := CtxWithRqID(context.Background(), "abc")
	if got := GetRequestIDFromCtx(ctx); got != "abc" {
		t.Errorf("GetRequestIDFromCtx() = %q, want %q", got, "abc")
	}
}
