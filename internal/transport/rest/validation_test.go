package rest

import (
	"errors"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/model/restModel"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func ptr[T any](v T) *T {
	return &v
}

func fieldErrors(t *testing.T, err error) []service.FieldError {
	t.Helper()
	if err == nil {
		return nil
	}
	var validationErr *service.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	return validationErr.Fields
}

func TestController_validatePortfolio(t *testing.T) {
	ctrl := NewController(&config.Config{}, Services{})
	now := time.Now()

	tests := []struct {
		name    string
		dto     restModel.PortfolioDTO
		partial bool
		want    []service.FieldError
	}{
		{
			name: "valid full",
			dto:  restModel.PortfolioDTO{Name: ptr("growth"), CreatedDate: &now},
		},
		{
			name: "missing fields",
			dto:  restModel.PortfolioDTO{},
			want: []service.FieldError{
				{Field: "createdDate", Message: "NotNull"},
				{Field: "name", Message: "NotNull"},
			},
		},
		{
			name: "owner without id",
			dto:  restModel.PortfolioDTO{Name: ptr("growth"), CreatedDate: &now, User: &restModel.UserRefDTO{}},
			want: []service.FieldError{{Field: "user.id", Message: "NotNull"}},
		},
		{
			name:    "partial skips absent fields",
			dto:     restModel.PortfolioDTO{Name: ptr("renamed")},
			partial: true,
		},
		{
			name:    "partial checks nested owner",
			dto:     restModel.PortfolioDTO{User: &restModel.UserRefDTO{}},
			partial: true,
			want:    []service.FieldError{{Field: "user.id", Message: "NotNull"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.partial {
				err = ctrl.validatePartial(entityPortfolio, tt.dto)
			} else {
				err = ctrl.validateFull(entityPortfolio, tt.dto)
			}
			if diff := cmp.Diff(tt.want, fieldErrors(t, err), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("validation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldPath(t *testing.T) {
	tests := map[string]string{
		"AssetDTO.portfolio.id": "portfolio.id",
		"AssetDTO.ticker":       "ticker",
		"ticker":                "ticker",
	}
	for in, want := range tests {
		if got := fieldPath(in); got != want {
			t.Errorf("fieldPath(%q) = %q, want %q", in, got, want)
		}
	}
}
