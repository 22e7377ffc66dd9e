package rest

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("emailpattern", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	return v
}

type partial interface {
	PresentFields() []string
}

// validateFull checks every constraint, validatePartial only the fields present in the body.
func (ctrl *Controller) validateFull(entity string, dto any) error {
	return toValidationError(entity, ctrl.validate.Struct(dto))
}

func (ctrl *Controller) validatePartial(entity string, dto partial) error {
	fields := dto.PresentFields()
	if len(fields) == 0 {
		return nil
	}
	return toValidationError(entity, ctrl.validate.StructPartial(dto, fields...))
}

func toValidationError(entity string, err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]service.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, service.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: constraintName(fe),
		})
	}

	return service.NewValidationError(entity, "validation", fields...)
}

// fieldPath drops the struct name from the namespace: "AssetDTO.portfolio.id" -> "portfolio.id".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}

func constraintName(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "NotNull"
	case "min", "max":
		if fe.Kind() == reflect.String {
			return "Size"
		}
		if fe.Tag() == "min" {
			return "Min"
		}
		return "Max"
	case "gte":
		return "DecimalMin"
	case "emailpattern":
		return "Pattern"
	default:
		return fe.Tag()
	}
}
