package restModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserAccountDTO struct {
	ID       *int64  `json:"id"`
	Login    *string `json:"login" validate:"required,min=3,max=50"`
	Email    *string `json:"email" validate:"required,emailpattern"`
	Password *string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

func (d UserAccountDTO) PresentFields() []string {
	return present(map[string]bool{
		"Login":    d.Login != nil,
		"Email":    d.Email != nil,
		"Password": d.Password != nil,
	})
}

type UserAccountResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

type UserRefDTO struct {
	ID    *int64 `json:"id" validate:"required"`
	Login string `json:"login,omitempty"`
}

type PortfolioDTO struct {
	ID          *int64      `json:"id"`
	Name        *string     `json:"name" validate:"required"`
	CreatedDate *time.Time  `json:"createdDate" validate:"required"`
	User        *UserRefDTO `json:"user" validate:"omitempty"`
}

func (d PortfolioDTO) PresentFields() []string {
	return present(map[string]bool{
		"Name":        d.Name != nil,
		"CreatedDate": d.CreatedDate != nil,
		"User":        d.User != nil,
		"User.ID":     d.User != nil,
	})
}

type PortfolioResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	CreatedDate time.Time        `json:"createdDate"`
	User        *UserRefResponse `json:"user"`
}

type UserRefResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

type PortfolioRefDTO struct {
	ID   *int64 `json:"id" validate:"required"`
	Name string `json:"name,omitempty"`
}

type AssetDTO struct {
	ID        *int64           `json:"id"`
	Ticker    *string          `json:"ticker" validate:"required,min=1,max=10"`
	Quantity  *int             `json:"quantity" validate:"required,min=1"`
	AvgPrice  *decimal.Decimal `json:"avgPrice" validate:"required,gte=0"`
	Portfolio *PortfolioRefDTO `json:"portfolio" validate:"required"`
}

func (d AssetDTO) PresentFields() []string {
	return present(map[string]bool{
		"Ticker":       d.Ticker != nil,
		"Quantity":     d.Quantity != nil,
		"AvgPrice":     d.AvgPrice != nil,
		"Portfolio":    d.Portfolio != nil,
		"Portfolio.ID": d.Portfolio != nil,
	})
}

type AssetResponse struct {
	ID        int64                `json:"id"`
	Ticker    string               `json:"ticker"`
	Quantity  int                  `json:"quantity"`
	AvgPrice  decimal.Decimal      `json:"avgPrice"`
	Portfolio PortfolioRefResponse `json:"portfolio"`
}

type PortfolioRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type FieldErrorResponse struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

type ErrorResponse struct {
	Title       string               `json:"title"`
	Status      int                  `json:"status"`
	Detail      string               `json:"detail,omitempty"`
	EntityName  string               `json:"entityName,omitempty"`
	ErrorKey    string               `json:"errorKey,omitempty"`
	FieldErrors []FieldErrorResponse `json:"fieldErrors,omitempty"`
}

func present(fields map[string]bool) []string {
	res := make([]string, 0, len(fields))
	for name, ok := range fields {
		if ok {
			res = append(res, name)
		}
	}
	return res
}
