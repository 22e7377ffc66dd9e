package restConverter

import (
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/restModel"
)

func UserAccountResponse(user model.UserAccount) restModel.UserAccountResponse {
	return restModel.UserAccountResponse{
		ID:    user.ID,
		Login: user.Login,
		Email: user.Email,
	}
}

func UserAccountChanges(dto restModel.UserAccountDTO) model.UserAccountChanges {
	return model.UserAccountChanges{
		Login:    dto.Login,
		Email:    dto.Email,
		Password: dto.Password,
	}
}

func PortfolioResponse(portfolio model.Portfolio) restModel.PortfolioResponse {
	res := restModel.PortfolioResponse{
		ID:          portfolio.ID,
		Name:        portfolio.Name,
		CreatedDate: portfolio.CreatedDate,
	}
	if portfolio.User != nil {
		res.User = &restModel.UserRefResponse{ID: portfolio.User.ID, Login: portfolio.User.Login}
	}
	return res
}

// Portfolio expects a validated full DTO.
func Portfolio(dto restModel.PortfolioDTO) model.Portfolio {
	portfolio := model.Portfolio{
		Name:        *dto.Name,
		CreatedDate: dto.CreatedDate.UTC(),
	}
	if dto.ID != nil {
		portfolio.ID = *dto.ID
	}
	if dto.User != nil {
		portfolio.User = &model.UserRef{ID: *dto.User.ID}
	}
	return portfolio
}

func PortfolioChanges(dto restModel.PortfolioDTO) model.PortfolioChanges {
	changes := model.PortfolioChanges{Name: dto.Name}
	if dto.CreatedDate != nil {
		createdDate := dto.CreatedDate.UTC()
		changes.CreatedDate = &createdDate
	}
	if dto.User != nil {
		changes.UserID = dto.User.ID
	}
	return changes
}

func AssetResponse(asset model.Asset) restModel.AssetResponse {
	return restModel.AssetResponse{
		ID:       asset.ID,
		Ticker:   asset.Ticker,
		Quantity: asset.Quantity,
		AvgPrice: asset.AvgPrice,
		Portfolio: restModel.PortfolioRefResponse{
			ID:   asset.Portfolio.ID,
			Name: asset.Portfolio.Name,
		},
	}
}

// Asset expects a validated full DTO.
func Asset(dto restModel.AssetDTO) model.Asset {
	asset := model.Asset{
		Ticker:    *dto.Ticker,
		Quantity:  *dto.Quantity,
		AvgPrice:  *dto.AvgPrice,
		Portfolio: model.PortfolioRef{ID: *dto.Portfolio.ID},
	}
	if dto.ID != nil {
		asset.ID = *dto.ID
	}
	return asset
}

func AssetChanges(dto restModel.AssetDTO) model.AssetChanges {
	changes := model.AssetChanges{
		Ticker:   dto.Ticker,
		Quantity: dto.Quantity,
		AvgPrice: dto.AvgPrice,
	}
	if dto.Portfolio != nil {
		changes.PortfolioID = dto.Portfolio.ID
	}
	return changes
}

func Items[T, R any](items []T, convert func(T) R) []R {
	res := make([]R, 0, len(items))
	for _, item := range items {
		res = append(res, convert(item))
	}
	return res
}
