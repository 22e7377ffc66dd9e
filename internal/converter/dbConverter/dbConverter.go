package dbConverter

import (
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
)

func ConvertUserAccount(dbUser dbModel.UserAccount) model.UserAccount {
	return model.UserAccount{
		ID:           dbUser.ID,
		Login:        dbUser.Login,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
	}
}

func ConvertPortfolio(dbPortfolio dbModel.Portfolio) model.Portfolio {
	portfolio := model.Portfolio{
		ID:          dbPortfolio.ID,
		Name:        dbPortfolio.Name,
		CreatedDate: dbPortfolio.CreatedDate.UTC(),
	}
	if dbPortfolio.UserID.Valid {
		portfolio.User = &model.UserRef{
			ID:    dbPortfolio.UserID.Int64,
			Login: dbPortfolio.UserLogin.String,
		}
	}
	return portfolio
}

func ConvertAsset(dbAsset dbModel.Asset) model.Asset {
	return model.Asset{
		ID:       dbAsset.ID,
		Ticker:   dbAsset.Ticker,
		Quantity: dbAsset.Quantity,
		AvgPrice: dbAsset.AvgPrice,
		Portfolio: model.PortfolioRef{
			ID:   dbAsset.PortfolioID,
			Name: dbAsset.PortfolioName,
		},
	}
}

func ConvertHolding(dbHolding dbModel.Holding) model.Holding {
	return model.Holding{
		Ticker:   dbHolding.Ticker,
		Quantity: dbHolding.Quantity,
		AvgPrice: dbHolding.AvgPrice,
	}
}
