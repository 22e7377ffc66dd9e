package entityService

import (
	"context"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
)

type Repository interface {
	WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error

	InsertUserAccount(ctx context.Context, user model.UserAccount) (userID int64, err error)
	UpdateUserAccount(ctx context.Context, user model.UserAccount) error
	GetUserAccount(ctx context.Context, userID int64) (model.UserAccount, error)
	GetUserAccounts(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.UserAccount], error)
	DeleteUserAccount(ctx context.Context, userID int64) error

	InsertPortfolio(ctx context.Context, portfolio model.Portfolio) (portfolioID int64, err error)
	UpdatePortfolio(ctx context.Context, portfolio model.Portfolio) error
	GetPortfolio(ctx context.Context, portfolioID int64) (model.Portfolio, error)
	GetPortfolios(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.Portfolio], error)
	DeletePortfolio(ctx context.Context, portfolioID int64) error

	InsertAsset(ctx context.Context, asset model.Asset) (assetID int64, err error)
	UpdateAsset(ctx context.Context, asset model.Asset) error
	GetAsset(ctx context.Context, assetID int64) (model.Asset, error)
	GetAssets(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.Asset], error)
	DeleteAsset(ctx context.Context, assetID int64) error
}

type Cache interface {
	GetUserAccount(ctx context.Context, userID int64) (model.UserAccount, error)
	SetUserAccount(ctx context.Context, user model.UserAccount) error
	EvictUserAccount(ctx context.Context, userID int64) error

	GetPortfolio(ctx context.Context, portfolioID int64) (model.Portfolio, error)
	SetPortfolio(ctx context.Context, portfolio model.Portfolio) error
	EvictPortfolio(ctx context.Context, portfolioID int64) error
	FlushPortfolios(ctx context.Context) error

	GetAsset(ctx context.Context, assetID int64) (model.Asset, error)
	SetAsset(ctx context.Context, asset model.Asset) error
	EvictAsset(ctx context.Context, assetID int64) error
	FlushAssets(ctx context.Context) error
}

const (
	EntityUserAccount = "userAccount"
	EntityPortfolio   = "portfolio"
	EntityAsset       = "asset"
)
