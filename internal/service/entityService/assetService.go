package entityService

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

const avgPricePlaces = 2

type AssetService struct {
	repo  Repository
	cache Cache
}

func NewAssetService(repo Repository, cache Cache) *AssetService {
	return &AssetService{repo: repo, cache: cache}
}

func assetWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		return service.NewValidationError(EntityAsset, "tickerexists", service.FieldError{Field: "ticker", Message: "already held in this portfolio"})
	case errors.Is(err, repository.ErrReferenceNotFound):
		return service.NewValidationError(EntityAsset, "portfolionotfound", service.FieldError{Field: "portfolio", Message: "does not exist"})
	}
	return err
}

func (s *AssetService) Create(ctx context.Context, asset model.Asset) (model.Asset, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AssetService.Create"

	slog.Debug("Create start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", asset.Ticker))

	asset.AvgPrice = asset.AvgPrice.Round(avgPricePlaces)

	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		assetID, err := s.repo.InsertAsset(ctx, asset)
		if err != nil {
			return assetWriteError(err)
		}

		asset, err = s.repo.GetAsset(ctx, assetID)
		return err
	})
	if err != nil {
		slog.Warn("Create failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Asset{}, err
	}

	return asset, nil
}

func (s *AssetService) Update(ctx context.Context, asset model.Asset) (model.Asset, error) {
	return s.PartialUpdate(ctx, asset.ID, model.AssetChanges{
		Ticker:      &asset.Ticker,
		Quantity:    &asset.Quantity,
		AvgPrice:    &asset.AvgPrice,
		PortfolioID: &asset.Portfolio.ID,
	})
}

func (s *AssetService) PartialUpdate(ctx context.Context, assetID int64, changes model.AssetChanges) (asset model.Asset, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AssetService.PartialUpdate"

	slog.Debug("PartialUpdate start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("assetID", assetID))

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		asset, err = s.repo.GetAsset(ctx, assetID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return service.NewValidationError(EntityAsset, "idnotfound")
			}
			return err
		}

		if changes.Ticker != nil {
			asset.Ticker = *changes.Ticker
		}
		if changes.Quantity != nil {
			asset.Quantity = *changes.Quantity
		}
		if changes.AvgPrice != nil {
			asset.AvgPrice = changes.AvgPrice.Round(avgPricePlaces)
		}
		if changes.PortfolioID != nil {
			asset.Portfolio = model.PortfolioRef{ID: *changes.PortfolioID}
		}

		err = s.repo.UpdateAsset(ctx, asset)
		if err != nil {
			return assetWriteError(err)
		}

		asset, err = s.repo.GetAsset(ctx, assetID)
		return err
	})
	if err != nil {
		slog.Warn("PartialUpdate failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Asset{}, err
	}

	_ = s.cache.EvictAsset(ctx, assetID)

	return asset, nil
}

func (s *AssetService) Get(ctx context.Context, assetID int64) (model.Asset, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AssetService.Get"

	asset, err := s.cache.GetAsset(ctx, assetID)
	if err == nil {
		return asset, nil
	}

	slog.Debug("can't get asset from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))

	asset, err = s.repo.GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Asset{}, service.ErrNotFound
		}
		slog.Error("got error from repo.GetAsset", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Asset{}, err
	}

	go s.cache.SetAsset(context.WithoutCancel(ctx), asset)

	return asset, nil
}

func (s *AssetService) List(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.Asset], error) {
	return s.repo.GetAssets(ctx, pageRequest)
}

func (s *AssetService) Delete(ctx context.Context, assetID int64) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "AssetService.Delete"

	err := s.repo.DeleteAsset(ctx, assetID)
	if err != nil {
		slog.Error("got error from repo.DeleteAsset", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	_ = s.cache.EvictAsset(ctx, assetID)

	return nil
}
