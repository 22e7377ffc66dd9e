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

type PortfolioService struct {
	repo  Repository
	cache Cache
}

func NewPortfolioService(repo Repository, cache Cache) *PortfolioService {
	return &PortfolioService{repo: repo, cache: cache}
}

func portfolioWriteError(err error) error {
	if errors.Is(err, repository.ErrReferenceNotFound) {
		return service.NewValidationError(EntityPortfolio, "usernotfound", service.FieldError{Field: "user", Message: "does not exist"})
	}
	return err
}

func (s *PortfolioService) Create(ctx context.Context, portfolio model.Portfolio) (model.Portfolio, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.Create"

	slog.Debug("Create start", slog.String("rqID", rqID), slog.String("op", op), slog.String("name", portfolio.Name))

	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		portfolioID, err := s.repo.InsertPortfolio(ctx, portfolio)
		if err != nil {
			return portfolioWriteError(err)
		}

		// перечитываем, чтобы получить логин владельца
		portfolio, err = s.repo.GetPortfolio(ctx, portfolioID)
		return err
	})
	if err != nil {
		slog.Warn("Create failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Portfolio{}, err
	}

	return portfolio, nil
}

func (s *PortfolioService) Update(ctx context.Context, portfolio model.Portfolio) (model.Portfolio, error) {
	changes := model.PortfolioChanges{Name: &portfolio.Name, CreatedDate: &portfolio.CreatedDate}
	return s.update(ctx, portfolio.ID, changes, true, portfolio.User)
}

func (s *PortfolioService) PartialUpdate(ctx context.Context, portfolioID int64, changes model.PortfolioChanges) (model.Portfolio, error) {
	return s.update(ctx, portfolioID, changes, false, nil)
}

// update applies changes; with replaceUser the owner is set to user even when nil.
func (s *PortfolioService) update(ctx context.Context, portfolioID int64, changes model.PortfolioChanges, replaceUser bool, user *model.UserRef) (portfolio model.Portfolio, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.update"

	slog.Debug("update start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("portfolioID", portfolioID))

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		portfolio, err = s.repo.GetPortfolio(ctx, portfolioID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return service.NewValidationError(EntityPortfolio, "idnotfound")
			}
			return err
		}

		if changes.Name != nil {
			portfolio.Name = *changes.Name
		}
		if changes.CreatedDate != nil {
			portfolio.CreatedDate = *changes.CreatedDate
		}
		switch {
		case replaceUser:
			portfolio.User = user
		case changes.UserID != nil:
			portfolio.User = &model.UserRef{ID: *changes.UserID}
		}

		err = s.repo.UpdatePortfolio(ctx, portfolio)
		if err != nil {
			return portfolioWriteError(err)
		}

		portfolio, err = s.repo.GetPortfolio(ctx, portfolioID)
		return err
	})
	if err != nil {
		slog.Warn("update failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Portfolio{}, err
	}

	_ = s.cache.EvictPortfolio(ctx, portfolioID)
	_ = s.cache.FlushAssets(ctx)

	return portfolio, nil
}

func (s *PortfolioService) Get(ctx context.Context, portfolioID int64) (model.Portfolio, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.Get"

	portfolio, err := s.cache.GetPortfolio(ctx, portfolioID)
	if err == nil {
		return portfolio, nil
	}

	slog.Debug("can't get portfolio from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))

	portfolio, err = s.repo.GetPortfolio(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Portfolio{}, service.ErrNotFound
		}
		slog.Error("got error from repo.GetPortfolio", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Portfolio{}, err
	}

	go s.cache.SetPortfolio(context.WithoutCancel(ctx), portfolio)

	return portfolio, nil
}

func (s *PortfolioService) List(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.Portfolio], error) {
	return s.repo.GetPortfolios(ctx, pageRequest)
}

func (s *PortfolioService) Delete(ctx context.Context, portfolioID int64) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.Delete"

	err := s.repo.DeletePortfolio(ctx, portfolioID)
	if err != nil {
		slog.Error("got error from repo.DeletePortfolio", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	_ = s.cache.EvictPortfolio(ctx, portfolioID)
	_ = s.cache.FlushAssets(ctx)

	return nil
}
