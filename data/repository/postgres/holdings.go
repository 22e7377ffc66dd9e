package postgres

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

// GetHoldingsByPortfolio reads the portfolio's assets in insertion order. It
// returns repository.ErrNotFound when the portfolio itself does not exist, so
// an empty portfolio and a missing one are told apart.
func (r *Postgres) GetHoldingsByPortfolio(ctx context.Context, portfolioID int64) (holdings []model.Holding, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetHoldingsByPortfolio"
	existsQuery := `SELECT EXISTS(SELECT 1 FROM portfolio WHERE id = $1)`
	query := `
		SELECT ticker, quantity, avg_price
		FROM asset
		WHERE portfolio_id = $1
		ORDER BY id
		`

	slog.Debug("GetHoldingsByPortfolio start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("portfolioID", portfolioID))
	defer func() {
		if err != nil {
			slog.Debug("GetHoldingsByPortfolio failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetHoldingsByPortfolio completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.WithinTransaction(ctx, func(ctx context.Context) error {
		var exists bool
		err := r.txOrDb(ctx).GetContext(ctx, &exists, existsQuery, portfolioID)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}

		var dbHoldings []dbModel.Holding
		err = r.txOrDb(ctx).SelectContext(ctx, &dbHoldings, query, portfolioID)
		if err != nil {
			return err
		}

		holdings = make([]model.Holding, 0, len(dbHoldings))
		for _, h := range dbHoldings {
			holdings = append(holdings, dbConverter.ConvertHolding(h))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return holdings, nil
}
