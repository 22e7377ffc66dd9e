package postgres

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

var portfolioColumns = map[string]string{
	"id":          "p.id",
	"name":        "p.name",
	"createdDate": "p.created_date",
}

const selectPortfolio = `
		SELECT p.id, p.name, p.created_date, p.user_id, u.login AS user_login
		FROM portfolio p
		LEFT JOIN user_account u ON u.id = p.user_id
		`

func userIDArg(user *model.UserRef) any {
	if user == nil {
		return nil
	}
	return user.ID
}

func (r *Postgres) InsertPortfolio(ctx context.Context, portfolio model.Portfolio) (portfolioID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertPortfolio"
	query := `INSERT INTO portfolio(name, created_date, user_id) VALUES($1, $2, $3) RETURNING id`

	slog.Debug("InsertPortfolio start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertPortfolio failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertPortfolio completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowContext(ctx, query, portfolio.Name, portfolio.CreatedDate, userIDArg(portfolio.User)).Scan(&portfolioID)
	if err != nil {
		return 0, mapError(err)
	}

	return portfolioID, nil
}

func (r *Postgres) UpdatePortfolio(ctx context.Context, portfolio model.Portfolio) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpdatePortfolio"
	query := `
		UPDATE portfolio
		SET name = $1, created_date = $2, user_id = $3
		WHERE id = $4
		`

	slog.Debug("UpdatePortfolio start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("portfolioID", portfolio.ID))
	defer func() {
		if err != nil {
			slog.Error("UpdatePortfolio failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpdatePortfolio completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	res, err := r.txOrDb(ctx).ExecContext(ctx, query, portfolio.Name, portfolio.CreatedDate, userIDArg(portfolio.User), portfolio.ID)
	if err != nil {
		return mapError(err)
	}

	return checkAffected(res)
}

func (r *Postgres) GetPortfolio(ctx context.Context, portfolioID int64) (portfolio model.Portfolio, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetPortfolio"
	query := selectPortfolio + `WHERE p.id = $1`

	slog.Debug("GetPortfolio start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("portfolioID", portfolioID))
	defer func() {
		if err != nil {
			slog.Debug("GetPortfolio failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetPortfolio completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbPortfolio := dbModel.Portfolio{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, portfolioID).StructScan(&dbPortfolio)
	if err != nil {
		return model.Portfolio{}, mapError(err)
	}

	return dbConverter.ConvertPortfolio(dbPortfolio), nil
}

func (r *Postgres) GetPortfolios(ctx context.Context, pageRequest model.PageRequest) (page model.Page[model.Portfolio], err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetPortfolios"
	params := map[string]any{
		"limit":  pageRequest.Size,
		"offset": pageRequest.Offset(),
	}
	query := selectPortfolio + orderBy(pageRequest.Sort, portfolioColumns, "p.id") + `
		LIMIT $1
		OFFSET $2
		`

	slog.Debug("GetPortfolios start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetPortfolios failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetPortfolios completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).GetContext(ctx, &page.Total, `SELECT count(*) FROM portfolio`)
	if err != nil {
		return model.Page[model.Portfolio]{}, err
	}

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, pageRequest.Size, pageRequest.Offset())
	if err != nil {
		return model.Page[model.Portfolio]{}, err
	}

	defer rows.Close()

	page.Items = make([]model.Portfolio, 0, pageRequest.Size)
	for rows.Next() {
		var portfolio dbModel.Portfolio
		err = rows.StructScan(&portfolio)
		if err != nil {
			return model.Page[model.Portfolio]{}, err
		}
		page.Items = append(page.Items, dbConverter.ConvertPortfolio(portfolio))
	}

	return page, rows.Err()
}

func (r *Postgres) DeletePortfolio(ctx context.Context, portfolioID int64) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.DeletePortfolio"
	params := map[string]any{
		"portfolioID": portfolioID,
	}

	// каскадное удаление
	query := `
		DELETE FROM portfolio
		WHERE id = $1
		`

	slog.Debug("DeletePortfolio start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("DeletePortfolio failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeletePortfolio completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, portfolioID)
	if err != nil {
		return err
	}

	return nil
}
