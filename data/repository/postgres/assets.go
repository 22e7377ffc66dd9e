package postgres

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

var assetColumns = map[string]string{
	"id":       "a.id",
	"ticker":   "a.ticker",
	"quantity": "a.quantity",
	"avgPrice": "a.avg_price",
}

const selectAsset = `
		SELECT a.id, a.ticker, a.quantity, a.avg_price, a.portfolio_id, p.name AS portfolio_name
		FROM asset a
		JOIN portfolio p ON p.id = a.portfolio_id
		`

func (r *Postgres) InsertAsset(ctx context.Context, asset model.Asset) (assetID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertAsset"
	query := `INSERT INTO asset(ticker, quantity, avg_price, portfolio_id) VALUES($1, $2, $3, $4) RETURNING id`

	slog.Debug("InsertAsset start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertAsset failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertAsset completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowContext(ctx, query, asset.Ticker, asset.Quantity, asset.AvgPrice, asset.Portfolio.ID).Scan(&assetID)
	if err != nil {
		return 0, mapError(err)
	}

	return assetID, nil
}

func (r *Postgres) UpdateAsset(ctx context.Context, asset model.Asset) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpdateAsset"
	query := `
		UPDATE asset
		SET ticker = $1, quantity = $2, avg_price = $3, portfolio_id = $4
		WHERE id = $5
		`

	slog.Debug("UpdateAsset start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("assetID", asset.ID))
	defer func() {
		if err != nil {
			slog.Error("UpdateAsset failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpdateAsset completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	res, err := r.txOrDb(ctx).ExecContext(ctx, query, asset.Ticker, asset.Quantity, asset.AvgPrice, asset.Portfolio.ID, asset.ID)
	if err != nil {
		return mapError(err)
	}

	return checkAffected(res)
}

func (r *Postgres) GetAsset(ctx context.Context, assetID int64) (asset model.Asset, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetAsset"
	query := selectAsset + `WHERE a.id = $1`

	slog.Debug("GetAsset start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("assetID", assetID))
	defer func() {
		if err != nil {
			slog.Debug("GetAsset failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetAsset completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbAsset := dbModel.Asset{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, assetID).StructScan(&dbAsset)
	if err != nil {
		return model.Asset{}, mapError(err)
	}

	return dbConverter.ConvertAsset(dbAsset), nil
}

func (r *Postgres) GetAssets(ctx context.Context, pageRequest model.PageRequest) (page model.Page[model.Asset], err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetAssets"
	params := map[string]any{
		"limit":  pageRequest.Size,
		"offset": pageRequest.Offset(),
	}
	query := selectAsset + orderBy(pageRequest.Sort, assetColumns, "a.id") + `
		LIMIT $1
		OFFSET $2
		`

	slog.Debug("GetAssets start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetAssets failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetAssets completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).GetContext(ctx, &page.Total, `SELECT count(*) FROM asset`)
	if err != nil {
		return model.Page[model.Asset]{}, err
	}

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, pageRequest.Size, pageRequest.Offset())
	if err != nil {
		return model.Page[model.Asset]{}, err
	}

	defer rows.Close()

	page.Items = make([]model.Asset, 0, pageRequest.Size)
	for rows.Next() {
		var asset dbModel.Asset
		err = rows.StructScan(&asset)
		if err != nil {
			return model.Page[model.Asset]{}, err
		}
		page.Items = append(page.Items, dbConverter.ConvertAsset(asset))
	}

	return page, rows.Err()
}

func (r *Postgres) DeleteAsset(ctx context.Context, assetID int64) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.DeleteAsset"
	query := `DELETE FROM asset WHERE id = $1`

	slog.Debug("DeleteAsset start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("assetID", assetID))
	defer func() {
		if err != nil {
			slog.Error("DeleteAsset failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeleteAsset completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, assetID)
	if err != nil {
		return err
	}

	return nil
}
