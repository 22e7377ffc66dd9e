package postgres

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

var userAccountColumns = map[string]string{
	"id":    "id",
	"login": "login",
	"email": "email",
}

func (r *Postgres) InsertUserAccount(ctx context.Context, user model.UserAccount) (userID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertUserAccount"
	query := `INSERT INTO user_account(login, email, password_hash) VALUES($1, $2, $3) RETURNING id`

	slog.Debug("InsertUserAccount start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertUserAccount failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertUserAccount completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowContext(ctx, query, user.Login, user.Email, user.PasswordHash).Scan(&userID)
	if err != nil {
		return 0, mapError(err)
	}

	return userID, nil
}

func (r *Postgres) UpdateUserAccount(ctx context.Context, user model.UserAccount) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpdateUserAccount"
	query := `
		UPDATE user_account
		SET login = $1, email = $2, password_hash = $3
		WHERE id = $4
		`

	slog.Debug("UpdateUserAccount start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("userID", user.ID))
	defer func() {
		if err != nil {
			slog.Error("UpdateUserAccount failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpdateUserAccount completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	res, err := r.txOrDb(ctx).ExecContext(ctx, query, user.Login, user.Email, user.PasswordHash, user.ID)
	if err != nil {
		return mapError(err)
	}

	return checkAffected(res)
}

func (r *Postgres) GetUserAccount(ctx context.Context, userID int64) (user model.UserAccount, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetUserAccount"
	query := `SELECT id, login, email, password_hash FROM user_account WHERE id = $1`

	slog.Debug("GetUserAccount start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("userID", userID))
	defer func() {
		if err != nil {
			slog.Debug("GetUserAccount failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetUserAccount completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbUser := dbModel.UserAccount{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, userID).StructScan(&dbUser)
	if err != nil {
		return model.UserAccount{}, mapError(err)
	}

	return dbConverter.ConvertUserAccount(dbUser), nil
}

func (r *Postgres) GetUserAccounts(ctx context.Context, pageRequest model.PageRequest) (page model.Page[model.UserAccount], err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetUserAccounts"
	params := map[string]any{
		"limit":  pageRequest.Size,
		"offset": pageRequest.Offset(),
	}
	query := `
		SELECT id, login, email, password_hash
		FROM user_account
		` + orderBy(pageRequest.Sort, userAccountColumns, "id") + `
		LIMIT $1
		OFFSET $2
		`

	slog.Debug("GetUserAccounts start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetUserAccounts failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetUserAccounts completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).GetContext(ctx, &page.Total, `SELECT count(*) FROM user_account`)
	if err != nil {
		return model.Page[model.UserAccount]{}, err
	}

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, pageRequest.Size, pageRequest.Offset())
	if err != nil {
		return model.Page[model.UserAccount]{}, err
	}

	defer rows.Close()

	page.Items = make([]model.UserAccount, 0, pageRequest.Size)
	for rows.Next() {
		var user dbModel.UserAccount
		err = rows.StructScan(&user)
		if err != nil {
			return model.Page[model.UserAccount]{}, err
		}
		page.Items = append(page.Items, dbConverter.ConvertUserAccount(user))
	}

	return page, rows.Err()
}

func (r *Postgres) DeleteUserAccount(ctx context.Context, userID int64) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.DeleteUserAccount"

	// portfolios are detached by ON DELETE SET NULL
	query := `DELETE FROM user_account WHERE id = $1`

	slog.Debug("DeleteUserAccount start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Int64("userID", userID))
	defer func() {
		if err != nil {
			slog.Error("DeleteUserAccount failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeleteUserAccount completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}

	return nil
}
