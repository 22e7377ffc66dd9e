package entityService

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"golang.org/x/crypto/bcrypt"
)

type UserAccountService struct {
	repo  Repository
	cache Cache
}

func NewUserAccountService(repo Repository, cache Cache) *UserAccountService {
	return &UserAccountService{repo: repo, cache: cache}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func userAccountWriteError(err error) error {
	if errors.Is(err, repository.ErrAlreadyExists) {
		return service.NewValidationError(EntityUserAccount, "loginexists", service.FieldError{Field: "login", Message: "already in use"})
	}
	return err
}

func (s *UserAccountService) Create(ctx context.Context, login, email, password string) (model.UserAccount, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "UserAccountService.Create"

	slog.Debug("Create start", slog.String("rqID", rqID), slog.String("op", op), slog.String("login", login))

	hash, err := hashPassword(password)
	if err != nil {
		slog.Error("can't hash password", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.UserAccount{}, err
	}

	user := model.UserAccount{Login: login, Email: email, PasswordHash: hash}
	user.ID, err = s.repo.InsertUserAccount(ctx, user)
	if err != nil {
		return model.UserAccount{}, userAccountWriteError(err)
	}

	return user, nil
}

// Update replaces every field of an existing account.
func (s *UserAccountService) Update(ctx context.Context, userID int64, login, email, password string) (model.UserAccount, error) {
	return s.PartialUpdate(ctx, userID, model.UserAccountChanges{Login: &login, Email: &email, Password: &password})
}

func (s *UserAccountService) PartialUpdate(ctx context.Context, userID int64, changes model.UserAccountChanges) (user model.UserAccount, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "UserAccountService.PartialUpdate"

	slog.Debug("PartialUpdate start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("userID", userID))

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err = s.repo.GetUserAccount(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return service.NewValidationError(EntityUserAccount, "idnotfound")
			}
			return err
		}

		if changes.Login != nil {
			user.Login = *changes.Login
		}
		if changes.Email != nil {
			user.Email = *changes.Email
		}
		if changes.Password != nil {
			user.PasswordHash, err = hashPassword(*changes.Password)
			if err != nil {
				return err
			}
		}

		return userAccountWriteError(s.repo.UpdateUserAccount(ctx, user))
	})
	if err != nil {
		slog.Warn("PartialUpdate failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.UserAccount{}, err
	}

	// синхронно, иначе следующее чтение может получить старую версию
	_ = s.cache.EvictUserAccount(ctx, userID)
	_ = s.cache.FlushPortfolios(ctx)

	return user, nil
}

func (s *UserAccountService) Get(ctx context.Context, userID int64) (model.UserAccount, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "UserAccountService.Get"

	user, err := s.cache.GetUserAccount(ctx, userID)
	if err == nil {
		return user, nil
	}

	slog.Debug("can't get user account from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))

	user, err = s.repo.GetUserAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.UserAccount{}, service.ErrNotFound
		}
		slog.Error("got error from repo.GetUserAccount", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.UserAccount{}, err
	}

	go s.cache.SetUserAccount(context.WithoutCancel(ctx), user)

	return user, nil
}

func (s *UserAccountService) List(ctx context.Context, pageRequest model.PageRequest) (model.Page[model.UserAccount], error) {
	return s.repo.GetUserAccounts(ctx, pageRequest)
}

func (s *UserAccountService) Delete(ctx context.Context, userID int64) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "UserAccountService.Delete"

	err := s.repo.DeleteUserAccount(ctx, userID)
	if err != nil {
		slog.Error("got error from repo.DeleteUserAccount", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	_ = s.cache.EvictUserAccount(ctx, userID)
	_ = s.cache.FlushPortfolios(ctx)

	return nil
}
