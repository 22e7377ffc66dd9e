package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("error not found in cache")

const (
	userAccountPrefix = "user_account"
	portfolioPrefix   = "portfolio"
	assetPrefix       = "asset"

	scanBatch = 100
)

// RedisCache is a read-through entity cache keyed by "<entity>:<id>".
type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

func key(prefix string, id int64) string {
	return fmt.Sprintf("%s:%d", prefix, id)
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.redis.Ping(ctx).Err()
}

func (r *RedisCache) GetUserAccount(ctx context.Context, userID int64) (model.UserAccount, error) {
	return get[model.UserAccount](ctx, r, key(userAccountPrefix, userID))
}

func (r *RedisCache) SetUserAccount(ctx context.Context, user model.UserAccount) error {
	return set(ctx, r, key(userAccountPrefix, user.ID), user)
}

func (r *RedisCache) EvictUserAccount(ctx context.Context, userID int64) error {
	return r.evict(ctx, key(userAccountPrefix, userID))
}

func (r *RedisCache) GetPortfolio(ctx context.Context, portfolioID int64) (model.Portfolio, error) {
	return get[model.Portfolio](ctx, r, key(portfolioPrefix, portfolioID))
}

func (r *RedisCache) SetPortfolio(ctx context.Context, portfolio model.Portfolio) error {
	return set(ctx, r, key(portfolioPrefix, portfolio.ID), portfolio)
}

func (r *RedisCache) EvictPortfolio(ctx context.Context, portfolioID int64) error {
	return r.evict(ctx, key(portfolioPrefix, portfolioID))
}

// FlushPortfolios drops every cached portfolio, they embed the owner login.
func (r *RedisCache) FlushPortfolios(ctx context.Context) error {
	return r.flush(ctx, portfolioPrefix)
}

func (r *RedisCache) GetAsset(ctx context.Context, assetID int64) (model.Asset, error) {
	return get[model.Asset](ctx, r, key(assetPrefix, assetID))
}

func (r *RedisCache) SetAsset(ctx context.Context, asset model.Asset) error {
	return set(ctx, r, key(assetPrefix, asset.ID), asset)
}

func (r *RedisCache) EvictAsset(ctx context.Context, assetID int64) error {
	return r.evict(ctx, key(assetPrefix, assetID))
}

// FlushAssets drops every cached asset, they embed the portfolio name.
func (r *RedisCache) FlushAssets(ctx context.Context) error {
	return r.flush(ctx, assetPrefix)
}

func get[T any](ctx context.Context, r *RedisCache, key string) (T, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	var entity T

	res, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity, ErrNotFound
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return entity, err
	}

	err = json.Unmarshal([]byte(res), &entity)
	if err != nil {
		slog.Error(
			"can't unmarshall cached entity",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("key", key),
		)
		return entity, errors.New("can't unmarshall cached entity")
	}

	return entity, nil
}

func set[T any](ctx context.Context, r *RedisCache, key string, entity T) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	entityJson, err := json.Marshal(entity)
	if err != nil {
		slog.Error("can't marshall entity", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return errors.New("can't marshall entity")
	}

	err = r.redis.Set(ctx, key, entityJson, r.cfg.Cache.EntityExpiration).Err()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return err
	}

	return nil
}

func (r *RedisCache) evict(ctx context.Context, keys ...string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	err := r.redis.Del(ctx, keys...).Err()
	if err != nil {
		slog.Error("failed on redis.Del", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.Any("keys", keys))
		return err
	}

	return nil
}

func (r *RedisCache) flush(ctx context.Context, prefix string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("flush start", slog.String("rqID", rqID), slog.String("prefix", prefix))

	pipe := r.redis.Pipeline()
	iter := r.redis.Scan(ctx, 0, prefix+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Error("failed on redis.Scan", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("prefix", prefix))
		return err
	}

	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Error("failed on pipe.Exec", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("flush completed", slog.String("rqID", rqID), slog.String("prefix", prefix))

	return nil
}
