package data

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	// the entity cache is required at startup, later outages only degrade health
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("can't connect to redis", slog.String("addr", cfg.Redis.Addr()), slog.String("err", err.Error()))
		panic(err)
	}
	slog.Info("redis connected", slog.String("addr", cfg.Redis.Addr()), slog.Int("db", cfg.Redis.DB))

	return rdb
}
