package bootstrap

import (
	"log/slog"

	"github.com/atelierpoint/studio-backend/internal/database"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func ProvideDatabase(cfg *Config, logger *slog.Logger) *database.DB {
	return database.Open(cfg.DatabaseDSN, logger)
}

func ProvideRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideDatabase,
		ProvideRedisClient,
	),
)
