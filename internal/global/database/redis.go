package database

import (
	"activity-partner/config"
	"activity-partner/internal/global/sentry/tracing"
	"activity-partner/tools"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RDB 未配置 Redis 时为 nil
var RDB *redis.Client

func InitRedis() {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if tracing.IsEnabled() {
		client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tools.PanicOnErr(client.Ping(ctx).Err())

	RDB = client
}
