package tracing

import (
	"activity-partner/config"
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
)

// RedisSentryHook 实现 redis.Hook，为 Redis 命令创建 Sentry 子 span
type RedisSentryHook struct {
	slowThreshold time.Duration
}

func NewRedisSentryHook() *RedisSentryHook {
	ms := config.Get().Sentry.Tracing.RedisSlowThresholdMs
	return &RedisSentryHook{slowThreshold: time.Duration(ms) * time.Millisecond}
}

func (h *RedisSentryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisSentryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		parent := sentry.SpanFromContext(ctx)
		if parent == nil {
			return next(ctx, cmd)
		}

		start := time.Now()
		span := parent.StartChild("db.redis")
		// 只记录命令名，避免 key 带来的高基数
		span.Description = strings.ToUpper(cmd.Name())
		span.SetData("db.system", "redis")

		err := next(span.Context(), cmd)
		if errors.Is(err, redis.Nil) {
			finishSpan(span, time.Since(start), h.slowThreshold, nil)
		} else {
			finishSpan(span, time.Since(start), h.slowThreshold, err)
		}
		return err
	}
}

func (h *RedisSentryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		parent := sentry.SpanFromContext(ctx)
		if parent == nil {
			return next(ctx, cmds)
		}

		start := time.Now()
		span := parent.StartChild("db.redis.pipeline")
		span.Description = pipelineDescription(cmds)
		span.SetData("db.system", "redis")
		span.SetData("redis.pipeline_length", len(cmds))

		err := next(span.Context(), cmds)
		finishSpan(span, time.Since(start), h.slowThreshold, err)
		return err
	}
}

func pipelineDescription(cmds []redis.Cmder) string {
	const maxShow = 3
	if len(cmds) == 0 {
		return "PIPELINE (empty)"
	}
	names := make([]string, 0, maxShow)
	for i, cmd := range cmds {
		if i >= maxShow {
			break
		}
		names = append(names, strings.ToUpper(cmd.Name()))
	}
	desc := "PIPELINE: " + strings.Join(names, ", ")
	if len(cmds) > maxShow {
		desc += "..."
	}
	return desc
}
