// Package tracing 提供 Sentry 性能追踪的集成，覆盖 GORM 与 Redis
package tracing

import (
	"activity-partner/config"
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// Trace 在当前请求的 transaction 下记录 fn 的耗时，没有父 span 时直接执行 fn
func Trace(ctx context.Context, operation, description string, fn func() error) error {
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return fn()
	}
	start := time.Now()
	span := parent.StartChild(operation)
	span.Description = description
	err := fn()
	finishSpan(span, time.Since(start), 0, err)
	return err
}

// finishSpan 未超过慢操作阈值的 span 不发送
func finishSpan(span *sentry.Span, elapsed, slowThreshold time.Duration, err error) {
	if slowThreshold > 0 && elapsed < slowThreshold {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
