package engagement

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewGate 决定一次浏览是否计入 view_count
type ViewGate interface {
	Allow(ctx context.Context, momentID, viewerID uint) (bool, error)
}

// RedisViewGate 同一用户在 window 内对同一动态只计一次浏览
type RedisViewGate struct {
	rdb    redis.Cmdable
	window time.Duration
}

func NewRedisViewGate(rdb redis.Cmdable, window time.Duration) *RedisViewGate {
	return &RedisViewGate{rdb: rdb, window: window}
}

func viewKey(momentID, viewerID uint) string {
	return fmt.Sprintf("partner:moment:view:%d:%d", momentID, viewerID)
}

func (g *RedisViewGate) Allow(ctx context.Context, momentID, viewerID uint) (bool, error) {
	if g.window <= 0 {
		return true, nil
	}
	return g.rdb.SetNX(ctx, viewKey(momentID, viewerID), 1, g.window).Result()
}

// View 记录一次浏览，返回是否计数。未登录或去重失败时总是计数
func (g *Graph) View(ctx context.Context, momentID, viewerID uint) (bool, error) {
	if viewerID != 0 && g.views != nil {
		ok, err := g.views.Allow(ctx, momentID, viewerID)
		if err != nil {
			g.log.Warn("浏览去重失败", "error", err, "moment_id", momentID, "viewer_id", viewerID)
		} else if !ok {
			return false, nil
		}
	}

	if err := Incr(g.db.WithContext(ctx), MomentViews, momentID); err != nil {
		return false, dbErr(err)
	}
	return true, nil
}
