// Package metrics 暴露 Prometheus 指标：HTTP 请求、活动参与与社交互动的操作结果。
package metrics

import (
	"activity-partner/internal/global/response"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "partner"

// Subsystem 业务操作所属的子系统
type Subsystem string

const (
	Participation Subsystem = "participation"
	Engagement    Subsystem = "engagement"
)

var (
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms ~ 2.5s
		},
		[]string{"method", "path"},
	)

	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of domain operations by outcome code.",
		},
		[]string{"subsystem", "op", "result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		operations,
	)
}

// Result 成功为 ok，业务错误为错误码，其余为 error
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	var e *response.Error
	if errors.As(err, &e) {
		return strconv.Itoa(int(e.Code))
	}
	return "error"
}

// Observe 记录一次业务操作的结果
func Observe(sub Subsystem, op string, err error) {
	operations.WithLabelValues(string(sub), op, Result(err)).Inc()
}

// Middleware 按路由模板统计，未匹配的路由记为 unmatched，避免标签爆炸
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
