package ping

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/response"
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", Ping)
}

// Ping 附带存储的连通状态，Redis 未配置时为 disabled
func Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	result := gin.H{
		"message": "pong",
		"version": version,
		"mysql":   "ok",
		"redis":   "disabled",
	}

	if database.DB == nil {
		result["mysql"] = "disabled"
	} else if sqlDB, err := database.DB.DB(); err != nil {
		result["mysql"] = "error"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		log.Warn("MySQL 健康检查失败", "error", err)
		result["mysql"] = "error"
	}

	if database.RDB != nil {
		result["redis"] = "ok"
		if err := database.RDB.Ping(ctx).Err(); err != nil {
			log.Warn("Redis 健康检查失败", "error", err)
			result["redis"] = "error"
		}
	}

	response.Success(c, result)
}
