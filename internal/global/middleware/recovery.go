package middleware

import (
	"activity-partner/internal/global/logger"
	"activity-partner/internal/global/response"
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery 捕获 handler 中的 panic，记录堆栈后返回 500
func Recovery() gin.HandlerFunc {
	log := logger.New("Recovery")
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			logger.WithContext(log, c).Error("请求处理发生 panic",
				"error", err,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)
			response.Fail(c, response.ErrServerInternal.WithOrigin(err))
			c.Abort()
		}()
		c.Next()
	}
}
