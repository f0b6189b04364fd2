package tools

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID 读取路径参数中的正整数 ID
func ParamID(c *gin.Context, key string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
