package jwt

import (
	"github.com/gin-gonic/gin"
)

const PayloadKey = "payload"

func GetUserPayload(c *gin.Context) (userPayload *Claims, exist bool) {
	payload, _ := c.Get(PayloadKey)
	userPayload, exist = payload.(*Claims)
	return
}

// CurrentUserID 未登录时返回 0
func CurrentUserID(c *gin.Context) uint {
	if p, ok := GetUserPayload(c); ok {
		return p.UserID
	}
	return 0
}
