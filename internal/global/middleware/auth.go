package middleware

import (
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"strings"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// Auth 要求请求携带有效 token，且角色不低于 minRoleID
func Auth(minRoleID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		payload, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		if payload.RoleID < minRoleID {
			response.Fail(c, response.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(jwt.PayloadKey, payload)
		c.Next()
	}
}

// OptionalAuth token 有效时写入 payload，否则按游客处理
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if payload, valid := jwt.ParseToken(token); valid {
				c.Set(jwt.PayloadKey, payload)
			}
		}
		c.Next()
	}
}
