package user

import (
	"activity-partner/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 用户资料与关注关系。登录与签发 token 由认证服务负责
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")

	userGroup.Use(middleware.OptionalAuth())
	{
		userGroup.GET("/profile/:id", Profile)
		userGroup.GET("/following/:id", Following)
		userGroup.GET("/followers/:id", Followers)
		userGroup.GET("/follow-stats/:id", FollowStats)
	}

	authGroup := userGroup.Group("", middleware.Auth(0))
	{
		authGroup.GET("/me", Me)
		authGroup.PUT("/profile", UpdateProfile)

		authGroup.POST("/follow/:id", Follow)
		authGroup.DELETE("/follow/:id", Unfollow)
		authGroup.GET("/follow/check/:id", CheckFollowing)
	}
}
