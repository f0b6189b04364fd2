package activity

import (
	"activity-partner/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	// 定义活动模块的路由组，所有活动相关端点以 /activity 为前缀
	activityGroup := r.Group("/activity")

	activityGroup.Use(middleware.OptionalAuth())
	{
		activityGroup.GET("/list", ListActivities)
		activityGroup.GET("/get/:id", GetActivity)
	}

	authGroup := activityGroup.Group("", middleware.Auth(0))
	{
		authGroup.POST("/create", CreateActivity)

		// 只有发起人可以操作
		authGroup.POST("/cancel/:id", CancelActivity)
		authGroup.POST("/end/:id", EndActivity)
		authGroup.GET("/export/:id", ExportRoster)
	}
}
