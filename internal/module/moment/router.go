package moment

import (
	"activity-partner/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleMoment) InitRouter(r *gin.RouterGroup) {
	momentGroup := r.Group("/moment")

	momentGroup.Use(middleware.OptionalAuth())
	{
		momentGroup.GET("/list", ListMoments)
		momentGroup.GET("/get/:id", GetMoment)
		momentGroup.GET("/user/:user_id", UserMoments)
		momentGroup.GET("/comments/:id", ListComments)
	}

	authGroup := momentGroup.Group("", middleware.Auth(0))
	{
		authGroup.POST("/create", CreateMoment)
		authGroup.GET("/my", MyMoments)
		authGroup.PUT("/update/:id", UpdateMoment)
		authGroup.DELETE("/delete/:id", DeleteMoment)

		authGroup.POST("/like/:id", Like)
		authGroup.DELETE("/like/:id", Unlike)
		authGroup.POST("/comment/:id", AddComment)
	}
}
