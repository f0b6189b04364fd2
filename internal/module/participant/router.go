package participant

import (
	"activity-partner/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModuleParticipant) InitRouter(r *gin.RouterGroup) {
	participantGroup := r.Group("/participant")

	participantGroup.Use(middleware.Auth(0))
	{
		participantGroup.POST("/join/:activity_id", Join)
		participantGroup.POST("/leave/:activity_id", Leave)
		participantGroup.POST("/review/:id", Review)

		participantGroup.GET("/list/:activity_id", ListParticipants)
		participantGroup.GET("/my/applications", MyApplications)
		participantGroup.GET("/my/activities", MyActivities)
	}
}
