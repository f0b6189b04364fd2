package module

import (
	"activity-partner/internal/module/activity"
	"activity-partner/internal/module/category"
	"activity-partner/internal/module/moment"
	"activity-partner/internal/module/participant"
	"activity-partner/internal/module/ping"
	"activity-partner/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&user.ModuleUser{},
		&category.ModuleCategory{},
		&activity.ModuleActivity{},
		&participant.ModuleParticipant{},
		&moment.ModuleMoment{},
	})
}
