package user

import (
	"activity-partner/internal/engagement"
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/logger"
	"log/slog"
)

var (
	log   *slog.Logger
	graph *engagement.Graph
)

type ModuleUser struct{}

func (u *ModuleUser) GetName() string {
	return "User"
}

func (u *ModuleUser) Init() {
	log = logger.New("User")
	graph = engagement.NewGraph(database.DB, nil)
}

func selfInit() {
	u := &ModuleUser{}
	u.Init()
}
