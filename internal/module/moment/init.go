package moment

import (
	"activity-partner/config"
	"activity-partner/internal/engagement"
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/logger"
	"log/slog"
	"time"
)

var (
	log   *slog.Logger
	graph *engagement.Graph
)

type ModuleMoment struct{}

func (m *ModuleMoment) GetName() string {
	return "Moment"
}

func (m *ModuleMoment) Init() {
	log = logger.New("Moment")

	var gate engagement.ViewGate
	if database.RDB != nil {
		window := time.Duration(config.Get().Engagement.ViewDedupSeconds) * time.Second
		gate = engagement.NewRedisViewGate(database.RDB, window)
	}
	graph = engagement.NewGraph(database.DB, gate)
}

func selfInit() {
	m := &ModuleMoment{}
	m.Init()
}
