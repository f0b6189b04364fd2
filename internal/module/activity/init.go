package activity

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/logger"
	"activity-partner/internal/participation"
	"log/slog"
)

var (
	log    *slog.Logger
	ledger *participation.Ledger
)

type ModuleActivity struct{}

func (p *ModuleActivity) GetName() string {
	return "Activity"
}

func (p *ModuleActivity) Init() {
	log = logger.New("Activity")
	ledger = participation.NewLedger(database.DB)
}

func selfInit() {
	p := &ModuleActivity{}
	p.Init()
}
