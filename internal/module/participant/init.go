package participant

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

type ModuleParticipant struct{}

func (p *ModuleParticipant) GetName() string {
	return "Participant"
}

func (p *ModuleParticipant) Init() {
	log = logger.New("Participant")
	ledger = participation.NewLedger(database.DB)
}

func selfInit() {
	p := &ModuleParticipant{}
	p.Init()
}
