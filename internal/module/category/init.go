package category

import (
	"activity-partner/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleCategory struct{}

func (p *ModuleCategory) GetName() string {
	return "Category"
}

func (p *ModuleCategory) Init() {
	log = logger.New("Category")
}

func selfInit() {
	p := &ModuleCategory{}
	p.Init()
}
