package wheel

import (
	"github.com/rs/zerolog"

	"github.com/afrinode-dev/Africlick/internal/config"
	"github.com/afrinode-dev/Africlick/internal/engine"
	"github.com/afrinode-dev/Africlick/internal/repository"
	def "github.com/afrinode-dev/Africlick/internal/service"
	"github.com/afrinode-dev/Africlick/internal/service/settlement"
)

var _ def.WheelService = (*serv)(nil)

type serv struct {
	coordinator *settlement.Coordinator
	userRepo    repository.UserRepository
	ledgerRepo  repository.LedgerRepository
	engine      *engine.Engine
	wheelConfig config.WheelConfig
	rules       config.RulesConfig
	log         zerolog.Logger
}

func NewService(
	coordinator *settlement.Coordinator,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	wheelEngine *engine.Engine,
	wheelConfig config.WheelConfig,
	rules config.RulesConfig,
	log zerolog.Logger,
) *serv {
	return &serv{
		coordinator: coordinator,
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
		engine:      wheelEngine,
		wheelConfig: wheelConfig,
		rules:       rules,
		log:         log,
	}
}
