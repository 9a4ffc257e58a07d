package game

import (
	"github.com/rs/zerolog"

	"github.com/afrinode-dev/Africlick/internal/engine"
	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"
	def "github.com/afrinode-dev/Africlick/internal/service"
	"github.com/afrinode-dev/Africlick/internal/service/settlement"
)

var _ def.GameService = (*serv)(nil)

type serv struct {
	coordinator  *settlement.Coordinator
	userRepo     repository.UserRepository
	ledgerRepo   repository.LedgerRepository
	earningsRepo repository.EarningsRepository
	reserveRepo  repository.ReserveRepository
	engine       *engine.Engine

	games map[string]model.Game
	order []string

	log zerolog.Logger
}

func NewService(
	coordinator *settlement.Coordinator,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	earningsRepo repository.EarningsRepository,
	reserveRepo repository.ReserveRepository,
	gameEngine *engine.Engine,
	games []model.Game,
	log zerolog.Logger,
) *serv {
	byID := make(map[string]model.Game, len(games))
	order := make([]string, 0, len(games))
	for _, g := range games {
		byID[g.ID] = g
		order = append(order, g.ID)
	}

	return &serv{
		coordinator:  coordinator,
		userRepo:     userRepo,
		ledgerRepo:   ledgerRepo,
		earningsRepo: earningsRepo,
		reserveRepo:  reserveRepo,
		engine:       gameEngine,
		games:        byID,
		order:        order,
		log:          log,
	}
}

// List - каталог активных игр в порядке конфига
func (s *serv) List() []model.Game {
	out := make([]model.Game, 0, len(s.order))
	for _, id := range s.order {
		if g := s.games[id]; g.Active {
			out = append(out, g)
		}
	}
	return out
}
