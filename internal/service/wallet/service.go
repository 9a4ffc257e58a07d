package wallet

import (
	"github.com/afrinode-dev/Africlick/internal/client/gateway"
	"github.com/afrinode-dev/Africlick/internal/config"
	"github.com/afrinode-dev/Africlick/internal/repository"
	"github.com/afrinode-dev/Africlick/internal/service"
	"github.com/afrinode-dev/Africlick/internal/service/settlement"

	"github.com/rs/zerolog"
)

type serv struct {
	coordinator    *settlement.Coordinator
	userRepo       repository.UserRepository
	ledgerRepo     repository.LedgerRepository
	earningsRepo   repository.EarningsRepository
	taskRepo       repository.TaskRepository
	withdrawalRepo repository.WithdrawalRepository
	gateway        gateway.PaymentGateway
	referralServ   service.ReferralService
	rules          config.RulesConfig
	log            zerolog.Logger
}

func NewWalletService(
	coordinator *settlement.Coordinator,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	earningsRepo repository.EarningsRepository,
	taskRepo repository.TaskRepository,
	withdrawalRepo repository.WithdrawalRepository,
	gw gateway.PaymentGateway,
	referralServ service.ReferralService,
	rules config.RulesConfig,
	log zerolog.Logger,
) service.WalletService {
	return &serv{
		coordinator:    coordinator,
		userRepo:       userRepo,
		ledgerRepo:     ledgerRepo,
		earningsRepo:   earningsRepo,
		taskRepo:       taskRepo,
		withdrawalRepo: withdrawalRepo,
		gateway:        gw,
		referralServ:   referralServ,
		rules:          rules,
		log:            log,
	}
}
