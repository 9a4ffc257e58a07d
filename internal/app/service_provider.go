package app

import (
	"context"

	authAPI "github.com/afrinode-dev/Africlick/internal/api/auth"
	gameAPI "github.com/afrinode-dev/Africlick/internal/api/game"
	walletAPI "github.com/afrinode-dev/Africlick/internal/api/wallet"
	wheelAPI "github.com/afrinode-dev/Africlick/internal/api/wheel"
	"github.com/afrinode-dev/Africlick/internal/client/filestore"
	"github.com/afrinode-dev/Africlick/internal/client/gateway"
	"github.com/afrinode-dev/Africlick/internal/client/mail"
	"github.com/afrinode-dev/Africlick/internal/config"
	"github.com/afrinode-dev/Africlick/internal/config/env"
	"github.com/afrinode-dev/Africlick/internal/engine"
	"github.com/afrinode-dev/Africlick/internal/logging"
	"github.com/afrinode-dev/Africlick/internal/middleware"
	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/repository"
	"github.com/afrinode-dev/Africlick/internal/repository/auth_repo"
	"github.com/afrinode-dev/Africlick/internal/repository/code_repo"
	"github.com/afrinode-dev/Africlick/internal/repository/ledger_repo"
	"github.com/afrinode-dev/Africlick/internal/repository/pool_repo"
	"github.com/afrinode-dev/Africlick/internal/repository/referral_repo"
	"github.com/afrinode-dev/Africlick/internal/repository/task_repo"
	"github.com/afrinode-dev/Africlick/internal/repository/user_repo"
	"github.com/afrinode-dev/Africlick/internal/repository/withdrawal_repo"
	"github.com/afrinode-dev/Africlick/internal/service"
	authServ "github.com/afrinode-dev/Africlick/internal/service/auth"
	gameServ "github.com/afrinode-dev/Africlick/internal/service/game"
	referralServ "github.com/afrinode-dev/Africlick/internal/service/referral"
	"github.com/afrinode-dev/Africlick/internal/service/settlement"
	walletServ "github.com/afrinode-dev/Africlick/internal/service/wallet"
	wheelServ "github.com/afrinode-dev/Africlick/internal/service/wheel"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const configPath = "config.yaml"

type ServiceProvider struct {
	logger *zerolog.Logger

	// TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis
	redisConfig config.RedisConfig
	redisClient *redis.Client

	// Configs
	httpCfg       config.HTTPConfig
	jwtCfg        config.JWTConfig
	smtpCfg       config.SMTPConfig
	filesCfg      config.FilesConfig
	rulesCfg      config.RulesConfig
	wheelCfg      config.WheelConfig
	offerWallsCfg config.OfferWallsConfig
	games         []model.Game

	// Repositories
	userRepo       repository.UserRepository
	ledgerRepo     repository.LedgerRepository
	reserveRepo    repository.ReserveRepository
	earningsRepo   repository.EarningsRepository
	referralRepo   repository.ReferralRepository
	taskRepo       repository.TaskRepository
	withdrawalRepo repository.WithdrawalRepository
	authRepo       repository.AuthRepository
	codeRepo       repository.CodeRepository

	// Clients
	paymentGateway gateway.PaymentGateway
	codeSender     mail.CodeSender
	fileStore      filestore.FileStore

	// Engine and settlement
	gameEngine  *engine.Engine
	coordinator *settlement.Coordinator

	// Services
	authService     service.AuthService
	walletService   service.WalletService
	gameService     service.GameService
	wheelService    service.WheelService
	referralService service.ReferralService

	// Handlers
	authHand   *authAPI.Handler
	walletHand *walletAPI.Handler
	gameHand   *gameAPI.Handler
	wheelHand  *wheelAPI.Handler

	// Router and HTTP config
	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) Logger() zerolog.Logger {
	if sp.logger == nil {
		l := logging.New()
		sp.logger = &l
	}
	return *sp.logger
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) RedisConfig() config.RedisConfig {
	if sp.redisConfig == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisConfig = cfg
	}
	return sp.redisConfig
}

func (sp *ServiceProvider) RedisClient() *redis.Client {
	if sp.redisClient == nil {
		sp.redisClient = redis.NewClient(&redis.Options{
			Addr:     sp.RedisConfig().Addr(),
			Password: sp.RedisConfig().Password(),
		})
	}
	return sp.redisClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) SMTPCfg() config.SMTPConfig {
	if sp.smtpCfg == nil {
		cfg, err := env.NewSMTPConfig()
		if err != nil {
			panic("failed to get smtp config: " + err.Error())
		}
		sp.smtpCfg = cfg
	}
	return sp.smtpCfg
}

func (sp *ServiceProvider) FilesCfg() config.FilesConfig {
	if sp.filesCfg == nil {
		cfg, err := env.NewFilesConfig()
		if err != nil {
			panic("failed to get files config: " + err.Error())
		}
		sp.filesCfg = cfg
	}
	return sp.filesCfg
}

func (sp *ServiceProvider) RulesCfg() config.RulesConfig {
	if sp.rulesCfg == nil {
		cfg, err := env.NewRulesConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get rules config: " + err.Error())
		}
		sp.rulesCfg = cfg
	}
	return sp.rulesCfg
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) OfferWallsCfg() config.OfferWallsConfig {
	if sp.offerWallsCfg == nil {
		cfg, err := env.NewOfferWallsConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get offer walls config: " + err.Error())
		}
		sp.offerWallsCfg = cfg
	}
	return sp.offerWallsCfg
}

func (sp *ServiceProvider) Games() []model.Game {
	if sp.games == nil {
		games, err := env.NewGamesConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get games config: " + err.Error())
		}
		sp.games = games
	}
	return sp.games
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.userRepo
}

func (sp *ServiceProvider) LedgerRepo(ctx context.Context) repository.LedgerRepository {
	if sp.ledgerRepo == nil {
		sp.ledgerRepo = ledger_repo.NewLedgerRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.ledgerRepo
}

func (sp *ServiceProvider) ReserveRepo(ctx context.Context) repository.ReserveRepository {
	if sp.reserveRepo == nil {
		sp.reserveRepo = pool_repo.NewReserveRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.reserveRepo
}

func (sp *ServiceProvider) EarningsRepo(ctx context.Context) repository.EarningsRepository {
	if sp.earningsRepo == nil {
		sp.earningsRepo = pool_repo.NewEarningsRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.earningsRepo
}

func (sp *ServiceProvider) ReferralRepo(ctx context.Context) repository.ReferralRepository {
	if sp.referralRepo == nil {
		sp.referralRepo = referral_repo.NewReferralRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.referralRepo
}

func (sp *ServiceProvider) TaskRepo(ctx context.Context) repository.TaskRepository {
	if sp.taskRepo == nil {
		sp.taskRepo = task_repo.NewTaskRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.taskRepo
}

func (sp *ServiceProvider) WithdrawalRepo(ctx context.Context) repository.WithdrawalRepository {
	if sp.withdrawalRepo == nil {
		sp.withdrawalRepo = withdrawal_repo.NewWithdrawalRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.withdrawalRepo
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) CodeRepo() repository.CodeRepository {
	if sp.codeRepo == nil {
		sp.codeRepo = code_repo.NewCodeRepository(sp.RedisClient())
	}
	return sp.codeRepo
}

func (sp *ServiceProvider) PaymentGateway() gateway.PaymentGateway {
	if sp.paymentGateway == nil {
		sp.paymentGateway = gateway.NewStub(sp.Logger())
	}
	return sp.paymentGateway
}

func (sp *ServiceProvider) CodeSender() mail.CodeSender {
	if sp.codeSender == nil {
		sp.codeSender = mail.NewSender(sp.SMTPCfg())
	}
	return sp.codeSender
}

func (sp *ServiceProvider) FileStore() filestore.FileStore {
	if sp.fileStore == nil {
		sp.fileStore = filestore.NewDiskStore(sp.FilesCfg().UploadDir())
	}
	return sp.fileStore
}

func (sp *ServiceProvider) GameEngine() *engine.Engine {
	if sp.gameEngine == nil {
		sp.gameEngine = engine.New(sp.RulesCfg().HouseEdge(), sp.RulesCfg().ReservePercentage())
	}
	return sp.gameEngine
}

func (sp *ServiceProvider) Coordinator(ctx context.Context) *settlement.Coordinator {
	if sp.coordinator == nil {
		sp.coordinator = settlement.NewCoordinator(sp.TXManager(ctx), sp.UserRepo(ctx))
	}
	return sp.coordinator
}

func (sp *ServiceProvider) ReferralService(ctx context.Context) service.ReferralService {
	if sp.referralService == nil {
		sp.referralService = referralServ.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.LedgerRepo(ctx),
			sp.ReferralRepo(ctx),
			sp.RulesCfg(),
			sp.Logger(),
		)
	}
	return sp.referralService
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authService == nil {
		sp.authService = authServ.NewAuthService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.ReferralRepo(ctx),
			sp.CodeRepo(),
			sp.CodeSender(),
			sp.JWTCfg(),
			sp.RulesCfg(),
			sp.Logger(),
		)
	}
	return sp.authService
}

func (sp *ServiceProvider) WalletService(ctx context.Context) service.WalletService {
	if sp.walletService == nil {
		sp.walletService = walletServ.NewWalletService(
			sp.Coordinator(ctx),
			sp.UserRepo(ctx),
			sp.LedgerRepo(ctx),
			sp.EarningsRepo(ctx),
			sp.TaskRepo(ctx),
			sp.WithdrawalRepo(ctx),
			sp.PaymentGateway(),
			sp.ReferralService(ctx),
			sp.RulesCfg(),
			sp.Logger(),
		)
	}
	return sp.walletService
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameService == nil {
		sp.gameService = gameServ.NewService(
			sp.Coordinator(ctx),
			sp.UserRepo(ctx),
			sp.LedgerRepo(ctx),
			sp.EarningsRepo(ctx),
			sp.ReserveRepo(ctx),
			sp.GameEngine(),
			sp.Games(),
			sp.Logger(),
		)
	}
	return sp.gameService
}

func (sp *ServiceProvider) WheelService(ctx context.Context) service.WheelService {
	if sp.wheelService == nil {
		sp.wheelService = wheelServ.NewService(
			sp.Coordinator(ctx),
			sp.UserRepo(ctx),
			sp.LedgerRepo(ctx),
			sp.GameEngine(),
			sp.WheelCfg(),
			sp.RulesCfg(),
			sp.Logger(),
		)
	}
	return sp.wheelService
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv: sp.AuthService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) WalletHandler(ctx context.Context) *walletAPI.Handler {
	if sp.walletHand == nil {
		sp.walletHand = walletAPI.NewHandler(walletAPI.HandlerDeps{
			Serv:       sp.WalletService(ctx),
			Files:      sp.FileStore(),
			OfferWalls: sp.OfferWallsCfg(),
			Log:        sp.Logger(),
		})
	}
	return sp.walletHand
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{Serv: sp.GameService(ctx)})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) WheelHandler(ctx context.Context) *wheelAPI.Handler {
	if sp.wheelHand == nil {
		sp.wheelHand = wheelAPI.NewHandler(wheelAPI.HandlerDeps{Serv: sp.WheelService(ctx)})
	}
	return sp.wheelHand
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/verify", authHandler.Verify)
			rr.Post("/resend-code", authHandler.ResendCode)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		walletHandler := sp.WalletHandler(ctx)
		gameHandler := sp.GameHandler(ctx)
		wheelHandler := sp.WheelHandler(ctx)

		// Публичные справочники
		r.Get("/offer-walls", walletHandler.OfferWalls)
		r.Handle("/metrics", promhttp.Handler())

		// Все под /api требует access токен
		r.Route("/api", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg()))

			rr.Post("/wallet/deposit", walletHandler.Deposit)
			rr.Post("/wallet/withdraw", walletHandler.Withdraw)
			rr.Get("/wallet/history", walletHandler.History)

			rr.Get("/tasks", walletHandler.Tasks)
			rr.Post("/tasks/{id}/complete", walletHandler.CompleteTask)

			rr.Get("/games", gameHandler.List)
			rr.Post("/games/{id}/play", gameHandler.Play)

			rr.Post("/wheel/spin", wheelHandler.Spin)

			rr.Post("/profile/picture", walletHandler.ProfilePicture)

			rr.Post("/admin/withdraw-earnings", walletHandler.WithdrawEarnings)
		})

		sp.router = r
	}

	return sp.router
}
