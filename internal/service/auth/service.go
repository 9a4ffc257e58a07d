package auth

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/afrinode-dev/Africlick/internal/client/mail"
	"github.com/afrinode-dev/Africlick/internal/config"
	"github.com/afrinode-dev/Africlick/internal/repository"
	"github.com/afrinode-dev/Africlick/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type serv struct {
	txManager    trm.Manager
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	referralRepo repository.ReferralRepository
	codeRepo     repository.CodeRepository
	sender       mail.CodeSender
	jwtConfig    config.JWTConfig
	rules        config.RulesConfig
	log          zerolog.Logger
}

func NewAuthService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	referralRepo repository.ReferralRepository,
	codeRepo repository.CodeRepository,
	sender mail.CodeSender,
	jwtConfig config.JWTConfig,
	rules config.RulesConfig,
	log zerolog.Logger,
) service.AuthService {
	return &serv{
		txManager:    txManager,
		userRepo:     userRepo,
		authRepo:     authRepo,
		referralRepo: referralRepo,
		codeRepo:     codeRepo,
		sender:       sender,
		jwtConfig:    jwtConfig,
		rules:        rules,
		log:          log,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}

// generateReferralCode - короткий уникальный код для приглашений
func generateReferralCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

// generateVerificationCode - шестизначный код подтверждения
func generateVerificationCode() string {
	return fmt.Sprintf("%06d", rand.Intn(900000)+100000)
}
