package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// RulesConfig - бизнес-константы платформы. Конструируется один раз при
// старте и передается по ссылке, никакого глобального состояния.
type RulesConfig interface {
	MinDeposit() int
	MinWithdraw() int
	PointsToMoneyRatio() float64
	WheelAttemptsPerDay() int
	ReferralBonus() int
	HouseEdge() float64
	ReservePercentage() float64
}

type WheelConfig interface {
	Prizes() []int
}

type OfferWallsConfig interface {
	URLs() map[string]string
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type RedisConfig interface {
	Addr() string
	Password() string
}

type SMTPConfig interface {
	Host() string
	Port() int
	Username() string
	Password() string
	From() string
	// Домен SMS-шлюза, на который уходят коды для голых номеров телефона
	GatewayDomain() string
}

type FilesConfig interface {
	UploadDir() string
}
