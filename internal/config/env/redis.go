package env

import (
	"errors"
	"os"

	"github.com/afrinode-dev/Africlick/internal/config"
)

const (
	redisAddrEnvName = "REDIS_ADDR"
	redisPwdEnvName  = "REDIS_PASSWORD"
)

type redisConfig struct {
	addr     string
	password string
}

func NewRedisConfig() (config.RedisConfig, error) {
	addr := os.Getenv(redisAddrEnvName)
	if len(addr) == 0 {
		return nil, errors.New("redis addr not found")
	}

	return &redisConfig{
		addr:     addr,
		password: os.Getenv(redisPwdEnvName),
	}, nil
}

func (cfg *redisConfig) Addr() string {
	return cfg.addr
}

func (cfg *redisConfig) Password() string {
	return cfg.password
}
