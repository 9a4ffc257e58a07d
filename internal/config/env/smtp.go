package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/afrinode-dev/Africlick/internal/config"
)

const (
	smtpHostEnvName   = "SMTP_HOST"
	smtpPortEnvName   = "SMTP_PORT"
	smtpUserEnvName   = "SMTP_USER"
	smtpPwdEnvName    = "SMTP_PASSWORD"
	smtpFromEnvName   = "SMTP_FROM"
	smsGatewayEnvName = "SMS_GATEWAY_DOMAIN"
)

type smtpConfig struct {
	host          string
	port          int
	username      string
	password      string
	from          string
	gatewayDomain string
}

func NewSMTPConfig() (config.SMTPConfig, error) {
	host := os.Getenv(smtpHostEnvName)
	if len(host) == 0 {
		return nil, errors.New("smtp host not found")
	}

	portStr := os.Getenv(smtpPortEnvName)
	if len(portStr) == 0 {
		return nil, errors.New("smtp port not found")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp port: %w", err)
	}

	from := os.Getenv(smtpFromEnvName)
	if len(from) == 0 {
		return nil, errors.New("smtp from address not found")
	}

	return &smtpConfig{
		host:          host,
		port:          port,
		username:      os.Getenv(smtpUserEnvName),
		password:      os.Getenv(smtpPwdEnvName),
		from:          from,
		gatewayDomain: os.Getenv(smsGatewayEnvName),
	}, nil
}

func (cfg *smtpConfig) Host() string {
	return cfg.host
}

func (cfg *smtpConfig) Port() int {
	return cfg.port
}

func (cfg *smtpConfig) Username() string {
	return cfg.username
}

func (cfg *smtpConfig) Password() string {
	return cfg.password
}

func (cfg *smtpConfig) From() string {
	return cfg.from
}

func (cfg *smtpConfig) GatewayDomain() string {
	return cfg.gatewayDomain
}
