package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/afrinode-dev/Africlick/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// CodeSender - доставка кода подтверждения на указанный адрес.
type CodeSender interface {
	Send(ctx context.Context, destination, code string) error
}

// SMTP отправитель. Голый номер телефона превращается в адрес
// SMS-шлюза (<номер>@<домен>), обычный адрес уходит как есть.
type sender struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSender(cfg config.SMTPConfig) CodeSender {
	return &sender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host(), cfg.Port(), cfg.Username(), cfg.Password()),
	}
}

func (s *sender) Send(ctx context.Context, destination, code string) error {
	to := destination
	if !strings.Contains(to, "@") && s.cfg.GatewayDomain() != "" {
		to = to + "@" + s.cfg.GatewayDomain()
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From())
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Code de vérification Africlick")
	m.SetBody("text/plain", fmt.Sprintf("Ton code de vérification est : %s", code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}
