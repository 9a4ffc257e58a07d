package gateway

import (
	"context"

	"github.com/rs/zerolog"
)

// PaymentGateway - мобильные платежи (Airtel Money и подобные).
// Подтверждение шлюза никогда не держит блокировку счета: депозит
// подтверждается до расчета, вывод - после.
type PaymentGateway interface {
	// Charge - принять деньги от пользователя
	Charge(ctx context.Context, amount float64, phone, reference string) error
	// Payout - выплатить деньги пользователю
	Payout(ctx context.Context, amount float64, phone, reference string) error
}

// Заглушка вместо реальной интеграции: всегда подтверждает операцию.
// Боевой клиент должен ходить в merchant API шлюза с тем же интерфейсом.
type stub struct {
	log zerolog.Logger
}

func NewStub(log zerolog.Logger) PaymentGateway {
	return &stub{log: log}
}

func (s *stub) Charge(ctx context.Context, amount float64, phone, reference string) error {
	s.log.Info().
		Float64("amount", amount).
		Str("phone", phone).
		Str("reference", reference).
		Msg("gateway charge accepted (stub)")
	return nil
}

func (s *stub) Payout(ctx context.Context, amount float64, phone, reference string) error {
	s.log.Info().
		Float64("amount", amount).
		Str("phone", phone).
		Str("reference", reference).
		Msg("gateway payout accepted (stub)")
	return nil
}
