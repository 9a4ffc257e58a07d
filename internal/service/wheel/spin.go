package wheel

import (
	"context"
	"time"

	"github.com/afrinode-dev/Africlick/internal/engine"
	"github.com/afrinode-dev/Africlick/internal/metrics"
	"github.com/afrinode-dev/Africlick/internal/model"
)

// Spin - один спин колеса фортуны. Попытки сбрасываются при первом спине
// нового календарного дня, а не через 24 часа после предыдущего
func (s *serv) Spin(ctx context.Context, userID int, now time.Time) (*model.WheelSpinResult, error) {
	var res model.WheelSpinResult
	err := s.coordinator.Settle(ctx, userID, func(txCtx context.Context, user *model.User) error {
		attempts := user.WheelAttemptsLeft
		if user.LastWheelSpin == nil || !sameDay(*user.LastWheelSpin, now) {
			attempts = s.rules.WheelAttemptsPerDay()
		}
		if attempts <= 0 {
			return model.ErrNoAttemptsLeft
		}
		attempts--

		delta := s.engine.SpinWheel(s.wheelConfig.Prizes(), engine.WheelMultiplier(user.TotalDeposited))
		// Отрицательный приз не может увести баланс в минус
		if delta < -user.Points {
			delta = -user.Points
		}

		if err := s.userRepo.UpdateWheelState(txCtx, userID, now, attempts); err != nil {
			return err
		}

		newBalance := user.Points + delta
		if delta != 0 {
			if err := s.userRepo.UpdateBalance(txCtx, userID, newBalance); err != nil {
				return err
			}
			if _, err := s.ledgerRepo.Append(txCtx, &model.LedgerEntry{
				UserID: userID,
				Kind:   model.KindWheelPrize,
				Amount: delta,
				Status: model.StatusCompleted,
				Detail: "Roue de la fortune",
			}); err != nil {
				return err
			}
		}

		res = model.WheelSpinResult{
			PrizeDelta:   delta,
			AttemptsLeft: attempts,
			Balance:      newBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WheelSpins.Inc()

	return &res, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
