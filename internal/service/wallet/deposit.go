package wallet

import (
	"context"
	"fmt"
	"math"

	"github.com/afrinode-dev/Africlick/internal/model"

	"github.com/google/uuid"
)

// Deposit - зачисление симулированного депозита. Сначала подтверждение
// шлюза, потом атомарный расчет: до подтверждения баланс не трогаем.
// amount - сумма в деньгах, зачисляется floor(amount * ratio) поинтов
func (s *serv) Deposit(ctx context.Context, userID, amount int, phone, method string) (*model.DepositResult, error) {
	if amount < s.rules.MinDeposit() {
		return nil, model.ErrBelowMinimumDeposit
	}

	reference := fmt.Sprintf("DEP_%d_%s", userID, uuid.NewString())
	if err := s.gateway.Charge(ctx, float64(amount), phone, reference); err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}

	pointsAdded := int(math.Floor(float64(amount) * s.rules.PointsToMoneyRatio()))

	var res model.DepositResult
	err := s.coordinator.Settle(ctx, userID, func(txCtx context.Context, user *model.User) error {
		newBalance := user.Points + pointsAdded
		if err := s.userRepo.UpdateBalance(txCtx, userID, newBalance); err != nil {
			return err
		}
		if err := s.userRepo.AddTotalDeposited(txCtx, userID, amount); err != nil {
			return err
		}

		_, err := s.ledgerRepo.Append(txCtx, &model.LedgerEntry{
			UserID: userID,
			Kind:   model.KindDeposit,
			Amount: pointsAdded,
			Status: model.StatusCompleted,
			Detail: fmt.Sprintf("Dépôt %s (%s)", method, phone),
		})
		if err != nil {
			return err
		}

		res = model.DepositResult{
			PointsAdded: pointsAdded,
			NewBalance:  newBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Бонус за приглашение начисляется после коммита депозита
	// и не может завалить сам депозит
	if err := s.referralServ.OnDepositCompleted(ctx, userID); err != nil {
		s.log.Error().Err(err).Int("user_id", userID).Msg("referral bonus resolution failed")
	}

	return &res, nil
}
