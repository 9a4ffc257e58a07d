package wallet

import (
	"context"
	"fmt"
	"math"

	"github.com/afrinode-dev/Africlick/internal/model"

	"github.com/google/uuid"
)

// Withdraw - заявка на вывод. Поинты списываются сразу под блокировкой
// счета, запись леджера остается pending до ответа шлюза: подтверждение -
// completed, отказ - failed плюс возврат поинтов отдельным расчетом.
// Шлюз никогда не вызывается под блокировкой счета
func (s *serv) Withdraw(ctx context.Context, userID, amount int, phone, method string) (*model.WithdrawResult, error) {
	if amount < s.rules.MinWithdraw() {
		return nil, model.ErrBelowMinimumWithdraw
	}

	moneyAmount := roundMoney(float64(amount) * s.rules.PointsToMoneyRatio())

	var (
		entryID      int
		withdrawalID int
	)
	err := s.coordinator.Settle(ctx, userID, func(txCtx context.Context, user *model.User) error {
		// Баланс проверяется по свежей строке под блокировкой
		if user.Points < amount {
			return model.ErrInsufficientFunds
		}

		if err := s.userRepo.UpdateBalance(txCtx, userID, user.Points-amount); err != nil {
			return err
		}

		var err error
		entryID, err = s.ledgerRepo.Append(txCtx, &model.LedgerEntry{
			UserID: userID,
			Kind:   model.KindWithdrawal,
			Amount: -amount,
			Status: model.StatusPending,
			Detail: fmt.Sprintf("Retrait %s (%s)", method, phone),
		})
		if err != nil {
			return err
		}

		withdrawalID, err = s.withdrawalRepo.Create(txCtx, &model.Withdrawal{
			UserID:        userID,
			TransactionID: entryID,
			Amount:        amount,
			MoneyAmount:   moneyAmount,
			Phone:         phone,
			Method:        method,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	reference := fmt.Sprintf("WTD_%d_%s", userID, uuid.NewString())
	if err := s.gateway.Payout(ctx, moneyAmount, phone, reference); err != nil {
		s.log.Error().Err(err).Int("withdrawal_id", withdrawalID).Msg("gateway payout rejected, refunding")
		if refundErr := s.refund(ctx, userID, amount, entryID); refundErr != nil {
			return nil, refundErr
		}
		return nil, fmt.Errorf("payment gateway: %w", err)
	}

	if err := s.ledgerRepo.MarkCompleted(ctx, entryID); err != nil {
		return nil, err
	}
	if err := s.withdrawalRepo.SetGatewayRef(ctx, withdrawalID, reference); err != nil {
		s.log.Warn().Err(err).Int("withdrawal_id", withdrawalID).Msg("failed to store gateway ref")
	}

	return &model.WithdrawResult{
		MoneyAmount:  moneyAmount,
		WithdrawalID: withdrawalID,
	}, nil
}

// refund - возврат поинтов после отказа шлюза. Запись леджера уходит в
// failed и перестает учитываться в сумме по счету, баланс восстанавливается
func (s *serv) refund(ctx context.Context, userID, amount, entryID int) error {
	return s.coordinator.Settle(ctx, userID, func(txCtx context.Context, user *model.User) error {
		if err := s.ledgerRepo.MarkFailed(txCtx, entryID); err != nil {
			return err
		}
		return s.userRepo.UpdateBalance(txCtx, userID, user.Points+amount)
	})
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
