package wallet

import (
	"context"

	"github.com/afrinode-dev/Africlick/internal/model"
)

// WithdrawEarnings - администратор забирает накопленный заработок казны.
// Положительная сумма фонда конвертируется в поинты на счете администратора
// и гасится встречной отрицательной записью - все в одном расчете
func (s *serv) WithdrawEarnings(ctx context.Context, adminID int) (int, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return 0, err
	}
	if !admin.IsAdmin {
		return 0, model.ErrForbidden
	}

	var total int
	err = s.coordinator.Settle(ctx, adminID, func(txCtx context.Context, user *model.User) error {
		// Блокировка строки администратора не сериализует двух разных
		// администраторов, фонд защищает своя advisory-блокировка
		if err := s.earningsRepo.Lock(txCtx); err != nil {
			return err
		}

		var err error
		total, err = s.earningsRepo.Sum(txCtx)
		if err != nil {
			return err
		}
		if total <= 0 {
			return model.ErrNoEarningsAvailable
		}

		if err := s.earningsRepo.Append(txCtx, &model.PoolEntry{
			Amount: -total,
			Source: model.SourcePayout,
			UserID: &adminID,
		}); err != nil {
			return err
		}

		if err := s.userRepo.UpdateBalance(txCtx, adminID, user.Points+total); err != nil {
			return err
		}

		_, err = s.ledgerRepo.Append(txCtx, &model.LedgerEntry{
			UserID: adminID,
			Kind:   model.KindAdminWithdrawal,
			Amount: total,
			Status: model.StatusCompleted,
			Detail: "Retrait des gains de la maison",
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}
