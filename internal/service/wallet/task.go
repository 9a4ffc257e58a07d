package wallet

import (
	"context"

	"github.com/afrinode-dev/Africlick/internal/model"
)

// Tasks - список активных заданий
func (s *serv) Tasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.ListActive(ctx)
}

// CompleteTask - начисляет поинты за выполненное задание.
// Повторная отправка того же задания начисляет поинты снова,
// дедупликацию держит клиент
func (s *serv) CompleteTask(ctx context.Context, userID, taskID int) (int, int, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return 0, 0, err
	}

	var newBalance int
	err = s.coordinator.Settle(ctx, userID, func(txCtx context.Context, user *model.User) error {
		newBalance = user.Points + task.Points
		if err := s.userRepo.UpdateBalance(txCtx, userID, newBalance); err != nil {
			return err
		}

		_, err := s.ledgerRepo.Append(txCtx, &model.LedgerEntry{
			UserID: userID,
			Kind:   model.KindTaskReward,
			Amount: task.Points,
			Status: model.StatusCompleted,
			Detail: task.Title,
		})
		return err
	})
	if err != nil {
		return 0, 0, err
	}

	return newBalance, task.Points, nil
}
