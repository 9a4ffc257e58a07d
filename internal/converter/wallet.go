package converter

import (
	"github.com/afrinode-dev/Africlick/internal/api/dto/wallet"
	"github.com/afrinode-dev/Africlick/internal/model"
)

func ToDepositResponse(res *model.DepositResult) wallet.DepositResponse {
	return wallet.DepositResponse{
		PointsAdded: res.PointsAdded,
		NewBalance:  res.NewBalance,
	}
}

func ToWithdrawResponse(res *model.WithdrawResult) wallet.WithdrawResponse {
	return wallet.WithdrawResponse{
		MoneyAmount:  res.MoneyAmount,
		WithdrawalID: res.WithdrawalID,
	}
}

func ToHistoryEvents(events []model.HistoryEvent) []wallet.HistoryEvent {
	result := make([]wallet.HistoryEvent, len(events))
	for i, e := range events {
		result[i] = wallet.HistoryEvent{
			Date:   e.Date,
			Label:  e.Label,
			Points: e.Points,
			Status: e.Status,
		}
	}
	return result
}

func ToTasks(tasks []model.Task) []wallet.Task {
	result := make([]wallet.Task, len(tasks))
	for i, t := range tasks {
		result[i] = wallet.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Points:      t.Points,
			Type:        t.Type,
			Icon:        t.Icon,
		}
	}
	return result
}
