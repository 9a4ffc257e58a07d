package wallet

import (
	"context"

	"github.com/afrinode-dev/Africlick/internal/model"
)

// Подписи событий для записей без собственного описания
var kindLabels = map[model.LedgerKind]string{
	model.KindDeposit:         "Dépôt",
	model.KindWithdrawal:      "Retrait",
	model.KindGameWin:         "Gain de jeu",
	model.KindGameLoss:        "Perte de jeu",
	model.KindReferralBonus:   "Bonus de parrainage",
	model.KindAdminWithdrawal: "Retrait des gains",
	model.KindTaskReward:      "Tâche complétée",
	model.KindWheelPrize:      "Roue de la fortune",
}

// History - хронология по счету, новые события первыми. Депозиты, выводы,
// игры, задания и спины колеса идут одной лентой из леджера
func (s *serv) History(ctx context.Context, userID int) ([]model.HistoryEvent, error) {
	entries, err := s.ledgerRepo.HistoryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	events := make([]model.HistoryEvent, 0, len(entries))
	for _, e := range entries {
		label := e.Detail
		if label == "" {
			label = kindLabels[e.Kind]
		}
		events = append(events, model.HistoryEvent{
			Date:   e.CreatedAt,
			Label:  label,
			Points: e.Amount,
			Status: string(e.Status),
		})
	}

	return events, nil
}
