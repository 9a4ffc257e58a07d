package game

import (
	"context"

	"github.com/afrinode-dev/Africlick/internal/metrics"
	"github.com/afrinode-dev/Africlick/internal/model"
)

// Play - один раунд игры. Исход считается движком до входа в расчет,
// под блокировкой счета остаются только проверка баланса и записи.
// Неизвестный или выключенный слаг - одна и та же ошибка
func (s *serv) Play(ctx context.Context, userID int, gameID string, bet int) (*model.PlayResult, error) {
	game, ok := s.games[gameID]
	if !ok || !game.Active {
		return nil, model.ErrGameNotFound
	}

	outcome, err := s.engine.PlayRound(&game, bet)
	if err != nil {
		return nil, err
	}

	var res model.PlayResult
	err = s.coordinator.Settle(ctx, userID, func(txCtx context.Context, user *model.User) error {
		if user.Points < bet {
			return model.ErrInsufficientFunds
		}

		newBalance := user.Points + outcome.Net
		if err := s.userRepo.UpdateBalance(txCtx, userID, newBalance); err != nil {
			return err
		}

		if _, err := s.ledgerRepo.Append(txCtx, &model.LedgerEntry{
			UserID: userID,
			Kind:   outcome.Kind,
			Amount: outcome.Net,
			Status: model.StatusCompleted,
			Detail: game.Name,
		}); err != nil {
			return err
		}

		// Проигрыш пополняет казну и резерв, выигрыш списывается из резерва
		if outcome.Commission != 0 {
			if err := s.earningsRepo.Append(txCtx, &model.PoolEntry{
				Amount: outcome.Commission,
				Source: model.SourceGameLoss,
				UserID: &userID,
				GameID: &game.ID,
			}); err != nil {
				return err
			}
		}
		if outcome.Reserve != 0 {
			source := model.SourceGameLoss
			if outcome.Reserve < 0 {
				source = model.SourceGameWin
			}
			if err := s.reserveRepo.Append(txCtx, &model.PoolEntry{
				Amount: outcome.Reserve,
				Source: source,
				UserID: &userID,
				GameID: &game.ID,
			}); err != nil {
				return err
			}
		}

		res = model.PlayResult{
			OutcomeKind: outcome.Kind,
			Multiplier:  outcome.Multiplier,
			WinAmount:   outcome.Payout,
			NewBalance:  newBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.Wagers.WithLabelValues(game.ID, string(outcome.Kind)).Inc()

	return &res, nil
}
