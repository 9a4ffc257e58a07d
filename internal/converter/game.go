package converter

import (
	"github.com/afrinode-dev/Africlick/internal/api/dto/game"
	"github.com/afrinode-dev/Africlick/internal/api/dto/wheel"
	"github.com/afrinode-dev/Africlick/internal/model"
)

func ToPlayResponse(res *model.PlayResult) game.PlayResponse {
	return game.PlayResponse{
		Outcome:    string(res.OutcomeKind),
		Multiplier: res.Multiplier,
		WinAmount:  res.WinAmount,
		Balance:    res.NewBalance,
	}
}

func ToGameList(games []model.Game) []game.Game {
	result := make([]game.Game, len(games))
	for i, g := range games {
		result[i] = game.Game{
			ID:     g.ID,
			Name:   g.Name,
			MinBet: g.MinBet,
		}
	}
	return result
}

func ToWheelSpinResponse(res *model.WheelSpinResult) wheel.SpinResponse {
	return wheel.SpinResponse{
		Prize:        res.PrizeDelta,
		AttemptsLeft: res.AttemptsLeft,
		Balance:      res.Balance,
	}
}
