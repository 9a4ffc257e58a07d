package model

import "time"

type PoolSource string

const (
	SourceGameLoss      PoolSource = "game_loss"
	SourceGameWin       PoolSource = "game_win"
	SourceDepositFee    PoolSource = "deposit_fee"
	SourceWithdrawalFee PoolSource = "withdrawal_fee"
	SourcePayout        PoolSource = "payout"
)

// PoolEntry - запись в резервном фонде или в фонде заработка казны.
// Сумма записей резерва - отложенные средства на покрытие будущих выигрышей.
// Сумма записей заработка - прибыль площадки, доступная администратору.
type PoolEntry struct {
	ID        int
	Amount    int // Знаковая сумма в поинтах
	Source    PoolSource
	UserID    *int
	GameID    *string
	CreatedAt time.Time
}
