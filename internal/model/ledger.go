package model

import "time"

type LedgerKind string

const (
	KindDeposit         LedgerKind = "deposit"
	KindWithdrawal      LedgerKind = "withdrawal"
	KindGameWin         LedgerKind = "game_win"
	KindGameLoss        LedgerKind = "game_loss"
	KindReferralBonus   LedgerKind = "referral_bonus"
	KindAdminWithdrawal LedgerKind = "admin_withdrawal"
	KindTaskReward      LedgerKind = "task_reward"
	KindWheelPrize      LedgerKind = "wheel_prize"
)

type LedgerStatus string

const (
	StatusPending   LedgerStatus = "pending"
	StatusCompleted LedgerStatus = "completed"
	StatusFailed    LedgerStatus = "failed"
)

// LedgerEntry - одна запись в леджере. Записи не изменяются после вставки,
// меняется только статус: pending -> completed либо pending -> failed.
type LedgerEntry struct {
	ID        int
	UserID    int
	Kind      LedgerKind
	Amount    int // Знаковая сумма в поинтах
	Status    LedgerStatus
	Detail    string
	CreatedAt time.Time
}

type HistoryEvent struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Points int       `json:"points"`
	Status string    `json:"status"`
}
