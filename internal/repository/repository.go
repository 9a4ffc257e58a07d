package repository

import (
	"context"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (id int, err error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByReferralCode(ctx context.Context, code string) (*model.User, error)

	// GetForUpdate - читает строку пользователя с блокировкой (FOR UPDATE).
	// Вызывается только внутри транзакции, сериализует расчеты по одному счету.
	GetForUpdate(ctx context.Context, id int) (*model.User, error)

	UpdateBalance(ctx context.Context, id int, balance int) error
	AddTotalDeposited(ctx context.Context, id int, amount int) error
	UpdateWheelState(ctx context.Context, id int, lastSpin time.Time, attemptsLeft int) error
	SetVerified(ctx context.Context, phone string) error
}

type LedgerRepository interface {
	Append(ctx context.Context, entry *model.LedgerEntry) (id int, err error)

	// MarkCompleted / MarkFailed - единственные допустимые переходы статуса
	// (pending -> completed | failed). Повторный переход - ErrInvalidStateTransition.
	MarkCompleted(ctx context.Context, id int) error
	MarkFailed(ctx context.Context, id int) error

	HistoryByUser(ctx context.Context, userID int) ([]model.LedgerEntry, error)
}

type ReserveRepository interface {
	Append(ctx context.Context, entry *model.PoolEntry) error
	Sum(ctx context.Context) (int, error)
}

type EarningsRepository interface {
	Append(ctx context.Context, entry *model.PoolEntry) error
	Sum(ctx context.Context) (int, error)

	// Lock - advisory-блокировка фонда до конца текущей транзакции.
	// Сериализует одновременные выплаты заработка разными администраторами
	Lock(ctx context.Context) error
}

type ReferralRepository interface {
	Create(ctx context.Context, referral *model.Referral) error

	// ClaimBonus - атомарно переводит bonus_given из false в true и возвращает
	// реферера. ok=false, если пользователя никто не приглашал либо бонус уже выдан.
	ClaimBonus(ctx context.Context, refereeID int) (referrerID int, refereeName string, ok bool, err error)
}

type TaskRepository interface {
	ListActive(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id int) (*model.Task, error)
}

type WithdrawalRepository interface {
	Create(ctx context.Context, w *model.Withdrawal) (id int, err error)
	SetGatewayRef(ctx context.Context, id int, ref string) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

// CodeRepository - хранилище кодов подтверждения с TTL.
type CodeRepository interface {
	Save(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}
