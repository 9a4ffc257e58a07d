package service

import (
	"context"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"
)

type AuthService interface {
	Register(ctx context.Context, user *model.User, referralCode string) (*model.User, error)
	VerifyAccount(ctx context.Context, phone, code string) (*model.User, error)
	ResendCode(ctx context.Context, phone string) error
	Login(ctx context.Context, phone, password string) (*model.AuthData, *model.User, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}

type WalletService interface {
	Deposit(ctx context.Context, userID, amount int, phone, method string) (*model.DepositResult, error)
	Withdraw(ctx context.Context, userID, amount int, phone, method string) (*model.WithdrawResult, error)
	CompleteTask(ctx context.Context, userID, taskID int) (newBalance int, taskPoints int, err error)
	Tasks(ctx context.Context) ([]model.Task, error)
	History(ctx context.Context, userID int) ([]model.HistoryEvent, error)
	WithdrawEarnings(ctx context.Context, adminID int) (totalWithdrawn int, err error)
}

type GameService interface {
	Play(ctx context.Context, userID int, gameID string, bet int) (*model.PlayResult, error)
	List() []model.Game
}

type WheelService interface {
	Spin(ctx context.Context, userID int, now time.Time) (*model.WheelSpinResult, error)
}

type ReferralService interface {
	// OnDepositCompleted - вызывается после коммита депозита.
	// Начисляет бонус рефереру ровно один раз за пару реферер-реферал
	OnDepositCompleted(ctx context.Context, refereeID int) error
}
