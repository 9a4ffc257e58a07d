package model

import "errors"

// Бизнес-ошибки. Возвращаются сервисами как есть, без отката уже
// закоммиченных изменений - проверки выполняются до любой мутации.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrBelowMinimumDeposit  = errors.New("deposit below minimum")
	ErrBelowMinimumWithdraw = errors.New("withdraw below minimum")
	ErrBetTooSmall          = errors.New("bet below game minimum")
	ErrNoAttemptsLeft       = errors.New("no wheel attempts left today")
	ErrDuplicatePhone       = errors.New("phone already registered")
	ErrGameNotFound         = errors.New("game not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountNotVerified   = errors.New("account not verified")
	ErrInvalidCode          = errors.New("invalid or expired verification code")
	ErrForbidden            = errors.New("forbidden")
	ErrNoEarningsAvailable  = errors.New("no earnings available")

	// Конфликт состояния: повторный перевод статуса записи леджера.
	// Признак гонки или бага, наружу уходит как внутренняя ошибка.
	ErrInvalidStateTransition = errors.New("invalid ledger state transition")
)

// IsBusinessRejection - ожидаемый отказ бизнес-правила. Такие откаты -
// нормальные исходы расчета, а не сбои
func IsBusinessRejection(err error) bool {
	for _, e := range []error{
		ErrInsufficientFunds,
		ErrBelowMinimumDeposit,
		ErrBelowMinimumWithdraw,
		ErrBetTooSmall,
		ErrNoAttemptsLeft,
		ErrNoEarningsAvailable,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
