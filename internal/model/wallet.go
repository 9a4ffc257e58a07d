package model

import "time"

type Withdrawal struct {
	ID            int
	UserID        int
	TransactionID int // Ссылка на запись леджера
	Amount        int // Поинты
	MoneyAmount   float64
	Phone         string
	Method        string
	GatewayRef    string
	CreatedAt     time.Time
}

type DepositResult struct {
	PointsAdded int
	NewBalance  int
}

type WithdrawResult struct {
	MoneyAmount  float64
	WithdrawalID int
}
