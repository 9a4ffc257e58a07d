package wallet

import "time"

type DepositRequest struct {
	Amount int    `json:"amount"` // Сумма в деньгах
	Phone  string `json:"phone"`
	Method string `json:"method"` // mtn | orange | moov
}

type DepositResponse struct {
	PointsAdded int `json:"points_added"`
	NewBalance  int `json:"new_balance"`
}

type WithdrawRequest struct {
	Amount int    `json:"amount"` // Поинты
	Phone  string `json:"phone"`
	Method string `json:"method"`
}

type WithdrawResponse struct {
	MoneyAmount  float64 `json:"money_amount"`
	WithdrawalID int     `json:"withdrawal_id"`
}

type HistoryEvent struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Points int       `json:"points"`
	Status string    `json:"status"`
}

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
}

type CompleteTaskResponse struct {
	NewBalance int `json:"new_balance"`
	TaskPoints int `json:"task_points"`
}

type WithdrawEarningsResponse struct {
	TotalWithdrawn int `json:"total_withdrawn"`
}
