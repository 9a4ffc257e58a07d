package wheel

type SpinResponse struct {
	Prize        int `json:"prize"` // Знаковая дельта поинтов
	AttemptsLeft int `json:"attempts_left"`
	Balance      int `json:"balance"` // Баланс после
}
