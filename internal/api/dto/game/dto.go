package game

type PlayRequest struct {
	Bet int `json:"bet"` // Размер ставки (положительное целое, >0)
}

type PlayResponse struct {
	Outcome    string  `json:"outcome"` // game_win | game_loss
	Multiplier float64 `json:"multiplier"`
	WinAmount  int     `json:"win_amount"` // Брутто-выплата
	Balance    int     `json:"balance"`    // Баланс после
}

type Game struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	MinBet int    `json:"min_bet"`
}
