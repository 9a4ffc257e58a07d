package model

type GameFamily string

const (
	// Непрерывный множитель из диапазона (crash-подобные игры)
	FamilyRange GameFamily = "range"
	// Дискретная таблица множителей
	FamilyTable GameFamily = "table"
	// Порог выигрыша с фиксированной выплатой
	FamilyThreshold GameFamily = "threshold"
)

type Game struct {
	ID     string
	Name   string
	MinBet int
	Active bool
	Family GameFamily

	// range
	MinMultiplier float64
	MaxMultiplier float64

	// table
	Multipliers []float64

	// threshold
	WinChance        float64
	PayoutMultiplier float64
}

type PlayResult struct {
	OutcomeKind LedgerKind
	Multiplier  float64
	WinAmount   int // Брутто-выплата (0 при полном проигрыше)
	NewBalance  int
}

type WheelSpinResult struct {
	PrizeDelta   int
	AttemptsLeft int
	Balance      int
}
