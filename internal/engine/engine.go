package engine

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"
)

// Engine - чистое разрешение ставок. Считает исход раунда и распределение
// комиссия/резерв, никуда не пишет. Балансами занимается расчетный слой.
type Engine struct {
	houseEdge  float64
	reservePct float64

	mu  sync.Mutex
	rnd *rand.Rand
}

func New(houseEdge, reservePct float64) *Engine {
	return NewWithSource(houseEdge, reservePct, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithSource - движок с заданным источником случайности (для тестов)
func NewWithSource(houseEdge, reservePct float64, rnd *rand.Rand) *Engine {
	return &Engine{
		houseEdge:  houseEdge,
		reservePct: reservePct,
		rnd:        rnd,
	}
}

// Outcome - денежный исход одного раунда.
type Outcome struct {
	Kind       model.LedgerKind // game_win либо game_loss
	Multiplier float64
	Payout     int // Брутто-выплата игроку (0 при полном проигрыше)
	Net        int // Payout - ставка, знаковая дельта баланса
	Commission int // Заработок казны (только при проигрыше)
	Reserve    int // Знаковая запись в резервный фонд
}

// PlayRound - разыгрывает один раунд игры.
// Ставка ниже минимума игры отклоняется до любых мутаций
func (e *Engine) PlayRound(game *model.Game, bet int) (*Outcome, error) {
	if bet < game.MinBet {
		return nil, model.ErrBetTooSmall
	}

	var mult float64
	switch game.Family {
	case model.FamilyRange:
		// Непрерывный множитель из диапазона. Все что <= 1 - полный проигрыш
		mult = game.MinMultiplier + e.float64()*(game.MaxMultiplier-game.MinMultiplier)
		if mult <= 1 {
			mult = 0
		}
	case model.FamilyTable:
		// Равновероятный выбор из таблицы. Множитель < 1 - частичный проигрыш
		mult = game.Multipliers[e.intn(len(game.Multipliers))]
	case model.FamilyThreshold:
		if e.float64() < game.WinChance {
			mult = game.PayoutMultiplier
		} else {
			mult = 0
		}
	default:
		return nil, model.ErrGameNotFound
	}

	payout := int(math.Floor(float64(bet) * mult))
	net := payout - bet

	out := &Outcome{
		Multiplier: mult,
		Payout:     payout,
		Net:        net,
	}

	if net >= 0 {
		// Выигрыш: резерв покрывает всю чистую выплату, комиссия не берется
		out.Kind = model.KindGameWin
		out.Reserve = -net
	} else {
		// Проигрыш: комиссия и резервный взнос считаются от ставки.
		// Их сумма может быть меньше ставки, остаток остается у казны
		out.Kind = model.KindGameLoss
		out.Commission = int(math.Floor(float64(bet) * e.houseEdge))
		out.Reserve = int(math.Floor(float64(bet) * e.reservePct))
	}

	return out, nil
}

// SpinWheel - розыгрыш колеса фортуны. Приз масштабируется множителем
// аккаунта и округляется до ближайшего целого; знак приза сохраняется
func (e *Engine) SpinWheel(prizes []int, multiplier float64) int {
	prize := prizes[e.intn(len(prizes))]
	return int(math.Round(float64(prize) * multiplier))
}

// WheelMultiplier - множитель колеса по суммарным депозитам:
// 1 + floor(total/5000) * 0.5
func WheelMultiplier(totalDeposited int) float64 {
	return 1 + float64(totalDeposited/5000)*0.5
}

func (e *Engine) float64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rnd.Float64()
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rnd.Intn(n)
}
