package engine

import (
	"math/rand"
	"testing"

	"github.com/afrinode-dev/Africlick/internal/model"

	"github.com/stretchr/testify/require"
)

func newTestEngine(seed int64) *Engine {
	return NewWithSource(0.05, 0.30, rand.New(rand.NewSource(seed)))
}

func TestPlayRoundBetTooSmall(t *testing.T) {
	e := newTestEngine(1)
	game := &model.Game{ID: "crash", Family: model.FamilyRange, MinBet: 10, MinMultiplier: 0, MaxMultiplier: 3}

	_, err := e.PlayRound(game, 5)
	require.ErrorIs(t, err, model.ErrBetTooSmall)
}

func TestPlayRoundUnknownFamily(t *testing.T) {
	e := newTestEngine(1)
	game := &model.Game{ID: "weird", Family: "roulette", MinBet: 1}

	_, err := e.PlayRound(game, 10)
	require.ErrorIs(t, err, model.ErrGameNotFound)
}

func TestPlayRoundRangeFamily(t *testing.T) {
	e := newTestEngine(42)
	game := &model.Game{ID: "crash", Family: model.FamilyRange, MinBet: 10, MinMultiplier: 0, MaxMultiplier: 3}

	for i := 0; i < 1000; i++ {
		out, err := e.PlayRound(game, 100)
		require.NoError(t, err)

		if out.Multiplier == 0 {
			require.Equal(t, model.KindGameLoss, out.Kind)
			require.Equal(t, 0, out.Payout)
			require.Equal(t, -100, out.Net)
		} else {
			// Ненулевой множитель в range всегда > 1
			require.Greater(t, out.Multiplier, 1.0)
			require.Equal(t, model.KindGameWin, out.Kind)
			require.GreaterOrEqual(t, out.Net, 0)
		}
	}
}

func TestPlayRoundTableFamily(t *testing.T) {
	e := newTestEngine(7)
	game := &model.Game{
		ID:          "multiplier",
		Family:      model.FamilyTable,
		MinBet:      10,
		Multipliers: []float64{0, 0, 0.5, 1, 1.5, 2, 3, 10},
	}

	seen := map[float64]bool{}
	for i := 0; i < 1000; i++ {
		out, err := e.PlayRound(game, 10)
		require.NoError(t, err)
		seen[out.Multiplier] = true

		require.Equal(t, int(float64(10)*out.Multiplier), out.Payout)
	}

	// За 1000 раундов все восемь исходов должны выпасть
	for _, m := range []float64{0, 0.5, 1, 1.5, 2, 3, 10} {
		require.True(t, seen[m], "multiplier %v never drawn", m)
	}
}

func TestPlayRoundThresholdFamily(t *testing.T) {
	e := newTestEngine(99)
	game := &model.Game{
		ID:               "dice",
		Family:           model.FamilyThreshold,
		MinBet:           20,
		WinChance:        0.45,
		PayoutMultiplier: 2.0,
	}

	wins := 0
	for i := 0; i < 2000; i++ {
		out, err := e.PlayRound(game, 20)
		require.NoError(t, err)

		switch out.Kind {
		case model.KindGameWin:
			wins++
			require.Equal(t, 40, out.Payout)
			require.Equal(t, 20, out.Net)
		case model.KindGameLoss:
			require.Equal(t, 0, out.Payout)
			require.Equal(t, -20, out.Net)
		}
	}

	// Частота выигрышей в разумной окрестности win_chance
	require.InDelta(t, 0.45, float64(wins)/2000, 0.05)
}

func TestPlayRoundSplitNeverExceedsBet(t *testing.T) {
	e := newTestEngine(3)
	game := &model.Game{ID: "crash", Family: model.FamilyRange, MinBet: 10, MinMultiplier: 0, MaxMultiplier: 3}

	for i := 0; i < 1000; i++ {
		out, err := e.PlayRound(game, 73)
		require.NoError(t, err)

		if out.Kind == model.KindGameLoss {
			require.Equal(t, 3, out.Commission) // floor(73 * 0.05)
			require.Equal(t, 21, out.Reserve)   // floor(73 * 0.30)
			require.LessOrEqual(t, out.Commission+out.Reserve, 73)
		} else {
			require.Zero(t, out.Commission)
			require.Equal(t, -out.Net, out.Reserve)
		}
	}
}

func TestSpinWheel(t *testing.T) {
	e := newTestEngine(11)
	prizes := []int{50, 20, 30, 0, 10, 25, 15, 100}

	for i := 0; i < 200; i++ {
		prize := e.SpinWheel(prizes, 1.0)
		require.Contains(t, prizes, prize)
	}

	// Множитель 1.5 масштабирует приз с округлением
	got := map[int]bool{}
	for i := 0; i < 500; i++ {
		got[e.SpinWheel(prizes, 1.5)] = true
	}
	require.True(t, got[75]) // 50 * 1.5
	require.True(t, got[45]) // 30 * 1.5
	require.True(t, got[0])
}

func TestWheelMultiplier(t *testing.T) {
	require.Equal(t, 1.0, WheelMultiplier(0))
	require.Equal(t, 1.0, WheelMultiplier(4999))
	require.Equal(t, 1.5, WheelMultiplier(5000))
	require.Equal(t, 2.0, WheelMultiplier(10000))
	require.Equal(t, 2.0, WheelMultiplier(12500))
	require.Equal(t, 2.5, WheelMultiplier(15000))
}
