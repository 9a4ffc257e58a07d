package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/afrinode-dev/Africlick/internal/engine"
	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/service/settlement"
	"github.com/afrinode-dev/Africlick/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testGames = []model.Game{
	{ID: "crash", Name: "Crash", Family: model.FamilyRange, MinBet: 10, Active: true, MinMultiplier: 0, MaxMultiplier: 3},
	{ID: "dice", Name: "Dés", Family: model.FamilyThreshold, MinBet: 20, Active: true, WinChance: 0.45, PayoutMultiplier: 2},
	{ID: "legacy", Name: "Ancien", Family: model.FamilyTable, MinBet: 10, Active: false, Multipliers: []float64{0, 2}},
}

type fixture struct {
	users    *testutil.UserRepo
	ledger   *testutil.LedgerRepo
	earnings *testutil.PoolRepo
	reserve  *testutil.PoolRepo
	serv     *serv
}

func newFixture(seed int64, users ...*model.User) *fixture {
	f := &fixture{
		users:    testutil.NewUserRepo(users...),
		ledger:   testutil.NewLedgerRepo(),
		earnings: testutil.NewPoolRepo(),
		reserve:  testutil.NewPoolRepo(),
	}

	coordinator := settlement.NewCoordinator(testutil.TxManager{}, f.users)
	e := engine.NewWithSource(0.05, 0.30, rand.New(rand.NewSource(seed)))

	f.serv = NewService(coordinator, f.users, f.ledger, f.earnings, f.reserve, e, testGames, zerolog.Nop())
	return f
}

func TestListSkipsInactive(t *testing.T) {
	f := newFixture(1)

	games := f.serv.List()
	require.Len(t, games, 2)
	require.Equal(t, "crash", games[0].ID)
	require.Equal(t, "dice", games[1].ID)
}

func TestPlayUnknownOrInactiveGame(t *testing.T) {
	f := newFixture(1, &model.User{ID: 1, Points: 100})

	_, err := f.serv.Play(context.Background(), 1, "poker", 10)
	require.ErrorIs(t, err, model.ErrGameNotFound)

	// Выключенная игра неотличима от несуществующей
	_, err = f.serv.Play(context.Background(), 1, "legacy", 10)
	require.ErrorIs(t, err, model.ErrGameNotFound)
}

func TestPlayBetTooSmall(t *testing.T) {
	f := newFixture(1, &model.User{ID: 1, Points: 100})

	_, err := f.serv.Play(context.Background(), 1, "dice", 19)
	require.ErrorIs(t, err, model.ErrBetTooSmall)
	require.Empty(t, f.ledger.Entries)
}

func TestPlayInsufficientFunds(t *testing.T) {
	f := newFixture(1, &model.User{ID: 1, Points: 15})

	_, err := f.serv.Play(context.Background(), 1, "dice", 20)
	require.ErrorIs(t, err, model.ErrInsufficientFunds)

	u, _ := f.users.GetByID(context.Background(), 1)
	require.Equal(t, 15, u.Points)
	require.Empty(t, f.ledger.Entries)
}

// Две одновременные ставки на весь баланс: блокировка счета пропускает
// ровно одну, вторая видит уже списанный баланс и отклоняется
func TestPlayConcurrentBetsSerialize(t *testing.T) {
	users := testutil.NewUserRepo(&model.User{ID: 1, Points: 10})
	txm := testutil.NewRowLockTxManager()
	locked := &testutil.LockingUserRepo{UserRepo: users, TxManager: txm}
	ledger := testutil.NewLedgerRepo()
	earnings := testutil.NewPoolRepo()
	reserve := testutil.NewPoolRepo()

	// Шанс выигрыша нулевой: прошедший раунд списывает всю ставку
	games := []model.Game{
		{ID: "dice", Name: "Dés", Family: model.FamilyThreshold, MinBet: 10, Active: true, WinChance: 0, PayoutMultiplier: 2},
	}

	coordinator := settlement.NewCoordinator(txm, locked)
	e := engine.NewWithSource(0.05, 0.30, rand.New(rand.NewSource(1)))
	s := NewService(coordinator, locked, ledger, earnings, reserve, e, games, zerolog.Nop())

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := s.Play(context.Background(), 1, "dice", 10)
			errs <- err
		}()
	}

	var rejected int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			require.ErrorIs(t, err, model.ErrInsufficientFunds)
			rejected++
		}
	}
	require.Equal(t, 1, rejected)

	// Списана одна ставка, баланс не ушел в минус, леджер сходится
	u, _ := users.GetByID(context.Background(), 1)
	require.Equal(t, 0, u.Points)
	require.Len(t, ledger.Entries, 1)
	require.Equal(t, 10+ledger.ActiveSum(1), u.Points)
}

func TestPlaySettlesAndSplits(t *testing.T) {
	f := newFixture(42, &model.User{ID: 1, Points: 10000})
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		before, _ := f.users.GetByID(ctx, 1)

		res, err := f.serv.Play(ctx, 1, "dice", 20)
		require.NoError(t, err)

		after, _ := f.users.GetByID(ctx, 1)
		require.Equal(t, res.NewBalance, after.Points)

		entry := f.ledger.Entries[len(f.ledger.Entries)-1]
		require.Equal(t, res.OutcomeKind, entry.Kind)
		require.Equal(t, after.Points-before.Points, entry.Amount)
	}

	// Сумма не-failed записей равна дельте баланса
	u, _ := f.users.GetByID(ctx, 1)
	require.Equal(t, 10000+f.ledger.ActiveSum(1), u.Points)

	// Каждый проигрыш кормит казну и резерв, каждый выигрыш дебетует резерв
	wins, losses := 0, 0
	for _, e := range f.ledger.Entries {
		if e.Kind == model.KindGameWin {
			wins++
		} else {
			losses++
		}
	}
	require.NotZero(t, wins)
	require.NotZero(t, losses)

	require.Len(t, f.earnings.Entries, losses)
	for _, e := range f.earnings.Entries {
		require.Equal(t, 1, e.Amount) // floor(20 * 0.05)
		require.Equal(t, model.SourceGameLoss, e.Source)
	}

	for _, e := range f.reserve.Entries {
		if e.Source == model.SourceGameLoss {
			require.Equal(t, 6, e.Amount) // floor(20 * 0.30)
		} else {
			require.Equal(t, model.SourceGameWin, e.Source)
			require.Negative(t, e.Amount)
		}
	}
}
