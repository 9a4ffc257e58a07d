package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/service/referral"
	"github.com/afrinode-dev/Africlick/internal/service/settlement"
	"github.com/afrinode-dev/Africlick/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users       *testutil.UserRepo
	ledger      *testutil.LedgerRepo
	earnings    *testutil.PoolRepo
	tasks       *testutil.TaskRepo
	withdrawals *testutil.WithdrawalRepo
	referrals   *testutil.ReferralRepo
	gateway     *testutil.Gateway
	rules       *testutil.Rules
	serv        *serv
}

func newFixture(rules *testutil.Rules, users ...*model.User) *fixture {
	f := &fixture{
		users:       testutil.NewUserRepo(users...),
		ledger:      testutil.NewLedgerRepo(),
		earnings:    testutil.NewPoolRepo(),
		tasks:       testutil.NewTaskRepo(),
		withdrawals: testutil.NewWithdrawalRepo(),
		referrals:   testutil.NewReferralRepo(),
		gateway:     &testutil.Gateway{},
		rules:       rules,
	}

	coordinator := settlement.NewCoordinator(testutil.TxManager{}, f.users)
	referralServ := referral.NewService(
		testutil.TxManager{}, f.users, f.ledger, f.referrals, rules, zerolog.Nop(),
	)

	f.serv = NewWalletService(
		coordinator, f.users, f.ledger, f.earnings, f.tasks, f.withdrawals,
		f.gateway, referralServ, rules, zerolog.Nop(),
	).(*serv)

	return f
}

// Баланс счета всегда равен сумме его не-failed записей леджера
func (f *fixture) requireConservation(t *testing.T, userID int) {
	t.Helper()
	u, err := f.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, f.ledger.ActiveSum(userID), u.Points)
}

func TestDepositCreditsFlooredPoints(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1, Phone: "070000001"})

	res, err := f.serv.Deposit(context.Background(), 1, 1000, "070000001", "mtn")
	require.NoError(t, err)

	require.Equal(t, 10, res.PointsAdded) // floor(1000 * 0.01)
	require.Equal(t, 10, res.NewBalance)

	u, _ := f.users.GetByID(context.Background(), 1)
	require.Equal(t, 1000, u.TotalDeposited)
	require.Equal(t, []float64{1000}, f.gateway.Charges)

	require.Len(t, f.ledger.Entries, 1)
	require.Equal(t, model.KindDeposit, f.ledger.Entries[0].Kind)
	require.Equal(t, model.StatusCompleted, f.ledger.Entries[0].Status)

	f.requireConservation(t, 1)
}

func TestDepositBelowMinimum(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1})

	_, err := f.serv.Deposit(context.Background(), 1, 999, "070000001", "mtn")
	require.ErrorIs(t, err, model.ErrBelowMinimumDeposit)
	require.Empty(t, f.gateway.Charges)
	require.Empty(t, f.ledger.Entries)
}

func TestDepositGatewayRejection(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1})
	f.gateway.ChargeErr = errors.New("carrier timeout")

	_, err := f.serv.Deposit(context.Background(), 1, 1000, "070000001", "mtn")
	require.Error(t, err)

	// Баланс не трогаем, пока шлюз не подтвердил платеж
	u, _ := f.users.GetByID(context.Background(), 1)
	require.Zero(t, u.Points)
	require.Empty(t, f.ledger.Entries)
}

func TestDepositGrantsReferralBonusOnce(t *testing.T) {
	referrer := &model.User{ID: 1, Phone: "070000001"}
	referee := &model.User{ID: 2, Phone: "070000002"}
	f := newFixture(testutil.DefaultRules(), referrer, referee)
	f.referrals.Rows = append(f.referrals.Rows, &model.Referral{
		ReferrerID: 1, RefereeID: 2, RefereeName: "Awa",
	})

	_, err := f.serv.Deposit(context.Background(), 2, 1000, "070000002", "mtn")
	require.NoError(t, err)

	u, _ := f.users.GetByID(context.Background(), 1)
	require.Equal(t, 100, u.Points)

	// Второй депозит бонус не дублирует
	_, err = f.serv.Deposit(context.Background(), 2, 1000, "070000002", "mtn")
	require.NoError(t, err)

	u, _ = f.users.GetByID(context.Background(), 1)
	require.Equal(t, 100, u.Points)

	f.requireConservation(t, 1)
	f.requireConservation(t, 2)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	rules := testutil.DefaultRules()
	rules.MinWd = 10
	f := newFixture(rules, &model.User{ID: 1, Points: 5})

	_, err := f.serv.Withdraw(context.Background(), 1, 10, "070000001", "mtn")
	require.ErrorIs(t, err, model.ErrInsufficientFunds)

	u, _ := f.users.GetByID(context.Background(), 1)
	require.Equal(t, 5, u.Points)
	require.Empty(t, f.gateway.Payouts)
}

func TestWithdrawBelowMinimum(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1, Points: 10000})

	_, err := f.serv.Withdraw(context.Background(), 1, 499, "070000001", "mtn")
	require.ErrorIs(t, err, model.ErrBelowMinimumWithdraw)
}

func TestWithdrawHappyPath(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1, Points: 1000})
	// Стартовый баланс закрываем депозитной записью, чтобы держался инвариант
	_, _ = f.ledger.Append(context.Background(), &model.LedgerEntry{UserID: 1, Kind: model.KindDeposit, Amount: 1000})

	res, err := f.serv.Withdraw(context.Background(), 1, 600, "070000001", "mtn")
	require.NoError(t, err)

	require.Equal(t, 6.0, res.MoneyAmount) // 600 * 0.01
	require.Equal(t, []float64{6.0}, f.gateway.Payouts)

	u, _ := f.users.GetByID(context.Background(), 1)
	require.Equal(t, 400, u.Points)

	require.Len(t, f.withdrawals.Rows, 1)
	require.NotEmpty(t, f.withdrawals.Rows[0].GatewayRef)

	entry := f.ledger.Entries[1]
	require.Equal(t, model.KindWithdrawal, entry.Kind)
	require.Equal(t, -600, entry.Amount)
	require.Equal(t, model.StatusCompleted, entry.Status)

	f.requireConservation(t, 1)
}

func TestWithdrawGatewayRejectionRefunds(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1, Points: 1000})
	_, _ = f.ledger.Append(context.Background(), &model.LedgerEntry{UserID: 1, Kind: model.KindDeposit, Amount: 1000})
	f.gateway.PayoutErr = errors.New("wallet unreachable")

	_, err := f.serv.Withdraw(context.Background(), 1, 600, "070000001", "mtn")
	require.Error(t, err)

	// Поинты вернулись, запись ушла в failed
	u, _ := f.users.GetByID(context.Background(), 1)
	require.Equal(t, 1000, u.Points)

	entry := f.ledger.Entries[1]
	require.Equal(t, model.StatusFailed, entry.Status)

	f.requireConservation(t, 1)
}

func TestCompleteTask(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1, Points: 0})
	f.tasks.Tasks = append(f.tasks.Tasks, &model.Task{ID: 3, Title: "Regarder une vidéo", Points: 25, Active: true})

	newBalance, taskPoints, err := f.serv.CompleteTask(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Equal(t, 25, newBalance)
	require.Equal(t, 25, taskPoints)

	require.Len(t, f.ledger.Entries, 1)
	require.Equal(t, model.KindTaskReward, f.ledger.Entries[0].Kind)

	f.requireConservation(t, 1)
}

func TestCompleteTaskUnknown(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1})

	_, _, err := f.serv.CompleteTask(context.Background(), 1, 42)
	require.ErrorIs(t, err, model.ErrTaskNotFound)
}

func TestHistoryLabelsAndOrder(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1})
	ctx := context.Background()

	_, _ = f.ledger.Append(ctx, &model.LedgerEntry{UserID: 1, Kind: model.KindDeposit, Amount: 10, Detail: "Dépôt mtn (070000001)"})
	_, _ = f.ledger.Append(ctx, &model.LedgerEntry{UserID: 1, Kind: model.KindWheelPrize, Amount: 50})

	events, err := f.serv.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Новые события первыми, пустой Detail подменяется подписью вида
	require.Equal(t, "Roue de la fortune", events[0].Label)
	require.Equal(t, "Dépôt mtn (070000001)", events[1].Label)
}

func TestWithdrawEarningsRequiresAdmin(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1, IsAdmin: false})

	_, err := f.serv.WithdrawEarnings(context.Background(), 1)
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestWithdrawEarningsEmptyPool(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1, IsAdmin: true})

	_, err := f.serv.WithdrawEarnings(context.Background(), 1)
	require.ErrorIs(t, err, model.ErrNoEarningsAvailable)
}

func TestWithdrawEarningsDrainsPool(t *testing.T) {
	f := newFixture(testutil.DefaultRules(), &model.User{ID: 1, IsAdmin: true})
	ctx := context.Background()

	uid := 2
	_ = f.earnings.Append(ctx, &model.PoolEntry{Amount: 30, Source: model.SourceGameLoss, UserID: &uid})
	_ = f.earnings.Append(ctx, &model.PoolEntry{Amount: 20, Source: model.SourceGameLoss, UserID: &uid})

	total, err := f.serv.WithdrawEarnings(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 50, total)

	u, _ := f.users.GetByID(ctx, 1)
	require.Equal(t, 50, u.Points)

	// Фонд погашен встречной записью
	sum, _ := f.earnings.Sum(ctx)
	require.Zero(t, sum)

	// Повторный вывод невозможен
	_, err = f.serv.WithdrawEarnings(ctx, 1)
	require.ErrorIs(t, err, model.ErrNoEarningsAvailable)

	f.requireConservation(t, 1)
}

// Два администратора забирают фонд одновременно: advisory-блокировка
// фонда пропускает одного, второй видит уже погашенную сумму
func TestWithdrawEarningsConcurrentAdminsDrainOnce(t *testing.T) {
	users := testutil.NewUserRepo(
		&model.User{ID: 1, IsAdmin: true},
		&model.User{ID: 2, IsAdmin: true},
	)
	txm := testutil.NewRowLockTxManager()
	locked := &testutil.LockingUserRepo{UserRepo: users, TxManager: txm}
	ledger := testutil.NewLedgerRepo()
	earnings := testutil.NewPoolRepo()
	earnings.TxManager = txm
	require.NoError(t, earnings.Append(context.Background(), &model.PoolEntry{Amount: 100, Source: model.SourceGameLoss}))

	coordinator := settlement.NewCoordinator(txm, locked)
	referralServ := referral.NewService(
		testutil.TxManager{}, users, ledger, testutil.NewReferralRepo(), testutil.DefaultRules(), zerolog.Nop(),
	)
	s := NewWalletService(
		coordinator, locked, ledger, earnings, testutil.NewTaskRepo(), testutil.NewWithdrawalRepo(),
		&testutil.Gateway{}, referralServ, testutil.DefaultRules(), zerolog.Nop(),
	).(*serv)

	type result struct {
		total int
		err   error
	}
	results := make(chan result, 2)
	for id := 1; id <= 2; id++ {
		go func(adminID int) {
			total, err := s.WithdrawEarnings(context.Background(), adminID)
			results <- result{total: total, err: err}
		}(id)
	}

	var drained, rejected int
	for i := 0; i < 2; i++ {
		r := <-results
		if r.err != nil {
			require.ErrorIs(t, r.err, model.ErrNoEarningsAvailable)
			rejected++
			continue
		}
		drained += r.total
	}
	require.Equal(t, 1, rejected)
	require.Equal(t, 100, drained)

	// Фонд погашен ровно один раз, не ушел в минус
	sum, err := earnings.Sum(context.Background())
	require.NoError(t, err)
	require.Zero(t, sum)
}
