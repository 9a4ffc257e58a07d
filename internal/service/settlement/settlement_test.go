package settlement

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/afrinode-dev/Africlick/internal/metrics"
	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/testutil"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestSettlePassesCurrentUserState(t *testing.T) {
	users := testutil.NewUserRepo(&model.User{ID: 1, Points: 50})
	c := NewCoordinator(testutil.TxManager{}, users)

	commits := promtestutil.ToFloat64(metrics.SettlementCommits)

	err := c.Settle(context.Background(), 1, func(txCtx context.Context, user *model.User) error {
		require.Equal(t, 50, user.Points)
		return users.UpdateBalance(txCtx, 1, user.Points+10)
	})
	require.NoError(t, err)

	u, _ := users.GetByID(context.Background(), 1)
	require.Equal(t, 60, u.Points)
	require.Equal(t, commits+1, promtestutil.ToFloat64(metrics.SettlementCommits))
}

func TestSettleBusinessRejectionIsNotARollback(t *testing.T) {
	users := testutil.NewUserRepo(&model.User{ID: 1})
	c := NewCoordinator(testutil.TxManager{}, users)

	rollbacks := promtestutil.ToFloat64(metrics.SettlementRollbacks)

	err := c.Settle(context.Background(), 1, func(context.Context, *model.User) error {
		return model.ErrInsufficientFunds
	})
	require.ErrorIs(t, err, model.ErrInsufficientFunds)
	require.Equal(t, rollbacks, promtestutil.ToFloat64(metrics.SettlementRollbacks))
}

func TestSettleUnexpectedErrorCountsRollback(t *testing.T) {
	users := testutil.NewUserRepo(&model.User{ID: 1})
	c := NewCoordinator(testutil.TxManager{}, users)

	rollbacks := promtestutil.ToFloat64(metrics.SettlementRollbacks)

	err := c.Settle(context.Background(), 1, func(context.Context, *model.User) error {
		return errors.New("connection reset")
	})
	require.Error(t, err)
	require.Equal(t, rollbacks+1, promtestutil.ToFloat64(metrics.SettlementRollbacks))
}

// Конкурентные расчеты по одному счету выполняются строго по очереди:
// каждый видит баланс после предыдущего, инкременты не теряются
func TestSettleSerializesOneAccount(t *testing.T) {
	users := testutil.NewUserRepo(&model.User{ID: 1})
	txm := testutil.NewRowLockTxManager()
	locked := &testutil.LockingUserRepo{UserRepo: users, TxManager: txm}
	c := NewCoordinator(txm, locked)

	const rounds = 50
	errs := make(chan error, rounds)
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Settle(context.Background(), 1, func(txCtx context.Context, user *model.User) error {
				return locked.UpdateBalance(txCtx, 1, user.Points+1)
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	u, _ := users.GetByID(context.Background(), 1)
	require.Equal(t, rounds, u.Points)
}
