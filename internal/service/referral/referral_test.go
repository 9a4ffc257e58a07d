package referral

import (
	"context"
	"testing"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestOnDepositCompletedGrantsBonusOnce(t *testing.T) {
	users := testutil.NewUserRepo(
		&model.User{ID: 1, Points: 0},
		&model.User{ID: 2, Points: 0},
	)
	ledger := testutil.NewLedgerRepo()
	referrals := testutil.NewReferralRepo(&model.Referral{
		ReferrerID: 1, RefereeID: 2, RefereeName: "Awa",
	})

	s := NewService(testutil.TxManager{}, users, ledger, referrals, testutil.DefaultRules(), zerolog.Nop())

	require.NoError(t, s.OnDepositCompleted(context.Background(), 2))

	referrer, _ := users.GetByID(context.Background(), 1)
	require.Equal(t, 100, referrer.Points)

	require.Len(t, ledger.Entries, 1)
	require.Equal(t, model.KindReferralBonus, ledger.Entries[0].Kind)
	require.Equal(t, 100, ledger.Entries[0].Amount)
	require.Contains(t, ledger.Entries[0].Detail, "Awa")

	// Повторный вызов - no-op
	require.NoError(t, s.OnDepositCompleted(context.Background(), 2))

	referrer, _ = users.GetByID(context.Background(), 1)
	require.Equal(t, 100, referrer.Points)
	require.Len(t, ledger.Entries, 1)
}

func TestOnDepositCompletedWithoutReferral(t *testing.T) {
	users := testutil.NewUserRepo(&model.User{ID: 2})
	ledger := testutil.NewLedgerRepo()

	s := NewService(testutil.TxManager{}, users, ledger, testutil.NewReferralRepo(), testutil.DefaultRules(), zerolog.Nop())

	require.NoError(t, s.OnDepositCompleted(context.Background(), 2))
	require.Empty(t, ledger.Entries)
}
