package auth

import (
	"context"
	"testing"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/internal/testutil"
	"github.com/afrinode-dev/Africlick/pkg/pass"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type jwtCfg struct{}

func (jwtCfg) AccessTokenSecretKey() []byte       { return []byte("test-secret") }
func (jwtCfg) AccessTokenDuration() time.Duration { return 15 * time.Minute }
func (jwtCfg) RefreshTokenDuration() time.Duration {
	return 30 * 24 * time.Hour
}

type fixture struct {
	users     *testutil.UserRepo
	auth      *testutil.AuthRepo
	referrals *testutil.ReferralRepo
	codes     *testutil.CodeRepo
	sender    *testutil.Sender
	serv      *serv
}

func newFixture(users ...*model.User) *fixture {
	f := &fixture{
		users:     testutil.NewUserRepo(users...),
		referrals: testutil.NewReferralRepo(),
		codes:     testutil.NewCodeRepo(),
		sender:    testutil.NewSender(),
	}
	f.auth = testutil.NewAuthRepo(f.users)

	f.serv = NewAuthService(
		testutil.TxManager{}, f.users, f.auth, f.referrals, f.codes,
		f.sender, jwtCfg{}, testutil.DefaultRules(), zerolog.Nop(),
	).(*serv)

	return f
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	f := newFixture()

	user, err := f.serv.Register(context.Background(), &model.User{
		Username: "Awa",
		Phone:    "070000001",
		Password: "secret123",
	}, "")
	require.NoError(t, err)

	require.NotZero(t, user.ID)
	require.False(t, user.Verified)
	require.Zero(t, user.Points)
	require.Len(t, user.ReferralCode, 8)
	require.NotEqual(t, "secret123", user.Password)

	// Код ушел и сохранен
	require.NotEmpty(t, f.sender.Sent["070000001"])
	require.Equal(t, f.sender.Sent["070000001"], f.codes.Codes["070000001"])
}

func TestRegisterDuplicatePhone(t *testing.T) {
	f := newFixture(&model.User{ID: 1, Phone: "070000001"})

	_, err := f.serv.Register(context.Background(), &model.User{
		Phone:    "070000001",
		Password: "secret123",
	}, "")
	require.ErrorIs(t, err, model.ErrDuplicatePhone)
}

func TestRegisterLinksReferrer(t *testing.T) {
	f := newFixture(&model.User{ID: 1, Phone: "070000009", ReferralCode: "ABCD1234"})

	user, err := f.serv.Register(context.Background(), &model.User{
		Username: "Moussa",
		Phone:    "070000002",
		Password: "secret123",
	}, "ABCD1234")
	require.NoError(t, err)

	require.Len(t, f.referrals.Rows, 1)
	require.Equal(t, 1, f.referrals.Rows[0].ReferrerID)
	require.Equal(t, user.ID, f.referrals.Rows[0].RefereeID)
	require.False(t, f.referrals.Rows[0].BonusGiven)
}

func TestRegisterUnknownReferralCodeIgnored(t *testing.T) {
	f := newFixture()

	_, err := f.serv.Register(context.Background(), &model.User{
		Phone:    "070000002",
		Password: "secret123",
	}, "NOPE0000")
	require.NoError(t, err)
	require.Empty(t, f.referrals.Rows)
}

func TestVerifyAccount(t *testing.T) {
	f := newFixture(&model.User{ID: 1, Phone: "070000001"})
	f.codes.Codes["070000001"] = "123456"

	user, err := f.serv.VerifyAccount(context.Background(), "070000001", "123456")
	require.NoError(t, err)
	require.True(t, user.Verified)

	// Код одноразовый
	_, err = f.serv.VerifyAccount(context.Background(), "070000001", "123456")
	require.ErrorIs(t, err, model.ErrInvalidCode)
}

func TestVerifyAccountWrongCode(t *testing.T) {
	f := newFixture(&model.User{ID: 1, Phone: "070000001"})
	f.codes.Codes["070000001"] = "123456"

	_, err := f.serv.VerifyAccount(context.Background(), "070000001", "654321")
	require.ErrorIs(t, err, model.ErrInvalidCode)
}

func TestLoginFlow(t *testing.T) {
	hash, err := pass.HashPassword("secret123")
	require.NoError(t, err)
	f := newFixture(&model.User{ID: 1, Phone: "070000001", Password: hash, Verified: true})

	data, user, err := f.serv.Login(context.Background(), "070000001", "secret123")
	require.NoError(t, err)
	require.Equal(t, 1, user.ID)
	require.NotEmpty(t, data.AccessToken)
	require.NotEmpty(t, data.SessionID)

	// Refresh выдает новый access токен по паре session_id + refresh_token
	newToken, err := f.serv.Refresh(context.Background(), data.SessionID, data.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newToken)

	// Чужой refresh токен отклоняется
	_, err = f.serv.Refresh(context.Background(), data.SessionID, "forged")
	require.Error(t, err)

	// Logout закрывает сессию
	require.NoError(t, f.serv.Logout(context.Background(), data.SessionID))
	_, err = f.serv.Refresh(context.Background(), data.SessionID, data.RefreshToken)
	require.Error(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, _ := pass.HashPassword("secret123")
	f := newFixture(&model.User{ID: 1, Phone: "070000001", Password: hash, Verified: true})

	_, _, err := f.serv.Login(context.Background(), "070000001", "wrong")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, _, err = f.serv.Login(context.Background(), "070000000", "secret123")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginRejectsUnverified(t *testing.T) {
	hash, _ := pass.HashPassword("secret123")
	f := newFixture(&model.User{ID: 1, Phone: "070000001", Password: hash, Verified: false})

	_, _, err := f.serv.Login(context.Background(), "070000001", "secret123")
	require.ErrorIs(t, err, model.ErrAccountNotVerified)
}

func TestResendCode(t *testing.T) {
	f := newFixture(&model.User{ID: 1, Phone: "070000001", Verified: false})

	require.NoError(t, f.serv.ResendCode(context.Background(), "070000001"))
	require.NotEmpty(t, f.codes.Codes["070000001"])

	// Подтвержденному аккаунту код не высылается
	require.NoError(t, f.users.SetVerified(context.Background(), "070000001"))
	require.ErrorIs(t, f.serv.ResendCode(context.Background(), "070000001"), model.ErrInvalidCode)
}
