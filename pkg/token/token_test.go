package token

import (
	"testing"
	"time"

	"github.com/afrinode-dev/Africlick/internal/model"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := &model.User{ID: 42}

	tokenStr, err := GenerateAccessToken(user, secret, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyToken(tokenStr, secret)
	require.NoError(t, err)
	require.Equal(t, "42", claims.ID)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tokenStr, err := GenerateAccessToken(&model.User{ID: 1}, []byte("one"), time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(tokenStr, []byte("two"))
	require.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	tokenStr, err := GenerateAccessToken(&model.User{ID: 1}, []byte("s"), -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(tokenStr, []byte("s"))
	require.Error(t, err)
}

func TestRefreshTokenVerify(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	hash := HashRefreshToken(tok)
	require.True(t, VerifyRefreshToken(tok, hash))
	require.False(t, VerifyRefreshToken("forged", hash))
}
