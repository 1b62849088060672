package token_test

import (
	"testing"
	"time"

	"github.com/forgelabs/appforge/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *token.JWT {
	t.Helper()

	svc, err := token.NewJWT(token.Config{
		Secret: "test-secret",
	})
	require.NoError(t, err)

	return svc
}

func TestNewJWT(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		svc, err := token.NewJWT(token.Config{})
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("ok", func(t *testing.T) {
		svc, err := token.NewJWT(token.Config{Secret: "s"})
		assert.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestVerifyRoundTrip(t *testing.T) {
	svc := newService(t)

	in := token.Claims{AccountID: "acc-1", Email: "user@example.com"}

	signed, err := svc.IssueAccess(in)
	require.NoError(t, err)

	out, err := svc.Verify(signed, token.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestVerifyKindMismatch(t *testing.T) {
	svc := newService(t)

	in := token.Claims{AccountID: "acc-1", Email: "user@example.com"}

	access, err := svc.IssueAccess(in)
	require.NoError(t, err)

	refresh, err := svc.IssueRefresh(in)
	require.NoError(t, err)

	_, err = svc.Verify(access, token.KindRefresh)
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = svc.Verify(refresh, token.KindAccess)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	svc, err := token.NewJWT(token.Config{
		Secret:    "test-secret",
		AccessTTL: -time.Minute, // already expired at issue time
	})
	require.NoError(t, err)

	signed, err := svc.IssueAccess(token.Claims{AccountID: "acc-1", Email: "user@example.com"})
	require.NoError(t, err)

	_, err = svc.Verify(signed, token.KindAccess)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newService(t)

	other, err := token.NewJWT(token.Config{Secret: "another-secret"})
	require.NoError(t, err)

	signed, err := other.IssueAccess(token.Claims{AccountID: "acc-1"})
	require.NoError(t, err)

	_, err = svc.Verify(signed, token.KindAccess)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestRefresh(t *testing.T) {
	svc := newService(t)

	in := token.Claims{AccountID: "acc-1", Email: "user@example.com"}

	refresh, err := svc.IssueRefresh(in)
	require.NoError(t, err)

	access, err := svc.Refresh(refresh)
	require.NoError(t, err)

	out, err := svc.Verify(access, token.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	t.Run("access token cannot refresh", func(t *testing.T) {
		accessTok, err := svc.IssueAccess(in)
		require.NoError(t, err)

		_, err = svc.Refresh(accessTok)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})
}
