package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, secret string, ttl time.Duration) *Manager {
	t.Helper()

	m, err := NewManager(Config{Secret: []byte(secret), TTL: ttl})
	require.NoError(t, err)
	return m
}

func TestNewManager(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		_, err := NewManager(Config{})
		require.Error(t, err)
	})

	t.Run("defaults the TTL", func(t *testing.T) {
		m, err := NewManager(Config{Secret: []byte("s3cret")})
		require.NoError(t, err)
		require.Equal(t, DefaultTTL, m.ttl)
	})
}

func TestManagerRoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "s3cret", time.Hour)

	signed, err := m.Issue(42, "alice")
	require.NoError(t, err)
	require.Len(t, strings.Split(signed, "."), 3)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestManagerVerifyFailures(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "s3cret", time.Hour)

	t.Run("expired token fails with ErrTokenExpired despite a valid signature", func(t *testing.T) {
		expired := newTestManager(t, "s3cret", -time.Hour)
		signed, err := expired.Issue(1, "alice")
		require.NoError(t, err)

		_, err = m.Verify(signed)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token signed with a different secret fails with ErrTokenSignatureInvalid", func(t *testing.T) {
		other := newTestManager(t, "other-secret", time.Hour)
		signed, err := other.Issue(1, "alice")
		require.NoError(t, err)

		_, err = m.Verify(signed)
		require.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("garbage fails with ErrTokenMalformed", func(t *testing.T) {
		_, err := m.Verify("garbage")
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("empty string fails with ErrTokenMalformed", func(t *testing.T) {
		_, err := m.Verify("")
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("token without a numeric subject fails with ErrTokenMalformed", func(t *testing.T) {
		now := time.Now().UTC()
		noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"username": "alice",
			"iat":      now.Unix(),
			"exp":      now.Add(time.Hour).Unix(),
		})
		signed, err := noSub.SignedString([]byte("s3cret"))
		require.NoError(t, err)

		_, err = m.Verify(signed)
		require.ErrorIs(t, err, ErrTokenMalformed)
	})
}
