package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestNew_JWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signed(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	s := New(tok)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "user-1", s.Subject())
	assert.True(t, exp.Equal(s.ExpiresAt()))
	assert.Equal(t, "Bearer "+tok, s.AuthorizationHeader())
}

func TestNew_OpaqueToken(t *testing.T) {
	s := New("  opaque-token ")
	assert.Equal(t, "opaque-token", s.Token())
	assert.True(t, s.ExpiresAt().IsZero())
	assert.False(t, s.ExpiresWithin(time.Now(), 24*time.Hour))
}

func TestAnonymous(t *testing.T) {
	s := Anonymous()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.AuthorizationHeader())
	assert.True(t, s.SameToken(New("")))
}

func TestExpiresWithin(t *testing.T) {
	now := time.Now()
	tok := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Minute))})
	s := New(tok)

	assert.False(t, s.ExpiresWithin(now, time.Minute))
	assert.True(t, s.ExpiresWithin(now, 5*time.Minute))
}

func TestCopies(t *testing.T) {
	s := New("a").WithRefreshToken("r").WithGeneration(7)
	assert.Equal(t, "r", s.RefreshToken())
	assert.Equal(t, uint64(7), s.Generation())

	// исходная сессия не меняется
	base := New("a")
	_ = base.WithGeneration(9)
	assert.Equal(t, uint64(0), base.Generation())
}
