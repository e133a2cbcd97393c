package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonRoundTrip(t *testing.T) {
	a := New()

	hash, err := a.GenerateFromPassword("geheim123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := a.VerifyPasswd("geheim123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("falsch", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonSaltsDiffer(t *testing.T) {
	a := New()

	h1, err := a.GenerateFromPassword("same")
	require.NoError(t, err)
	h2, err := a.GenerateFromPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestArgonBadHash(t *testing.T) {
	a := New()

	_, err := a.VerifyPasswd("x", "$2b$10$notargon")
	assert.ErrorIs(t, err, ErrInvalidHash)

	_, err = a.VerifyPasswd("x", "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestTokensIssueVerify(t *testing.T) {
	tokens, err := NewTokens("test-secret")
	require.NoError(t, err)

	raw, err := tokens.Issue("user1", "a@b.de")
	require.NoError(t, err)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "a@b.de", claims.Email)
	assert.WithinDuration(t, time.Now().Add(TokenLifetime), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokensExpireAfterLifetime(t *testing.T) {
	issued := time.Now()
	now := issued

	tokens, err := NewTokens("test-secret", WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	raw, err := tokens.Issue("user1", "a@b.de")
	require.NoError(t, err)

	now = issued.Add(23 * time.Hour)
	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)

	now = issued.Add(25 * time.Hour)
	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokensRejectForeignSignature(t *testing.T) {
	a, err := NewTokens("secret-a")
	require.NoError(t, err)
	b, err := NewTokens("secret-b")
	require.NoError(t, err)

	raw, err := a.Issue("user1", "a@b.de")
	require.NoError(t, err)

	_, err = b.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = a.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokensRejectOtherAlgorithms(t *testing.T) {
	tokens, err := NewTokens("secret")
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewTokensNeedsSecret(t *testing.T) {
	_, err := NewTokens("")
	assert.ErrorIs(t, err, ErrNoSecret)
}
