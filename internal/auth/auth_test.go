package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	customerrors "github.com/axellelanca/catalog/internal/errors"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestJWTManager_IssueAndParse(t *testing.T) {
	m := NewJWTManager(testSecret, "catalog", 5*time.Minute, 24*time.Hour)

	pair, err := m.IssuePair(7, "admin@example.com")
	require.NoError(t, err)

	claims, err := m.Parse(pair.Access, AccessToken)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)

	claims, err = m.Parse(pair.Refresh, RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestJWTManager_RejectsWrongType(t *testing.T) {
	m := NewJWTManager(testSecret, "catalog", time.Minute, time.Hour)
	pair, err := m.IssuePair(1, "a@example.com")
	require.NoError(t, err)

	_, err = m.Parse(pair.Refresh, AccessToken)
	assert.ErrorIs(t, err, customerrors.ErrInvalidCredentials)
	_, err = m.Parse(pair.Access, RefreshToken)
	assert.ErrorIs(t, err, customerrors.ErrInvalidCredentials)
}

func TestJWTManager_RejectsInvalid(t *testing.T) {
	m := NewJWTManager(testSecret, "catalog", time.Minute, time.Hour)

	expired := NewJWTManager(testSecret, "catalog", time.Minute, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Issue(AccessToken, 1, "a@example.com")
	require.NoError(t, err)

	otherIssuer, err := NewJWTManager(testSecret, "someone-else", time.Minute, time.Hour).Issue(AccessToken, 1, "a@example.com")
	require.NoError(t, err)

	otherSecret, err := NewJWTManager("another-secret-another-secret-123", "catalog", time.Minute, time.Hour).Issue(AccessToken, 1, "a@example.com")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{TokenType: AccessToken}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":    "",
		"garbage":  "not.a.jwt",
		"expired":  old,
		"issuer":   otherIssuer,
		"secret":   otherSecret,
		"alg none": none,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token, AccessToken)
			assert.ErrorIs(t, err, customerrors.ErrInvalidCredentials)
		})
	}
}

func TestPasswordHasher(t *testing.T) {
	h := PasswordHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, h.Check(hash, "s3cret!"))
	assert.False(t, h.Check(hash, "wrong"))
}
