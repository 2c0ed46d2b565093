package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndVerifySessionTokens(t *testing.T) {
	s := NewTokenService(testSecret)

	access, refresh, err := s.IssueSessionTokens("u1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := s.VerifySessionToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	claims, err = s.VerifySessionToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestVerifySessionTokenExpiry(t *testing.T) {
	s := NewTokenService(testSecret)

	issuedAt := time.Now()
	s.now = func() time.Time { return issuedAt }

	access, _, err := s.IssueSessionTokens("u1", "alice")
	require.NoError(t, err)

	// Still inside the 1 hour window
	s.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = s.VerifySessionToken(access)
	assert.NoError(t, err)

	// Past it
	s.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = s.VerifySessionToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionTokenWrongSecret(t *testing.T) {
	access, _, err := NewTokenService("other-secret").IssueSessionTokens("u1", "alice")
	require.NoError(t, err)

	_, err = NewTokenService(testSecret).VerifySessionToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionTokenGarbage(t *testing.T) {
	s := NewTokenService(testSecret)

	_, err := s.VerifySessionToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.VerifySessionToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionTokenUnsignedAlg(t *testing.T) {
	s := NewTokenService(testSecret)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{
		UserID:   "u1",
		Username: "alice",
	})

	str, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.VerifySessionToken(str)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionTokenMissingUserID(t *testing.T) {
	s := NewTokenService(testSecret)

	str, err := s.sign("", "alice", time.Hour)
	require.NoError(t, err)

	_, err = s.VerifySessionToken(str)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
