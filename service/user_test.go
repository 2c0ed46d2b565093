package service

import (
	"testing"
	"time"

	"tgtodo/web-api/model"
	"tgtodo/web-api/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()

	return NewUserService(newTestDB(t), security.NewArgon(), security.NewTokenService("test-secret"))
}

func TestLogin(t *testing.T) {
	s := newUserService(t)
	seedUser(t, s.DB, s.Argon, "u1", "alice", "correct horse")

	session, err := s.Login("alice", "correct horse")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	claims, err := s.Tokens.VerifySessionToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	// Snapshot persisted on the row
	var user model.User
	require.NoError(t, s.DB.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, session.AccessToken, user.AccessToken)
	assert.Equal(t, session.RefreshToken, user.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newUserService(t)
	seedUser(t, s.DB, s.Argon, "u1", "alice", "correct horse")

	session, err := s.Login("alice", "battery staple")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, session)

	// No tokens issued on failure
	var user model.User
	require.NoError(t, s.DB.First(&user, "id = ?", "u1").Error)
	assert.Empty(t, user.AccessToken)
	assert.Empty(t, user.RefreshToken)
}

// Unknown usernames and wrong passwords are indistinguishable to the caller.
func TestLoginUnknownUsername(t *testing.T) {
	s := newUserService(t)

	_, err := s.Login("nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRedeemOneTimeToken(t *testing.T) {
	s := newUserService(t)
	u := seedUser(t, s.DB, s.Argon, "u1", "alice", "pw")

	token := "tok-abc123"
	expires := time.Now().Add(10 * time.Minute)
	require.NoError(t, s.DB.Model(u).Updates(map[string]any{
		"one_time_token":         token,
		"one_time_token_expires": expires,
	}).Error)

	session, err := s.RedeemOneTimeToken(token)
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	// Burned on redemption
	var user model.User
	require.NoError(t, s.DB.First(&user, "id = ?", "u1").Error)
	assert.Nil(t, user.OneTimeToken)
	assert.Nil(t, user.OneTimeTokenExpires)

	// Replay always fails
	_, err = s.RedeemOneTimeToken(token)
	assert.ErrorIs(t, err, ErrInvalidOneTimeToken)
}

func TestRedeemOneTimeTokenExpired(t *testing.T) {
	s := newUserService(t)
	u := seedUser(t, s.DB, s.Argon, "u1", "alice", "pw")

	require.NoError(t, s.DB.Model(u).Updates(map[string]any{
		"one_time_token":         "tok-expired",
		"one_time_token_expires": time.Now().Add(-time.Minute),
	}).Error)

	_, err := s.RedeemOneTimeToken("tok-expired")
	assert.ErrorIs(t, err, ErrInvalidOneTimeToken)
}

func TestRedeemOneTimeTokenUnknownOrEmpty(t *testing.T) {
	s := newUserService(t)

	_, err := s.RedeemOneTimeToken("tok-nonexistent")
	assert.ErrorIs(t, err, ErrInvalidOneTimeToken)

	_, err = s.RedeemOneTimeToken("")
	assert.ErrorIs(t, err, ErrInvalidOneTimeToken)
}

func TestIssueOneTimeToken(t *testing.T) {
	s := newUserService(t)
	seedUser(t, s.DB, s.Argon, "u1", "alice", "pw")

	token, expires, err := s.IssueOneTimeToken("u1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expires.After(time.Now()))

	// Issued token is redeemable
	session, err := s.RedeemOneTimeToken(token)
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
}

func TestIssueOneTimeTokenUnknownUser(t *testing.T) {
	s := newUserService(t)

	_, _, err := s.IssueOneTimeToken("ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestSetBlocked(t *testing.T) {
	s := newUserService(t)
	seedUser(t, s.DB, s.Argon, "u1", "alice", "pw")

	require.NoError(t, s.SetBlocked("u1", true))

	var user model.User
	require.NoError(t, s.DB.First(&user, "id = ?", "u1").Error)
	assert.True(t, user.IsBlocked)

	require.NoError(t, s.SetBlocked("u1", false))
	require.NoError(t, s.DB.First(&user, "id = ?", "u1").Error)
	assert.False(t, user.IsBlocked)

	assert.ErrorIs(t, s.SetBlocked("ghost", true), ErrUnknownUser)
}
