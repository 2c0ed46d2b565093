package service

import (
	"errors"
	"fmt"
	"time"

	"tgtodo/web-api/model"
	"tgtodo/web-api/security"

	"gorm.io/gorm"
)

type UserService struct {
	DB     *gorm.DB
	Argon  *security.ArgonHash
	Tokens *security.TokenService
}

func NewUserService(db *gorm.DB, argon *security.ArgonHash, tokens *security.TokenService) *UserService {
	return &UserService{
		DB:     db,
		Argon:  argon,
		Tokens: tokens,
	}
}

// Session is the result of a successful login or token redemption.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

// Login verifies the password and opens a session. Unknown username and
// wrong password come back as the same ErrInvalidCredentials.
func (s *UserService) Login(username, password string) (*Session, error) {
	var user model.User

	err := s.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := s.Argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(&user, nil)
}

// RedeemOneTimeToken exchanges an unexpired one-time token for a session and
// burns it. A second redemption of the same value always fails.
func (s *UserService) RedeemOneTimeToken(token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidOneTimeToken
	}

	var user model.User

	err := s.DB.
		Where("one_time_token = ? AND one_time_token_expires > ?", token, time.Now()).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOneTimeToken
		}

		return nil, fmt.Errorf("failed to look up one-time token, %w", err)
	}

	return s.openSession(&user, map[string]any{
		"one_time_token":         nil,
		"one_time_token_expires": nil,
	})
}

// IssueOneTimeToken stores a fresh single-use login token on the user. Any
// previous unredeemed token is overwritten.
func (s *UserService) IssueOneTimeToken(userID string) (string, time.Time, error) {
	token, expires, err := security.NewOneTimeToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate one-time token, %w", err)
	}

	r := s.DB.
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"one_time_token":         token,
			"one_time_token_expires": expires,
		})
	if r.Error != nil {
		return "", time.Time{}, fmt.Errorf("failed to store one-time token, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return "", time.Time{}, ErrUnknownUser
	}

	return token, expires, nil
}

// SetBlocked toggles the block flag. The session middleware picks the change
// up on the user's very next request, their tokens stay untouched.
func (s *UserService) SetBlocked(userID string, blocked bool) error {
	r := s.DB.
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_blocked", blocked)
	if r.Error != nil {
		return fmt.Errorf("failed to update block flag, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrUnknownUser
	}

	return nil
}

// openSession signs both tokens and persists the snapshot plus any extra
// column updates in a single statement. If the write fails no token is
// considered issued.
func (s *UserService) openSession(user *model.User, extra map[string]any) (*Session, error) {
	access, refresh, err := s.Tokens.IssueSessionTokens(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
	}
	for k, v := range extra {
		updates[k] = v
	}

	err = s.DB.
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(updates).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to store session tokens, %w", err)
	}

	user.AccessToken = access
	user.RefreshToken = refresh
	user.OneTimeToken = nil
	user.OneTimeTokenExpires = nil

	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
