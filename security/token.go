package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenTTL is how long an access token stays valid.
	AccessTokenTTL = time.Hour

	// RefreshTokenTTL is how long a refresh token stays valid. The refresh
	// flow itself lives on the bot side, the cookie is only carried along.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, malformed or expired token. Callers must treat it as "no
// identity", never as a request-fatal error.
var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims is what gets embedded in both session tokens.
type SessionClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with a process-wide secret
// injected at startup. It never reads configuration ambiently.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// IssueSessionTokens produces the access/refresh token pair for a user.
// Both carry the same claims and differ only in expiry.
func (s *TokenService) IssueSessionTokens(userID, username string) (access, refresh string, err error) {
	access, err = s.sign(userID, username, AccessTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token, %w", err)
	}

	refresh, err = s.sign(userID, username, RefreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token, %w", err)
	}

	return access, refresh, nil
}

func (s *TokenService) sign(userID, username string, ttl time.Duration) (string, error) {
	now := s.now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return t.SignedString(s.secret)
}

// VerifySessionToken checks signature and expiry and returns the embedded
// claims. Any failure comes back as ErrInvalidToken.
func (s *TokenService) VerifySessionToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
