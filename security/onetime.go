package security

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const onetimeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// OneTimeTokenTTL is how long an auto-login link stays redeemable.
const OneTimeTokenTTL = 15 * time.Minute

// NewOneTimeToken generates an opaque single-use login token and its expiry.
// The value carries no claims, it is only matched against the stored column.
func NewOneTimeToken() (token string, expires time.Time, err error) {
	token, err = gonanoid.Generate(onetimeCharset, 32)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, time.Now().Add(OneTimeTokenTTL), nil
}
