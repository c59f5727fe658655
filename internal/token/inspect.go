// ABOUTME: Local inspection of access token expiry without signature verification
// ABOUTME: Lets callers schedule refresh ahead of expiration

package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrOpaqueToken = errors.New("token is not a parseable JWT")
	ErrNoExpiry    = errors.New("token carries no expiry claim")
)

// ExpiresAt extracts the expiry time from an access token issued by the
// service. The signature is NOT verified; the service remains the
// authority on validity. This exists only so callers can schedule a
// Continue call before the token lapses. Opaque tokens return
// ErrOpaqueToken.
func ExpiresAt(accessToken string) (time.Time, error) {
	if accessToken == "" {
		return time.Time{}, ErrEmptyToken
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}
