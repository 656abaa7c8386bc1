package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret       = errors.New("signing secret is empty")
	ErrInvalidTTL        = errors.New("token lifetime must be positive")
	ErrMalformedToken    = errors.New("malformed token")
	ErrSignatureMismatch = errors.New("token signature mismatch")
	ErrMalformedClaims   = errors.New("malformed token claims")
	ErrExpired           = errors.New("token has expired")
)

// Claims represents the payload carried by a signed token.
type Claims struct {
	Subject  string `json:"sub"`
	Audience string `json:"aud"`
	Expiry   int64  `json:"exp"`
}

var _ jwt.Claims = (*Claims)(nil)

func (c *Claims) ExpiresAt() time.Time {
	return time.Unix(c.Expiry, 0)
}

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(c.ExpiresAt()), nil
}

func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error)  { return nil, nil }
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *Claims) GetIssuer() (string, error)              { return "", nil }
func (c *Claims) GetSubject() (string, error)             { return c.Subject, nil }

func (c *Claims) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings{c.Audience}, nil
}

// Signer defines methods for signing and verifying tokens.
type Signer interface {
	// Sign issues a token for subject and audience that expires after the
	// compact duration expiry (e.g. "14d").
	Sign(subject, audience, expiry string) (token string, err error)
	Verify(tokenString string) (*Claims, error)
}
