package jwt

import (
	"errors"
	"fmt"
	"time"

	timex "github.com/ferdiebergado/rcli/internal/pkg/time"
	"github.com/golang-jwt/jwt/v5"
)

// golangJWTSigner implements the Signer interface using the golang-jwt library.
type golangJWTSigner struct {
	method jwt.SigningMethod
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
}

var _ Signer = (*golangJWTSigner)(nil)

// Option configures a signer created by NewGolangJWTSigner.
type Option func(*golangJWTSigner)

// WithClock replaces the time source used for expiry computation and validation.
func WithClock(now func() time.Time) Option {
	return func(s *golangJWTSigner) {
		s.now = now
	}
}

// NewGolangJWTSigner creates an HS256 signer using the shared secret key.
func NewGolangJWTSigner(key string, opts ...Option) (Signer, error) {
	if key == "" {
		return nil, ErrEmptySecret
	}

	s := &golangJWTSigner{
		method: jwt.SigningMethodHS256,
		key:    []byte(key),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)

	return s, nil
}

// Sign generates a signed token with the given subject, audience and compact expiry duration.
func (s *golangJWTSigner) Sign(sub, audience, expiry string) (string, error) {
	ttl, err := timex.ParseDuration(expiry)
	if err != nil {
		return "", fmt.Errorf("parse expiry: %w", err)
	}

	if ttl <= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTTL, expiry)
	}

	claims := &Claims{
		Subject:  sub,
		Audience: audience,
		Expiry:   s.now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(s.method, claims)
	signedToken, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signedToken, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
func (s *golangJWTSigner) Verify(tokenString string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}
	_, err := s.parser.ParseWithClaims(tokenString, mapClaims, func(_ *jwt.Token) (any, error) {
		return s.key, nil
	})

	switch {
	case err == nil, errors.Is(err, jwt.ErrTokenInvalidClaims):
	case errors.Is(err, jwt.ErrTokenMalformed):
		if s.signatureUndecodable(tokenString) {
			return nil, fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
	default:
		return nil, fmt.Errorf("parse with claims: %w", err)
	}

	claims, claimsErr := decodeClaims(mapClaims)
	if claimsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedClaims, claimsErr)
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w at %s", ErrExpired, claims.ExpiresAt().UTC().Format(time.RFC3339))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedClaims, err)
	}

	return claims, nil
}

// signatureUndecodable reports whether the header and payload of tokenString
// decode cleanly, leaving the signature segment as the only malformed part.
func (s *golangJWTSigner) signatureUndecodable(tokenString string) bool {
	_, _, err := s.parser.ParseUnverified(tokenString, jwt.MapClaims{})
	return err == nil
}

// decodeClaims requires sub, aud and exp to be present with the expected JSON types.
func decodeClaims(mc jwt.MapClaims) (*Claims, error) {
	for _, name := range []string{"sub", "aud", "exp"} {
		if _, ok := mc[name]; !ok {
			return nil, fmt.Errorf("missing %q claim", name)
		}
	}

	sub, err := mc.GetSubject()
	if err != nil {
		return nil, err
	}

	aud, err := mc.GetAudience()
	if err != nil {
		return nil, err
	}
	if len(aud) != 1 {
		return nil, fmt.Errorf("expected a single audience, got %d", len(aud))
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, errors.New("exp claim is zero")
	}

	return &Claims{
		Subject:  sub,
		Audience: aud[0],
		Expiry:   exp.Unix(),
	}, nil
}
