package jwt_test

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/rcli/internal/platform/jwt"
	timex "github.com/ferdiebergado/rcli/internal/pkg/time"
	gojwt "github.com/golang-jwt/jwt/v5"
)

const (
	key      = "secret-key"
	subject  = "user"
	audience = "audience"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newSigner(t *testing.T) (jwt.Signer, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	signer, err := jwt.NewGolangJWTSigner(key, jwt.WithClock(clock.Now))
	if err != nil {
		t.Fatal(err)
	}
	return signer, clock
}

func TestNewGolangJWTSigner_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := jwt.NewGolangJWTSigner("")
	if !errors.Is(err, jwt.ErrEmptySecret) {
		t.Errorf("jwt.NewGolangJWTSigner(\"\") = %v, want: %v", err, jwt.ErrEmptySecret)
	}
}

func TestSignAndVerify_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expiry string
		ttl    time.Duration
	}{
		{"1s", time.Second},
		{"23m", 23 * time.Minute},
		{"12h", 12 * time.Hour},
		{"14d", 14 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.expiry, func(t *testing.T) {
			t.Parallel()

			signer, clock := newSigner(t)

			token, err := signer.Sign(subject, audience, tt.expiry)
			if err != nil {
				t.Fatal(err)
			}

			if got := strings.Count(token, "."); got != 2 {
				t.Fatalf("token %q has %d separators, want: 2", token, got)
			}

			claims, err := signer.Verify(token)
			if err != nil {
				t.Fatalf("Verify returned an error: %v", err)
			}

			want := jwt.Claims{
				Subject:  subject,
				Audience: audience,
				Expiry:   clock.Now().Add(tt.ttl).Unix(),
			}
			if *claims != want {
				t.Errorf("signer.Verify(token) = %+v, want: %+v", *claims, want)
			}
		})
	}
}

func TestSign_HeaderAndPayload(t *testing.T) {
	t.Parallel()

	signer, clock := newSigner(t)

	token, err := signer.Sign(subject, audience, "1d")
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(token, ".")
	header := decodeSegment(t, parts[0])
	if header != `{"alg":"HS256","typ":"JWT"}` {
		t.Errorf("header = %s, want: %s", header, `{"alg":"HS256","typ":"JWT"}`)
	}

	exp := clock.Now().Add(24 * time.Hour).Unix()
	wantPayload := `{"sub":"user","aud":"audience","exp":` + strconv.FormatInt(exp, 10) + `}`
	if payload := decodeSegment(t, parts[1]); payload != wantPayload {
		t.Errorf("payload = %s, want: %s", payload, wantPayload)
	}
}

func TestSign_Deterministic(t *testing.T) {
	t.Parallel()

	signer, _ := newSigner(t)

	first, err := signer.Sign(subject, audience, "1h")
	if err != nil {
		t.Fatal(err)
	}
	second, err := signer.Sign(subject, audience, "1h")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("tokens differ for the same clock reading: %q != %q", first, second)
	}
}

func TestSign_InvalidExpiry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expiry string
		err    error
	}{
		{"", timex.ErrInvalidFormat},
		{"5x", timex.ErrInvalidUnit},
		{"xs", timex.ErrInvalidNumber},
		{"0s", jwt.ErrInvalidTTL},
	}

	signer, _ := newSigner(t)
	for _, tt := range tests {
		t.Run(tt.expiry, func(t *testing.T) {
			t.Parallel()

			_, err := signer.Sign(subject, audience, tt.expiry)
			if !errors.Is(err, tt.err) {
				t.Errorf("signer.Sign(%q) = %v, want: %v", tt.expiry, err, tt.err)
			}
		})
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	signer, clock := newSigner(t)

	token, err := signer.Sign(subject, audience, "1s")
	if err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Second)

	if _, err := signer.Verify(token); !errors.Is(err, jwt.ErrExpired) {
		t.Errorf("signer.Verify(token) at expiry = %v, want: %v", err, jwt.ErrExpired)
	}

	clock.Advance(time.Hour)

	if _, err := signer.Verify(token); !errors.Is(err, jwt.ErrExpired) {
		t.Errorf("signer.Verify(token) after expiry = %v, want: %v", err, jwt.ErrExpired)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	signer, _ := newSigner(t)

	token, err := signer.Sign(subject, audience, "1h")
	if err != nil {
		t.Fatal(err)
	}

	idx := strings.LastIndex(token, ".")
	signingInput, sig := token[:idx], token[idx+1:]

	raw, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		t.Fatal(err)
	}

	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0x01

		forged := signingInput + "." + base64.RawURLEncoding.EncodeToString(tampered)
		if _, err := signer.Verify(forged); !errors.Is(err, jwt.ErrSignatureMismatch) {
			t.Errorf("signer.Verify(token with byte %d altered) = %v, want: %v", i, err, jwt.ErrSignatureMismatch)
		}
	}
}

func TestVerify_AlteredSignatureText(t *testing.T) {
	t.Parallel()

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	signer, _ := newSigner(t)

	token, err := signer.Sign(subject, audience, "1h")
	if err != nil {
		t.Fatal(err)
	}

	idx := strings.LastIndex(token, ".")
	signingInput, sig := token[:idx], token[idx+1:]

	for i := range len(sig) {
		for _, r := range alphabet + "!=" {
			if byte(r) == sig[i] {
				continue
			}

			forged := signingInput + "." + sig[:i] + string(r) + sig[i+1:]
			if _, err := signer.Verify(forged); !errors.Is(err, jwt.ErrSignatureMismatch) {
				t.Errorf("signer.Verify(token with signature char %d %q -> %q) = %v, want: %v",
					i, sig[i], r, err, jwt.ErrSignatureMismatch)
			}
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	signer, _ := newSigner(t)
	other, err := jwt.NewGolangJWTSigner("another-key")
	if err != nil {
		t.Fatal(err)
	}

	token, err := other.Sign(subject, audience, "1h")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := signer.Verify(token); !errors.Is(err, jwt.ErrSignatureMismatch) {
		t.Errorf("signer.Verify(foreign token) = %v, want: %v", err, jwt.ErrSignatureMismatch)
	}
}

func TestVerify_MalformedToken(t *testing.T) {
	t.Parallel()

	signer, _ := newSigner(t)

	tests := []struct {
		name, token string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"invalid base64", "a.b.c"},
		{"header not json", base64.RawURLEncoding.EncodeToString([]byte("nope")) + ".e30.c2ln"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := signer.Verify(tt.token); !errors.Is(err, jwt.ErrMalformedToken) {
				t.Errorf("signer.Verify(%q) = %v, want: %v", tt.token, err, jwt.ErrMalformedToken)
			}
		})
	}
}

func TestVerify_WrongAlgorithm(t *testing.T) {
	t.Parallel()

	signer, clock := newSigner(t)
	claims := gojwt.MapClaims{
		"sub": subject,
		"aud": audience,
		"exp": clock.Now().Add(time.Hour).Unix(),
	}

	hs384, err := gojwt.NewWithClaims(gojwt.SigningMethodHS384, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}

	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	for name, token := range map[string]string{"HS384": hs384, "none": none} {
		if _, err := signer.Verify(token); !errors.Is(err, jwt.ErrSignatureMismatch) {
			t.Errorf("signer.Verify(%s token) = %v, want: %v", name, err, jwt.ErrSignatureMismatch)
		}
	}
}

func TestVerify_MalformedClaims(t *testing.T) {
	t.Parallel()

	signer, clock := newSigner(t)
	exp := clock.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims gojwt.MapClaims
	}{
		{"missing sub", gojwt.MapClaims{"aud": audience, "exp": exp}},
		{"missing aud", gojwt.MapClaims{"sub": subject, "exp": exp}},
		{"missing exp", gojwt.MapClaims{"sub": subject, "aud": audience}},
		{"sub not a string", gojwt.MapClaims{"sub": 42, "aud": audience, "exp": exp}},
		{"aud not a string", gojwt.MapClaims{"sub": subject, "aud": true, "exp": exp}},
		{"exp not a number", gojwt.MapClaims{"sub": subject, "aud": audience, "exp": "tomorrow"}},
		{"several audiences", gojwt.MapClaims{"sub": subject, "aud": []string{"a", "b"}, "exp": exp}},
		{"empty audience array", gojwt.MapClaims{"sub": subject, "aud": []string{}, "exp": exp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, tt.claims).SignedString([]byte(key))
			if err != nil {
				t.Fatal(err)
			}

			if _, err := signer.Verify(token); !errors.Is(err, jwt.ErrMalformedClaims) {
				t.Errorf("signer.Verify(token) = %v, want: %v", err, jwt.ErrMalformedClaims)
			}
		})
	}
}

func TestVerify_AudienceArray(t *testing.T) {
	t.Parallel()

	signer, clock := newSigner(t)
	exp := clock.Now().Add(time.Hour).Unix()

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": subject,
		"aud": []string{audience},
		"exp": exp,
	}).SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatal(err)
	}

	if claims.Audience != audience {
		t.Errorf("claims.Audience = %q, want: %q", claims.Audience, audience)
	}
}

func decodeSegment(t *testing.T, seg string) string {
	t.Helper()

	b, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		t.Fatalf("decode segment %q: %v", seg, err)
	}
	return string(b)
}
