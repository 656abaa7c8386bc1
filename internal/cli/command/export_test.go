package command

import (
	"testing"

	"github.com/ferdiebergado/rcli/internal/platform/jwt"
)

// UseSigner replaces the signer constructor for the duration of the test.
func UseSigner(t *testing.T, s jwt.Signer) {
	t.Helper()

	orig := newJWTSigner
	newJWTSigner = func(string) (jwt.Signer, error) { return s, nil }
	t.Cleanup(func() { newJWTSigner = orig })
}
