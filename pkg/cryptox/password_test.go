package cryptox

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	hash, err := HashSecret("pw123")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifySecret("pw123", hash))
	require.ErrorIs(t, VerifySecret("pw124", hash), ErrMismatch)
}

func TestVerifySecretRejectsGarbageHashes(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	} {
		err := VerifySecret("pw123", bad)
		require.Error(t, err, "hash %q should not verify", bad)
	}
}

func TestHashSecretSaltsEveryHash(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	h1, err := HashSecret("pw123")
	require.NoError(t, err)
	h2, err := HashSecret("pw123")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
