package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)
		_, err = GenerateToken(-1)
		require.Error(t, err)
	})

	t.Run("produces url-safe unique tokens", func(t *testing.T) {
		a, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		b, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		require.NotEqual(t, a, b)

		raw, err := base64.RawURLEncoding.DecodeString(a)
		require.NoError(t, err)
		require.Len(t, raw, TokenSize256)
	})
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	fp1 := FingerprintToken("some-token")
	fp2 := FingerprintToken("some-token")
	require.Equal(t, fp1, fp2, "fingerprints must be deterministic")
	require.NotEqual(t, fp1, FingerprintToken("other-token"))
	require.NotEqual(t, "some-token", fp1)
}

func TestRandomString(t *testing.T) {
	t.Parallel()

	s, err := RandomString(32)
	require.NoError(t, err)
	require.Len(t, s, 32)
	require.NotContains(t, s, ":", "generated credentials must survive id:secret framing")
}
