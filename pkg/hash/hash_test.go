package hash_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redsocial/pkg/hash"
)

func TestHasher_Digest(t *testing.T) {
	h := hash.New("pepper", nil)

	d := h.Digest("secreto123")

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, d, h.Digest("secreto123"))
	})

	t.Run("hex encoded at the configured length", func(t *testing.T) {
		raw, err := hex.DecodeString(d)
		require.NoError(t, err)
		assert.Len(t, raw, int(hash.DefaultParams.KeyLength))
	})

	t.Run("pepper changes the digest", func(t *testing.T) {
		other := hash.New("another-pepper", nil)
		assert.NotEqual(t, d, other.Digest("secreto123"))
	})

	t.Run("custom params change the digest", func(t *testing.T) {
		light := hash.New("pepper", &hash.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, KeyLength: 16})
		assert.NotEqual(t, d, light.Digest("secreto123"))
		assert.Len(t, light.Digest("secreto123"), 32)
	})
}

func TestHasher_Verify(t *testing.T) {
	h := hash.New("pepper", nil)
	d := h.Digest("secreto123")

	assert.True(t, h.Verify(d, "secreto123"))
	assert.False(t, h.Verify(d, "secreto124"))
	assert.False(t, h.Verify("", "secreto123"))
}
