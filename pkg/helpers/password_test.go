package helpers

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher(t *testing.T) *PBKDF2Hasher {
	t.Helper()
	h, err := NewPBKDF2Hasher("sha256", 1000)
	require.NoError(t, err)
	return h
}

func TestPBKDF2Hasher_Hash(t *testing.T) {
	h := newTestHasher(t)

	t.Run("encodes method, iterations, salt and digest", func(t *testing.T) {
		encoded, err := h.Hash("Passw0rd")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "pbkdf2:sha256:1000$"))
		parts := strings.Split(encoded, "$")
		require.Len(t, parts, 3)
		assert.Len(t, parts[1], saltLength)
		assert.Len(t, parts[2], 64)
		assert.NotContains(t, encoded, "Passw0rd")
	})

	t.Run("same password produces different hashes (salt)", func(t *testing.T) {
		h1, err := h.Hash("samepassword1")
		require.NoError(t, err)
		h2, err := h.Hash("samepassword1")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
		assert.True(t, h.Verify("samepassword1", h1))
		assert.True(t, h.Verify("samepassword1", h2))
	})

	t.Run("output length does not depend on input", func(t *testing.T) {
		short, err := h.Hash("a")
		require.NoError(t, err)
		long, err := h.Hash(strings.Repeat("x", 500))
		require.NoError(t, err)
		assert.Equal(t, len(short), len(long))
	})
}

func TestPBKDF2Hasher_Verify(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("correct1")
	require.NoError(t, err)

	assert.True(t, h.Verify("correct1", encoded))
	assert.False(t, h.Verify("correct2", encoded))
	assert.False(t, h.Verify("", encoded))

	t.Run("known werkzeug digest", func(t *testing.T) {
		known := "pbkdf2:sha256:1000$abcdEFGH12345678$bcaf7538459eebcabd2cf382ba64aa328257b8f141abd0187240e6ab91ac44e6"
		assert.True(t, h.Verify("Passw0rd", known))
		assert.False(t, h.Verify("Passw0rd!", known))
	})

	t.Run("parameters come from the encoded value", func(t *testing.T) {
		other, err := NewPBKDF2Hasher("sha512", 500)
		require.NoError(t, err)
		enc, err := other.Hash("Passw0rd")
		require.NoError(t, err)
		assert.True(t, h.Verify("Passw0rd", enc))
	})

	t.Run("malformed encodings never verify", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"not-a-hash",
			"pbkdf2:sha256:1000$salt",
			"pbkdf2:md5:1000$salt$abcd",
			"pbkdf2:sha256:zero$salt$abcd",
			"pbkdf2:sha256:1000$$abcd",
			"pbkdf2:sha256:1000$salt$not-hex",
			"scrypt:32768:8:1$salt$abcd",
		} {
			assert.False(t, h.Verify("Passw0rd", bad), bad)
		}
	})
}

func TestNewPBKDF2Hasher_Rejects(t *testing.T) {
	_, err := NewPBKDF2Hasher("md5", 1000)
	assert.Error(t, err)
	_, err = NewPBKDF2Hasher("sha256", 0)
	assert.Error(t, err)
}

func TestParseMethod_Defaults(t *testing.T) {
	tests := []struct {
		method     string
		size       int
		iterations int
		ok         bool
	}{
		{"pbkdf2", sha256.Size, DefaultHashIterations, true},
		{"pbkdf2:sha512", sha512.Size, DefaultHashIterations, true},
		{"pbkdf2:sha1:1000", sha1.Size, 1000, true},
		{"pbkdf2:sha256:1000:1", 0, 0, false},
		{"pbkdf2:", 0, 0, false},
		{"scrypt", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			newHash, n, ok := parseMethod(tt.method)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.size, newHash().Size())
			assert.Equal(t, tt.iterations, n)
		})
	}
}

func TestPBKDF2Hasher_VerifyBareMethod(t *testing.T) {
	h := newTestHasher(t)
	salt := "abcdEFGH12345678"
	sum := derive(sha256.New, "Passw0rd", salt, DefaultHashIterations)
	encoded := "pbkdf2$" + salt + "$" + hex.EncodeToString(sum)

	assert.True(t, h.Verify("Passw0rd", encoded))
	assert.False(t, h.Verify("Passw0rd!", encoded))
}
