package helpers

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"math/big"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/pbkdf2"
)

// Hashes are encoded the way werkzeug's generate_password_hash does, so
// records written by other tools sharing the table verify unchanged:
//
//	pbkdf2:sha256:600000$<salt>$<hex digest>
const (
	DefaultHashMethod     = "sha256"
	DefaultHashIterations = 600000
	saltLength            = 16
	saltChars             = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var digests = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

// PBKDF2Hasher hashes and verifies passwords with salted PBKDF2-HMAC.
type PBKDF2Hasher struct {
	Method     string
	Iterations int
}

// NewPBKDF2Hasher validates the digest name and iteration count.
func NewPBKDF2Hasher(method string, iterations int) (*PBKDF2Hasher, error) {
	if _, ok := digests[method]; !ok {
		return nil, oops.Code("HASH_UNSUPPORTED_METHOD").With("method", method).Errorf("unsupported pbkdf2 digest %q", method)
	}
	if iterations <= 0 {
		return nil, oops.Code("HASH_INVALID_ITERATIONS").With("iterations", iterations).Errorf("iterations must be positive")
	}
	return &PBKDF2Hasher{Method: method, Iterations: iterations}, nil
}

// Hash returns a freshly salted encoded hash of plain.
func (h *PBKDF2Hasher) Hash(plain string) (string, error) {
	salt, err := genSalt(saltLength)
	if err != nil {
		return "", oops.Code("HASH_SALT_FAILED").Wrap(err)
	}
	sum := derive(digests[h.Method], plain, salt, h.Iterations)
	return fmt.Sprintf("pbkdf2:%s:%d$%s$%s", h.Method, h.Iterations, salt, hex.EncodeToString(sum)), nil
}

// Verify recomputes the digest with the parameters embedded in encoded.
// Malformed or unsupported encodings never verify.
func (h *PBKDF2Hasher) Verify(plain, encoded string) bool {
	method, rest, ok := strings.Cut(encoded, "$")
	if !ok {
		return false
	}
	salt, want, ok := strings.Cut(rest, "$")
	if !ok || salt == "" {
		return false
	}
	newHash, iterations, ok := parseMethod(method)
	if !ok {
		return false
	}
	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) == 0 {
		return false
	}
	got := derive(newHash, plain, salt, iterations)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// parseMethod reads "pbkdf2[:<digest>[:<iterations>]]". Omitted parts take
// werkzeug's defaults: sha256 and DefaultHashIterations.
func parseMethod(method string) (func() hash.Hash, int, bool) {
	parts := strings.Split(method, ":")
	if len(parts) > 3 || parts[0] != "pbkdf2" {
		return nil, 0, false
	}
	digest := DefaultHashMethod
	if len(parts) >= 2 {
		digest = parts[1]
	}
	newHash, ok := digests[digest]
	if !ok {
		return nil, 0, false
	}
	iterations := DefaultHashIterations
	if len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n <= 0 {
			return nil, 0, false
		}
		iterations = n
	}
	return newHash, iterations, true
}

func derive(newHash func() hash.Hash, plain, salt string, iterations int) []byte {
	return pbkdf2.Key([]byte(plain), []byte(salt), iterations, newHash().Size(), newHash)
}

func genSalt(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	limit := big.NewInt(int64(len(saltChars)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(saltChars[idx.Int64()])
	}
	return b.String(), nil
}
