package auth

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$pbkdf2-sha256$29000$"))
	assert.NotContains(t, hash, "password1")
	assert.True(t, CheckPassword("password1", hash))
	assert.False(t, CheckPassword("password2", hash))
	assert.False(t, CheckPassword("", hash))

	again, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salts should differ")
}

// PBKDF2-HMAC-SHA256 reference vector for "password"/"salt" at 4096 rounds,
// laid out the way passlib stores it.
func TestCheckPassword_ReferenceVector(t *testing.T) {
	t.Parallel()

	key, err := hex.DecodeString("c5e478d59288c841aa530db6845c4c8d962893a001ce4e11a4963873aa98134a")
	require.NoError(t, err)
	hash := "$pbkdf2-sha256$4096$" + ab64Encode([]byte("salt")) + "$" + ab64Encode(key)

	assert.True(t, CheckPassword("password", hash))
	assert.False(t, CheckPassword("Password", hash))
}

func TestCheckPassword_Malformed(t *testing.T) {
	t.Parallel()

	for _, hash := range []string{
		"",
		"plaintext",
		"$2a$12$abcdefghijklmnopqrstuu",
		"$pbkdf2-sha256$x$c2FsdA$aGFzaA",
		"$pbkdf2-sha256$0$c2FsdA$aGFzaA",
		"$pbkdf2-sha256$1000$***$aGFzaA",
		"$pbkdf2-sha256$1000$c2FsdA$",
		"$pbkdf2-sha512$1000$c2FsdA$aGFzaA",
	} {
		assert.False(t, CheckPassword("password", hash), hash)
	}
}

func TestAB64(t *testing.T) {
	t.Parallel()

	raw := []byte{0xfb, 0xff, 0xbf}
	encoded := ab64Encode(raw)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "=")

	decoded, err := ab64Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}
