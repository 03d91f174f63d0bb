package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

// Hashes use the passlib pbkdf2-sha256 layout so existing password rows keep
// working: $pbkdf2-sha256$<rounds>$<salt>$<checksum>, both encoded with
// passlib's adapted base64.
const (
	passwordScheme = "pbkdf2-sha256"
	passwordRounds = 29000
	saltSize       = 16
	keySize        = 32
)

var ab64 = base64.RawStdEncoding

// HashPassword derives a salted PBKDF2-SHA256 hash of password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.WithStack(err)
	}

	key := pbkdf2.Key([]byte(password), salt, passwordRounds, keySize, sha256.New)
	return fmt.Sprintf("$%s$%d$%s$%s", passwordScheme, passwordRounds, ab64Encode(salt), ab64Encode(key)), nil
}

// CheckPassword compares a password with a hash. Malformed hashes never
// match.
func CheckPassword(password, hash string) bool {
	parts := strings.Split(hash, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != passwordScheme {
		return false
	}
	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds <= 0 {
		return false
	}
	salt, err := ab64Decode(parts[3])
	if err != nil {
		return false
	}
	expected, err := ab64Decode(parts[4])
	if err != nil || len(expected) == 0 {
		return false
	}

	key := pbkdf2.Key([]byte(password), salt, rounds, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}

func ab64Encode(b []byte) string {
	return strings.ReplaceAll(ab64.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	return ab64.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
