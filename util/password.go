package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const argon2Prefix = "argon2id$"

const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

// ErrMalformedHash is returned for stored secrets that carry the argon2id
// prefix but cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

var (
	jwtSecretByte []byte
	jwtMutex      sync.RWMutex
)

// GenerateSalt returns a random base64 salt.
func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPasswordArgon2 derives an argon2id key and encodes it as
// "argon2id$<salt>$<hash>".
func HashPasswordArgon2(password, salt string) (string, error) {
	if salt == "" {
		return "", errors.New("empty salt")
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return argon2Prefix + salt + "$" + base64.RawStdEncoding.EncodeToString(key), nil
}

// EncodePassword salts and hashes a new password.
func EncodePassword(password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return HashPasswordArgon2(password, salt)
}

// VerifyPassword compares plain against a stored secret. Secrets without the
// argon2id prefix are legacy plaintext and are compared in constant time.
func VerifyPassword(plain, stored string) (bool, error) {
	if NeedsUpgrade(stored) {
		return subtle.ConstantTimeCompare([]byte(plain), []byte(stored)) == 1, nil
	}
	parts := strings.Split(strings.TrimPrefix(stored, argon2Prefix), "$")
	if len(parts) != 2 || parts[0] == "" {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	got := argon2.IDKey([]byte(plain), []byte(parts[0]), argonTime, argonMemory, argonThreads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// NeedsUpgrade reports whether stored is a legacy plaintext secret.
func NeedsUpgrade(stored string) bool {
	return !strings.HasPrefix(stored, argon2Prefix)
}

// SetJWTSecret sets the key used to sign session tokens.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the signing key.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}
