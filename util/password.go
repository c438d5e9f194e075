package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argonPrefix  = "argon2id"
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

var ErrUnknownHashFormat = errors.New("unknown password hash format")

var (
	jwtSecretByte []byte
	jwtMutex      sync.RWMutex
)

// GenerateSalt returns a random base64 salt.
func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPasswordArgon2 hashes password with the given salt. The result has the form
// "argon2id$<salt>$<key>" so the salt travels with the stored hash.
func HashPasswordArgon2(password, salt string) (string, error) {
	if salt == "" {
		return "", errors.New("empty salt")
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return strings.Join([]string{argonPrefix, salt, base64.RawStdEncoding.EncodeToString(key)}, "$"), nil
}

// HashPassword salts and hashes password with argon2id.
func HashPassword(password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return HashPasswordArgon2(password, salt)
}

// IsLegacyHash reports whether stored was produced by bcrypt rather than argon2id.
func IsLegacyHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// VerifyPassword checks password against an argon2id or bcrypt hash.
func VerifyPassword(password, stored string) (bool, error) {
	if IsLegacyHash(stored) {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return err == nil, err
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != argonPrefix {
		return false, ErrUnknownHashFormat
	}
	expected, err := HashPasswordArgon2(password, parts[1])
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(stored)) == 1, nil
}

// SetJWTSecret updates the secret used to sign session tokens.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}
