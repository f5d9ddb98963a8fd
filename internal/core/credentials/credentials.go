// Package credentials hashes and verifies member secrets with scrypt.
//
// The stored form is "hex(derived).hex(salt)" so the salt travels with the
// hash and no separate column is needed.
package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. N is the CPU/memory cost (must be a power of two).
const (
	scryptN   = 32768
	scryptR   = 8
	scryptP   = 1
	keyLength = 32
	saltBytes = 16
)

// Hash derives a stored form for the given secret using a fresh random salt.
func Hash(secret string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(secret), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(derived) + "." + hex.EncodeToString(salt), nil
}

// Verify re-derives the secret against the salt embedded in stored and
// compares in constant time. A malformed stored form yields false, never an
// error: the caller treats it as invalid credentials.
func Verify(secret, stored string) bool {
	derivedHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return false
	}

	want, err := hex.DecodeString(derivedHex)
	if err != nil || len(want) != keyLength {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return false
	}

	got, err := scrypt.Key([]byte(secret), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(got, want) == 1
}
