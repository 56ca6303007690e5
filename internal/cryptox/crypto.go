// Package cryptox holds the password primitives used for local accounts.
//
// Passwords are never stored. Registration derives an argon2id key from the
// password and a random salt and keeps only sha256(key), the verifier.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/surlink/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the random salt generated per account.
const SaltSize = 32

// MakeVerifier returns sha256(masterKey).
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// DeriveMasterKey derives a 32-byte argon2id key from password and salt.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// NewVerifier generates a fresh salt and returns it with the verifier for password.
func NewVerifier(password []byte) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return salt, MakeVerifier(key)
}

// CheckPassword reports whether password matches the stored salt and verifier.
// The comparison is constant time.
func CheckPassword(password, salt, verifier []byte) bool {
	if len(salt) == 0 || len(verifier) == 0 {
		return false
	}
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(MakeVerifier(key), verifier) == 1
}

// CheckLegacyPassword compares a password against one stored in plain text by
// older clients, in constant time.
func CheckLegacyPassword(password, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}
