package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// PasswordHasher hashes new credentials and verifies stored ones
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	// NeedsRehash reports whether a stored hash was produced by another scheme
	NeedsRehash(hash string) bool
}

// SHA256Hasher is the legacy scheme: hex SHA-256 of the UTF-8 password, no
// salt, one round. Weak against offline guessing; kept so existing rows keep
// verifying.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password, hash string) bool {
	expected, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(hash))) == 1
}

// NeedsRehash is always false: a bcrypt hash is never downgraded.
func (SHA256Hasher) NeedsRehash(string) bool {
	return false
}

// BcryptHasher is the salted, iterated scheme
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

func (BcryptHasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (BcryptHasher) NeedsRehash(hash string) bool {
	return !isBcryptHash(hash)
}

// migratingHasher hashes with the configured scheme and verifies both formats
type migratingHasher struct {
	primary PasswordHasher
	legacy  SHA256Hasher
	bcrypt  BcryptHasher
}

// NewPasswordHasher returns the hasher for the configured scheme. Stored
// hashes of either scheme still verify, which is what lets a deployment move
// from sha256 to bcrypt without invalidating existing accounts.
func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	h := &migratingHasher{}
	switch scheme {
	case "", SchemeSHA256:
		h.primary = h.legacy
	case SchemeBcrypt:
		h.primary = h.bcrypt
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
	return h, nil
}

func (h *migratingHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *migratingHasher) Verify(password, hash string) bool {
	if isBcryptHash(hash) {
		return h.bcrypt.Verify(password, hash)
	}
	return h.legacy.Verify(password, hash)
}

func (h *migratingHasher) NeedsRehash(hash string) bool {
	return h.primary.NeedsRehash(hash)
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2")
}
