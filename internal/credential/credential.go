// Package credential hashes and verifies user passwords and issues opaque
// bearer tokens.
//
// Hashes are PBKDF2-HMAC-SHA256 with 100,000 iterations over the UTF-8 bytes
// of the password and the hex-encoded salt. All functions are safe for
// concurrent use.
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"gastos/internal/validation"
)

const (
	Iterations = 100_000
	KeyLength  = sha256.Size
	SaltBytes  = 16
	TokenBytes = 32
)

// Credential is the stored form of a user's login secret.
type Credential struct {
	Username     string
	PasswordHash string
	PasswordSalt string
}

// NewCredential hashes password under a fresh salt. The username is expected
// to be normalized already.
func NewCredential(username, password string) (*Credential, error) {
	if username == "" {
		return nil, &validation.Error{Field: "username", Reason: "username is required"}
	}
	if password == "" {
		return nil, &validation.Error{Field: "password", Reason: "password is required"}
	}

	hash, salt, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Credential{Username: username, PasswordHash: hash, PasswordSalt: salt}, nil
}

// Verify reports whether password matches the stored hash.
func (c *Credential) Verify(password string) bool {
	return VerifyPassword(password, c.PasswordHash, c.PasswordSalt)
}

// HashPassword derives a hash under a newly generated random salt and returns
// both as hex strings.
func HashPassword(password string) (hash, salt string, err error) {
	salt, err = randomHex(SaltBytes)
	if err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	return HashPasswordWithSalt(password, salt), salt, nil
}

// HashPasswordWithSalt is deterministic: the same pair always yields the same hash.
func HashPasswordWithSalt(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the hash and compares it in constant time.
func VerifyPassword(password, storedHash, salt string) bool {
	computed := HashPasswordWithSalt(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// GenerateToken returns 32 random bytes hex-encoded. Tokens carry no expiry or
// user binding and are not verified by this service.
func GenerateToken() (string, error) {
	token, err := randomHex(TokenBytes)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
