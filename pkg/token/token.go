package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	shareTokenBytes = 24 // 192-bit
	slugByteLength  = 8

	errGenerateRandomBytesFmt = "failed to generate random bytes: %w"
)

// GenerateShareToken returns a fresh high-entropy share token and its
// SHA-256 hash. Only the hash is ever persisted; the raw token is emitted
// to the caller exactly once at creation.
func GenerateShareToken() (token string, tokenHash string, err error) {
	bytes := make([]byte, shareTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf(errGenerateRandomBytesFmt, err)
	}

	token = base64.RawURLEncoding.EncodeToString(bytes)
	return token, HashToken(token), nil
}

// HashToken derives the persisted lookup hash for a raw share token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// GenerateSlug returns a short random hex slug for public payment links.
func GenerateSlug() (string, error) {
	bytes := make([]byte, slugByteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf(errGenerateRandomBytesFmt, err)
	}
	return hex.EncodeToString(bytes), nil
}
