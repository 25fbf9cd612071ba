// Package password implements the credential digest scheme used for stored
// user secrets: an unsalted SHA-256 hex digest. The scheme is kept as-is for
// compatibility with existing stored digests.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

type Hasher interface {
	Hash(plaintext string) string
	Verify(plaintext string, digest string) bool
}

type SHA256Hasher struct{}

func NewSHA256Hasher() SHA256Hasher {
	return SHA256Hasher{}
}

func (SHA256Hasher) Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func (h SHA256Hasher) Verify(plaintext string, digest string) bool {
	computed := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
