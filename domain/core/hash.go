package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// FileFingerprint identifies uploaded file content so repeated uploads of the
// same file can be recognized in history.
type FileFingerprint Hash

// NewFileFingerprint fingerprints raw upload bytes.
func NewFileFingerprint(data []byte) FileFingerprint {
	return FileFingerprint(NewHash(data))
}

// String returns the full hex digest.
func (f FileFingerprint) String() string { return Hash(f).String() }

// Short returns a truncated digest suitable for display labels.
func (f FileFingerprint) Short() string {
	s := Hash(f).String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
