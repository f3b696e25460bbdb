package objectpath

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest computes the SHA-256 digest of the exact byte sequence, hex-encoded
// in lowercase. Identical content always yields the identical digest, which
// is what makes storage-level deduplication possible.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
