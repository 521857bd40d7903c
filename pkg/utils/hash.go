package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest identifies a stored value. Used as ETag by the relay.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ShortDigest is the first 12 hex chars of Digest, enough for log output
func ShortDigest(data []byte) string {
	return Digest(data)[:12]
}
