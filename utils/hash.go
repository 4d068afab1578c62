package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the hex sha-256 of the given payload. Analysis
// results are cached under this key so identical requests hit the
// same entry.
func ContentHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
