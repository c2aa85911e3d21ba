package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a user ID to a fixed-length hex string safe for use in
// filesystem paths and object keys. Guest IDs contain a colon, which some
// backends reject.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
