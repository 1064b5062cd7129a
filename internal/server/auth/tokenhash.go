package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the SHA-256 digest of token as 64 lowercase hex
// characters. The digest is the store's lookup key for refresh tokens, so
// it must be deterministic; no salt is involved because the input is a
// high-entropy signed token, not a memorable secret.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
