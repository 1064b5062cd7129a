// Package auth implements the credential primitives of the service:
// argon2id password hashing, SHA-256 token digests, and issuing/verifying
// the signed access and refresh tokens.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher hashes passwords with argon2id and encodes the result as a
// PHC string ($argon2id$v=19$m=...,t=...,p=...$salt$key). Cost parameters
// are fixed at construction; they are never caller-supplied.
type PasswordHasher struct {
	memory      uint32 // KiB
	time        uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewPasswordHasher returns a hasher with the service's fixed cost
// parameters: 64 MiB memory, 3 iterations, parallelism 1.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		memory:      64 * 1024,
		time:        3,
		parallelism: 1,
		saltLength:  16,
		keyLength:   32,
	}
}

// Hash derives a digest from password with a fresh random salt. Two calls
// on the same password produce different digests.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.parallelism, h.keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether password matches the PHC-encoded digest. A digest
// that fails to parse verifies false, indistinguishable from a wrong
// password.
func (h *PasswordHasher) Verify(password, encoded string) bool {
	memory, time, parallelism, salt, key, err := decodePHC(encoded)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decodePHC(encoded string) (memory, time uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id digest")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, err
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &parallelism); err != nil {
		return 0, 0, 0, nil, nil, err
	}

	salt, err = base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, err
	}
	key, err = base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, err
	}
	if len(salt) == 0 || len(key) == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id digest")
	}

	return memory, time, parallelism, salt, key, nil
}
