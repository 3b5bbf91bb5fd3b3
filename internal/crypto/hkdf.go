package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a key using HKDF-SHA-256.
//
// Parameters:
//   - secret: the input key material (e.g., an X25519 shared secret)
//   - salt: optional salt value; if empty, a zero-filled salt is used
//   - info: context/application-specific info for domain separation
//   - length: desired output key length in bytes
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha256.Size)
	}

	reader := hkdf.New(sha256.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}

// EpochKey derives the symmetric key for one (tier, epoch) pair from a DH
// shared secret. The salt binds tier and epoch ("tier|epoch"), so a single
// long-lived DH relationship yields an independent key for every access
// period: compromising one epoch key reveals nothing about adjacent epochs.
//
// The epoch string is a coarse period identifier such as "2025-06". The
// scheduler is agnostic to calendar policy; the caller owns epoch boundaries.
func EpochKey(sharedSecret []byte, tier, epoch string) ([]byte, error) {
	if len(sharedSecret) != SharedSecretSize {
		return nil, fmt.Errorf("%w: shared secret must be %d bytes", ErrMalformedInput, SharedSecretSize)
	}
	if tier == "" {
		return nil, fmt.Errorf("%w: empty tier", ErrMalformedInput)
	}
	if epoch == "" {
		return nil, fmt.Errorf("%w: empty epoch", ErrMalformedInput)
	}
	// The separator must stay unambiguous: ("a|b", "c") and ("a", "b|c")
	// would otherwise derive the same salt.
	if strings.Contains(tier, "|") {
		return nil, fmt.Errorf("%w: tier must not contain '|'", ErrMalformedInput)
	}

	salt := []byte(tier + "|" + epoch)
	return DeriveKey(sharedSecret, salt, []byte(EpochKeyInfo), KeySize)
}
