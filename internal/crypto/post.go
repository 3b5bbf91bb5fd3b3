package crypto

import (
	"crypto/sha256"
	"fmt"
)

// SealedPost is the output of SealPost: everything an access-entitled
// subscriber needs to recover the plaintext, and nothing anyone else can
// use. The content key itself never appears in the clear.
type SealedPost struct {
	// Ciphertext is the content sealed under a one-time content key
	// (detached nonce, tag appended).
	Ciphertext []byte
	// IV is the content nonce.
	IV []byte
	// WrappedKey is the content key encrypted under the epoch key in
	// wrap mode (nonce-prefixed).
	WrappedKey []byte
	// ContentHash is the SHA-256 commitment over the plaintext. It is
	// independent of encryption and safe to anchor publicly.
	ContentHash []byte
}

// SealPost encrypts post content under a fresh random content key and wraps
// that key under the given epoch key.
//
// The two-key indirection exists so a single post can later be re-granted to
// an out-of-tier recipient by re-wrapping its content key (see WrapGrant)
// without re-encrypting the content body.
func SealPost(content, epochKey []byte) (*SealedPost, error) {
	if len(epochKey) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(epochKey), KeySize)
	}

	contentKey, err := NewContentKey()
	if err != nil {
		return nil, err
	}

	iv, err := NewNonce()
	if err != nil {
		return nil, err
	}

	ciphertext, err := Seal(contentKey, content, iv)
	if err != nil {
		return nil, err
	}

	wrapIV, err := NewNonce()
	if err != nil {
		return nil, err
	}

	wrappedKey, err := EncryptAES(epochKey, contentKey, wrapIV)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(content)

	return &SealedPost{
		Ciphertext:  ciphertext,
		IV:          iv,
		WrappedKey:  wrappedKey,
		ContentHash: hash[:],
	}, nil
}

// OpenPost recovers post content given the epoch key. The content-key
// unwrap is the access-control enforcement point: a caller holding the
// wrong epoch key fails here with ErrAuthenticationFailed and learns
// nothing about the content.
func OpenPost(ciphertext, iv, wrappedKey, epochKey []byte) ([]byte, error) {
	if len(epochKey) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(epochKey), KeySize)
	}

	contentKey, err := DecryptAES(epochKey, wrappedKey)
	if err != nil {
		return nil, err
	}
	if len(contentKey) != KeySize {
		return nil, fmt.Errorf("%w: unwrapped content key has wrong size", ErrMalformedInput)
	}

	return Open(contentKey, ciphertext, iv)
}

// ContentHash computes the SHA-256 content-integrity commitment over
// plaintext, independent of any encryption.
func ContentHash(content []byte) []byte {
	hash := sha256.Sum256(content)
	return hash[:]
}
