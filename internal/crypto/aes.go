package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// NewContentKey generates a fresh random 32-byte content key.
func NewContentKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(randSource(), key); err != nil {
		return nil, fmt.Errorf("generate content key: %w", err)
	}
	return key, nil
}

// NewNonce generates a fresh random 12-byte AES-GCM nonce.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(randSource(), nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext using AES-256-GCM with a detached nonce.
// Returns: ciphertext || tag (16 bytes). The nonce travels separately.
func Seal(key, plaintext, nonce []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts AES-256-GCM ciphertext produced by Seal. A tag mismatch is
// a hard ErrAuthenticationFailed; no partial plaintext is ever returned.
func Open(key, ciphertext, nonce []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

// EncryptAES encrypts data in wrap mode, bundling the nonce with the
// ciphertext so the output self-describes. Used for key wrapping.
// Returns: nonce (12 bytes) || ciphertext || tag (16 bytes).
func EncryptAES(key, plaintext, nonce []byte) ([]byte, error) {
	ciphertext, err := Seal(key, plaintext, nonce)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(ciphertext))
	out = append(out, nonce...)
	return append(out, ciphertext...), nil
}

// DecryptAES decrypts wrap-mode data produced by EncryptAES, extracting the
// nonce from the prefix.
func DecryptAES(key, ciphertext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	if len(ciphertext) < NonceSize+TagSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrMalformedInput)
	}

	nonce := ciphertext[:NonceSize]
	return Open(key, ciphertext[NonceSize:], nonce)
}
