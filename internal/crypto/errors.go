package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature is returned when the wallet signature used for
	// keypair derivation is malformed or has the wrong length.
	ErrInvalidSignature = errors.New("invalid wallet signature")

	// ErrInvalidPublicKey is returned when a peer public key is rejected
	// by the curve's validation rules (small-order point, zero shared
	// secret). This check is security-critical and never skipped.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrAuthenticationFailed is returned when an AEAD tag does not
	// verify. It deliberately does not distinguish a wrong key from
	// tampered ciphertext.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrMalformedInput is returned for wrong-length byte buffers and
	// empty tier/epoch strings.
	ErrMalformedInput = errors.New("malformed input")
)

// Size errors wrap ErrMalformedInput so errors.Is matches either the
// specific sentinel or the broad taxonomy class.
var (
	// ErrInvalidKeySize is returned when a symmetric key has the wrong size.
	ErrInvalidKeySize = fmt.Errorf("%w: invalid key size", ErrMalformedInput)

	// ErrInvalidNonceSize is returned when a nonce has the wrong size.
	ErrInvalidNonceSize = fmt.Errorf("%w: invalid nonce size", ErrMalformedInput)

	// ErrInvalidPrivateKeySize is returned when a private scalar has the wrong size.
	ErrInvalidPrivateKeySize = fmt.Errorf("%w: invalid private key size", ErrMalformedInput)

	// ErrInvalidPublicKeySize is returned when a public key has the wrong size.
	ErrInvalidPublicKeySize = fmt.Errorf("%w: invalid public key size", ErrMalformedInput)
)
