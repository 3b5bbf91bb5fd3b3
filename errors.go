package humint

import (
	"errors"
	"fmt"

	"github.com/humintnet/client-go/internal/crypto"
	"github.com/humintnet/client-go/internal/store"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidSignature is returned when the wallet signature used for
	// keypair derivation is malformed or has the wrong length.
	ErrInvalidSignature = errors.New("invalid wallet signature")

	// ErrInvalidPublicKey is returned when a peer public key fails curve
	// validation.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrAuthenticationFailed is returned when an AEAD tag does not verify.
	// It covers both a wrong key and tampered ciphertext, intentionally
	// indistinguishable.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrMalformedInput is returned for wrong-length byte buffers, empty
	// tier/epoch strings, and malformed bundle fields.
	ErrMalformedInput = errors.New("malformed input")

	// ErrSessionClosed is returned when operations are attempted on a
	// closed session.
	ErrSessionClosed = errors.New("session has been closed")

	// ErrPostNotFound is returned when the content store has no bundle
	// for the requested CID.
	ErrPostNotFound = errors.New("post not found")

	// ErrSignatureInvalid is returned when a post bundle's source
	// signature does not verify.
	ErrSignatureInvalid = errors.New("source signature verification failed")

	// ErrContentHashMismatch is returned when decrypted content does not
	// match the bundle's integrity commitment.
	ErrContentHashMismatch = errors.New("content hash mismatch")

	// ErrStoreUnauthorized is returned when the content store rejects the
	// client's credentials.
	ErrStoreUnauthorized = errors.New("invalid or expired store token")

	// ErrRateLimited is returned when the content store rate limit is
	// exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// HumintError is implemented by all SDK error types.
type HumintError interface {
	error
	HumintError() // marker method
}

// AccessDeniedError is the product-level reading of an authentication
// failure: the caller's DH relationship cannot derive the epoch key for
// this post, so the content stays sealed. Failing to derive the right key
// is the access-control mechanism, not a bug.
type AccessDeniedError struct {
	Tier  string
	Epoch string
	Err   error
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for tier %q epoch %q: %v", e.Tier, e.Epoch, e.Err)
}

// Unwrap returns the underlying error.
func (e *AccessDeniedError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// HumintError implements the HumintError interface.
func (e *AccessDeniedError) HumintError() {}

// DecryptionError represents a failure while opening a post bundle.
type DecryptionError struct {
	Stage   string // "unwrap", "open", "hash"
	Message string
	Err     error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decryption failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("decryption failed at %s: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// HumintError implements the HumintError interface.
func (e *DecryptionError) HumintError() {}

// SignatureVerificationError indicates a post bundle whose source signature
// does not verify: potential tampering or an impostor source key.
type SignatureVerificationError struct {
	Message string
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("source signature verification failed: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureVerificationError) Is(target error) bool {
	return target == ErrSignatureInvalid
}

// HumintError implements the HumintError interface.
func (e *SignatureVerificationError) HumintError() {}

// StoreError represents an HTTP error from the content store.
type StoreError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("store error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("store error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *StoreError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrStoreUnauthorized
	case 404:
		return target == ErrPostNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// HumintError implements the HumintError interface.
func (e *StoreError) HumintError() {}

// NetworkError represents a network-level failure reaching the content store.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HumintError implements the HumintError interface.
func (e *NetworkError) HumintError() {}

// wrapCryptoError converts internal crypto errors to public sentinel errors
// so that errors.Is() checks work correctly.
func wrapCryptoError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, crypto.ErrInvalidSignature):
		return ErrInvalidSignature
	case errors.Is(err, crypto.ErrInvalidPublicKey):
		return ErrInvalidPublicKey
	case errors.Is(err, crypto.ErrAuthenticationFailed):
		return ErrAuthenticationFailed
	case errors.Is(err, crypto.ErrMalformedInput):
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	return err
}

// wrapStoreError converts internal store errors to public error types.
func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *store.APIError
	if errors.As(err, &apiErr) {
		return &StoreError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
			RequestID:  apiErr.RequestID,
		}
	}

	var netErr *store.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{Err: netErr.Err, URL: netErr.URL}
	}

	return err
}
