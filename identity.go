package humint

import (
	"encoding"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/humintnet/client-go/internal/crypto"
)

// publicKeyPrefix is the text-form prefix for X25519 identity keys,
// matching the "<curve>:<base58>" convention NEAR wallets use for their
// Ed25519 keys.
const publicKeyPrefix = "x25519:"

// PublicKey is an X25519 identity public key. It is safe to publish; a
// source registers it on the feed contract and subscribers use it as the
// peer side of their DH exchange.
//
// It can be marshalled and unmarshalled as a "x25519:<base58>" string for
// human consumption and on-chain registration.
type PublicKey struct {
	k []byte
}

// NewPublicKey wraps raw X25519 public key bytes.
func NewPublicKey(raw []byte) (*PublicKey, error) {
	if len(raw) != crypto.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes", ErrMalformedInput, crypto.PublicKeySize)
	}
	k := make([]byte, crypto.PublicKeySize)
	copy(k, raw)
	return &PublicKey{k: k}, nil
}

// Bytes returns the raw 32-byte public key.
func (pk *PublicKey) Bytes() []byte {
	return pk.k
}

// String returns the public key in "x25519:<base58>" form.
func (pk *PublicKey) String() string {
	text, err := pk.MarshalText()
	if err != nil {
		panic(err)
	}
	return string(text)
}

// MarshalText encodes the public key as "x25519:<base58>".
func (pk *PublicKey) MarshalText() (text []byte, err error) {
	return []byte(publicKeyPrefix + base58.Encode(pk.k)), nil
}

// UnmarshalText decodes the result of MarshalText and updates the receiver.
// The prefix is optional: a bare base58 string is accepted too.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), publicKeyPrefix)

	data, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("%w: invalid public key encoding: %v", ErrMalformedInput, err)
	}
	if len(data) != crypto.PublicKeySize {
		return fmt.Errorf("%w: public key must be %d bytes, got %d", ErrMalformedInput, crypto.PublicKeySize, len(data))
	}

	pk.k = data
	return nil
}

var (
	_ encoding.TextMarshaler   = &PublicKey{}
	_ encoding.TextUnmarshaler = &PublicKey{}
	_ fmt.Stringer             = &PublicKey{}
)

// Identity is the public half of a party's presence on the platform: the
// account that controls the wallet and the X25519 key derived from its
// signature. It contains no secret material.
type Identity struct {
	// AccountID is the wallet account, e.g. "alice.near".
	AccountID string
	// PublicKey is the derived X25519 identity key.
	PublicKey *PublicKey
}

// String renders the identity as "<accountId> <x25519:...>".
func (id *Identity) String() string {
	return id.AccountID + " " + id.PublicKey.String()
}

// ParsePublicKey parses a public key from its text form.
func ParsePublicKey(s string) (*PublicKey, error) {
	var pk PublicKey
	if err := pk.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return &pk, nil
}
