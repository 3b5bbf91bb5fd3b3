package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/curve25519"
)

// randReader is the random source used for key and nonce generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// Keypair represents an X25519 identity keypair.
type Keypair struct {
	// PublicKey is the raw X25519 public key bytes.
	PublicKey []byte
	// PrivateKey is the raw clamped X25519 private scalar.
	// It must never leave the originating process.
	PrivateKey []byte
	// PublicKeyB64 is the public key encoded as URL-safe base64.
	PublicKeyB64 string
}

// DeriveKeypair deterministically derives an X25519 keypair from a wallet
// signature. The signature must be an Ed25519 signature (64 bytes) over the
// constant domain-tagged message "humint-identity-v1 | <accountId>"; hashing
// it with SHA-256 yields the private scalar seed. The same signature always
// yields the same keypair, so a source or subscriber can re-derive its
// identity on every login without storing key material.
func DeriveKeypair(signature []byte) (*Keypair, error) {
	if len(signature) != WalletSignatureSize {
		return nil, ErrInvalidSignature
	}

	seed := sha256.Sum256(signature)
	return keypairFromSeed(seed[:])
}

// GenerateKeypair creates a new random X25519 keypair. Used for one-off
// grant recipients and tests; platform identities use DeriveKeypair.
func GenerateKeypair() (*Keypair, error) {
	seed := make([]byte, PrivateKeySize)
	if _, err := io.ReadFull(randSource(), seed); err != nil {
		return nil, err
	}
	return keypairFromSeed(seed)
}

// KeypairFromPrivateKey reconstructs a keypair from a raw private scalar.
func KeypairFromPrivateKey(privateKey []byte) (*Keypair, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, ErrInvalidPrivateKeySize
	}
	return keypairFromSeed(privateKey)
}

// keypairFromSeed clamps the seed per RFC 7748 and derives the public key
// by scalar multiplication with the curve base point.
func keypairFromSeed(seed []byte) (*Keypair, error) {
	priv := make([]byte, PrivateKeySize)
	copy(priv, seed)
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, err
	}

	return &Keypair{
		PublicKey:    pub,
		PrivateKey:   priv,
		PublicKeyB64: ToBase64URL(pub),
	}, nil
}

// Zero overwrites the private scalar. The keypair is unusable afterwards.
func (k *Keypair) Zero() {
	for i := range k.PrivateKey {
		k.PrivateKey[i] = 0
	}
}
