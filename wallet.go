package humint

import (
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/humintnet/client-go/internal/crypto"
)

// SigningMessage builds the constant, domain-tagged message a wallet must
// sign to derive its identity keypair: "humint-identity-v1 | <accountId>".
// The message is deliberately timestamp-free so the wallet produces the
// same signature on every login.
func SigningMessage(accountID string) string {
	return crypto.IdentityDomainTag + " | " + accountID
}

// Signer is the wallet signing collaborator. Implementations must be
// deterministic: signing the same message twice must yield identical bytes,
// or the derived identity keypair will not be reproducible.
type Signer interface {
	// Sign signs a message and returns the raw signature bytes.
	Sign(message []byte) ([]byte, error)
	// SigningPublicKey returns the wallet's Ed25519 verification key.
	SigningPublicKey() []byte
}

// LocalSigner is an in-process Ed25519 signer backed by a seed held in
// memory. It stands in for a wallet in tests, examples, and the CLI;
// production deployments sign through the user's actual wallet.
type LocalSigner struct {
	priv ed25519.PrivateKey
}

// NewLocalSigner creates a signer from a 32-byte Ed25519 seed.
func NewLocalSigner(seed []byte) (*LocalSigner, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrMalformedInput, ed25519.SeedSize, len(seed))
	}
	return &LocalSigner{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// GenerateLocalSigner creates a signer with a fresh random key.
func GenerateLocalSigner() (*LocalSigner, error) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}
	return &LocalSigner{priv: priv}, nil
}

// Sign signs a message with Ed25519. Ed25519 signatures are deterministic,
// which is exactly the property keypair derivation depends on.
func (s *LocalSigner) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, message), nil
}

// SigningPublicKey returns the Ed25519 verification key.
func (s *LocalSigner) SigningPublicKey() []byte {
	return s.priv.Public().(ed25519.PublicKey)
}

// VerifyWalletSignature checks an Ed25519 signature against a wallet's
// verification key. The encryption core never calls this; feed consumers
// use it to authenticate
// bundle signatures against a source's registered key.
func VerifyWalletSignature(publicKey, message, signature []byte) error {
	if len(publicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: verification key must be %d bytes", ErrMalformedInput, ed25519.PublicKeySize)
	}
	if len(signature) != ed25519.SignatureSize {
		return fmt.Errorf("%w: signature must be %d bytes", ErrMalformedInput, ed25519.SignatureSize)
	}

	if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
		return &SignatureVerificationError{Message: "signature does not match message"}
	}

	return nil
}
