package crypto

const (
	// IdentityDomainTag is the domain-separation tag prefixed to the
	// account id in the message a wallet signs to derive its identity
	// keypair. The full message is "humint-identity-v1 | <accountId>".
	IdentityDomainTag = "humint-identity-v1"

	// EpochKeyInfo is the HKDF info string for epoch key derivation.
	EpochKeyInfo = "epoch-key"

	// GrantSalt is the HKDF salt for per-recipient grant key wrapping,
	// distinct from the (tier, epoch) salt of the epoch scheme.
	GrantSalt = "grant"
	// GrantInfo is the HKDF info string for grant key wrapping.
	GrantInfo = "content-key-wrap"

	// PublicKeySize is the size of an X25519 public key in bytes.
	PublicKeySize = 32
	// PrivateKeySize is the size of an X25519 private scalar in bytes.
	PrivateKeySize = 32
	// SharedSecretSize is the size of an X25519 shared secret in bytes.
	SharedSecretSize = 32

	// WalletSignatureSize is the size of an Ed25519 wallet signature in
	// bytes, the only signature form accepted for keypair derivation.
	WalletSignatureSize = 64

	// KeySize is the size of an AES-256 key in bytes. Epoch keys and
	// content keys are both this size.
	KeySize = 32
	// NonceSize is the size of an AES-GCM nonce in bytes.
	NonceSize = 12
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16

	// ContentHashSize is the size of a SHA-256 content commitment in bytes.
	ContentHashSize = 32
)

// AlgsCiphersuite is the canonical string representation of the algorithm suite.
var AlgsCiphersuite = "X25519:HKDF-SHA-256:AES-256-GCM:Ed25519"
