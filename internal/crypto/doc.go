// Package crypto provides the cryptographic primitives for the humint
// zero-storage encryption scheme. It implements deterministic keypair
// derivation, X25519 key agreement, epoch-scoped key derivation, and
// authenticated encryption.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - X25519 (RFC 7748): Elliptic-curve Diffie-Hellman for establishing
//     shared secrets between a source and a subscriber. Constant-time.
//
//   - HKDF-SHA-256 (RFC 5869): Key derivation function for expanding DH
//     shared secrets into per-(tier, epoch) symmetric keys and grant
//     key-wrapping keys, with domain separation.
//
//   - AES-256-GCM: Authenticated encryption with associated data (AEAD)
//     for post content and for wrapping per-post content keys.
//
//   - SHA-256: Signature-to-seed hashing for deterministic keypair
//     derivation, and content-integrity commitments over plaintext.
//
// # Security Model
//
// The scheme provides capability-based access control: no key is ever
// stored or transmitted by the platform. A party that can compute the
// correct DH shared secret can derive the epoch key for a (tier, epoch)
// pair; a party that cannot fails at the content-key unwrap step with
// [ErrAuthenticationFailed]. There is no separate permission check.
//
// # Critical Security Notes
//
// AES-GCM nonces MUST be unique for each encryption with the same key.
// Nonce reuse completely breaks the security of AES-GCM. All nonces and
// content keys in this package are drawn from a CSPRNG per call.
//
// Private scalars are derived from a wallet signature over a constant,
// domain-tagged message. The signature must be deterministic: signing the
// same message twice must yield the same bytes, or the derived keypair
// will not be reproducible across logins.
//
// Shared secrets and derived keys are ephemeral. Callers own their
// lifetime and must not write them to durable storage.
package crypto
