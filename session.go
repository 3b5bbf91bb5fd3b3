package humint

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/humintnet/client-go/internal/crypto"
)

// CryptoSession holds a party's identity keypair for the lifetime of one
// login, together with a session-scoped cache of shared secrets and epoch
// keys. Recomputing the DH exchange for every post is wasteful; caching it
// here keeps the optimization inside an object the caller owns and can
// destroy. Nothing in the session is ever written to durable storage.
//
// A session is safe for concurrent use. Close zeroes the private key and
// all cached key material.
type CryptoSession struct {
	accountID string
	keypair   *crypto.Keypair

	mu        sync.Mutex
	secrets   map[string][]byte // peer public key -> DH shared secret
	epochKeys map[string][]byte // peer|tier|epoch -> epoch key
	closed    bool
}

// Login derives the identity keypair from a deterministic wallet signature
// and opens a session around it. The signature must be over the constant
// message built by [SigningMessage] for the same account; the same
// (accountID, signature) pair always yields the same keypair, which is what
// lets a source or subscriber log in repeatedly with no stored keys.
func Login(accountID string, signature []byte) (*CryptoSession, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: empty account id", ErrMalformedInput)
	}

	keypair, err := crypto.DeriveKeypair(signature)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	return &CryptoSession{
		accountID: accountID,
		keypair:   keypair,
		secrets:   make(map[string][]byte),
		epochKeys: make(map[string][]byte),
	}, nil
}

// LoginWithSigner asks the wallet to sign the domain-tagged identity
// message for accountID and opens a session from the result.
func LoginWithSigner(accountID string, signer Signer) (*CryptoSession, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: empty account id", ErrMalformedInput)
	}

	signature, err := signer.Sign([]byte(SigningMessage(accountID)))
	if err != nil {
		return nil, fmt.Errorf("wallet signing failed: %w", err)
	}

	return Login(accountID, signature)
}

// AccountID returns the wallet account this session was opened for.
func (s *CryptoSession) AccountID() string {
	return s.accountID
}

// PublicKey returns the session's X25519 identity public key.
func (s *CryptoSession) PublicKey() *PublicKey {
	pk, _ := NewPublicKey(s.keypair.PublicKey)
	return pk
}

// Identity returns the session's public identity.
func (s *CryptoSession) Identity() *Identity {
	return &Identity{AccountID: s.accountID, PublicKey: s.PublicKey()}
}

// SharedSecretWith computes (or returns the cached) X25519 shared secret
// with a peer. The returned slice is a copy; the cached secret lives only
// until Close.
func (s *CryptoSession) SharedSecretWith(peer *PublicKey) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	secret, err := s.sharedSecretLocked(peer)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(secret))
	copy(out, secret)
	return out, nil
}

func (s *CryptoSession) sharedSecretLocked(peer *PublicKey) ([]byte, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if peer == nil {
		return nil, fmt.Errorf("%w: nil peer public key", ErrMalformedInput)
	}

	cacheKey := string(peer.Bytes())
	if secret, ok := s.secrets[cacheKey]; ok {
		return secret, nil
	}

	secret, err := crypto.SharedSecret(s.keypair.PrivateKey, peer.Bytes())
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	s.secrets[cacheKey] = secret
	return secret, nil
}

// EpochKeyFor derives (or returns the cached) symmetric key for one
// (peer, tier, epoch) triple. Both ends of a DH relationship derive the
// same key, which is the entire access-control mechanism: a lapsed
// subscriber has no valid DH inputs and simply never derives it.
func (s *CryptoSession) EpochKeyFor(peer *PublicKey, tier, epoch string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.epochKeyLocked(peer, tier, epoch)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(key))
	copy(out, key)
	return out, nil
}

func (s *CryptoSession) epochKeyLocked(peer *PublicKey, tier, epoch string) ([]byte, error) {
	secret, err := s.sharedSecretLocked(peer)
	if err != nil {
		return nil, err
	}

	cacheKey := string(peer.Bytes()) + "|" + tier + "|" + epoch
	if key, ok := s.epochKeys[cacheKey]; ok {
		return key, nil
	}

	key, err := crypto.EpochKey(secret, tier, epoch)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	s.epochKeys[cacheKey] = key
	return key, nil
}

// EncryptPost encrypts content for everyone who can derive the epoch key of
// (tier, epoch) through a DH relationship with this session's identity. A
// fresh content key and IV are drawn per call; the content key travels only
// wrapped under the epoch key.
func (s *CryptoSession) EncryptPost(content []byte, peer *PublicKey, tier, epoch string) (*EncryptedPost, error) {
	epochKey, err := s.EpochKeyFor(peer, tier, epoch)
	if err != nil {
		return nil, err
	}

	sealed, err := crypto.SealPost(content, epochKey)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	return newEncryptedPost(sealed, tier, epoch), nil
}

// DecryptPost recovers post content using the epoch key derived from this
// session's DH relationship with peer. A caller whose relationship cannot
// derive the right key gets an [AccessDeniedError] (an access-denied state,
// not a crypto bug) and never sees partial plaintext. Decrypted content is
// checked against the bundle's integrity commitment.
func (s *CryptoSession) DecryptPost(post *EncryptedPost, peer *PublicKey) ([]byte, error) {
	if post == nil {
		return nil, fmt.Errorf("%w: nil post", ErrMalformedInput)
	}

	raw, err := post.decode()
	if err != nil {
		return nil, err
	}

	epochKey, err := s.EpochKeyFor(peer, post.Tier, post.Epoch)
	if err != nil {
		return nil, err
	}

	content, err := crypto.OpenPost(raw.ciphertext, raw.iv, raw.wrappedKey, epochKey)
	if err != nil {
		if wrapped := wrapCryptoError(err); wrapped == ErrAuthenticationFailed {
			return nil, &AccessDeniedError{Tier: post.Tier, Epoch: post.Epoch, Err: wrapped}
		}
		return nil, &DecryptionError{Stage: "open", Err: wrapCryptoError(err)}
	}

	if !bytes.Equal(crypto.ContentHash(content), raw.contentHash) {
		return nil, &DecryptionError{Stage: "hash", Err: ErrContentHashMismatch}
	}

	return content, nil
}

// GrantPost re-wraps a post's content key for one specific recipient,
// bypassing tier membership entirely. The session must itself be able to
// derive the post's epoch key (peer is the DH counterpart it was encrypted
// with). The content body is not re-encrypted.
func (s *CryptoSession) GrantPost(post *EncryptedPost, peer, recipient *PublicKey) (*Grant, error) {
	if post == nil {
		return nil, fmt.Errorf("%w: nil post", ErrMalformedInput)
	}
	if recipient == nil {
		return nil, fmt.Errorf("%w: nil recipient public key", ErrMalformedInput)
	}

	raw, err := post.decode()
	if err != nil {
		return nil, err
	}

	epochKey, err := s.EpochKeyFor(peer, post.Tier, post.Epoch)
	if err != nil {
		return nil, err
	}

	contentKey, err := crypto.DecryptAES(epochKey, raw.wrappedKey)
	if err != nil {
		if wrapped := wrapCryptoError(err); wrapped == ErrAuthenticationFailed {
			return nil, &AccessDeniedError{Tier: post.Tier, Epoch: post.Epoch, Err: wrapped}
		}
		return nil, wrapCryptoError(err)
	}

	wrapped, err := crypto.WrapGrant(contentKey, recipient.Bytes(), s.keypair.PrivateKey)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	return newGrant(wrapped, s.PublicKey(), recipient), nil
}

// AcceptGrant unwraps a grant addressed to this session and decrypts the
// post content with the recovered content key. A grant addressed to a
// different recipient fails with an [AccessDeniedError].
func (s *CryptoSession) AcceptGrant(post *EncryptedPost, grant *Grant, granter *PublicKey) ([]byte, error) {
	if post == nil || grant == nil {
		return nil, fmt.Errorf("%w: nil post or grant", ErrMalformedInput)
	}
	if granter == nil {
		return nil, fmt.Errorf("%w: nil granter public key", ErrMalformedInput)
	}

	raw, err := post.decode()
	if err != nil {
		return nil, err
	}

	wrappedKey, err := grant.wrappedKeyBytes()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSessionClosed
	}

	contentKey, err := crypto.UnwrapGrant(wrappedKey, granter.Bytes(), s.keypair.PrivateKey)
	if err != nil {
		if wrapped := wrapCryptoError(err); wrapped == ErrAuthenticationFailed {
			return nil, &AccessDeniedError{Tier: post.Tier, Epoch: post.Epoch, Err: wrapped}
		}
		return nil, wrapCryptoError(err)
	}

	content, err := crypto.Open(contentKey, raw.ciphertext, raw.iv)
	if err != nil {
		return nil, &DecryptionError{Stage: "open", Err: wrapCryptoError(err)}
	}

	if !bytes.Equal(crypto.ContentHash(content), raw.contentHash) {
		return nil, &DecryptionError{Stage: "hash", Err: ErrContentHashMismatch}
	}

	return content, nil
}

// Close destroys the session: the private key and every cached shared
// secret and epoch key are zeroed, and all further operations fail with
// ErrSessionClosed.
func (s *CryptoSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	s.keypair.Zero()
	for k, secret := range s.secrets {
		zero(secret)
		delete(s.secrets, k)
	}
	for k, key := range s.epochKeys {
		zero(key)
		delete(s.epochKeys, k)
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
