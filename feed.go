package humint

import (
	"context"
	"fmt"
)

// PostAnchor is the public metadata a source anchors on-chain next to the
// stored bundle: enough for discovery and integrity, nothing decryptable.
type PostAnchor struct {
	// CID addresses the bundle in the content store.
	CID string
	// ContentHash is the hex SHA-256 commitment over the plaintext.
	ContentHash string
	// Tier is the minimum access tier.
	Tier string
	// Epoch is the access period.
	Epoch string
}

// Feed combines a crypto session with the content-store collaborator into
// the publish/fetch flows a source or subscriber actually runs. It owns no
// key material beyond what the session holds.
type Feed struct {
	session *CryptoSession
	store   ContentStore

	signer      Signer // optional; posts are signed when set
	pinnedSigPk []byte // optional; fetched bundles must carry this key
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithSigner makes Publish sign every bundle with the source's wallet key.
func WithSigner(signer Signer) FeedOption {
	return func(f *Feed) { f.signer = signer }
}

// WithPinnedSourceKey makes Fetch require a valid source signature by the
// given Ed25519 verification key on every bundle. Use the key the source
// registered on the feed contract.
func WithPinnedSourceKey(sigPk []byte) FeedOption {
	return func(f *Feed) {
		pinned := make([]byte, len(sigPk))
		copy(pinned, sigPk)
		f.pinnedSigPk = pinned
	}
}

// NewFeed creates a Feed around an open session and a content store.
func NewFeed(session *CryptoSession, store ContentStore, opts ...FeedOption) (*Feed, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: nil session", ErrMalformedInput)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: nil content store", ErrMalformedInput)
	}

	f := &Feed{session: session, store: store}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Publish encrypts content for (tier, epoch), signs the bundle when a
// signer is configured, uploads it, and returns the anchor fields the
// caller records on-chain.
func (f *Feed) Publish(ctx context.Context, content []byte, peer *PublicKey, tier, epoch string) (*PostAnchor, error) {
	post, err := f.session.EncryptPost(content, peer, tier, epoch)
	if err != nil {
		return nil, err
	}

	if f.signer != nil {
		if err := post.Sign(f.signer); err != nil {
			return nil, err
		}
	}

	cid, err := f.store.Put(ctx, post)
	if err != nil {
		return nil, err
	}

	return &PostAnchor{
		CID:         cid,
		ContentHash: post.ContentHash,
		Tier:        post.Tier,
		Epoch:       post.Epoch,
	}, nil
}

// Fetch retrieves a bundle by CID, validates its shape, verifies the source
// signature when a pinned key is configured, and decrypts it through the
// session's DH relationship with peer. Signature verification happens
// before any decryption attempt.
func (f *Feed) Fetch(ctx context.Context, cid string, peer *PublicKey) ([]byte, error) {
	post, err := f.store.Get(ctx, cid)
	if err != nil {
		return nil, err
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if f.pinnedSigPk != nil {
		if err := post.VerifySource(f.pinnedSigPk); err != nil {
			return nil, err
		}
	}

	return f.session.DecryptPost(post, peer)
}

// FetchPost retrieves and validates a bundle without decrypting it, for
// callers that only need the envelope (relays, integrity checkers).
func (f *Feed) FetchPost(ctx context.Context, cid string) (*EncryptedPost, error) {
	post, err := f.store.Get(ctx, cid)
	if err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	return post, nil
}
