package humint

import (
	"encoding/hex"
	"fmt"

	"github.com/humintnet/client-go/internal/crypto"
)

// PostVersion is the current encrypted-post bundle version.
const PostVersion = 1

// EncryptedPost is the ciphertext bundle delivered to the content store.
// All byte fields are base64url-encoded except ContentHash, which is hex so
// it can be anchored on-chain next to the CID. The bundle contains
// everything a subscriber needs except the epoch key itself, which each
// party derives locally.
type EncryptedPost struct {
	// V is the bundle format version.
	V int `json:"v"`
	// Algs is the algorithm suite string.
	Algs string `json:"algs"`
	// Tier is the minimum access tier, e.g. "press".
	Tier string `json:"tier"`
	// Epoch is the access period, e.g. "2025-06".
	Epoch string `json:"epoch"`
	// Content is the sealed post body (base64url, detached nonce).
	Content string `json:"content"`
	// IV is the content nonce (base64url, 12 bytes decoded).
	IV string `json:"iv"`
	// WrappedKey is the content key sealed under the epoch key in wrap
	// mode (base64url, nonce-prefixed).
	WrappedKey string `json:"wrapped_key"`
	// ContentHash is the SHA-256 commitment over the plaintext (hex).
	// It is independent of the encryption and safe to publish.
	ContentHash string `json:"content_hash"`
	// SourceSigPk is the source's Ed25519 verification key (base64url).
	// Set by Sign.
	SourceSigPk string `json:"source_sig_pk,omitempty"`
	// Sig is the source's Ed25519 signature over the bundle transcript
	// (base64url). Set by Sign.
	Sig string `json:"sig,omitempty"`
}

func newEncryptedPost(sealed *crypto.SealedPost, tier, epoch string) *EncryptedPost {
	return &EncryptedPost{
		V:           PostVersion,
		Algs:        crypto.AlgsCiphersuite,
		Tier:        tier,
		Epoch:       epoch,
		Content:     crypto.ToBase64URL(sealed.Ciphertext),
		IV:          crypto.ToBase64URL(sealed.IV),
		WrappedKey:  crypto.ToBase64URL(sealed.WrappedKey),
		ContentHash: hex.EncodeToString(sealed.ContentHash),
	}
}

// decodedPost holds the raw byte fields of a bundle.
type decodedPost struct {
	ciphertext  []byte
	iv          []byte
	wrappedKey  []byte
	contentHash []byte
}

func (p *EncryptedPost) decode() (*decodedPost, error) {
	ciphertext, err := crypto.DecodeBase64(p.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: decode content: %v", ErrMalformedInput, err)
	}

	iv, err := crypto.DecodeBase64(p.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: decode iv: %v", ErrMalformedInput, err)
	}
	if len(iv) != crypto.NonceSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrMalformedInput, crypto.NonceSize, len(iv))
	}

	wrappedKey, err := crypto.DecodeBase64(p.WrappedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: decode wrapped_key: %v", ErrMalformedInput, err)
	}

	contentHash, err := hex.DecodeString(p.ContentHash)
	if err != nil {
		return nil, fmt.Errorf("%w: decode content_hash: %v", ErrMalformedInput, err)
	}
	if len(contentHash) != crypto.ContentHashSize {
		return nil, fmt.Errorf("%w: content_hash must be %d bytes, got %d", ErrMalformedInput, crypto.ContentHashSize, len(contentHash))
	}

	return &decodedPost{
		ciphertext:  ciphertext,
		iv:          iv,
		wrappedKey:  wrappedKey,
		contentHash: contentHash,
	}, nil
}

// Validate checks the bundle's shape: version, algorithm suite, tier/epoch
// presence, and field encodings. It does not require a signature.
func (p *EncryptedPost) Validate() error {
	if p.V != PostVersion {
		return fmt.Errorf("%w: unsupported bundle version %d", ErrMalformedInput, p.V)
	}
	if p.Algs != crypto.AlgsCiphersuite {
		return fmt.Errorf("%w: unsupported algorithm suite %q", ErrMalformedInput, p.Algs)
	}
	if p.Tier == "" {
		return fmt.Errorf("%w: empty tier", ErrMalformedInput)
	}
	if p.Epoch == "" {
		return fmt.Errorf("%w: empty epoch", ErrMalformedInput)
	}
	_, err := p.decode()
	return err
}

// transcript builds the byte string the source signs. Every field that
// affects decryption is covered, so a bundle cannot be re-tiered,
// re-epoched, or have its ciphertext swapped without breaking the
// signature.
func (p *EncryptedPost) transcript(sourceSigPk []byte) ([]byte, error) {
	raw, err := p.decode()
	if err != nil {
		return nil, err
	}

	t := []byte{byte(p.V)}
	t = append(t, []byte(p.Algs)...)
	t = append(t, []byte(crypto.IdentityDomainTag)...)
	t = append(t, []byte(p.Tier)...)
	t = append(t, '|')
	t = append(t, []byte(p.Epoch)...)
	t = append(t, raw.iv...)
	t = append(t, raw.wrappedKey...)
	t = append(t, raw.contentHash...)
	t = append(t, raw.ciphertext...)
	t = append(t, sourceSigPk...)

	return t, nil
}

// Sign attaches the source's Ed25519 signature over the bundle transcript.
// Subscribers verify it against the source's registered verification key
// before decrypting.
func (p *EncryptedPost) Sign(signer Signer) error {
	sigPk := signer.SigningPublicKey()

	transcript, err := p.transcript(sigPk)
	if err != nil {
		return err
	}

	sig, err := signer.Sign(transcript)
	if err != nil {
		return fmt.Errorf("sign bundle: %w", err)
	}

	p.SourceSigPk = crypto.ToBase64URL(sigPk)
	p.Sig = crypto.ToBase64URL(sig)
	return nil
}

// VerifySource checks the bundle's source signature. If pinnedSigPk is
// non-nil, the bundle's embedded key must match it; fetch paths pin the
// source's registered key so an impostor cannot substitute their own.
// Verification MUST happen before decryption.
func (p *EncryptedPost) VerifySource(pinnedSigPk []byte) error {
	if p.Sig == "" || p.SourceSigPk == "" {
		return &SignatureVerificationError{Message: "bundle is unsigned"}
	}

	sigPk, err := crypto.DecodeBase64(p.SourceSigPk)
	if err != nil {
		return fmt.Errorf("%w: decode source_sig_pk: %v", ErrMalformedInput, err)
	}

	if pinnedSigPk != nil && !bytesEqual(sigPk, pinnedSigPk) {
		return &SignatureVerificationError{Message: "bundle key differs from pinned source key"}
	}

	sig, err := crypto.DecodeBase64(p.Sig)
	if err != nil {
		return fmt.Errorf("%w: decode sig: %v", ErrMalformedInput, err)
	}

	transcript, err := p.transcript(sigPk)
	if err != nil {
		return err
	}

	return VerifyWalletSignature(sigPk, transcript, sig)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
