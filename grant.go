package humint

import (
	"fmt"

	"github.com/humintnet/client-go/internal/crypto"
)

// GrantVersion is the current grant bundle version.
const GrantVersion = 1

// Grant is a per-recipient key wrap: one post's content key, encrypted for
// exactly one recipient through a one-off DH exchange with the granter.
// It carries no tier or epoch; a grant is a point-to-point capability,
// independent of any membership.
type Grant struct {
	// V is the grant format version.
	V int `json:"v"`
	// WrappedKey is the content key wrapped for the recipient
	// (base64url, nonce-prefixed).
	WrappedKey string `json:"wrapped_key"`
	// GranterPk is the granter's X25519 public key (base64url). The
	// recipient needs it for their side of the DH exchange.
	GranterPk string `json:"granter_pk"`
	// RecipientPk is the intended recipient's X25519 public key
	// (base64url). Informational; the wrap itself enforces addressing.
	RecipientPk string `json:"recipient_pk,omitempty"`
}

func newGrant(wrappedKey []byte, granter, recipient *PublicKey) *Grant {
	return &Grant{
		V:           GrantVersion,
		WrappedKey:  crypto.ToBase64URL(wrappedKey),
		GranterPk:   crypto.ToBase64URL(granter.Bytes()),
		RecipientPk: crypto.ToBase64URL(recipient.Bytes()),
	}
}

func (g *Grant) wrappedKeyBytes() ([]byte, error) {
	if g.V != GrantVersion {
		return nil, fmt.Errorf("%w: unsupported grant version %d", ErrMalformedInput, g.V)
	}

	wrapped, err := crypto.DecodeBase64(g.WrappedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: decode wrapped_key: %v", ErrMalformedInput, err)
	}
	return wrapped, nil
}

// Granter returns the granter's public key from the bundle.
func (g *Grant) Granter() (*PublicKey, error) {
	raw, err := crypto.DecodeBase64(g.GranterPk)
	if err != nil {
		return nil, fmt.Errorf("%w: decode granter_pk: %v", ErrMalformedInput, err)
	}
	return NewPublicKey(raw)
}
