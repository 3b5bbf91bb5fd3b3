package humint

import "context"

// Attestor is the access-ledger collaborator: it answers whether an account
// currently holds a valid pass for a source's tier. On the platform this is
// backed by on-chain NFT access passes; this SDK only consumes the boolean.
//
// The encryption core never calls the attestor. A subscriber without a
// valid pass cannot derive the epoch key in the first place, which is the
// real gate. Publishing flows may still consult it as a courtesy check
// before handing out peer public keys.
type Attestor interface {
	HasAccess(ctx context.Context, accountID, sourceID, tier string) (bool, error)
}

// StaticAttestor is an in-memory Attestor keyed by "account/source/tier".
// Useful for tests and local development.
type StaticAttestor map[string]bool

// Allow records that accountID holds a pass for sourceID's tier.
func (a StaticAttestor) Allow(accountID, sourceID, tier string) {
	a[accountID+"/"+sourceID+"/"+tier] = true
}

// HasAccess implements Attestor.
func (a StaticAttestor) HasAccess(_ context.Context, accountID, sourceID, tier string) (bool, error) {
	return a[accountID+"/"+sourceID+"/"+tier], nil
}
