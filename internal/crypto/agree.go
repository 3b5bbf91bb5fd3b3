package crypto

import "golang.org/x/crypto/curve25519"

// SharedSecret performs X25519 key agreement between a private scalar and a
// peer public key. The operation is constant-time and commutative:
//
//	SharedSecret(aPriv, bPub) == SharedSecret(bPriv, aPub)
//
// A peer key on a small-order subgroup (all-zero shared secret) is rejected
// with ErrInvalidPublicKey. The result is ephemeral key material; callers
// must not persist it.
func SharedSecret(myPrivateKey, peerPublicKey []byte) ([]byte, error) {
	if len(myPrivateKey) != PrivateKeySize {
		return nil, ErrInvalidPrivateKeySize
	}
	if len(peerPublicKey) != PublicKeySize {
		return nil, ErrInvalidPublicKeySize
	}

	secret, err := curve25519.X25519(myPrivateKey, peerPublicKey)
	if err != nil {
		// curve25519 rejects low-order points by checking for an
		// all-zero output.
		return nil, ErrInvalidPublicKey
	}

	return secret, nil
}
