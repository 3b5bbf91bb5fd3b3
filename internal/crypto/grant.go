package crypto

import "fmt"

// grantKEK derives the key-wrapping key for a point-to-point grant from a
// DH exchange between the two parties' identity keys. The salt/info pair is
// distinct from the epoch scheme, so grant keys and epoch keys are
// cryptographically independent even for the same two parties.
func grantKEK(myPrivateKey, peerPublicKey []byte) ([]byte, error) {
	secret, err := SharedSecret(myPrivateKey, peerPublicKey)
	if err != nil {
		return nil, err
	}
	return DeriveKey(secret, []byte(GrantSalt), []byte(GrantInfo), KeySize)
}

// WrapGrant wraps a content key for one specific recipient, bypassing the
// epoch scheme entirely. Only the holder of the recipient private key,
// paired with the granter's public key, can unwrap it.
func WrapGrant(contentKey, recipientPublicKey, myPrivateKey []byte) ([]byte, error) {
	if len(contentKey) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(contentKey), KeySize)
	}

	kek, err := grantKEK(myPrivateKey, recipientPublicKey)
	if err != nil {
		return nil, err
	}

	nonce, err := NewNonce()
	if err != nil {
		return nil, err
	}

	return EncryptAES(kek, contentKey, nonce)
}

// UnwrapGrant recovers a content key from a grant produced by WrapGrant.
// A recipient the grant was not addressed to fails with
// ErrAuthenticationFailed.
func UnwrapGrant(wrappedKey, granterPublicKey, myPrivateKey []byte) ([]byte, error) {
	kek, err := grantKEK(myPrivateKey, granterPublicKey)
	if err != nil {
		return nil, err
	}

	contentKey, err := DecryptAES(kek, wrappedKey)
	if err != nil {
		return nil, err
	}
	if len(contentKey) != KeySize {
		return nil, fmt.Errorf("%w: unwrapped content key has wrong size", ErrMalformedInput)
	}

	return contentKey, nil
}
