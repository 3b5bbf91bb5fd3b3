// Package humint provides a Go client SDK for the humint intelligence
// platform's zero-storage encryption scheme: anonymous sources publish
// tiered content that only access-entitled subscribers can decrypt, and no
// symmetric key is ever stored, transmitted, or known to the platform.
//
// Both ends derive the same key through pure local computation. A party's
// identity keypair is re-derived on every login from a deterministic wallet
// signature; X25519 key agreement plus HKDF expansion yields a fresh
// symmetric key per (tier, epoch) pair. Whoever cannot compute the right
// key simply cannot decrypt; access control is a property of the
// cryptography, not a permission table.
//
// Basic usage:
//
//	msg := humint.SigningMessage("alice.near")
//	sig, err := wallet.Sign([]byte(msg)) // deterministic wallet signature
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := humint.Login("alice.near", sig)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	// Encrypt a post for the "press" tier, current epoch.
//	post, err := session.EncryptPost(content, subscriberPub, "press", humint.CurrentEpoch())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Any current pass holder independently derives the same epoch key.
//	plaintext, err := subscriber.DecryptPost(post, sourcePub)
//
// Shared secrets and epoch keys are cached only inside the session and are
// destroyed by [CryptoSession.Close]. Nothing in this package writes key
// material to durable storage.
package humint
