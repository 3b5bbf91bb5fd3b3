// Package store implements the HTTP client for the external content store
// that persists encrypted post bundles. Bundles are opaque JSON documents to
// this package; it never inspects or decrypts them. Addressing is by CID,
// the content identifier returned by the store on upload.
package store
