package humint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/humintnet/client-go/internal/crypto"
	"github.com/humintnet/client-go/internal/store"
)

// ContentStore is the collaborator that persists encrypted post bundles.
// Bundles are opaque to the store: it sees ciphertext, wrapped keys, and a
// public content hash, never a key or a plaintext. Addressing is by CID.
type ContentStore interface {
	// Put persists a bundle and returns its CID.
	Put(ctx context.Context, post *EncryptedPost) (cid string, err error)
	// Get fetches a bundle by CID. A missing CID yields ErrPostNotFound.
	Get(ctx context.Context, cid string) (*EncryptedPost, error)
}

// HTTPStore is a ContentStore backed by the platform's content-store HTTP
// API (an IPFS-gateway-style service).
type HTTPStore struct {
	client *store.Client
}

// StoreOption configures an HTTPStore.
type StoreOption func(*storeConfig)

type storeConfig struct {
	authToken  string
	httpClient *http.Client
	timeout    time.Duration
	retries    int
}

// WithStoreAuthToken sets the bearer token sent on uploads.
func WithStoreAuthToken(token string) StoreOption {
	return func(c *storeConfig) { c.authToken = token }
}

// WithStoreHTTPClient sets a custom HTTP client.
func WithStoreHTTPClient(client *http.Client) StoreOption {
	return func(c *storeConfig) { c.httpClient = client }
}

// WithStoreTimeout sets the per-request timeout.
func WithStoreTimeout(timeout time.Duration) StoreOption {
	return func(c *storeConfig) { c.timeout = timeout }
}

// WithStoreRetries sets the retry count for 5xx responses and network errors.
func WithStoreRetries(retries int) StoreOption {
	return func(c *storeConfig) { c.retries = retries }
}

// NewHTTPStore creates a content-store client for the given base URL.
func NewHTTPStore(baseURL string, opts ...StoreOption) (*HTTPStore, error) {
	var cfg storeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var storeOpts []store.Option
	if cfg.authToken != "" {
		storeOpts = append(storeOpts, store.WithAuthToken(cfg.authToken))
	}
	if cfg.httpClient != nil {
		storeOpts = append(storeOpts, store.WithHTTPClient(cfg.httpClient))
	}
	if cfg.timeout > 0 {
		storeOpts = append(storeOpts, store.WithTimeout(cfg.timeout))
	}
	if cfg.retries > 0 {
		storeOpts = append(storeOpts, store.WithRetries(cfg.retries))
	}

	client, err := store.New(baseURL, storeOpts...)
	if err != nil {
		return nil, err
	}

	return &HTTPStore{client: client}, nil
}

// Put implements ContentStore.
func (s *HTTPStore) Put(ctx context.Context, post *EncryptedPost) (string, error) {
	if post == nil {
		return "", fmt.Errorf("%w: nil post", ErrMalformedInput)
	}

	bundle, err := json.Marshal(post)
	if err != nil {
		return "", fmt.Errorf("marshal bundle: %w", err)
	}

	cid, err := s.client.Put(ctx, bundle)
	if err != nil {
		return "", wrapStoreError(err)
	}
	return cid, nil
}

// Get implements ContentStore.
func (s *HTTPStore) Get(ctx context.Context, cid string) (*EncryptedPost, error) {
	bundle, err := s.client.Get(ctx, cid)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	var post EncryptedPost
	if err := json.Unmarshal(bundle, &post); err != nil {
		return nil, fmt.Errorf("%w: unmarshal bundle: %v", ErrMalformedInput, err)
	}
	return &post, nil
}

// MemoryStore is an in-memory ContentStore for tests and local development.
// CIDs are derived from the bundle's content hash, mimicking
// content-addressed storage.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]*EncryptedPost
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[string]*EncryptedPost)}
}

// Put implements ContentStore.
func (m *MemoryStore) Put(_ context.Context, post *EncryptedPost) (string, error) {
	if post == nil {
		return "", fmt.Errorf("%w: nil post", ErrMalformedInput)
	}

	bundle, err := json.Marshal(post)
	if err != nil {
		return "", err
	}
	cid := "mem-" + crypto.ToBase64URL(crypto.ContentHash(bundle))

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *post
	m.posts[cid] = &stored
	return cid, nil
}

// Get implements ContentStore.
func (m *MemoryStore) Get(_ context.Context, cid string) (*EncryptedPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[cid]
	if !ok {
		return nil, ErrPostNotFound
	}

	out := *post
	return &out, nil
}
