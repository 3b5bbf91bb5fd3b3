package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the HTTP content-store client.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	retries    int
}

// Option configures the store client.
type Option func(*Client)

// WithAuthToken sets the bearer token sent on upload requests.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetries sets the number of retries on 5xx responses and network errors.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.retries = retries
	}
}

// New creates a new content-store client.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("store base URL is required")
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retries: 3,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type putResponse struct {
	CID string `json:"cid"`
}

// Put uploads an encrypted bundle and returns the CID assigned by the store.
// The bundle is opaque; the store never sees a key or a plaintext.
func (c *Client) Put(ctx context.Context, bundle []byte) (string, error) {
	var result putResponse
	if err := c.do(ctx, http.MethodPost, "/v1/posts", bundle, &result); err != nil {
		return "", err
	}
	if result.CID == "" {
		return "", fmt.Errorf("store returned empty cid")
	}
	return result.CID, nil
}

// Get fetches an encrypted bundle by CID.
func (c *Client) Get(ctx context.Context, cid string) ([]byte, error) {
	if cid == "" {
		return nil, fmt.Errorf("cid is required")
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/v1/posts/"+url.PathEscape(cid), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, result interface{}) error {
	reqURL := c.baseURL + path

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		// The request is rebuilt per attempt so the body reader is fresh.
		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.authToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.authToken)
		}

		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil && resp.StatusCode < 500 {
			break
		}
		if attempt < c.retries {
			if resp != nil {
				resp.Body.Close()
				resp = nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt+1) * time.Second):
			}
		}
	}

	if lastErr != nil {
		return &NetworkError{Err: lastErr, URL: reqURL, Attempt: c.retries}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("X-Request-Id"),
	}

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			apiErr.Message = parsed.Message
		} else {
			apiErr.Message = parsed.Error
		}
	}

	return apiErr
}
