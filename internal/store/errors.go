package store

import (
	"errors"
	"fmt"
)

// Common store errors that can be checked with errors.Is.
var (
	// ErrNotFound indicates the requested bundle does not exist.
	ErrNotFound = errors.New("bundle not found")
	// ErrUnauthorized indicates the store rejected the client's credentials.
	ErrUnauthorized = errors.New("invalid or expired store token")
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// APIError represents an HTTP error from the content store.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("store error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("store error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("store error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("store error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
