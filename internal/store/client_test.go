package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestPut_ReturnsCID(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/posts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]string{"cid": "bafy123"})
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	cid, err := client.Put(context.Background(), []byte(`{"v":1}`))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if cid != "bafy123" {
		t.Errorf("cid = %q, want %q", cid, "bafy123")
	}
	if string(gotBody) != `{"v":1}` {
		t.Errorf("server received %q, want %q", gotBody, `{"v":1}`)
	}
}

func TestPut_SendsAuthToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer tok-1")
		}
		json.NewEncoder(w).Encode(map[string]string{"cid": "bafy123"})
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithAuthToken("tok-1"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Put(context.Background(), []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	bundle := `{"v":1,"tier":"press"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/posts/bafy123" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(bundle))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.Get(context.Background(), "bafy123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != bundle {
		t.Errorf("Get() = %s, want %s", got, bundle)
	}
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no such cid"})
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "no such cid" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "no such cid")
	}
}

func TestDo_RetriesOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"cid": "bafy123"})
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithRetries(3))
	if err != nil {
		t.Fatal(err)
	}

	cid, err := client.Put(context.Background(), []byte(`{}`))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if cid != "bafy123" {
		t.Errorf("cid = %q, want %q", cid, "bafy123")
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Put(context.Background(), []byte(`{}`))
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty base URL")
	}
}
