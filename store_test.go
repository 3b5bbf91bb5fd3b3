package humint

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	post, _, _ := testPost(t, []byte("stored body"))

	cid, err := store.Put(ctx, post)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if cid == "" {
		t.Fatal("Put() returned empty CID")
	}

	got, err := store.Get(ctx, cid)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(post, got); diff != "" {
		t.Errorf("stored bundle mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_ContentAddressed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	post, _, _ := testPost(t, []byte("same bundle"))

	cid1, err := store.Put(ctx, post)
	if err != nil {
		t.Fatal(err)
	}
	cid2, err := store.Put(ctx, post)
	if err != nil {
		t.Fatal(err)
	}
	if cid1 != cid2 {
		t.Error("identical bundles got different CIDs")
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "mem-nope"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestMemoryStore_CopiesOnGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	post, _, _ := testPost(t, []byte("isolated"))
	cid, err := store.Put(ctx, post)
	if err != nil {
		t.Fatal(err)
	}

	first, err := store.Get(ctx, cid)
	if err != nil {
		t.Fatal(err)
	}
	first.Tier = "mutated"

	second, err := store.Get(ctx, cid)
	if err != nil {
		t.Fatal(err)
	}
	if second.Tier == "mutated" {
		t.Error("Get() returns a shared bundle")
	}
}

func TestHTTPStore_PutGet(t *testing.T) {
	ctx := context.Background()

	var stored []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/posts":
			stored, _ = io.ReadAll(r.Body)
			json.NewEncoder(w).Encode(map[string]string{"cid": "bafytest"})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/posts/bafytest":
			w.Write(stored)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store, err := NewHTTPStore(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	post, _, _ := testPost(t, []byte("remote body"))

	cid, err := store.Put(ctx, post)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if cid != "bafytest" {
		t.Errorf("cid = %q, want %q", cid, "bafytest")
	}

	got, err := store.Get(ctx, cid)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(post, got); diff != "" {
		t.Errorf("bundle mismatch after HTTP round trip (-want +got):\n%s", diff)
	}
}

func TestHTTPStore_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "message": "no such cid"})
	}))
	defer server.Close()

	store, err := NewHTTPStore(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.Get(context.Background(), "bafymissing")
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *StoreError, got %T", err)
	}
	if storeErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", storeErr.StatusCode)
	}
}

func TestHTTPStore_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer server.Close()

	store, err := NewHTTPStore(server.URL, WithStoreAuthToken("expired"))
	if err != nil {
		t.Fatal(err)
	}

	post, _, _ := testPost(t, []byte("rejected"))
	if _, err := store.Put(context.Background(), post); !errors.Is(err, ErrStoreUnauthorized) {
		t.Errorf("expected ErrStoreUnauthorized, got %v", err)
	}
}
