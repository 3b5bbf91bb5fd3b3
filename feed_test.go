package humint

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestFeed_PublishFetch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	source := testSession(t, "alice.near")
	subscriber := testSession(t, "bob.near")

	sourceFeed, err := NewFeed(source, store)
	if err != nil {
		t.Fatal(err)
	}
	subscriberFeed, err := NewFeed(subscriber, store)
	if err != nil {
		t.Fatal(err)
	}

	content := []byte("monthly briefing")
	anchor, err := sourceFeed.Publish(ctx, content, subscriber.PublicKey(), "press", "2025-06")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if anchor.CID == "" {
		t.Fatal("Publish() returned empty CID")
	}
	if anchor.Tier != "press" || anchor.Epoch != "2025-06" {
		t.Errorf("anchor carries tier=%q epoch=%q", anchor.Tier, anchor.Epoch)
	}
	if len(anchor.ContentHash) != 64 {
		t.Errorf("anchor content hash is %d hex chars, want 64", len(anchor.ContentHash))
	}

	got, err := subscriberFeed.Fetch(ctx, anchor.CID, source.PublicKey())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("fetched %q, want %q", got, content)
	}
}

func TestFeed_SignedPublish_PinnedFetch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	wallet := testSigner(t)

	source := testSession(t, "alice.near")
	subscriber := testSession(t, "bob.near")

	sourceFeed, err := NewFeed(source, store, WithSigner(wallet))
	if err != nil {
		t.Fatal(err)
	}
	subscriberFeed, err := NewFeed(subscriber, store, WithPinnedSourceKey(wallet.SigningPublicKey()))
	if err != nil {
		t.Fatal(err)
	}

	content := []byte("authenticated briefing")
	anchor, err := sourceFeed.Publish(ctx, content, subscriber.PublicKey(), "press", "2025-06")
	if err != nil {
		t.Fatal(err)
	}

	got, err := subscriberFeed.Fetch(ctx, anchor.CID, source.PublicKey())
	if err != nil {
		t.Fatalf("Fetch() with pinned key: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("fetched %q, want %q", got, content)
	}
}

func TestFeed_PinnedFetch_RejectsUnsigned(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	wallet := testSigner(t)

	source := testSession(t, "alice.near")
	subscriber := testSession(t, "bob.near")

	// Source publishes without signing.
	sourceFeed, err := NewFeed(source, store)
	if err != nil {
		t.Fatal(err)
	}
	subscriberFeed, err := NewFeed(subscriber, store, WithPinnedSourceKey(wallet.SigningPublicKey()))
	if err != nil {
		t.Fatal(err)
	}

	anchor, err := sourceFeed.Publish(ctx, []byte("unsigned"), subscriber.PublicKey(), "press", "2025-06")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := subscriberFeed.Fetch(ctx, anchor.CID, source.PublicKey()); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestFeed_PinnedFetch_RejectsImpostorKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sourceWallet := testSigner(t)
	impostorWallet := testSigner(t)

	source := testSession(t, "alice.near")
	subscriber := testSession(t, "bob.near")

	sourceFeed, err := NewFeed(source, store, WithSigner(impostorWallet))
	if err != nil {
		t.Fatal(err)
	}
	subscriberFeed, err := NewFeed(subscriber, store, WithPinnedSourceKey(sourceWallet.SigningPublicKey()))
	if err != nil {
		t.Fatal(err)
	}

	anchor, err := sourceFeed.Publish(ctx, []byte("forged"), subscriber.PublicKey(), "press", "2025-06")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := subscriberFeed.Fetch(ctx, anchor.CID, source.PublicKey()); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestFeed_Fetch_AccessDenied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	source := testSession(t, "alice.near")
	subscriber := testSession(t, "bob.near")
	outsider := testSession(t, "mallory.near")

	sourceFeed, err := NewFeed(source, store)
	if err != nil {
		t.Fatal(err)
	}
	outsiderFeed, err := NewFeed(outsider, store)
	if err != nil {
		t.Fatal(err)
	}

	anchor, err := sourceFeed.Publish(ctx, []byte("tiered"), subscriber.PublicKey(), "press", "2025-06")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := outsiderFeed.Fetch(ctx, anchor.CID, source.PublicKey()); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestFeed_FetchPost_EnvelopeOnly(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	source := testSession(t, "alice.near")
	subscriber := testSession(t, "bob.near")

	sourceFeed, err := NewFeed(source, store)
	if err != nil {
		t.Fatal(err)
	}

	anchor, err := sourceFeed.Publish(ctx, []byte("envelope"), subscriber.PublicKey(), "press", "2025-06")
	if err != nil {
		t.Fatal(err)
	}

	// A relay with no DH relationship can still fetch the envelope.
	relay := testSession(t, "relay.near")
	relayFeed, err := NewFeed(relay, store)
	if err != nil {
		t.Fatal(err)
	}

	post, err := relayFeed.FetchPost(ctx, anchor.CID)
	if err != nil {
		t.Fatalf("FetchPost() error = %v", err)
	}
	if post.ContentHash != anchor.ContentHash {
		t.Error("envelope content hash differs from anchor")
	}
}

func TestFeed_Fetch_NotFound(t *testing.T) {
	store := NewMemoryStore()
	session := testSession(t, "alice.near")

	feed, err := NewFeed(session, store)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := feed.Fetch(context.Background(), "mem-missing", session.PublicKey()); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestNewFeed_NilCollaborators(t *testing.T) {
	session := testSession(t, "alice.near")

	if _, err := NewFeed(nil, NewMemoryStore()); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("nil session: expected ErrMalformedInput, got %v", err)
	}
	if _, err := NewFeed(session, nil); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("nil store: expected ErrMalformedInput, got %v", err)
	}
}
