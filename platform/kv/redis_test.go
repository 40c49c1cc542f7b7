package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStoreFromClient(client)
}

func TestReadMissingKeyReturnsNil(t *testing.T) {
	store := newTestStore(t)

	value, err := store.Read(context.Background(), "never-written")
	if err != nil {
		t.Fatalf("expected no error for missing key, got %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil value for missing key, got %q", value)
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := []byte(`{"session-1":{"status":"visitor"}}`)
	if err := store.Write(ctx, "lead_profiles", doc); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := store.Read(ctx, "lead_profiles")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != string(doc) {
		t.Fatalf("round trip mismatch: got %q want %q", got, doc)
	}
}

func TestWriteReplacesPriorValue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Write(ctx, "k", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := store.Write(ctx, "k", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, err := store.Read(ctx, "k")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("expected latest value, got %q", got)
	}
}

func TestNewRedisStoreRejectsEmptyURL(t *testing.T) {
	if _, err := NewRedisStore("", false); err == nil {
		t.Fatal("expected error for empty redis url")
	}
}
