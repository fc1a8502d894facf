package respcache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"biasprobe/internal/services/probe/domain"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_MissReturnsFalse(t *testing.T) {
	s := open(t)
	_, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestSetGet_RoundTrip(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	want := domain.CacheEntry{
		Response:     "cached answer",
		Model:        "claude-test",
		OutputTokens: 42,
		CachedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.Set(ctx, "k1", want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Response != want.Response || got.Model != want.Model || got.OutputTokens != want.OutputTokens {
		t.Fatalf("entry = %+v, want %+v", got, want)
	}
	if !got.CachedAt.Equal(want.CachedAt) {
		t.Fatalf("CachedAt = %v, want %v", got.CachedAt, want.CachedAt)
	}
}

func TestSet_UpsertsExistingKey(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	if err := s.Set(ctx, "k", domain.CacheEntry{Response: "first", Model: "m"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "k", domain.CacheEntry{Response: "second", Model: "m", OutputTokens: 7}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Response != "second" || got.OutputTokens != 7 {
		t.Fatalf("entry = %+v, want upserted values", got)
	}
	n, err := s.Len(ctx)
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Fatalf("Len = %d, want 1", n)
	}
}

func TestSet_ZeroTimeDefaultsToNow(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	before := time.Now().UTC().Add(-time.Second)
	if err := s.Set(ctx, "k", domain.CacheEntry{Response: "x", Model: "m"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.CachedAt.Before(before) {
		t.Fatalf("CachedAt = %v, want recent", got.CachedAt)
	}
}

func TestOpen_ReusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ctx, "persist", domain.CacheEntry{Response: "kept", Model: "m"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, ok, err := s2.Get(ctx, "persist")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if got.Response != "kept" {
		t.Fatalf("Response = %q", got.Response)
	}
}
