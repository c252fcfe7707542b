package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expected miss before Set")
	}

	// Round trip
	if err := c.Set(ctx, "k", []byte("layout data"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "layout data" {
		t.Errorf("Get = %q", data)
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "expiring", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set expiring: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "expiring"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expected miss after Delete")
	}
	// Deleting a missing key is fine
	if err := c.Delete(ctx, "gone"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	n, err := fc.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// SampleKey varies with count and seed
	if k.SampleKey(10, 42) == k.SampleKey(25, 42) {
		t.Error("different counts should produce different sample keys")
	}
	if k.SampleKey(10, 42) == k.SampleKey(10, 43) {
		t.Error("different seeds should produce different sample keys")
	}

	// LayoutKey should include options in hash
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Strategy: "grid"})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Strategy: "radial"})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "light"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Style: "light"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "test:")

	if got, want := scoped.SampleKey(10, 1), "test:"+base.SampleKey(10, 1); got != want {
		t.Errorf("scoped SampleKey = %q, want %q", got, want)
	}
	if got, want := scoped.LayoutKey("h", LayoutKeyOpts{Strategy: "grid"}), "test:"+base.LayoutKey("h", LayoutKeyOpts{Strategy: "grid"}); got != want {
		t.Errorf("scoped LayoutKey = %q, want %q", got, want)
	}
}
