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

	if err := c.Set(ctx, "k1", []byte("records"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != "records" {
		t.Errorf("Get = (%q, %v), want (records, true)", data, hit)
	}

	// Unknown key is a miss
	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("missing key should be a miss")
	}

	// Delete removes the entry
	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k1"); hit {
		t.Error("deleted key should be a miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Already expired entry is treated as a miss
	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}

	// Zero TTL never expires
	if err := c.Set(ctx, "k2", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k2"); !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyer(t *testing.T) {
	k := NewKeyer()

	// Mtime participates in the fetch key
	f1 := k.FetchKey("genes.bed", 100, "chr1:0-1000")
	f2 := k.FetchKey("genes.bed", 200, "chr1:0-1000")
	if f1 == f2 {
		t.Error("different mtimes should produce different fetch keys")
	}

	// Range participates in the fetch key
	f3 := k.FetchKey("genes.bed", 100, "chr1:0-2000")
	if f1 == f3 {
		t.Error("different ranges should produce different fetch keys")
	}

	// Format participates in the artifact key
	a1 := k.ArtifactKey("cfg", "chr1:0-1000", "svg")
	a2 := k.ArtifactKey("cfg", "chr1:0-1000", "png")
	if a1 == a2 {
		t.Error("different formats should produce different artifact keys")
	}
}
