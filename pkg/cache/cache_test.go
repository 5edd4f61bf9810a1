package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value")); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestArtifactKey(t *testing.T) {
	dot := []byte("digraph { a -> b }")
	if ArtifactKey(dot, "svg") == ArtifactKey(dot, "png") {
		t.Error("format must be part of the key")
	}
	if ArtifactKey(dot, "svg") == ArtifactKey([]byte("digraph { a -> c }"), "svg") {
		t.Error("source must be part of the key")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}
	if err := c.Set(ctx, "k", []byte("<svg/>")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir(), time.Minute)
	_ = c.Set(ctx, "k", []byte("v"))

	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir(), 0)
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k))
	}
	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Errorf("Clear() = %d, %v; want 3", n, err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir(), 0)
	calls := 0
	compute := func() ([]byte, error) { calls++; return []byte("out"), nil }

	data, cached, err := Fetch(ctx, c, "k", compute)
	if err != nil || cached || string(data) != "out" {
		t.Errorf("first Fetch = %q, %v, %v", data, cached, err)
	}
	data, cached, _ = Fetch(ctx, c, "k", compute)
	if !cached || string(data) != "out" || calls != 1 {
		t.Errorf("second Fetch = %q, cached=%v, calls=%d", data, cached, calls)
	}

	boom := errors.New("boom")
	if _, _, err := Fetch(ctx, c, "other", func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("Fetch error = %v, want boom", err)
	}
	if _, _, err := Fetch(ctx, NewNullCache(), "k", nil); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Fetch(nil compute) = %v, want ErrCacheMiss", err)
	}
}
