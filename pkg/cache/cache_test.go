package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "key", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = (ok=%v, err=%v), want miss", ok, err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("Get = (ok=%v, err=%v), want hit", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want payload", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get after Delete should miss")
	}
	// Double delete is fine.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "fleeting", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, err := c.Get(ctx, "fleeting"); ok || err != nil {
		t.Errorf("expired entry: (ok=%v, err=%v), want miss", ok, err)
	}

	// Zero ttl means no expiration.
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "forever"); !ok {
		t.Error("zero-ttl entry should not expire")
	}
}

func TestHashDeterministic(t *testing.T) {
	a := Hash([]byte("hello"))
	b := Hash([]byte("hello"))
	if a != b {
		t.Error("Hash should be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("Hash length = %d, want 64", len(a))
	}
	if a == Hash([]byte("world")) {
		t.Error("distinct inputs should hash differently")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	doc := k.DocumentKey("abc123")
	if !strings.HasPrefix(doc, "doc:") {
		t.Errorf("DocumentKey = %s, want doc: prefix", doc)
	}
	if doc != k.DocumentKey("abc123") {
		t.Error("DocumentKey should be deterministic")
	}

	l1 := k.LayoutKey("abc123", LayoutKeyOpts{Seed: 42, Iterations: 300})
	if !strings.HasPrefix(l1, "layout:") {
		t.Errorf("LayoutKey = %s, want layout: prefix", l1)
	}
	if l2 := k.LayoutKey("abc123", LayoutKeyOpts{Seed: 43, Iterations: 300}); l1 == l2 {
		t.Error("different seeds should yield different keys")
	}
	if l3 := k.LayoutKey("abc123", LayoutKeyOpts{Seed: 42, Iterations: 301}); l1 == l3 {
		t.Error("different iteration counts should yield different keys")
	}
	if l4 := k.LayoutKey("def456", LayoutKeyOpts{Seed: 42, Iterations: 300}); l1 == l4 {
		t.Error("different documents should yield different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "bldg:main:")

	doc := scoped.DocumentKey("abc")
	if !strings.HasPrefix(doc, "bldg:main:doc:") {
		t.Errorf("ScopedKeyer DocumentKey unexpected: %s", doc)
	}
	layout := scoped.LayoutKey("abc", LayoutKeyOpts{Seed: 1})
	if !strings.HasPrefix(layout, "bldg:main:layout:") {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", layout)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	if !strings.HasPrefix(scoped.DocumentKey("x"), "prefix:doc:") {
		t.Error("nil inner should fall back to DefaultKeyer")
	}
}
