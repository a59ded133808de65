package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get missing = ok %v, err %v; want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("layout bytes"), 0); err != nil {
		t.Fatal(err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v; want hit", ok, err)
	}
	if string(data) != "layout bytes" {
		t.Errorf("Get = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheCorruptEntryIsAMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.entryPath("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("corrupt entry should be a miss")
	}
	if _, err := os.Stat(c.entryPath("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Error("entry survived Clear")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("cache root should survive Clear: %v", err)
	}
}

func TestEntryPathNamespaces(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	keyer := NewDefaultKeyer()
	key := keyer.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	rel, err := filepath.Rel(c.Dir(), c.entryPath(key))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(filepath.Dir(rel)) != "artifact" {
		t.Errorf("artifact key stored under %q, want artifact namespace", rel)
	}

	// Keys with no namespace land in misc rather than the root.
	rel, err = filepath.Rel(c.Dir(), c.entryPath("k"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(filepath.Dir(rel)) != "misc" {
		t.Errorf("bare key stored under %q, want misc namespace", rel)
	}
}

func TestDiscardAlwaysMisses(t *testing.T) {
	ctx := context.Background()

	if err := Discard.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := Discard.Get(ctx, "k"); ok {
		t.Error("discard cache should never hit")
	}
	if err := Discard.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
}

func TestArtifactKeysAreStableAndDistinct(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	if a != k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey not stable")
	}
	if a == k.ArtifactKey("abc", ArtifactKeyOpts{Format: "tex"}) {
		t.Error("ArtifactKey should depend on the format")
	}
	if a == k.ArtifactKey("def", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey should depend on the layout hash")
	}
	if a == k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg", Reproducible: true}) {
		t.Error("ArtifactKey should depend on the reproducible flag")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("hash length = %d, want 64", len(h))
	}
	if h != Hash([]byte("hello")) {
		t.Error("hash not deterministic")
	}
}
