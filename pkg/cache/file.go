package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache keeps entries as JSON files under a root directory, grouped
// into one subdirectory per key namespace. It is meant for single-user CLI
// runs; there is no locking beyond what the filesystem provides.
type FileCache struct {
	root string
}

// NewFileCache opens a file cache rooted at dir, creating the directory
// if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{root: dir}, nil
}

// entry is the on-disk form. Expiry travels with the payload so Get can
// drop stale entries without a separate index.
type entry struct {
	Expires int64  `json:"expires,omitempty"` // unix nanos, 0 = never
	Payload []byte `json:"payload"`
}

// Get reads an entry, treating unreadable or expired files as misses and
// removing them on the way.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if e.Expires != 0 && time.Now().UnixNano() > e.Expires {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Payload, true, nil
}

// Set writes an entry, creating its namespace directory on first use.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{Payload: data}
	if ttl > 0 {
		e.Expires = time.Now().Add(ttl).UnixNano()
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// Delete removes an entry; a missing entry is fine.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op; files are written synchronously.
func (c *FileCache) Close() error {
	return nil
}

// Dir returns the cache root directory.
func (c *FileCache) Dir() string {
	return c.root
}

// Clear drops every namespace under the root, leaving the root itself in
// place.
func (c *FileCache) Clear() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.root, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// entryPath maps a key to root/<namespace>/<aa>/<rest>.json, where the
// namespace is the part of the key before the first colon and aa shards
// entries so one directory never holds them all. Keys without a namespace,
// or with a remainder too short to shard, are hashed wholesale into "misc".
func (c *FileCache) entryPath(key string) string {
	ns, rest, ok := strings.Cut(key, ":")
	if !ok || ns == "" || len(rest) < 3 {
		ns, rest = "misc", Hash([]byte(key))
	}
	return filepath.Join(c.root, ns, rest[:2], rest[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
