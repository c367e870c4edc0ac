package meta

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current payload layout; bump when Schema or cachePayload change shape.
const cacheFormatVersion uint16 = 1

// Cache keeps decoded metadata schemas on disk keyed by the content hash of the
// TOML file they came from. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Format uint16
	Source string
	Schema Schema
}

// OpenCache initializes a cache under $XDG_CACHE_HOME/<app>/meta (or ~/.cache).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheDir(filepath.Join(base, app, "meta"))
}

// OpenCacheDir initializes a cache rooted at dir.
func OpenCacheDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key computes the cache key of raw metadata file content.
func Key(content []byte) [32]byte {
	return sha256.Sum256(content)
}

func (c *Cache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes a schema and atomically replaces the cache entry.
func (c *Cache) Put(key [32]byte, source string, s *Schema) error {
	if c == nil || s == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // already renamed on success

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{Format: cacheFormatVersion, Source: source, Schema: *s}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, c.pathFor(key))
}

// Get returns the cached schema for key. Entries written by another format version
// are treated as misses.
func (c *Cache) Get(key [32]byte) (*Schema, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload cachePayload
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("meta cache: corrupt entry: %w", err)
	}
	if payload.Format != cacheFormatVersion {
		return nil, false, nil
	}
	return &payload.Schema, true, nil
}

// DropAll removes every cached entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".mp" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Load decodes a metadata file, consulting the cache first when one is given.
func Load(path string, cache *Cache) (*Schema, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key := Key(content)
	if s, ok, err := cache.Get(key); err == nil && ok {
		return s, nil
	}
	s, err := Decode(bytes.NewReader(content), path)
	if err != nil {
		return nil, err
	}
	if err := cache.Put(key, path, s); err != nil {
		return nil, fmt.Errorf("meta cache: %w", err)
	}
	return s, nil
}

// LoadTable decodes every path and builds one sealed table from them.
func LoadTable(paths []string, cache *Cache) (*Table, error) {
	schemas := make([]*Schema, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p, cache)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return Build(schemas...)
}
