package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lamb/internal/core"
)

// diskCacheSchemaVersion changes whenever DiskPayload or wireNode does.
const diskCacheSchemaVersion uint16 = 1

// Digest identifies a core term.
type Digest [sha256.Size]byte

// DiskCache stores normal forms keyed by the digest of the term they came
// from. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one cache entry holds.
type DiskPayload struct {
	Schema uint16     `msgpack:"schema"`
	Normal []wireNode `msgpack:"normal"`
	Steps  int        `msgpack:"steps"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens the cache in dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Key digests t, binder names included.
func Key(t core.Term) (Digest, error) {
	data, err := msgpack.Marshal(encodeTerm(t))
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(data), nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "nf", hex.EncodeToString(key[:])+".mp")
}

// Put records normal as the normal form of the term behind key.
func (c *DiskCache) Put(key Digest, normal core.Term, steps int) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload := DiskPayload{Schema: diskCacheSchemaVersion, Normal: encodeTerm(normal), Steps: steps}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

// Get returns the cached normal form for key. Entries from another schema
// are misses.
func (c *DiskCache) Get(key Digest) (normal core.Term, steps int, ok bool, err error) {
	if c == nil {
		return nil, 0, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, false, nil
		}
		return nil, 0, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, 0, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, 0, false, nil
	}
	normal, err = decodeTerm(payload.Normal)
	if err != nil {
		return nil, 0, false, err
	}
	return normal, payload.Steps, true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "nf"))
}
