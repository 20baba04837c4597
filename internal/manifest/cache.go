package manifest

import "path/filepath"

// Cache memoizes Load results by manifest directory for the duration of a
// stream, per spec §4.1 "a mapping from manifest file path to {manifest,
// packageInformation} is held for the duration of the stream; a negative
// entry is stored when the manifest is absent or malformed". It is not
// safe for concurrent use; the Linker is driven single-threaded (spec §5).
type Cache struct {
	entries map[string]entry
	loadFn  func(dir string) (*Manifest, error)
}

type entry struct {
	manifest *Manifest
	err      error
}

// NewCache returns an empty Cache that loads manifests with Load.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		loadFn:  Load,
	}
}

// Get returns the manifest rooted at dir, loading and caching it on first
// request. A previously recorded negative entry (err != nil) is replayed
// without touching the filesystem again.
func (c *Cache) Get(dir string) (*Manifest, error) {
	key := filepath.Clean(dir)

	if e, ok := c.entries[key]; ok {
		return e.manifest, e.err
	}

	m, err := c.loadFn(key)
	c.entries[key] = entry{manifest: m, err: err}
	return m, err
}

// Len returns the number of directories looked up so far, hits and misses
// alike. Exposed for tests asserting the cache actually memoizes.
func (c *Cache) Len() int {
	return len(c.entries)
}
