package recognition

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/your-org/facerec/internal/observability"
	"github.com/your-org/facerec/internal/storage"
)

// Cache serves the matcher an embedding snapshot that is never older than
// the known-face store's last mutation. Staleness is detected by comparing
// the generation counter recorded at load time against the store's current
// one; a mismatch triggers a full synchronous reload inside the write
// lock, so readers either see the previous complete snapshot or the fresh
// one, never a mix.
type Cache struct {
	store *storage.KnownStore

	mu     sync.RWMutex
	snap   *Snapshot
	gen    uint64
	loaded bool
}

func NewCache(store *storage.KnownStore) *Cache {
	return &Cache{store: store}
}

// Snapshot returns the current embedding snapshot, reloading it first if
// the store has been mutated since the last load.
func (c *Cache) Snapshot() (*Snapshot, error) {
	gen := c.store.Generation()

	c.mu.RLock()
	if c.loaded && c.gen == gen {
		snap := c.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// The generation is re-read before loading: if a mutation lands while
	// LoadEncodings runs, the recorded generation is already behind and
	// the next call reloads again.
	gen = c.store.Generation()
	if c.loaded && c.gen == gen {
		return c.snap, nil
	}

	people, err := c.store.LoadEncodings()
	if err != nil {
		return nil, fmt.Errorf("load known encodings: %w", err)
	}

	c.snap = &Snapshot{people: people}
	c.gen = gen
	c.loaded = true

	observability.SnapshotReloads.Inc()
	slog.Debug("reloaded embedding snapshot", "identities", len(people), "generation", gen)

	return c.snap, nil
}
