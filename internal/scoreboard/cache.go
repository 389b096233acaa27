// Package scoreboard memoizes computed scoreboard snapshots per game.
//
// Writers (submission ingest, admin mutations) only flip an invalidation
// flag; recomputation is deferred to the next read so bursts of
// invalidations coalesce into a single rebuild. Concurrent readers of a
// game being rebuilt share one in-flight build.
package scoreboard

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/lakectf/gamed/internal/scoring"
)

// Store supplies a consistent point-in-time view of a game: the
// configuration and the accepted-submission log must come from the same
// instant, so implementations read both in one transaction.
type Store interface {
	LoadGameView(gameID string) (*scoring.GameConfig, []scoring.Submission, error)
}

type entry struct {
	snap  *scoring.Snapshot
	dirty bool
}

// Cache serves scoreboard snapshots, rebuilding lazily on demand.
type Cache struct {
	store      Store
	aggregator *scoring.Aggregator

	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
}

func NewCache(store Store, aggregator *scoring.Aggregator) *Cache {
	return &Cache{
		store:      store,
		aggregator: aggregator,
		entries:    make(map[string]*entry),
	}
}

// GetSnapshot returns the current snapshot for a game, rebuilding it first
// if the cached one is missing or invalidated. Concurrent callers during a
// rebuild all wait on the same build. If a rebuild fails and a previous
// snapshot exists, the stale snapshot is returned instead of the error.
func (c *Cache) GetSnapshot(gameID string) (*scoring.Snapshot, error) {
	c.mu.RLock()
	e := c.entries[gameID]
	if e != nil && e.snap != nil && !e.dirty {
		snap := e.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(gameID, func() (interface{}, error) {
		return c.rebuild(gameID)
	})
	if err != nil {
		// Serve the previous snapshot if we still have one. The entry stays
		// dirty so the next read retries the rebuild.
		c.mu.RLock()
		defer c.mu.RUnlock()
		if e := c.entries[gameID]; e != nil && e.snap != nil {
			zap.S().Warnf("scoreboard rebuild for game %s failed, serving stale snapshot: %v", gameID, err)
			return e.snap, nil
		}
		return nil, err
	}
	return v.(*scoring.Snapshot), nil
}

// Invalidate marks a game's snapshot as out of date. It never blocks on a
// rebuild and is a no-op when the game is already invalidated or uncached.
func (c *Cache) Invalidate(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[gameID]; ok {
		e.dirty = true
	}
}

// Forget drops a game's cached snapshot entirely, e.g. after the game
// itself is deleted.
func (c *Cache) Forget(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, gameID)
}

func (c *Cache) rebuild(gameID string) (*scoring.Snapshot, error) {
	// Clear the dirty flag before reading so an invalidation that races the
	// store reads below leaves the entry dirty and forces another rebuild.
	c.mu.Lock()
	e, ok := c.entries[gameID]
	if !ok {
		e = &entry{}
		c.entries[gameID] = e
	}
	e.dirty = false
	c.mu.Unlock()

	cfg, subs, err := c.store.LoadGameView(gameID)
	if err != nil {
		c.markDirty(gameID)
		return nil, fmt.Errorf("load game view: %w", err)
	}

	snap := c.aggregator.BuildSnapshot(cfg, subs)

	c.mu.Lock()
	e.snap = snap
	c.mu.Unlock()

	zap.S().Debugf("rebuilt scoreboard snapshot for game %s: %d teams, %d challenges", gameID, len(snap.Teams), len(snap.Challenges))
	return snap, nil
}

func (c *Cache) markDirty(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[gameID]; ok {
		e.dirty = true
	}
}
