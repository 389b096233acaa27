package scoreboard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakectf/gamed/internal/scoring"
)

// stubStore counts builds and can be made to block or fail, so tests can
// observe exactly how many aggregation passes the cache runs.
type stubStore struct {
	mu     sync.Mutex
	builds int
	fail   bool
	block  chan struct{}

	cfg  *scoring.GameConfig
	subs []scoring.Submission
}

func newStubStore() *stubStore {
	return &stubStore{
		cfg: &scoring.GameConfig{
			GameID: "g1",
			Teams:  []scoring.Team{{ID: "t1", Name: "alpha"}},
			Challenges: []scoring.Challenge{
				{ID: "c1", OriginalScore: 500, Difficulty: 5, Enabled: true},
			},
		},
	}
}

func (s *stubStore) LoadGameView(gameID string) (*scoring.GameConfig, []scoring.Submission, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds++
	if s.fail {
		return nil, nil, errors.New("store down")
	}
	return s.cfg, s.subs, nil
}

func (s *stubStore) buildCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builds
}

func newTestCache(store *stubStore) *Cache {
	return NewCache(store, scoring.NewAggregator(scoring.DecayCalculator{}, scoring.DefaultBloodFactors))
}

func TestGetSnapshotBuildsOnceWhileClean(t *testing.T) {
	store := newStubStore()
	cache := newTestCache(store)

	first, err := cache.GetSnapshot("g1")
	require.NoError(t, err)
	second, err := cache.GetSnapshot("g1")
	require.NoError(t, err)

	assert.Equal(t, 1, store.buildCount())
	assert.Same(t, first, second, "a clean snapshot is served without rebuilding")
}

func TestGetSnapshotSingleFlight(t *testing.T) {
	store := newStubStore()
	store.block = make(chan struct{})
	cache := newTestCache(store)

	const readers = 16
	results := make([]*scoring.Snapshot, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := cache.GetSnapshot("g1")
			assert.NoError(t, err)
			results[i] = snap
		}(i)
	}

	// Let every reader reach the in-flight build before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(store.block)
	wg.Wait()

	assert.Equal(t, 1, store.buildCount(), "concurrent readers must share one build")
	for i := 1; i < readers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestInvalidateIsLazy(t *testing.T) {
	store := newStubStore()
	cache := newTestCache(store)

	_, err := cache.GetSnapshot("g1")
	require.NoError(t, err)

	// A burst of invalidations coalesces into a single rebuild on the next
	// read.
	cache.Invalidate("g1")
	cache.Invalidate("g1")
	cache.Invalidate("g1")
	assert.Equal(t, 1, store.buildCount(), "invalidation alone must not rebuild")

	_, err = cache.GetSnapshot("g1")
	require.NoError(t, err)
	assert.Equal(t, 2, store.buildCount())
}

func TestGetSnapshotServesStaleOnRebuildFailure(t *testing.T) {
	store := newStubStore()
	cache := newTestCache(store)

	healthy, err := cache.GetSnapshot("g1")
	require.NoError(t, err)

	store.mu.Lock()
	store.fail = true
	store.mu.Unlock()
	cache.Invalidate("g1")

	stale, err := cache.GetSnapshot("g1")
	require.NoError(t, err, "a stale snapshot beats an error")
	assert.Same(t, healthy, stale)

	// Once the store recovers, the next read rebuilds.
	store.mu.Lock()
	store.fail = false
	store.mu.Unlock()

	fresh, err := cache.GetSnapshot("g1")
	require.NoError(t, err)
	assert.NotSame(t, healthy, fresh)
}

func TestGetSnapshotFirstBuildFailureSurfacesError(t *testing.T) {
	store := newStubStore()
	store.fail = true
	cache := newTestCache(store)

	_, err := cache.GetSnapshot("g1")
	assert.Error(t, err)
}

func TestForgetDropsEntry(t *testing.T) {
	store := newStubStore()
	cache := newTestCache(store)

	_, err := cache.GetSnapshot("g1")
	require.NoError(t, err)

	cache.Forget("g1")
	_, err = cache.GetSnapshot("g1")
	require.NoError(t, err)
	assert.Equal(t, 2, store.buildCount())
}
