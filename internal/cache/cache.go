package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/your-org/catalog/internal/domain"
)

const (
	defaultShardCount      = 16
	defaultTTL             = 5 * time.Minute
	defaultCleanupInterval = 1 * time.Minute
)

var lookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_category_cache_lookups_total",
	Help: "Category cache lookups by result.",
}, []string{"result"})

// entry is a cached category snapshot with expiration
type entry struct {
	category  domain.Category
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// shard is a single partition of the cache with its own lock
type shard struct {
	mu    sync.RWMutex
	items map[string]entry
}

// CategoryCache is a thread-safe sharded TTL cache of category snapshots
type CategoryCache struct {
	shards          []*shard
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time

	cleanupMu      sync.Mutex
	cleanupRunning bool
	cleanupStop    chan struct{}
	cleanupWg      sync.WaitGroup
}

var _ domain.CategoryCache = (*CategoryCache)(nil)

// NewCategoryCache creates a cache. Non-positive arguments fall back to defaults.
func NewCategoryCache(shardCount int, ttl time.Duration) *CategoryCache {
	if shardCount < 1 {
		shardCount = defaultShardCount
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{items: make(map[string]entry)}
	}

	return &CategoryCache{
		shards:          shards,
		ttl:             ttl,
		cleanupInterval: defaultCleanupInterval,
		now:             time.Now,
	}
}

func (c *CategoryCache) shardFor(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return c.shards[h.Sum32()%uint32(len(c.shards))]
}

// Get returns a live snapshot for id
func (c *CategoryCache) Get(ctx context.Context, id string) (domain.Category, bool) {
	if ctx.Err() != nil {
		return domain.Category{}, false
	}

	s := c.shardFor(id)
	s.mu.RLock()
	e, ok := s.items[id]
	s.mu.RUnlock()

	if !ok || e.expired(c.now()) {
		lookups.WithLabelValues("miss").Inc()
		return domain.Category{}, false
	}

	lookups.WithLabelValues("hit").Inc()
	return e.category, true
}

// Set stores a snapshot under its ID. Empty categories are not cached.
func (c *CategoryCache) Set(ctx context.Context, category domain.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if category.IsEmpty() {
		return nil
	}

	s := c.shardFor(category.ID)
	s.mu.Lock()
	s.items[category.ID] = entry{category: category, expiresAt: c.now().Add(c.ttl)}
	s.mu.Unlock()
	return nil
}

// Delete drops the snapshot for id
func (c *CategoryCache) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := c.shardFor(id)
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// CleanExpired removes all expired snapshots
func (c *CategoryCache) CleanExpired(ctx context.Context) error {
	now := c.now()
	for _, s := range c.shards {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mu.Lock()
		for id, e := range s.items {
			if e.expired(now) {
				delete(s.items, id)
			}
		}
		s.mu.Unlock()
	}
	return nil
}

// StartCleanupWorker starts a goroutine that periodically removes expired snapshots
func (c *CategoryCache) StartCleanupWorker() {
	c.cleanupMu.Lock()
	defer c.cleanupMu.Unlock()

	if c.cleanupRunning {
		return
	}

	c.cleanupRunning = true
	c.cleanupStop = make(chan struct{})
	c.cleanupWg.Add(1)
	go c.cleanupWorker(c.cleanupStop)
}

// StopCleanupWorker stops the cleanup goroutine and waits for it
func (c *CategoryCache) StopCleanupWorker() {
	c.cleanupMu.Lock()
	defer c.cleanupMu.Unlock()

	if !c.cleanupRunning {
		return
	}

	close(c.cleanupStop)
	c.cleanupWg.Wait()
	c.cleanupRunning = false
}

func (c *CategoryCache) cleanupWorker(stop <-chan struct{}) {
	defer c.cleanupWg.Done()

	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = c.CleanExpired(ctx)
			cancel()
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			_ = c.CleanExpired(ctx)
			cancel()
		}
	}
}

// Stats is a point-in-time view of the cache
type Stats struct {
	Shards  int
	Items   int
	Expired int
}

// GetStats counts cached and expired snapshots
func (c *CategoryCache) GetStats() Stats {
	stats := Stats{Shards: len(c.shards)}
	now := c.now()

	for _, s := range c.shards {
		s.mu.RLock()
		stats.Items += len(s.items)
		for _, e := range s.items {
			if e.expired(now) {
				stats.Expired++
			}
		}
		s.mu.RUnlock()
	}
	return stats
}
