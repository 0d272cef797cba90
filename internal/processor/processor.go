package processor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

// ErrStopped is returned when the enricher is stopped while a batch is in flight
var ErrStopped = errors.New("enricher stopped")

// lookupTask asks a worker to resolve the category of the product at Index
type lookupTask struct {
	ctx        context.Context
	index      int
	categoryID string
	results    chan<- lookupResult
}

// lookupResult carries the resolved snapshot back to the batch that asked for it
type lookupResult struct {
	index    int
	category *domain.Category
}

// OrderedEnricher attaches category snapshots to products using a worker pool.
// Output order always matches input order.
type OrderedEnricher struct {
	workers    int
	categories domain.CategoryFinder
	cache      domain.CategoryCache
	logger     *zap.Logger

	inputQueue chan lookupTask
	wg         sync.WaitGroup

	startOnce    sync.Once
	shutdownOnce sync.Once
	shutdownChan chan struct{}
}

var _ domain.ProductEnricher = (*OrderedEnricher)(nil)

// NewOrderedEnricher creates an enricher. cache may be nil.
func NewOrderedEnricher(workers, queueSize int, categories domain.CategoryFinder, cache domain.CategoryCache, logger *zap.Logger) *OrderedEnricher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}

	return &OrderedEnricher{
		workers:      workers,
		categories:   categories,
		cache:        cache,
		logger:       logger,
		inputQueue:   make(chan lookupTask, queueSize),
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the worker pool
func (e *OrderedEnricher) Start() {
	e.startOnce.Do(func() {
		for i := 0; i < e.workers; i++ {
			e.wg.Add(1)
			go e.worker(i)
		}
		e.logger.Info("ordered enricher started", zap.Int("workers", e.workers))
	})
}

// Stop stops the worker pool and waits for in-flight lookups
func (e *OrderedEnricher) Stop() {
	e.shutdownOnce.Do(func() {
		close(e.shutdownChan)
		e.wg.Wait()
		e.logger.Info("ordered enricher stopped")
	})
}

// AttachCategories returns copies of products with Category set.
// A failed or empty lookup leaves the snapshot nil.
func (e *OrderedEnricher) AttachCategories(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	out := make([]domain.Product, len(products))
	copy(out, products)
	if len(out) == 0 {
		return out, nil
	}

	// Each batch gets its own result channel so concurrent batches never mix.
	results := make(chan lookupResult, len(out))

	for i, p := range out {
		task := lookupTask{ctx: ctx, index: i, categoryID: p.CategoryID, results: results}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-e.shutdownChan:
			return nil, ErrStopped
		case e.inputQueue <- task:
		}
	}

	for collected := 0; collected < len(out); collected++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-e.shutdownChan:
			return nil, ErrStopped
		case res := <-results:
			out[res.index].Category = res.category
		}
	}

	return out, nil
}

func (e *OrderedEnricher) worker(id int) {
	defer e.wg.Done()

	for {
		select {
		case <-e.shutdownChan:
			e.logger.Debug("worker stopping due to shutdown", zap.Int("worker_id", id))
			return
		case task := <-e.inputQueue:
			// results is buffered to the batch size, the send never blocks.
			task.results <- lookupResult{
				index:    task.index,
				category: e.lookup(task.ctx, id, task.categoryID),
			}
		}
	}
}

func (e *OrderedEnricher) lookup(ctx context.Context, workerID int, categoryID string) *domain.Category {
	if ctx.Err() != nil || !domain.IsValidID(categoryID) {
		return nil
	}

	if e.cache != nil {
		if category, ok := e.cache.Get(ctx, categoryID); ok {
			return &category
		}
	}

	start := time.Now()
	category, err := e.categories.FindByID(ctx, categoryID)
	if err != nil {
		e.logger.Warn("category lookup failed",
			zap.Int("worker_id", workerID),
			zap.String("category_id", categoryID),
			zap.Error(err),
		)
		return nil
	}
	if category.IsEmpty() {
		return nil
	}

	if e.cache != nil {
		_ = e.cache.Set(ctx, category)
	}

	e.logger.Debug("category resolved",
		zap.Int("worker_id", workerID),
		zap.String("category_id", categoryID),
		zap.Duration("duration", time.Since(start)),
	)
	return &category
}
