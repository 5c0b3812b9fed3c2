package core

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"
)

// ErrTooManyExports is returned when every export slot stays busy past the wait timeout.
var ErrTooManyExports = errors.New("too many concurrent exports, rate limit reached")

// DefaultMaxConcurrentExports is the default number of parallel exports.
const DefaultMaxConcurrentExports = 4

// DefaultExportWait is how long to wait for a slot before rejecting.
const DefaultExportWait = 5 * time.Second

// ExportLimiter bounds the number of CSV exports rendered at once. Each export
// materializes its whole filtered table, so callers hold a slot while
// rendering. Slots are tracked per table so shutdown and logs can report
// which exports are still running.
type ExportLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.Mutex
	active map[string]int
	total  int
	idle   chan struct{} // closed while no export is running
}

// NewExportLimiter allows at most maxConcurrent exports at once.
// Non-positive arguments fall back to the defaults.
func NewExportLimiter(maxConcurrent int, maxWait time.Duration) *ExportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentExports
	}
	if maxWait <= 0 {
		maxWait = DefaultExportWait
	}

	idle := make(chan struct{})
	close(idle)
	return &ExportLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
		active:  map[string]int{},
		idle:    idle,
	}
}

// Acquire takes a slot for exporting table, waiting up to the limiter's
// maxWait. The returned release func frees the slot and is safe to call
// more than once.
func (l *ExportLimiter) Acquire(ctx context.Context, table string) (release func(), err error) {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrTooManyExports
	}

	l.mu.Lock()
	if l.total == 0 {
		l.idle = make(chan struct{})
	}
	l.total++
	l.active[table]++
	l.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { l.release(table) }) }, nil
}

func (l *ExportLimiter) release(table string) {
	l.mu.Lock()
	if l.active[table]--; l.active[table] == 0 {
		delete(l.active, table)
	}
	l.total--
	if l.total == 0 {
		close(l.idle)
	}
	l.mu.Unlock()
	<-l.slots
}

// Active returns the number of running exports per table.
func (l *ExportLimiter) Active() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.active)
}

// WaitForDrain blocks until no export is running or ctx is done.
func (l *ExportLimiter) WaitForDrain(ctx context.Context) error {
	l.mu.Lock()
	idle := l.idle
	l.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
