package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDFunc generates a candidate identifier for a new record.
type IDFunc func() string

// UUIDs generates random UUID v4 identifiers.
func UUIDs() IDFunc {
	return uuid.NewString
}

// Sequence generates monotonic identifiers such as "ORD-001", "ORD-002".
// The store skips candidates that collide with seeded records.
func Sequence(prefix string, width int) IDFunc {
	var (
		mu   sync.Mutex
		next int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("%s%0*d", prefix, width, next)
	}
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	newID IDFunc
	now   func() time.Time
}

// WithIDFunc sets the identifier generator used by Create.
func WithIDFunc(fn IDFunc) StoreOption {
	return func(o *storeOptions) { o.newID = fn }
}

// WithClock sets the time source used for CreatedAt/UpdatedAt stamps.
func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) { o.now = now }
}

// Store is a thread-safe in-memory collection of one record type.
// Records are kept in insertion order, which is the order List returns.
type Store[T any, PT interface {
	*T
	Record
}] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int // id -> position in items

	newID    IDFunc
	now      func() time.Time
	lastTime time.Time
}

// NewStore creates an empty Store.
func NewStore[T any, PT interface {
	*T
	Record
}](opts ...StoreOption) *Store[T, PT] {
	o := storeOptions{newID: UUIDs(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, PT]{
		index: make(map[string]int),
		newID: o.newID,
		now:   o.now,
	}
}

// Seed inserts records verbatim, keeping their identifiers and timestamps.
// Returns an error on a missing or duplicate identifier; records before the
// offending one stay inserted.
func (s *Store[T, PT]) Seed(records ...T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range records {
		meta := PT(&records[i]).GetMeta()
		if meta.ID == "" {
			return fmt.Errorf("seed record %d: missing id", i)
		}
		if _, exists := s.index[meta.ID]; exists {
			return fmt.Errorf("seed record %d: duplicate id %q", i, meta.ID)
		}
		s.index[meta.ID] = len(s.items)
		s.items = append(s.items, records[i])
	}
	return nil
}

// Create assigns a new unique identifier, stamps CreatedAt/UpdatedAt and stores the record.
// Any identifier or timestamps already present on the record are replaced.
func (s *Store[T, PT]) Create(record T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for {
		if _, exists := s.index[id]; !exists && id != "" {
			break
		}
		id = s.newID()
	}

	now := s.stamp()
	PT(&record).SetMeta(Meta{ID: id, CreatedAt: now, UpdatedAt: now})

	s.index[id] = len(s.items)
	s.items = append(s.items, record)
	return record
}

// Get retrieves a record by ID.
func (s *Store[T, PT]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[pos], true
}

// Exists checks if a record with the given ID exists.
func (s *Store[T, PT]) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Update applies patch to a copy of the record and stores the result.
// The identifier and CreatedAt are preserved and UpdatedAt is refreshed.
// Returns false without calling patch if the id is not found.
func (s *Store[T, PT]) Update(id string, patch func(*T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}

	updated := s.items[pos]
	before := PT(&updated).GetMeta()
	patch(&updated)
	PT(&updated).SetMeta(Meta{
		ID:        before.ID,
		CreatedAt: before.CreatedAt,
		UpdatedAt: s.stamp(),
	})

	s.items[pos] = updated
	return updated, true
}

// Delete removes a record by ID. Returns true if deleted, false if not found.
func (s *Store[T, PT]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return false
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[PT(&s.items[i]).GetMeta().ID] = i
	}
	return true
}

// List returns a copy of all records in insertion order.
func (s *Store[T, PT]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, len(s.items))
	copy(result, s.items)
	return result
}

// Count returns the number of stored records.
func (s *Store[T, PT]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear removes all stored records.
func (s *Store[T, PT]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.index = make(map[string]int)
}

// stamp returns the current time, never earlier than a previous stamp.
// Callers must hold the write lock.
func (s *Store[T, PT]) stamp() time.Time {
	now := s.now()
	if now.Before(s.lastTime) {
		now = s.lastTime
	}
	s.lastTime = now
	return now
}
