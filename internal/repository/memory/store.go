// Package memory holds the volatile, process-local storage backing every
// domain entity. Nothing here survives a restart.
package memory

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/course-api/internal/domain"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing record")
)

// Entity is satisfied by pointers to record types that embed domain.Meta.
type Entity[T any] interface {
	*T
	Metadata() *domain.Meta
}

// Store is an ordered, concurrency-safe collection of records of one type.
// Records are held by value: everything handed out is a copy, so callers
// never observe later mutations.
//
// All mutations take the write lock; List, GetByID and FindOne take the read
// lock. Conditional writes (CreateUnless, UpdateUnless) evaluate their
// conflict predicate under the same write lock as the write itself.
type Store[T any, P Entity[T]] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int // id -> position in items

	now   func() time.Time
	newID func() string
}

type options struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*options)

// WithClock replaces time.Now as the source of audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the UUID generator. The generator must eventually
// produce an unused id.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// NewStore creates an empty store.
func NewStore[T any, P Entity[T]](opts ...Option) *Store[T, P] {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, P]{
		index: make(map[string]int),
		now:   o.now,
		newID: o.newID,
	}
}

// List returns a copy of every record in insertion order.
func (s *Store[T, P]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of records.
func (s *Store[T, P]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetByID returns the record with the given id.
func (s *Store[T, P]) GetByID(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// FindOne returns the first record, in insertion order, matching pred.
func (s *Store[T, P]) FindOne(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Create assigns a fresh id and timestamps to fields, appends it and returns
// the stored record. Any Meta already set on fields is overwritten.
func (s *Store[T, P]) Create(fields T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(fields)
}

// CreateUnless behaves like Create unless conflicts reports true for some
// existing record, in which case nothing is stored and false is returned.
func (s *Store[T, P]) CreateUnless(fields T, conflicts func(existing, candidate T) bool) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if conflicts(item, fields) {
			var zero T
			return zero, false
		}
	}
	return s.insert(fields), true
}

// Update applies patch to a copy of the record and stores the result. The id
// and creation time survive whatever patch does; UpdatedAt always moves
// forward. It returns false if no record has the id.
func (s *Store[T, P]) Update(id string, patch func(*T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	next := s.patched(i, patch)
	s.items[i] = next
	return next, true
}

// UpdateUnless behaves like Update but rejects the change with ErrConflict
// when conflicts reports true for the patched record against any other
// record. An unknown id yields ErrNotFound.
func (s *Store[T, P]) UpdateUnless(id string, patch func(*T), conflicts func(existing, candidate T) bool) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	i, ok := s.index[id]
	if !ok {
		return zero, ErrNotFound
	}
	next := s.patched(i, patch)
	for j, item := range s.items {
		if j != i && conflicts(item, next) {
			return zero, ErrConflict
		}
	}
	s.items[i] = next
	return next, nil
}

// Delete removes the record with the given id and reports whether it existed.
func (s *Store[T, P]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[P(&s.items[j]).Metadata().ID] = j
	}
	return true
}

// insert must be called with the write lock held.
func (s *Store[T, P]) insert(fields T) T {
	id := s.newID()
	for {
		if _, taken := s.index[id]; !taken {
			break
		}
		id = s.newID()
	}

	now := s.now().UTC()
	m := P(&fields).Metadata()
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now

	s.index[id] = len(s.items)
	s.items = append(s.items, fields)
	return fields
}

// patched must be called with the write lock held.
func (s *Store[T, P]) patched(i int, patch func(*T)) T {
	prev := *P(&s.items[i]).Metadata()

	next := s.items[i]
	patch(&next)

	m := P(&next).Metadata()
	m.ID = prev.ID
	m.CreatedAt = prev.CreatedAt
	m.UpdatedAt = s.now().UTC()
	if !m.UpdatedAt.After(prev.UpdatedAt) {
		m.UpdatedAt = prev.UpdatedAt.Add(time.Nanosecond)
	}
	return next
}
