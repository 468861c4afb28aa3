// Package registry provides the in-memory keyed stores that own every
// canonical record in the system. Each entity kind gets its own Store with a
// per-kind monotonic counter; dependent records hold IDs, never pointers, and
// resolve them through the owning store. Single-threaded use only.
package registry

import (
	"fmt"
)

// ID identifies one record within one entity kind. The zero ID identifies
// nothing. IDs are comparable and usable as map keys; the prefixed string
// form ("BIL9000") exists only for display at the boundary.
type ID struct {
	prefix string
	n      int64
}

// IsZero reports whether the ID identifies nothing.
func (id ID) IsZero() bool { return id.prefix == "" && id.n == 0 }

func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s%d", id.prefix, id.n)
}

// NotFoundError is returned when an operation references an id the store has
// no record for.
type NotFoundError struct {
	Kind string
	ID   ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Entity is implemented by every stored record so Create can assign the id.
type Entity interface {
	SetID(ID)
}

// Store is an in-memory registry over one entity kind. Records are kept in
// insertion order for List.
type Store[T Entity] struct {
	kind   string
	prefix string
	next   int64
	items  map[ID]T
	order  []ID
}

// NewStore returns an empty store. kind names the entity in errors
// ("patient"), prefix and seed define the id sequence ("PAT", 1 -> PAT1,
// PAT2, ...).
func NewStore[T Entity](kind, prefix string, seed int64) *Store[T] {
	return &Store[T]{
		kind:   kind,
		prefix: prefix,
		next:   seed,
		items:  make(map[ID]T),
	}
}

// Create assigns the next id in the sequence, sets it on the entity and
// stores the record.
func (s *Store[T]) Create(e T) ID {
	id := ID{prefix: s.prefix, n: s.next}
	s.next++
	e.SetID(id)
	s.items[id] = e
	s.order = append(s.order, id)
	return id
}

// Get returns the record for id.
func (s *Store[T]) Get(id ID) (T, error) {
	e, ok := s.items[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{Kind: s.kind, ID: id}
	}
	return e, nil
}

// Update applies mutate to the record for id. An error from mutate is
// returned unchanged and leaves the record as mutate left it; callers that
// need all-or-nothing semantics must not partially mutate before failing.
func (s *Store[T]) Update(id ID, mutate func(T) error) error {
	e, ok := s.items[id]
	if !ok {
		return &NotFoundError{Kind: s.kind, ID: id}
	}
	return mutate(e)
}

// Delete removes the record for id.
func (s *Store[T]) Delete(id ID) error {
	if _, ok := s.items[id]; !ok {
		return &NotFoundError{Kind: s.kind, ID: id}
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns every record in insertion order.
func (s *Store[T]) List() []T {
	result := make([]T, 0, len(s.items))
	for _, id := range s.order {
		result = append(result, s.items[id])
	}
	return result
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int { return len(s.items) }
