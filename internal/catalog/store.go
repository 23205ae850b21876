package catalog

import (
	"sort"
	"sync"
)

// Store holds the in-memory product collection keyed by identifier. It is the
// coordination point between gateway responses and the UI: a wholesale Load
// on startup or refresh, then individual Upsert/Remove calls mirroring each
// mutation's server response.
//
// Invariant: every key equals its value's ID.
type Store struct {
	mu       sync.RWMutex
	products map[int64]Product
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{products: make(map[int64]Product)}
}

// Load replaces the entire collection with the given list.
func (s *Store) Load(list []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[int64]Product, len(list))
	for _, p := range list {
		s.products[p.ID] = p
	}
}

// Upsert inserts or overwrites the entry at p.ID. Records are always replaced
// whole; there are no partial updates.
func (s *Store) Upsert(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.products == nil {
		s.products = make(map[int64]Product)
	}
	s.products[p.ID] = p
}

// Remove deletes the entry with the given id. Absence is not an error.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
}

// Get returns the product with the given id, if present.
func (s *Store) Get(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok
}

// Products returns a copy of the collection ordered by ascending ID. The
// deterministic order gives the view layer a stable base sequence.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of products in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products)
}
