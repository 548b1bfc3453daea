package catalog

import "sync"

// Store holds the product list fetched from the catalog source. Products are
// immutable once loaded; the only mutation is wholesale replacement.
type Store struct {
	mu        sync.RWMutex
	products  []Product
	byID      map[string]Product
	observers []func()
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]Product),
	}
}

// Replace swaps the full product list and notifies observers.
func (s *Store) Replace(products []Product) {
	s.mu.Lock()
	s.products = make([]Product, len(products))
	copy(s.products, products)
	s.byID = make(map[string]Product, len(products))
	for _, p := range products {
		s.byID[p.ID] = p
	}
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// ByID looks a product up by its id.
func (s *Store) ByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// All returns a copy of the product list in catalog order.
func (s *Store) All() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// OnChange registers a callback fired after every Replace.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}
