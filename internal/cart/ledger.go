package cart

import (
	"sync"

	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
)

// Line is one product's aggregated quantity within the cart.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Snapshot is the derived cart state. It is recomputed from the ledger's
// lines on every call, never cached, so a render driven by a snapshot can
// not go stale.
type Snapshot struct {
	Lines []Line  `json:"lines"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// ProductIDs returns the ids of all lines in cart order.
func (s Snapshot) ProductIDs() []string {
	ids := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		ids[i] = l.Product.ID
	}
	return ids
}

// Ledger owns the cart lines. At most one line exists per product id;
// repeated adds increment the quantity, remove deletes the whole line.
type Ledger struct {
	mu        sync.RWMutex
	lines     []Line
	observers []func(Snapshot)
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add puts one unit of the product into the cart. Products without a price
// are policy-rejected silently: no line is created and no notification
// fires. Callers observe the effect through Contains or Snapshot.
func (l *Ledger) Add(p catalog.Product) {
	if !p.Sellable() {
		return
	}

	l.mu.Lock()
	found := false
	for i := range l.lines {
		if l.lines[i].Product.ID == p.ID {
			l.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		l.lines = append(l.lines, Line{Product: p, Quantity: 1})
	}
	l.notifyLocked()
}

// Remove deletes the entire line for the product id. Removing an absent id
// is a no-op, but observers are still notified so the view re-renders from
// a fresh snapshot after every mutator call.
func (l *Ledger) Remove(productID string) {
	l.mu.Lock()
	for i := range l.lines {
		if l.lines[i].Product.ID == productID {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			break
		}
	}
	l.notifyLocked()
}

// Clear empties the cart unconditionally.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.lines = nil
	l.notifyLocked()
}

// Contains reports whether the product currently has a line in the cart.
func (l *Ledger) Contains(productID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, line := range l.lines {
		if line.Product.ID == productID {
			return true
		}
	}
	return false
}

// Snapshot derives the current cart state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() Snapshot {
	snap := Snapshot{Lines: make([]Line, len(l.lines))}
	copy(snap.Lines, l.lines)
	for _, line := range l.lines {
		snap.Count += line.Quantity
		if line.Product.Sellable() {
			snap.Total += line.Product.PriceValue() * float64(line.Quantity)
		}
	}
	return snap
}

// OnChange registers a callback fired with a fresh snapshot after every
// mutation.
func (l *Ledger) OnChange(fn func(Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// notifyLocked snapshots under the held lock, releases it, then fires the
// observers. Callers must hold l.mu.
func (l *Ledger) notifyLocked() {
	snap := l.snapshotLocked()
	observers := l.observers
	l.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}
