package cart

import (
	"sync"

	"github.com/cartwheel-io/storefront/internal/domain"
)

// AddItemInput holds the catalog snapshot recorded when a product enters the
// cart. The store takes the fields as given; resolving and checking product
// data is the caller's concern.
type AddItemInput struct {
	ProductID string
	Name      string
	UnitPrice int64
	ImageURL  string
}

// Store owns the in-memory cart state and the feeds derived from it. All
// state is process-local and starts empty; nothing survives a restart.
//
// Mutations are serialized: each one applies its change and publishes to both
// feeds before the next begins. A mutation issued while another is in flight,
// from a subscriber callback or another goroutine, is queued and runs once
// the current one finishes. Feed callbacks therefore always observe
// mutations one at a time, in order, and must not block.
type Store struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	busy    bool
	pending []func()

	linesFeed *Feed[[]domain.CartLine]
	countFeed *Feed[int]
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		linesFeed: newFeed([]domain.CartLine{}),
		countFeed: newFeed(0),
	}
}

// Lines is the feed of cart line snapshots. Subscribers receive the current
// lines immediately and a fresh snapshot after every mutation.
func (s *Store) Lines() *Feed[[]domain.CartLine] {
	return s.linesFeed
}

// TotalCount is the feed of the total unit count. It publishes after Lines
// within the same mutation, so a subscriber holding both always sees a count
// that matches the lines it was just given.
func (s *Store) TotalCount() *Feed[int] {
	return s.countFeed
}

// AddItem adds one unit of a product. If a line for the product already
// exists its quantity increases by one and the stored snapshot fields are
// left untouched, even when the input carries different values. Otherwise a
// new line with quantity 1 is appended. Always publishes.
func (s *Store) AddItem(in AddItemInput) {
	s.dispatch(func() {
		s.mu.Lock()
		found := false
		for i := range s.lines {
			if s.lines[i].ProductID == in.ProductID {
				s.lines[i].Quantity++
				found = true
				break
			}
		}
		if !found {
			s.lines = append(s.lines, domain.CartLine{
				ProductID: in.ProductID,
				Name:      in.Name,
				UnitPrice: in.UnitPrice,
				Quantity:  1,
				ImageURL:  in.ImageURL,
			})
		}
		snapshot := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snapshot)
	})
}

// RemoveItem removes the product's line entirely, regardless of quantity.
// An unknown product is a no-op and publishes nothing.
func (s *Store) RemoveItem(productID string) {
	s.dispatch(func() {
		s.mu.Lock()
		idx := s.findLocked(productID)
		if idx < 0 {
			s.mu.Unlock()
			return
		}
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		snapshot := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snapshot)
	})
}

// SetQuantity sets the product's quantity to an absolute value. A quantity
// of zero or less removes the line. Setting a quantity on a product that has
// no line is a no-op: SetQuantity never creates lines. An assignment to an
// existing line publishes even when the value is numerically unchanged.
func (s *Store) SetQuantity(productID string, quantity int) {
	s.dispatch(func() {
		s.mu.Lock()
		idx := s.findLocked(productID)
		if idx < 0 {
			s.mu.Unlock()
			return
		}
		if quantity <= 0 {
			s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		} else {
			s.lines[idx].Quantity = quantity
		}
		snapshot := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snapshot)
	})
}

// Clear empties the cart. It always publishes, even when the cart was
// already empty, so subscribers can treat it as a reset signal.
func (s *Store) Clear() {
	s.dispatch(func() {
		s.mu.Lock()
		s.lines = nil
		snapshot := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snapshot)
	})
}

// TotalPrice returns the combined price of the current lines (in cents),
// recomputed on every call. It is a pure read: no publish, safe to call from
// feed callbacks.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TotalPrice(s.lines)
}

// View returns the current cart state as a single consistent snapshot.
func (s *Store) View() domain.CartView {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	return domain.NewCartView(snapshot)
}

// dispatch runs op as one cart turn. The first caller becomes the drainer:
// it runs its own op, then any ops queued while publishes were in flight,
// until the queue is empty. Re-entrant calls from feed callbacks and calls
// from other goroutines enqueue and return immediately.
func (s *Store) dispatch(op func()) {
	s.mu.Lock()
	if s.busy {
		s.pending = append(s.pending, op)
		s.mu.Unlock()
		return
	}
	s.busy = true
	s.mu.Unlock()

	for {
		op()

		s.mu.Lock()
		if len(s.pending) == 0 {
			s.busy = false
			s.mu.Unlock()
			return
		}
		op = s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
	}
}

// publish pushes one mutation's result to both feeds: lines first, then the
// count derived from the same snapshot.
func (s *Store) publish(snapshot []domain.CartLine) {
	s.linesFeed.publish(snapshot)
	s.countFeed.publish(domain.TotalQuantity(snapshot))
}

// snapshotLocked copies the current lines into a fresh slice. The copy is
// never nil, and callers may hold or mutate it freely without touching store
// state. Must be called with s.mu held.
func (s *Store) snapshotLocked() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// findLocked returns the index of the product's line, or -1. Must be called
// with s.mu held.
func (s *Store) findLocked(productID string) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
