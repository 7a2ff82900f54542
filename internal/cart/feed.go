package cart

import "sync"

// subscription pairs a registration ID with its callback so cancellation can
// remove exactly one entry without disturbing the order of the rest.
type subscription[T any] struct {
	id int
	fn func(T)
}

// Feed is a read-only stream of one piece of cart state. It keeps the last
// published value and an ordered subscriber list; subscribing delivers the
// current value immediately, then every later publish, in registration order.
type Feed[T any] struct {
	mu     sync.Mutex
	value  T
	subs   []subscription[T]
	nextID int
}

func newFeed[T any](initial T) *Feed[T] {
	return &Feed[T]{value: initial}
}

// Value returns the last published value without subscribing.
func (f *Feed[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Subscribe registers fn and synchronously calls it with the current value
// before returning. The returned cancel function removes the subscription;
// calling it more than once is harmless.
func (f *Feed[T]) Subscribe(fn func(T)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs = append(f.subs, subscription[T]{id: id, fn: fn})
	current := f.value
	f.mu.Unlock()

	fn(current)

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.subs {
			if f.subs[i].id == id {
				f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// publish stores v as the current value and notifies subscribers in
// registration order. The subscriber list is copied before notifying so a
// callback that subscribes or cancels does not disturb the in-flight pass.
func (f *Feed[T]) publish(v T) {
	f.mu.Lock()
	f.value = v
	subs := make([]subscription[T], len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// subscriberCount reports how many subscriptions are currently registered.
func (f *Feed[T]) subscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
