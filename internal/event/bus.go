// Package event provides a small synchronous publish/subscribe primitive.
//
// Handlers run on the publisher's goroutine, in subscription order, exactly
// once per Publish. A Bus is not safe for concurrent use; the page logic it
// serves is single-threaded.
package event

// Handler receives a published value.
type Handler[T any] func(T)

// Bus fans a value out to its subscribers.
type Bus[T any] struct {
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn Handler[T]
}

// Subscription detaches a handler from its bus.
type Subscription struct {
	cancel func()
}

// Cancel removes the handler. Calling it more than once is a no-op.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Subscribe registers fn and returns a handle that removes it again.
func (b *Bus[T]) Subscribe(fn Handler[T]) Subscription {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})
	return Subscription{cancel: func() { b.remove(id) }}
}

// Publish calls every current subscriber with v.
func (b *Bus[T]) Publish(v T) {
	// Snapshot so handlers may subscribe or cancel while we iterate.
	subs := make([]subscriber[T], len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		s.fn(v)
	}
}

// Len reports the number of active subscribers.
func (b *Bus[T]) Len() int {
	return len(b.subs)
}

func (b *Bus[T]) remove(id int) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}
