package observe

import "context"

// Event is one emission of a live sequence: either a fresh snapshot of the
// query result or the error the requery failed with.
type Event[T any] struct {
	Value T
	Err   error
}

// Query produces the current snapshot of some result set.
type Query[T any] func(ctx context.Context) (T, error)

// Watch turns a query into a live sequence: the returned channel delivers
// the initial query result, then one fresh result after every hub
// notification, until ctx ends. The channel is closed when ctx is done, and
// the hub subscription is released with it, so callers never unsubscribe by
// hand. A failed requery is delivered as an Event with Err set; watching
// continues afterwards.
func Watch[T any](ctx context.Context, h *Hub, q Query[T]) <-chan Event[T] {
	out := make(chan Event[T])
	id, signal := h.Subscribe()

	go func() {
		defer close(out)
		defer h.Unsubscribe(id)

		for {
			value, err := q(ctx)
			select {
			case out <- Event[T]{Value: value, Err: err}:
			case <-ctx.Done():
				return
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Map transforms every successful emission of a live sequence, preserving
// emission order and passing errors through untouched. The output channel
// closes when the input closes or ctx ends.
func Map[T, U any](ctx context.Context, in <-chan Event[T], fn func(T) U) <-chan Event[U] {
	out := make(chan Event[U])

	go func() {
		defer close(out)
		for ev := range in {
			mapped := Event[U]{Err: ev.Err}
			if ev.Err == nil {
				mapped.Value = fn(ev.Value)
			}
			select {
			case out <- mapped:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
