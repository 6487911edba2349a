// Package event provides a minimal signal/slot mechanism: an ordered list of
// listeners invoked synchronously when the event fires.
package event

// Listener receives the value passed to Fire
type Listener[T any] func(T)

// Event is an ordered listener registry. Listeners run on the caller's
// goroutine in the order they were connected, and Fire returns only after
// every listener has returned.
//
// A listener that causes the same event to fire again (for example by
// updating the stock it was notified about) recurses into Fire. That is
// allowed; it is up to the listener to make sure the recursion terminates.
//
// Event is not safe for concurrent use.
type Event[T any] struct {
	listeners []Listener[T]
}

// New creates an event with no listeners
func New[T any]() *Event[T] {
	return &Event[T]{}
}

// Connect registers a listener. Nil listeners are ignored.
func (e *Event[T]) Connect(listener Listener[T]) {
	if listener == nil {
		return
	}
	e.listeners = append(e.listeners, listener)
}

// Fire calls every listener with v, in connection order
func (e *Event[T]) Fire(v T) {
	// Listeners connected during Fire are called from the next Fire on.
	listeners := e.listeners
	for _, listener := range listeners {
		listener(v)
	}
}

// Len returns the number of connected listeners
func (e *Event[T]) Len() int {
	return len(e.listeners)
}
