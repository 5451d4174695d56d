package devrand

// Event is the completion handle returned by asynchronous launches. The
// zero value is not usable; events are always created by a queue.
type Event struct {
	done chan struct{}
	err  error // written once, before done is closed
}

func newEvent() *Event {
	return &Event{done: make(chan struct{})}
}

// completedEvent returns an already-signaled event, used for zero-length
// launches that never reach the queue.
func completedEvent() *Event {
	e := newEvent()
	close(e.done)
	return e
}

// complete records the outcome and releases waiters. Called exactly once,
// by the dispatcher.
func (e *Event) complete(err error) {
	e.err = err
	close(e.done)
}

// Wait blocks until the launch behind e has run to completion and returns
// its failure, if any. Wait is safe to call repeatedly and from multiple
// goroutines; every call returns the same result.
func (e *Event) Wait() error {
	<-e.done
	return e.err
}

// Done returns a channel closed when the launch completes, for callers
// that multiplex completion with select.
func (e *Event) Done() <-chan struct{} {
	return e.done
}
