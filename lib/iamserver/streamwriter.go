package iamserver

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gravitational/trace"
)

const subscriptionBuffer = 16

// streamWriter fans one kind of event out to the streaming
// subscribers of that kind. Delivery is best effort: a subscriber
// that cannot keep up within its buffer is dropped, the rest are
// unaffected.
type streamWriter[T any] struct {
	log *slog.Logger

	mu     sync.Mutex
	subs   map[*subscription[T]]struct{}
	closed bool
}

type subscription[T any] struct {
	eventsC chan T
	closedC chan struct{}
}

func newStreamWriter[T any](log *slog.Logger) *streamWriter[T] {
	return &streamWriter[T]{
		log:  log,
		subs: make(map[*subscription[T]]struct{}),
	}
}

func (w *streamWriter[T]) subscribe() (*subscription[T], error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, trace.CompareFailed("stream writer is closed")
	}

	sub := &subscription[T]{
		eventsC: make(chan T, subscriptionBuffer),
		closedC: make(chan struct{}),
	}
	w.subs[sub] = struct{}{}

	return sub, nil
}

// unsubscribe removes sub. Safe to call after the writer already
// dropped the subscription.
func (w *streamWriter[T]) unsubscribe(sub *subscription[T]) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.subs[sub]; !ok {
		return
	}

	delete(w.subs, sub)
	close(sub.closedC)
}

func (w *streamWriter[T]) write(msg T) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for sub := range w.subs {
		select {
		case sub.eventsC <- msg:
		default:
			delete(w.subs, sub)
			close(sub.closedC)
			w.log.Warn("Dropping slow subscriber")
		}
	}
}

func (w *streamWriter[T]) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true

	for sub := range w.subs {
		delete(w.subs, sub)
		close(sub.closedC)
	}
}

// serveSubscription streams writer events into send until the client
// goes away or the writer drops the subscription.
func serveSubscription[T any](ctx context.Context, w *streamWriter[T], send func(T) error) error {
	sub, err := w.subscribe()
	if err != nil {
		return trace.Wrap(err)
	}
	defer w.unsubscribe(sub)

	for {
		select {
		case msg := <-sub.eventsC:
			if err := send(msg); err != nil {
				return trace.ConnectionProblem(err, "failed to send update")
			}
		case <-sub.closedC:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
