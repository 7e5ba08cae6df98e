package nodestream

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/google/uuid"
	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"

	"github.com/edgefleet/fleetiam/api/iamv5"
)

// correlator matches response frames to the calls that produced them.
// A single reader feeds onFrame; any number of goroutines may call
// concurrently. Transport writes are serialized by sendMu.
type correlator struct {
	nodeID    string
	transport Transport
	clock     clockwork.Clock
	log       *slog.Logger

	sendMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan *iamv5.IAMOutgoingMessages
	closed  bool

	done chan struct{}
}

func newCorrelator(nodeID string, transport Transport, clock clockwork.Clock, log *slog.Logger) *correlator {
	return &correlator{
		nodeID:    nodeID,
		transport: transport,
		clock:     clock,
		log:       log,
		pending:   make(map[string]chan *iamv5.IAMOutgoingMessages),
		done:      make(chan struct{}),
	}
}

func (c *correlator) call(ctx context.Context, req *iamv5.IAMIncomingMessages, timeout time.Duration) (*iamv5.IAMOutgoingMessages, error) {
	id := uuid.NewString()

	rspC, err := c.register(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer c.forget(id)

	frame := proto.Clone(req).(*iamv5.IAMIncomingMessages)
	frame.CorrelationId = id

	if err := c.send(frame); err != nil {
		return nil, trace.Wrap(err)
	}

	select {
	case rsp := <-rspC:
		return rsp, nil
	case <-c.clock.After(timeout):
		return nil, trace.Wrap(context.DeadlineExceeded,
			"node %q did not respond within %v", c.nodeID, timeout)
	case <-c.done:
		return nil, trace.ConnectionProblem(nil, "stream of node %q is closed", c.nodeID)
	case <-ctx.Done():
		return nil, trace.Wrap(ctx.Err())
	}
}

// register reserves id and returns the channel its response will be
// delivered on. A live id may not be reused.
func (c *correlator) register(id string) (chan *iamv5.IAMOutgoingMessages, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, trace.ConnectionProblem(nil, "stream of node %q is closed", c.nodeID)
	}

	if _, ok := c.pending[id]; ok {
		return nil, trace.AlreadyExists("correlation id %q is already in flight", id)
	}

	rspC := make(chan *iamv5.IAMOutgoingMessages, 1)
	c.pending[id] = rspC

	return rspC, nil
}

func (c *correlator) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *correlator) send(frame *iamv5.IAMIncomingMessages) error {
	c.sendMu.Lock()
	err := c.transport.Send(frame)
	c.sendMu.Unlock()

	if err != nil {
		return trace.ConnectionProblem(err, "failed to send request to node %q", c.nodeID)
	}

	return nil
}

// onFrame reports whether the frame was consumed as a response. A
// frame without a correlation id is unsolicited and left to the
// caller; a response whose call is gone is dropped.
func (c *correlator) onFrame(frame *iamv5.IAMOutgoingMessages) bool {
	id := frame.GetCorrelationId()
	if id == "" {
		return false
	}

	c.mu.Lock()
	rspC, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !ok {
		c.log.Debug("Dropping late response", "correlation_id", id)
		return true
	}

	rspC <- frame

	return true
}

func (c *correlator) close() {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return
	}

	c.closed = true
	clear(c.pending)

	c.mu.Unlock()

	close(c.done)
}
