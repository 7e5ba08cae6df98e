// Package nodestream owns the live control streams of secondary
// nodes: a registry keyed by node id, a handle per stream and the
// correlation layer that turns the framed bidi transport into
// request/response calls.
package nodestream

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/api/iamv5"
)

// Transport is the main node side of a registered node stream. The
// server side of the RegisterNode bidi RPC satisfies it.
type Transport interface {
	Send(*iamv5.IAMIncomingMessages) error
	Recv() (*iamv5.IAMOutgoingMessages, error)
}

// RegistryConfig holds the parameters of a Registry.
type RegistryConfig struct {
	// Clock schedules call timeouts. Defaults to the real clock.
	Clock clockwork.Clock
}

// CheckAndSetDefaults validates the config and fills in defaults.
func (cfg *RegistryConfig) CheckAndSetDefaults() error {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return nil
}

// Registry owns the set of live secondary node streams keyed by node
// id.
type Registry struct {
	clock clockwork.Clock
	log   *slog.Logger

	mu      sync.Mutex
	handles map[string]*Handle
	closed  bool
}

// NewRegistry builds an empty Registry.
func NewRegistry(cfg RegistryConfig) (*Registry, error) {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}

	return &Registry{
		clock:   cfg.Clock,
		log:     slog.With(fleetiam.ComponentKey, fleetiam.ComponentNodeStream),
		handles: make(map[string]*Handle),
	}, nil
}

// RegisterStream installs a handle for the stream of the node
// described by info. It fails with AlreadyExists when a healthy
// handle with the same id is present and with AccessDenied when the
// node status is not in allowedStatuses. A dead predecessor is
// superseded and its remaining in-flight calls are canceled.
func (r *Registry) RegisterStream(info *iamv5.NodeInfo, transport Transport, allowedStatuses []string) (*Handle, error) {
	nodeID := info.GetNodeId()
	if nodeID == "" {
		return nil, trace.BadParameter("node info has no node id")
	}

	if !slices.Contains(allowedStatuses, info.GetStatus()) {
		return nil, trace.AccessDenied("node %q status %q is not accepted on this endpoint",
			nodeID, info.GetStatus())
	}

	handle := newHandle(nodeID, info, transport, r.clock)

	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return nil, trace.CompareFailed("node stream registry is closed")
	}

	predecessor := r.handles[nodeID]
	if predecessor != nil && predecessor.healthy() {
		r.mu.Unlock()
		return nil, trace.AlreadyExists("node %q is already registered", nodeID)
	}

	r.handles[nodeID] = handle

	r.mu.Unlock()

	if predecessor != nil {
		predecessor.Close()
		r.log.Debug("Superseded dead node stream", "node_id", nodeID)
	}

	r.log.Info("Node stream registered", "node_id", nodeID, "status", info.GetStatus())

	return handle, nil
}

// Lookup returns the handle registered for nodeID.
func (r *Registry) Lookup(nodeID string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle, ok := r.handles[nodeID]
	if !ok {
		return nil, trace.NotFound("no stream registered for node %q", nodeID)
	}

	return handle, nil
}

// Remove closes handle and drops it from the registry if it is still
// the registered one. A stale handle is closed but the registration
// of its successor is left alone.
func (r *Registry) Remove(nodeID string, handle *Handle) {
	r.mu.Lock()

	removed := r.handles[nodeID] == handle
	if removed {
		delete(r.handles, nodeID)
	}

	r.mu.Unlock()

	handle.Close()

	if removed {
		r.log.Info("Node stream removed", "node_id", nodeID)
	}
}

// ForEach calls fn for every registered handle. The handle set is
// snapshotted first so fn may use the registry.
func (r *Registry) ForEach(fn func(*Handle)) {
	r.mu.Lock()

	snapshot := make([]*Handle, 0, len(r.handles))
	for _, handle := range r.handles {
		snapshot = append(snapshot, handle)
	}

	r.mu.Unlock()

	for _, handle := range snapshot {
		fn(handle)
	}
}

// Len returns the number of registered streams.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.handles)
}

// Close drains the registry and cancels the in-flight calls of every
// registered stream. Further registrations are rejected.
func (r *Registry) Close() {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return
	}

	r.closed = true

	snapshot := make([]*Handle, 0, len(r.handles))
	for _, handle := range r.handles {
		snapshot = append(snapshot, handle)
	}
	clear(r.handles)

	r.mu.Unlock()

	for _, handle := range snapshot {
		handle.Close()
	}
}

// Handle is the main node end of one registered node stream. It owns
// the correlator and the stream read loop.
type Handle struct {
	nodeID     string
	nodeInfo   *iamv5.NodeInfo
	transport  Transport
	correlator *correlator
	log        *slog.Logger
}

func newHandle(nodeID string, info *iamv5.NodeInfo, transport Transport, clock clockwork.Clock) *Handle {
	log := slog.With(
		fleetiam.ComponentKey, fleetiam.ComponentNodeStream,
		"node_id", nodeID,
	)

	return &Handle{
		nodeID:     nodeID,
		nodeInfo:   proto.Clone(info).(*iamv5.NodeInfo),
		transport:  transport,
		correlator: newCorrelator(nodeID, transport, clock, log),
		log:        log,
	}
}

// NodeID returns the id the stream registered with.
func (h *Handle) NodeID() string {
	return h.nodeID
}

// NodeInfo returns a copy of the node info sent on registration.
func (h *Handle) NodeInfo() *iamv5.NodeInfo {
	return proto.Clone(h.nodeInfo).(*iamv5.NodeInfo)
}

// Call forwards a request over the stream and waits for the matching
// response up to timeout.
func (h *Handle) Call(ctx context.Context, req *iamv5.IAMIncomingMessages, timeout time.Duration) (*iamv5.IAMOutgoingMessages, error) {
	rsp, err := h.correlator.call(ctx, req, timeout)

	return rsp, trace.Wrap(err)
}

// Serve runs the stream read loop until the transport fails or the
// handle is closed. Responses complete their pending calls,
// uncorrelated node info frames go to onNodeInfo.
func (h *Handle) Serve(onNodeInfo func(*iamv5.NodeInfo)) error {
	defer h.Close()

	for {
		frame, err := h.transport.Recv()
		if err != nil {
			select {
			case <-h.Done():
				return nil
			default:
			}

			return trace.ConnectionProblem(err, "stream of node %q failed", h.nodeID)
		}

		if h.correlator.onFrame(frame) {
			continue
		}

		if info := frame.GetNodeInfo(); info != nil {
			if onNodeInfo != nil {
				onNodeInfo(info)
			}

			continue
		}

		h.log.Warn("Dropping uncorrelated frame")
	}
}

// Done is closed once the handle is no longer usable.
func (h *Handle) Done() <-chan struct{} {
	return h.correlator.done
}

// Close cancels the in-flight calls of the stream with a connection
// problem error. It is safe to call multiple times.
func (h *Handle) Close() {
	h.correlator.close()
}

func (h *Handle) healthy() bool {
	select {
	case <-h.Done():
		return false
	default:
		return true
	}
}
