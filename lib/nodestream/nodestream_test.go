package nodestream_test

import (
	"context"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/logutils"
	"github.com/edgefleet/fleetiam/lib/nodeinfo"
	"github.com/edgefleet/fleetiam/lib/nodestream"
)

func TestMain(m *testing.M) {
	logutils.InitLoggerForTests()
	os.Exit(m.Run())
}

var protectedStatuses = []string{nodeinfo.StatusProvisioned, nodeinfo.StatusPaused}

// fakeTransport is an in-memory node stream: toNode carries the frames
// the main node sends, fromNode the frames the node answers with.
type fakeTransport struct {
	toNode   chan *iamv5.IAMIncomingMessages
	fromNode chan *iamv5.IAMOutgoingMessages

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		toNode:   make(chan *iamv5.IAMIncomingMessages, 16),
		fromNode: make(chan *iamv5.IAMOutgoingMessages, 16),
		closed:   make(chan struct{}),
	}
}

func (t *fakeTransport) Send(msg *iamv5.IAMIncomingMessages) error {
	select {
	case t.toNode <- msg:
		return nil
	case <-t.closed:
		return io.EOF
	}
}

func (t *fakeTransport) Recv() (*iamv5.IAMOutgoingMessages, error) {
	select {
	case msg := <-t.fromNode:
		return msg, nil
	case <-t.closed:
		return nil, io.EOF
	}
}

func (t *fakeTransport) close() {
	t.closeOnce.Do(func() { close(t.closed) })
}

func testNodeInfo(id, status string) *iamv5.NodeInfo {
	return &iamv5.NodeInfo{NodeId: id, NodeType: "secondary", Status: status}
}

func certTypesRequest(nodeID string) *iamv5.IAMIncomingMessages {
	return &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_GetCertTypesRequest{
			GetCertTypesRequest: &iamv5.GetCertTypesRequest{NodeId: nodeID},
		},
	}
}

func certTypesResponse(correlationID string, types ...string) *iamv5.IAMOutgoingMessages {
	return &iamv5.IAMOutgoingMessages{
		CorrelationId: correlationID,
		IAMOutgoingMessage: &iamv5.IAMOutgoingMessages_CertTypesResponse{
			CertTypesResponse: &iamv5.CertTypes{Types: types},
		},
	}
}

func newTestRegistry(t *testing.T, clock clockwork.Clock) *nodestream.Registry {
	t.Helper()

	registry, err := nodestream.NewRegistry(nodestream.RegistryConfig{Clock: clock})
	require.NoError(t, err)
	t.Cleanup(registry.Close)

	return registry
}

// startStream registers a provisioned node stream and runs its read
// loop until the test ends.
func startStream(t *testing.T, registry *nodestream.Registry, nodeID string, onNodeInfo func(*iamv5.NodeInfo)) (*nodestream.Handle, *fakeTransport) {
	t.Helper()

	transport := newFakeTransport()

	handle, err := registry.RegisterStream(testNodeInfo(nodeID, nodeinfo.StatusProvisioned), transport, protectedStatuses)
	require.NoError(t, err)

	served := make(chan struct{})
	go func() {
		defer close(served)
		defer registry.Remove(nodeID, handle)
		handle.Serve(onNodeInfo)
	}()
	t.Cleanup(func() {
		transport.close()
		<-served
	})

	return handle, transport
}

// respondCertTypes answers every request on transport with the given
// cert types until the transport closes.
func respondCertTypes(transport *fakeTransport, types ...string) {
	go func() {
		for {
			select {
			case req := <-transport.toNode:
				transport.fromNode <- certTypesResponse(req.GetCorrelationId(), types...)
			case <-transport.closed:
				return
			}
		}
	}()
}

func TestCallRoundTrip(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())
	handle, transport := startStream(t, registry, "node1", nil)

	respondCertTypes(transport, "online", "offline")

	rsp, err := handle.Call(context.Background(), certTypesRequest("node1"), time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, rsp.GetCorrelationId())
	require.Equal(t, []string{"online", "offline"}, rsp.GetCertTypesResponse().GetTypes())
}

func TestCallOutOfOrder(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())
	handle, transport := startStream(t, registry, "node1", nil)

	// The node answers both requests in reverse arrival order. Each
	// response echoes the node id of its request so the callers can
	// tell whether correlation held.
	go func() {
		var reqs []*iamv5.IAMIncomingMessages
		for len(reqs) < 2 {
			select {
			case req := <-transport.toNode:
				reqs = append(reqs, req)
			case <-transport.closed:
				return
			}
		}
		for i := len(reqs) - 1; i >= 0; i-- {
			transport.fromNode <- certTypesResponse(
				reqs[i].GetCorrelationId(),
				reqs[i].GetGetCertTypesRequest().GetNodeId(),
			)
		}
	}()

	results := make(chan error, 2)
	for _, id := range []string{"a", "b"} {
		id := id
		go func() {
			rsp, err := handle.Call(context.Background(), certTypesRequest(id), time.Minute)
			if err != nil {
				results <- err
				return
			}
			if got := rsp.GetCertTypesResponse().GetTypes(); len(got) != 1 || got[0] != id {
				results <- trace.BadParameter("call %q got response %v", id, got)
				return
			}
			results <- nil
		}()
	}

	for i := 0; i < 2; i++ {
		require.NoError(t, <-results)
	}
}

func TestCallTimeout(t *testing.T) {
	clock := clockwork.NewFakeClock()
	registry := newTestRegistry(t, clock)
	handle, transport := startStream(t, registry, "node1", nil)

	errC := make(chan error, 1)
	go func() {
		_, err := handle.Call(context.Background(), certTypesRequest(""), time.Minute)
		errC <- err
	}()

	var req *iamv5.IAMIncomingMessages
	select {
	case req = <-transport.toNode:
	case <-time.After(5 * time.Second):
		t.Fatal("request was not sent")
	}

	clock.BlockUntil(1)
	clock.Advance(time.Minute)

	select {
	case err := <-errC:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("call did not time out")
	}

	// The late response is dropped and does not disturb later calls.
	transport.fromNode <- certTypesResponse(req.GetCorrelationId(), "late")

	respondCertTypes(transport, "online")

	rsp, err := handle.Call(context.Background(), certTypesRequest(""), time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"online"}, rsp.GetCertTypesResponse().GetTypes())
}

func TestCallStreamClosed(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())
	handle, transport := startStream(t, registry, "node1", nil)

	errC := make(chan error, 1)
	go func() {
		_, err := handle.Call(context.Background(), certTypesRequest(""), time.Minute)
		errC <- err
	}()

	select {
	case <-transport.toNode:
	case <-time.After(5 * time.Second):
		t.Fatal("request was not sent")
	}

	transport.close()

	select {
	case err := <-errC:
		require.True(t, trace.IsConnectionProblem(err), "expected connection problem, got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("call was not canceled")
	}

	require.Eventually(t, func() bool {
		_, err := registry.Lookup("node1")
		return trace.IsNotFound(err)
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRegisterStreamValidation(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())

	_, err := registry.RegisterStream(testNodeInfo("", nodeinfo.StatusProvisioned), newFakeTransport(), protectedStatuses)
	require.True(t, trace.IsBadParameter(err), "expected bad parameter, got %v", err)

	_, err = registry.RegisterStream(testNodeInfo("node1", nodeinfo.StatusUnprovisioned), newFakeTransport(), protectedStatuses)
	require.True(t, trace.IsAccessDenied(err), "expected access denied, got %v", err)
}

func TestRegisterStreamDuplicate(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())

	first, err := registry.RegisterStream(testNodeInfo("node1", nodeinfo.StatusProvisioned), newFakeTransport(), protectedStatuses)
	require.NoError(t, err)

	_, err = registry.RegisterStream(testNodeInfo("node1", nodeinfo.StatusProvisioned), newFakeTransport(), protectedStatuses)
	require.True(t, trace.IsAlreadyExists(err), "expected already exists, got %v", err)

	// A dead predecessor is superseded.
	first.Close()

	second, err := registry.RegisterStream(testNodeInfo("node1", nodeinfo.StatusPaused), newFakeTransport(), protectedStatuses)
	require.NoError(t, err)
	require.Equal(t, "node1", second.NodeInfo().GetNodeId())

	got, err := registry.Lookup("node1")
	require.NoError(t, err)
	require.Same(t, second, got)
}

func TestRemoveStaleHandle(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())

	first, err := registry.RegisterStream(testNodeInfo("node1", nodeinfo.StatusProvisioned), newFakeTransport(), protectedStatuses)
	require.NoError(t, err)

	first.Close()

	second, err := registry.RegisterStream(testNodeInfo("node1", nodeinfo.StatusProvisioned), newFakeTransport(), protectedStatuses)
	require.NoError(t, err)

	// A late cleanup of the superseded handle must not evict the
	// fresh registration.
	registry.Remove("node1", first)

	got, err := registry.Lookup("node1")
	require.NoError(t, err)
	require.Same(t, second, got)

	registry.Remove("node1", second)

	_, err = registry.Lookup("node1")
	require.True(t, trace.IsNotFound(err), "expected not found, got %v", err)
}

func TestForEach(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())

	for _, id := range []string{"node1", "node2"} {
		_, err := registry.RegisterStream(testNodeInfo(id, nodeinfo.StatusProvisioned), newFakeTransport(), protectedStatuses)
		require.NoError(t, err)
	}

	var ids []string
	registry.ForEach(func(handle *nodestream.Handle) {
		ids = append(ids, handle.NodeID())
	})

	require.ElementsMatch(t, []string{"node1", "node2"}, ids)
	require.Equal(t, 2, registry.Len())
}

func TestUnsolicitedNodeInfo(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())

	infos := make(chan *iamv5.NodeInfo, 1)
	_, transport := startStream(t, registry, "node1", func(info *iamv5.NodeInfo) {
		infos <- info
	})

	transport.fromNode <- &iamv5.IAMOutgoingMessages{
		IAMOutgoingMessage: &iamv5.IAMOutgoingMessages_NodeInfo{
			NodeInfo: testNodeInfo("node1", nodeinfo.StatusPaused),
		},
	}

	select {
	case info := <-infos:
		require.Equal(t, nodeinfo.StatusPaused, info.GetStatus())
	case <-time.After(5 * time.Second):
		t.Fatal("node info was not delivered")
	}
}

func TestRegistryClose(t *testing.T) {
	registry := newTestRegistry(t, clockwork.NewRealClock())
	handle, transport := startStream(t, registry, "node1", nil)

	errC := make(chan error, 1)
	go func() {
		_, err := handle.Call(context.Background(), certTypesRequest(""), time.Minute)
		errC <- err
	}()

	select {
	case <-transport.toNode:
	case <-time.After(5 * time.Second):
		t.Fatal("request was not sent")
	}

	registry.Close()

	select {
	case err := <-errC:
		require.True(t, trace.IsConnectionProblem(err), "expected connection problem, got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("call was not canceled")
	}

	_, err := registry.RegisterStream(testNodeInfo("node2", nodeinfo.StatusProvisioned), newFakeTransport(), protectedStatuses)
	require.True(t, trace.IsCompareFailed(err), "expected compare failed, got %v", err)
	require.Zero(t, registry.Len())
}
