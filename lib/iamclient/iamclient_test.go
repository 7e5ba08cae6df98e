package iamclient_test

import (
	"context"
	"crypto/tls"
	"net"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/certhandler"
	"github.com/edgefleet/fleetiam/lib/iamclient"
	"github.com/edgefleet/fleetiam/lib/logutils"
	"github.com/edgefleet/fleetiam/lib/nodeinfo"
)

func TestMain(m *testing.M) {
	logutils.InitLoggerForTests()
	m.Run()
}

// fakeMain accepts node streams the way the main node does and hands
// them to the test to drive.
type fakeMain struct {
	iamv5.UnimplementedIAMPublicNodesServiceServer

	addr    string
	streams chan *mainStream
}

type mainStream struct {
	info  *iamv5.NodeInfo
	sendC chan *iamv5.IAMIncomingMessages
	recvC chan *iamv5.IAMOutgoingMessages

	closeOnce sync.Once
	closeC    chan struct{}
}

func (s *mainStream) close() {
	s.closeOnce.Do(func() { close(s.closeC) })
}

func (m *fakeMain) RegisterNode(stream iamv5.IAMPublicNodesService_RegisterNodeServer) error {
	first, err := stream.Recv()
	if err != nil {
		return err
	}

	ms := &mainStream{
		info:   first.GetNodeInfo(),
		sendC:  make(chan *iamv5.IAMIncomingMessages, 4),
		recvC:  make(chan *iamv5.IAMOutgoingMessages, 16),
		closeC: make(chan struct{}),
	}

	go func() {
		for {
			frame, err := stream.Recv()
			if err != nil {
				return
			}

			ms.recvC <- frame
		}
	}()

	m.streams <- ms

	for {
		select {
		case frame := <-ms.sendC:
			if err := stream.Send(frame); err != nil {
				return err
			}
		case <-ms.closeC:
			return nil
		case <-stream.Context().Done():
			return nil
		}
	}
}

func startFakeMain(t *testing.T) *fakeMain {
	t.Helper()

	fm := &fakeMain{streams: make(chan *mainStream, 4)}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	iamv5.RegisterIAMPublicNodesServiceServer(srv, fm)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	fm.addr = lis.Addr().String()

	return fm
}

func awaitStream(t *testing.T, fm *fakeMain) *mainStream {
	t.Helper()

	select {
	case ms := <-fm.streams:
		return ms
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for node registration")
		return nil
	}
}

func awaitFrame(t *testing.T, ms *mainStream) *iamv5.IAMOutgoingMessages {
	t.Helper()

	select {
	case frame := <-ms.recvC:
		return frame
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for node frame")
		return nil
	}
}

type fakeNodeInfoProvider struct {
	mu        sync.Mutex
	info      *iamv5.NodeInfo
	observers []nodeinfo.StatusObserver
}

func newFakeNodeInfoProvider(nodeID, status string) *fakeNodeInfoProvider {
	return &fakeNodeInfoProvider{info: &iamv5.NodeInfo{
		NodeId:   nodeID,
		NodeType: "model",
		Name:     nodeID,
		Status:   status,
	}}
}

func (p *fakeNodeInfoProvider) GetNodeInfo() *iamv5.NodeInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	return proto.Clone(p.info).(*iamv5.NodeInfo)
}

func (p *fakeNodeInfoProvider) SubscribeNodeStatusChanged(observer nodeinfo.StatusObserver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.observers = append(p.observers, observer)
}

func (p *fakeNodeInfoProvider) UnsubscribeNodeStatusChanged(observer nodeinfo.StatusObserver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.observers = slices.DeleteFunc(p.observers, func(o nodeinfo.StatusObserver) bool {
		return o == observer
	})
}

func (p *fakeNodeInfoProvider) setStatus(status string) {
	p.mu.Lock()
	p.info.Status = status
	nodeID := p.info.GetNodeId()
	observers := slices.Clone(p.observers)
	p.mu.Unlock()

	for _, o := range observers {
		o.OnNodeStatusChanged(nodeID, status)
	}
}

func (p *fakeNodeInfoProvider) observerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.observers)
}

type keyCall struct {
	certType string
	subject  string
	password string
}

type fakeCredStore struct {
	mu           sync.Mutex
	subscribeErr error
	listeners    []certhandler.CertListener
	keyCalls     []keyCall
	applied      map[string][]byte
}

func newFakeCredStore() *fakeCredStore {
	return &fakeCredStore{applied: make(map[string][]byte)}
}

func (s *fakeCredStore) GetCertTypes() []string {
	return []string{"storage", "online"}
}

func (s *fakeCredStore) CreateKey(certType, subject, password string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keyCalls = append(s.keyCalls, keyCall{certType: certType, subject: subject, password: password})

	return []byte("csr-" + certType + "-" + subject), nil
}

func (s *fakeCredStore) ApplyCertificate(certType string, cert []byte) (*iamv5.CertInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applied[certType] = cert

	return &iamv5.CertInfo{Type: certType, CertUrl: "url-" + certType, Serial: "7"}, nil
}

func (s *fakeCredStore) TLSCertificate(string) (tls.Certificate, error) {
	return tls.Certificate{}, nil
}

func (s *fakeCredStore) SubscribeCertChanged(_ string, listener certhandler.CertListener) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscribeErr != nil {
		return s.subscribeErr
	}

	s.listeners = append(s.listeners, listener)

	return nil
}

func (s *fakeCredStore) UnsubscribeCertChanged(listener certhandler.CertListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = slices.DeleteFunc(s.listeners, func(l certhandler.CertListener) bool {
		return l == listener
	})
}

func (s *fakeCredStore) listenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.listeners)
}

func (s *fakeCredStore) keyCallsSnapshot() []keyCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.keyCalls)
}

func (s *fakeCredStore) appliedCert(certType string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applied[certType]
}

type fakeProvisioner struct {
	mu            sync.Mutex
	calls         []string
	err           error
	startReleaseC chan struct{}
}

func (p *fakeProvisioner) record(call string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, call)

	return p.err
}

func (p *fakeProvisioner) StartProvisioning(ctx context.Context, password string) error {
	if p.startReleaseC != nil {
		select {
		case <-p.startReleaseC:
		case <-ctx.Done():
			return trace.Wrap(ctx.Err())
		}
	}

	return p.record("start:" + password)
}

func (p *fakeProvisioner) FinishProvisioning(_ context.Context, password string) error {
	return p.record("finish:" + password)
}

func (p *fakeProvisioner) Deprovision(_ context.Context, password string) error {
	return p.record("deprovision:" + password)
}

func (p *fakeProvisioner) Pause(context.Context) error {
	return p.record("pause")
}

func (p *fakeProvisioner) Resume(context.Context) error {
	return p.record("resume")
}

func (p *fakeProvisioner) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.err = err
}

func (p *fakeProvisioner) callsSnapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.calls)
}

type clientEnv struct {
	public    *fakeMain
	protected *fakeMain
	nodeInfo  *fakeNodeInfoProvider
	credStore *fakeCredStore
	prov      *fakeProvisioner
	client    *iamclient.Client
}

func startTestClient(t *testing.T, status string, mutate func(*iamclient.Config)) *clientEnv {
	t.Helper()

	env := &clientEnv{
		public:    startFakeMain(t),
		protected: startFakeMain(t),
		nodeInfo:  newFakeNodeInfoProvider("node2", status),
		credStore: newFakeCredStore(),
		prov:      &fakeProvisioner{},
	}

	cfg := iamclient.Config{
		MainPublicURL:    env.public.addr,
		MainProtectedURL: env.protected.addr,
		Provisioning:     true,
		NodeInfo:         env.nodeInfo,
		CredStore:        env.credStore,
		Provisioner:      env.prov,
	}

	if mutate != nil {
		mutate(&cfg)
	}

	client, err := iamclient.New(cfg)
	require.NoError(t, err)
	env.client = client

	ctx, cancel := context.WithCancel(context.Background())

	runC := make(chan error, 1)
	go func() { runC <- client.Run(ctx) }()

	t.Cleanup(func() {
		client.Close()
		cancel()
		require.NoError(t, <-runC)
	})

	return env
}

func TestRegisterAtPublicEndpoint(t *testing.T) {
	env := startTestClient(t, nodeinfo.StatusUnprovisioned, nil)

	ms := awaitStream(t, env.public)
	require.Equal(t, "node2", ms.info.GetNodeId())
	require.Equal(t, nodeinfo.StatusUnprovisioned, ms.info.GetStatus())

	select {
	case <-env.protected.streams:
		t.Fatal("unprovisioned node must not dial the protected endpoint")
	default:
	}
}

func TestRegisterAtProtectedEndpoint(t *testing.T) {
	env := startTestClient(t, nodeinfo.StatusProvisioned, nil)

	ms := awaitStream(t, env.protected)
	require.Equal(t, nodeinfo.StatusProvisioned, ms.info.GetStatus())

	select {
	case <-env.public.streams:
		t.Fatal("provisioned node must not dial the public endpoint")
	default:
	}
}

func TestForwardedProvisioningOps(t *testing.T) {
	env := startTestClient(t, nodeinfo.StatusUnprovisioned, nil)
	ms := awaitStream(t, env.public)

	ms.sendC <- &iamv5.IAMIncomingMessages{
		CorrelationId: "corr-1",
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_StartProvisioningRequest{
			StartProvisioningRequest: &iamv5.StartProvisioningRequest{NodeId: "node2", Password: "pw"},
		},
	}

	frame := awaitFrame(t, ms)
	require.Equal(t, "corr-1", frame.GetCorrelationId())
	require.NotNil(t, frame.GetStartProvisioningResponse())
	require.Nil(t, frame.GetStartProvisioningResponse().GetError())
	require.Equal(t, []string{"start:pw"}, env.prov.callsSnapshot())

	env.prov.setErr(trace.AccessDenied("node is locked"))

	ms.sendC <- &iamv5.IAMIncomingMessages{
		CorrelationId: "corr-2",
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_DeprovisionRequest{
			DeprovisionRequest: &iamv5.DeprovisionRequest{NodeId: "node2", Password: "pw"},
		},
	}

	frame = awaitFrame(t, ms)
	require.Equal(t, "corr-2", frame.GetCorrelationId())
	rspErr := frame.GetDeprovisionResponse().GetError()
	require.NotNil(t, rspErr)
	require.EqualValues(t, codes.PermissionDenied, rspErr.GetCode())
	require.Contains(t, rspErr.GetMessage(), "node is locked")
}

func TestForwardedCertOps(t *testing.T) {
	env := startTestClient(t, nodeinfo.StatusUnprovisioned, nil)
	ms := awaitStream(t, env.public)

	ms.sendC <- &iamv5.IAMIncomingMessages{
		CorrelationId: "types",
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_GetCertTypesRequest{
			GetCertTypesRequest: &iamv5.GetCertTypesRequest{NodeId: "node2"},
		},
	}

	frame := awaitFrame(t, ms)
	require.Equal(t, "types", frame.GetCorrelationId())
	require.Equal(t, []string{"storage", "online"}, frame.GetCertTypesResponse().GetTypes())

	ms.sendC <- &iamv5.IAMIncomingMessages{
		CorrelationId: "key",
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_CreateKeyRequest{
			CreateKeyRequest: &iamv5.CreateKeyRequest{
				NodeId: "node2", Subject: "SYS1", Type: "online", Password: "pw",
			},
		},
	}

	frame = awaitFrame(t, ms)
	keyRsp := frame.GetCreateKeyResponse()
	require.NotNil(t, keyRsp)
	require.Nil(t, keyRsp.GetError())
	require.Equal(t, "node2", keyRsp.GetNodeId())
	require.Equal(t, "csr-online-SYS1", keyRsp.GetCsr())
	require.Equal(t, []keyCall{{certType: "online", subject: "SYS1", password: "pw"}}, env.credStore.keyCallsSnapshot())

	ms.sendC <- &iamv5.IAMIncomingMessages{
		CorrelationId: "cert",
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_ApplyCertRequest{
			ApplyCertRequest: &iamv5.ApplyCertRequest{NodeId: "node2", Type: "online", Cert: "PEM"},
		},
	}

	frame = awaitFrame(t, ms)
	certRsp := frame.GetApplyCertResponse()
	require.NotNil(t, certRsp)
	require.Nil(t, certRsp.GetError())
	require.Equal(t, "url-online", certRsp.GetCertUrl())
	require.Equal(t, "7", certRsp.GetSerial())
	require.Equal(t, []byte("PEM"), env.credStore.appliedCert("online"))
}

func TestConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	env := startTestClient(t, nodeinfo.StatusUnprovisioned, nil)
	env.prov.startReleaseC = release

	ms := awaitStream(t, env.public)

	ms.sendC <- &iamv5.IAMIncomingMessages{
		CorrelationId: "slow",
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_StartProvisioningRequest{
			StartProvisioningRequest: &iamv5.StartProvisioningRequest{NodeId: "node2", Password: "pw"},
		},
	}
	ms.sendC <- &iamv5.IAMIncomingMessages{
		CorrelationId: "fast",
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_PauseNodeRequest{
			PauseNodeRequest: &iamv5.PauseNodeRequest{NodeId: "node2"},
		},
	}

	frame := awaitFrame(t, ms)
	require.Equal(t, "fast", frame.GetCorrelationId())
	require.NotNil(t, frame.GetPauseNodeResponse())

	close(release)

	frame = awaitFrame(t, ms)
	require.Equal(t, "slow", frame.GetCorrelationId())
	require.NotNil(t, frame.GetStartProvisioningResponse())
}

func TestStatusPushOnSameEndpoint(t *testing.T) {
	env := startTestClient(t, nodeinfo.StatusProvisioned, nil)
	ms := awaitStream(t, env.protected)

	env.nodeInfo.setStatus(nodeinfo.StatusPaused)

	frame := awaitFrame(t, ms)
	require.Empty(t, frame.GetCorrelationId())
	require.NotNil(t, frame.GetNodeInfo())
	require.Equal(t, nodeinfo.StatusPaused, frame.GetNodeInfo().GetStatus())
}

func TestEndpointSwitchReconnects(t *testing.T) {
	env := startTestClient(t, nodeinfo.StatusUnprovisioned, nil)
	awaitStream(t, env.public)

	env.nodeInfo.setStatus(nodeinfo.StatusProvisioned)

	ms := awaitStream(t, env.protected)
	require.Equal(t, nodeinfo.StatusProvisioned, ms.info.GetStatus())
}

func TestReconnectAfterStreamLoss(t *testing.T) {
	clock := clockwork.NewFakeClock()
	env := startTestClient(t, nodeinfo.StatusUnprovisioned, func(cfg *iamclient.Config) {
		cfg.Clock = clock
	})

	ms := awaitStream(t, env.public)
	ms.close()

	clock.BlockUntil(1)
	clock.Advance(10 * time.Second)

	ms = awaitStream(t, env.public)
	require.Equal(t, "node2", ms.info.GetNodeId())
}

func TestCloseUnsubscribes(t *testing.T) {
	nodeInfo := newFakeNodeInfoProvider("node2", nodeinfo.StatusProvisioned)
	credStore := newFakeCredStore()

	client, err := iamclient.New(iamclient.Config{
		MainPublicURL:    "main:8089",
		MainProtectedURL: "main:8090",
		CACert:           "/etc/fleetiam/ca.pem",
		CertStorage:      "storage",
		NodeInfo:         nodeInfo,
		CredStore:        credStore,
		Provisioner:      &fakeProvisioner{},
	})
	require.NoError(t, err)
	require.Equal(t, 1, nodeInfo.observerCount())
	require.Equal(t, 1, credStore.listenerCount())

	client.Close()
	require.Zero(t, nodeInfo.observerCount())
	require.Zero(t, credStore.listenerCount())
}

func TestConfigValidation(t *testing.T) {
	nodeInfo := newFakeNodeInfoProvider("node2", nodeinfo.StatusUnprovisioned)

	_, err := iamclient.New(iamclient.Config{})
	require.True(t, trace.IsBadParameter(err))

	_, err = iamclient.New(iamclient.Config{
		MainPublicURL:    "main:8089",
		MainProtectedURL: "main:8090",
		Provisioning:     true,
		NodeInfo:         nodeInfo,
		CredStore:        newFakeCredStore(),
	})
	require.True(t, trace.IsBadParameter(err))

	// The protected dial needs mTLS material outside provisioning mode.
	_, err = iamclient.New(iamclient.Config{
		MainPublicURL:    "main:8089",
		MainProtectedURL: "main:8090",
		NodeInfo:         nodeInfo,
		CredStore:        newFakeCredStore(),
		Provisioner:      &fakeProvisioner{},
	})
	require.True(t, trace.IsBadParameter(err))
}
