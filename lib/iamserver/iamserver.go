// Package iamserver implements the dispatching IAM server: it
// terminates the public and the protected gRPC endpoint, executes
// requests that target this node against local collaborators and
// forwards the rest over the registered node control streams.
package iamserver

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/gravitational/trace"
	"github.com/gravitational/trace/trail"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/certhandler"
	"github.com/edgefleet/fleetiam/lib/nodeinfo"
	"github.com/edgefleet/fleetiam/lib/nodemanager"
	"github.com/edgefleet/fleetiam/lib/nodestream"
	"github.com/edgefleet/fleetiam/lib/permissions"
	"github.com/edgefleet/fleetiam/lib/utils"
)

// defaultGraceTimeout bounds the drain of in-flight RPCs when an
// endpoint stops or restarts.
const defaultGraceTimeout = 10 * time.Second

var (
	connectedNodeStreams = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleetiam_connected_node_streams",
		Help: "Number of node control streams currently registered.",
	})

	forwardedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleetiam_forwarded_requests_total",
		Help: "Requests forwarded over node control streams, by result.",
	}, []string{"result"})
)

// NodeInfoProvider describes this node to the endpoints.
type NodeInfoProvider interface {
	GetNodeInfo() *iamv5.NodeInfo
}

// NodeInfoStore keeps the fleet view of node info records.
// *nodemanager.Manager satisfies it.
type NodeInfoStore interface {
	SetNodeInfo(info *iamv5.NodeInfo) error
	GetNodeInfo(nodeID string) (*iamv5.NodeInfo, error)
	GetAllNodeIDs() []string
	SubscribeNodeInfoChanged(l nodemanager.Listener)
	UnsubscribeNodeInfoChanged(l nodemanager.Listener)
}

// CredStore is the credential store the server serves certificates
// from and builds its own TLS credentials with. *certhandler.Handler
// satisfies it.
type CredStore interface {
	GetCertTypes() []string
	CreateKey(certType, subject, password string) ([]byte, error)
	ApplyCertificate(certType string, cert []byte) (*iamv5.CertInfo, error)
	GetCertificate(certType string, issuer []byte, serial string) (*iamv5.CertInfo, error)
	TLSCertificate(certType string) (tls.Certificate, error)
	SubscribeCertChanged(certType string, listener certhandler.CertListener) error
	UnsubscribeCertChanged(listener certhandler.CertListener)
}

// Provisioner drives the provisioning state machine of this node.
// *provisioning.Manager satisfies it.
type Provisioner interface {
	StartProvisioning(ctx context.Context, password string) error
	FinishProvisioning(ctx context.Context, password string) error
	Deprovision(ctx context.Context, password string) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
}

// IdentityProvider resolves the system identity and the subject set.
type IdentityProvider interface {
	GetSystemID() (string, error)
	GetUnitModel() (string, error)
	GetSubjects() ([]string, error)
}

// PermissionStore issues and resolves instance permission secrets.
// *permissions.Store satisfies it.
type PermissionStore interface {
	RegisterInstance(instance permissions.InstanceIdent, perms map[string]map[string]string) (string, error)
	UnregisterInstance(instance permissions.InstanceIdent) error
	GetPermissions(secret, functionalServerID string) (permissions.InstanceIdent, map[string]string, error)
}

// Config holds the parameters of the IAM server.
type Config struct {
	// PublicURL is the bind address of the public endpoint.
	PublicURL string
	// ProtectedURL is the bind address of the protected endpoint.
	ProtectedURL string
	// CACert is the path of the PEM bundle client certificates are
	// verified against on the protected endpoint.
	CACert string
	// CertStorage is the cert type both endpoints serve TLS with.
	CertStorage string
	// Provisioning runs both endpoints without TLS and admits the
	// provisioning RPC family.
	Provisioning bool

	// NodeInfo describes this node.
	NodeInfo NodeInfoProvider
	// NodeManager keeps the fleet view.
	NodeManager NodeInfoStore
	// CredStore performs certificate operations for this node.
	CredStore CredStore
	// Provisioner performs provisioning operations for this node.
	Provisioner Provisioner
	// Identity is optional. Without it the identity service is not
	// registered and CreateKey requires an explicit subject.
	Identity IdentityProvider
	// Permissions is optional. Without it the permission services are
	// not registered.
	Permissions PermissionStore

	// Clock is used for call timeouts, retry waits and drain periods.
	Clock clockwork.Clock
	// GraceTimeout bounds endpoint drains on stop and restart.
	GraceTimeout time.Duration
}

// CheckAndSetDefaults validates the config and fills in defaults.
func (cfg *Config) CheckAndSetDefaults() error {
	if cfg.PublicURL == "" {
		return trace.BadParameter("missing parameter PublicURL")
	}

	if cfg.ProtectedURL == "" {
		return trace.BadParameter("missing parameter ProtectedURL")
	}

	if cfg.NodeInfo == nil {
		return trace.BadParameter("missing parameter NodeInfo")
	}

	if cfg.NodeManager == nil {
		return trace.BadParameter("missing parameter NodeManager")
	}

	if cfg.CredStore == nil {
		return trace.BadParameter("missing parameter CredStore")
	}

	if cfg.Provisioner == nil {
		return trace.BadParameter("missing parameter Provisioner")
	}

	if !cfg.Provisioning {
		if cfg.CertStorage == "" {
			return trace.BadParameter("missing parameter CertStorage")
		}

		if cfg.CACert == "" {
			return trace.BadParameter("missing parameter CACert")
		}
	}

	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	if cfg.GraceTimeout == 0 {
		cfg.GraceTimeout = defaultGraceTimeout
	}

	return nil
}

// Server is the dispatching IAM server.
type Server struct {
	cfg Config
	log *slog.Logger

	nodeID   string
	mainNode bool

	registry *nodestream.Registry

	nodeInfoWriter *streamWriter[*iamv5.NodeInfo]
	subjectsWriter *streamWriter[*iamv5.Subjects]
	certWriters    map[string]*streamWriter[*iamv5.CertInfo]

	relays       []*certChangeRelay
	certChangedC chan struct{}

	addrMu        sync.Mutex
	publicAddr    string
	protectedAddr string

	closeOnce sync.Once
	done      chan struct{}
}

// PublicAddr returns the bound address of the public endpoint, empty
// until it is listening.
func (s *Server) PublicAddr() string {
	s.addrMu.Lock()
	defer s.addrMu.Unlock()

	return s.publicAddr
}

// ProtectedAddr returns the bound address of the protected endpoint,
// empty until it is listening. The address can change when the
// endpoint restarts after a certificate rotation.
func (s *Server) ProtectedAddr() string {
	s.addrMu.Lock()
	defer s.addrMu.Unlock()

	return s.protectedAddr
}

func (s *Server) setPublicAddr(addr string) {
	s.addrMu.Lock()
	defer s.addrMu.Unlock()

	s.publicAddr = addr
}

func (s *Server) setProtectedAddr(addr string) {
	s.addrMu.Lock()
	defer s.addrMu.Unlock()

	s.protectedAddr = addr
}

// New builds the server and subscribes it to its collaborators. The
// endpoints do not serve until Run is called.
func New(cfg Config) (*Server, error) {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}

	if err := utils.RegisterPrometheusCollectors(connectedNodeStreams, forwardedRequests); err != nil {
		return nil, trace.Wrap(err)
	}

	registry, err := nodestream.NewRegistry(nodestream.RegistryConfig{Clock: cfg.Clock})
	if err != nil {
		return nil, trace.Wrap(err)
	}

	log := slog.With(fleetiam.ComponentKey, fleetiam.ComponentServer)
	info := cfg.NodeInfo.GetNodeInfo()

	s := &Server{
		cfg:            cfg,
		log:            log,
		nodeID:         info.GetNodeId(),
		mainNode:       nodeinfo.IsMainNode(info),
		registry:       registry,
		nodeInfoWriter: newStreamWriter[*iamv5.NodeInfo](log),
		subjectsWriter: newStreamWriter[*iamv5.Subjects](log),
		certWriters:    make(map[string]*streamWriter[*iamv5.CertInfo]),
		certChangedC:   make(chan struct{}, 1),
		done:           make(chan struct{}),
	}

	s.cfg.NodeManager.SubscribeNodeInfoChanged(s)

	for _, certType := range cfg.CredStore.GetCertTypes() {
		s.certWriters[certType] = newStreamWriter[*iamv5.CertInfo](log)

		relay := &certChangeRelay{certType: certType, srv: s}
		if err := cfg.CredStore.SubscribeCertChanged(certType, relay); err != nil {
			s.Close()

			return nil, trace.Wrap(err)
		}

		s.relays = append(s.relays, relay)
	}

	return s, nil
}

// Run serves both endpoints until ctx is canceled or Close is called.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return trace.Wrap(s.servePublic(ctx))
	})
	g.Go(func() error {
		return trace.Wrap(s.serveProtected(ctx))
	})

	return trace.Wrap(g.Wait())
}

// Close releases collaborator subscriptions, aborts pending forwarded
// calls and stops the endpoints. Safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.registry.Close()

		s.cfg.NodeManager.UnsubscribeNodeInfoChanged(s)

		for _, relay := range s.relays {
			s.cfg.CredStore.UnsubscribeCertChanged(relay)
		}

		s.nodeInfoWriter.close()
		s.subjectsWriter.close()

		for _, writer := range s.certWriters {
			writer.close()
		}

		s.log.Info("IAM server closed")
	})
}

// OnNodeInfoChanged pushes a fleet node update to node subscribers.
func (s *Server) OnNodeInfoChanged(info *iamv5.NodeInfo) {
	s.nodeInfoWriter.write(info)
}

// OnSubjectsChanged pushes a new subject set to subject subscribers.
func (s *Server) OnSubjectsChanged(subjects []string) {
	s.subjectsWriter.write(&iamv5.Subjects{Subjects: subjects})
}

// certChangeRelay feeds installs of one cert type to the matching
// stream writer. For the serving certificate it also wakes the
// protected endpoint restart loop.
type certChangeRelay struct {
	certType string
	srv      *Server
}

func (r *certChangeRelay) OnCertChanged(info *iamv5.CertInfo) {
	r.srv.certWriters[r.certType].write(info)

	if r.certType == r.srv.cfg.CertStorage && !r.srv.cfg.Provisioning {
		select {
		case r.srv.certChangedC <- struct{}{}:
		default:
		}
	}
}

func (s *Server) servePublic(ctx context.Context) error {
	log := slog.With(fleetiam.ComponentKey, fleetiam.ComponentPublic)

	creds, err := s.publicCredentials()
	if err != nil {
		return trace.Wrap(err)
	}

	listener, err := net.Listen("tcp", utils.NormalizeAddr(s.cfg.PublicURL))
	if err != nil {
		return trace.ConnectionProblem(err, "failed to bind public endpoint")
	}

	s.setPublicAddr(listener.Addr().String())

	server := s.newGRPCServer(creds)
	s.registerPublicServices(server)

	log.Info("Public endpoint listening", "addr", listener.Addr().String())

	errC := make(chan error, 1)
	go func() {
		errC <- server.Serve(listener)
	}()

	select {
	case err := <-errC:
		return trace.Wrap(err)
	case <-s.done:
	case <-ctx.Done():
	}

	s.stopServer(server)
	log.Info("Public endpoint stopped")

	return nil
}

// serveProtected serves the protected endpoint and rebuilds it with
// fresh credentials every time the serving certificate rotates.
func (s *Server) serveProtected(ctx context.Context) error {
	log := slog.With(fleetiam.ComponentKey, fleetiam.ComponentProtected)

	for {
		creds, err := s.protectedCredentials()
		if err != nil {
			return trace.Wrap(err)
		}

		listener, err := net.Listen("tcp", utils.NormalizeAddr(s.cfg.ProtectedURL))
		if err != nil {
			return trace.ConnectionProblem(err, "failed to bind protected endpoint")
		}

		s.setProtectedAddr(listener.Addr().String())

		server := s.newGRPCServer(creds)
		s.registerProtectedServices(server)

		log.Info("Protected endpoint listening", "addr", listener.Addr().String())

		errC := make(chan error, 1)
		go func() {
			errC <- server.Serve(listener)
		}()

		restart := false

		select {
		case err := <-errC:
			return trace.Wrap(err)
		case <-s.certChangedC:
			restart = true
		case <-s.done:
		case <-ctx.Done():
		}

		s.stopServer(server)

		if !restart {
			log.Info("Protected endpoint stopped")

			return nil
		}

		log.Info("Restarting protected endpoint with rotated credentials")
	}
}

// stopServer drains server gracefully and falls back to a hard stop
// when the grace period runs out. Registered node streams never end on
// their own, so a restart with live streams always takes the hard
// path after the grace period.
func (s *Server) stopServer(server *grpc.Server) {
	stopped := make(chan struct{})

	go func() {
		server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-s.cfg.Clock.After(s.cfg.GraceTimeout):
		server.Stop()
		<-stopped
	}
}

func (s *Server) newGRPCServer(creds credentials.TransportCredentials) *grpc.Server {
	return grpc.NewServer(
		grpc.Creds(creds),
		grpc.ChainUnaryInterceptor(errorUnaryInterceptor),
		grpc.ChainStreamInterceptor(errorStreamInterceptor),
	)
}

func (s *Server) registerPublicServices(server *grpc.Server) {
	iamv5.RegisterIAMVersionServiceServer(server, versionServer{})
	iamv5.RegisterIAMPublicServiceServer(server, &publicServer{srv: s})

	if s.cfg.Identity != nil {
		iamv5.RegisterIAMPublicIdentityServiceServer(server, &publicIdentityServer{srv: s})
	}

	if s.cfg.Permissions != nil {
		iamv5.RegisterIAMPublicPermissionsServiceServer(server, &publicPermissionsServer{srv: s})
	}

	if s.mainNode {
		iamv5.RegisterIAMPublicNodesServiceServer(server, &publicNodesServer{
			srv:             s,
			allowedStatuses: []string{nodeinfo.StatusUnprovisioned},
		})
	}
}

func (s *Server) registerProtectedServices(server *grpc.Server) {
	iamv5.RegisterIAMVersionServiceServer(server, versionServer{})
	iamv5.RegisterIAMPublicServiceServer(server, &publicServer{srv: s})

	if s.cfg.Identity != nil {
		iamv5.RegisterIAMPublicIdentityServiceServer(server, &publicIdentityServer{srv: s})
	}

	if s.cfg.Permissions != nil {
		iamv5.RegisterIAMPublicPermissionsServiceServer(server, &publicPermissionsServer{srv: s})
		iamv5.RegisterIAMPermissionsServiceServer(server, &permissionsServer{srv: s})
	}

	if s.mainNode {
		iamv5.RegisterIAMPublicNodesServiceServer(server, &publicNodesServer{
			srv:             s,
			allowedStatuses: []string{nodeinfo.StatusProvisioned, nodeinfo.StatusPaused},
			verifyPeer:      !s.cfg.Provisioning,
		})
		iamv5.RegisterIAMNodesServiceServer(server, &nodesServer{srv: s})
		iamv5.RegisterIAMCertificateServiceServer(server, &certificateServer{srv: s})

		if s.cfg.Provisioning {
			iamv5.RegisterIAMProvisioningServiceServer(server, &provisioningServer{srv: s})
		}
	}
}

// publicCredentials builds server auth TLS for the public endpoint.
// Provisioning mode runs without credentials since none exist yet.
func (s *Server) publicCredentials() (credentials.TransportCredentials, error) {
	if s.cfg.Provisioning {
		return insecure.NewCredentials(), nil
	}

	cert, err := s.cfg.CredStore.TLSCertificate(s.cfg.CertStorage)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// protectedCredentials builds mutual TLS for the protected endpoint
// with client certificates verified against the configured CA bundle.
func (s *Server) protectedCredentials() (credentials.TransportCredentials, error) {
	if s.cfg.Provisioning {
		return insecure.NewCredentials(), nil
	}

	cert, err := s.cfg.CredStore.TLSCertificate(s.cfg.CertStorage)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	caPEM, err := os.ReadFile(s.cfg.CACert)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, trace.BadParameter("no CA certificates parsed from %q", s.cfg.CACert)
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientCAs:    pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// serveNodeStream owns a registered node control stream until the
// stream fails or the registration is superseded.
func (s *Server) serveNodeStream(info *iamv5.NodeInfo, transport nodestream.Transport, allowedStatuses []string) error {
	handle, err := s.registry.RegisterStream(info, transport, allowedStatuses)
	if err != nil {
		return trace.Wrap(err)
	}

	defer func() {
		s.registry.Remove(handle.NodeID(), handle)
		connectedNodeStreams.Set(float64(s.registry.Len()))
	}()

	connectedNodeStreams.Set(float64(s.registry.Len()))

	if err := s.cfg.NodeManager.SetNodeInfo(info); err != nil {
		return trace.Wrap(err)
	}

	return trace.Wrap(handle.Serve(func(update *iamv5.NodeInfo) {
		if err := s.cfg.NodeManager.SetNodeInfo(update); err != nil {
			s.log.Warn("Failed to store node info update",
				"node_id", handle.NodeID(), "error", err)
		}
	}))
}

func errorUnaryInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	rsp, err := handler(ctx, req)

	return rsp, trail.ToGRPC(err)
}

func errorStreamInterceptor(srv any, stream grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	return trail.ToGRPC(handler(srv, stream))
}
