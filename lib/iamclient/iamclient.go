// Package iamclient maintains the control stream of a secondary node.
// It dials the main node, registers with a NodeInfo first frame,
// executes forwarded requests against the local collaborators and
// pushes node info updates when the local status changes.
package iamclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gravitational/trace"
	"github.com/gravitational/trace/trail"
	"github.com/jonboulle/clockwork"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/certhandler"
	"github.com/edgefleet/fleetiam/lib/nodeinfo"
	"github.com/edgefleet/fleetiam/lib/utils"
)

// defaultReconnectInterval separates dial attempts to the main node.
const defaultReconnectInterval = 10 * time.Second

// NodeInfoProvider describes this node and reports its status
// changes. *nodeinfo.Provider satisfies it.
type NodeInfoProvider interface {
	GetNodeInfo() *iamv5.NodeInfo
	SubscribeNodeStatusChanged(observer nodeinfo.StatusObserver)
	UnsubscribeNodeStatusChanged(observer nodeinfo.StatusObserver)
}

// CredStore performs the certificate operations forwarded to this
// node and supplies its client TLS credentials. *certhandler.Handler
// satisfies it.
type CredStore interface {
	GetCertTypes() []string
	CreateKey(certType, subject, password string) ([]byte, error)
	ApplyCertificate(certType string, cert []byte) (*iamv5.CertInfo, error)
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

// Config holds the parameters of the secondary node client.
type Config struct {
	// MainPublicURL is the public endpoint of the main node. It is
	// dialed while this node is unprovisioned.
	MainPublicURL string
	// MainProtectedURL is the protected endpoint of the main node. It
	// is dialed once this node is provisioned or paused.
	MainProtectedURL string
	// CACert is the path of the PEM bundle the main node's serving
	// certificate is verified against.
	CACert string
	// CertStorage is the cert type that holds this node's client
	// certificate.
	CertStorage string
	// Provisioning dials without TLS.
	Provisioning bool

	// NodeInfo describes this node.
	NodeInfo NodeInfoProvider
	// CredStore performs certificate operations.
	CredStore CredStore
	// Provisioner performs provisioning operations.
	Provisioner Provisioner

	// ReconnectInterval separates dial attempts.
	ReconnectInterval time.Duration
	// Clock is used for reconnect waits.
	Clock clockwork.Clock
}

// CheckAndSetDefaults validates the config and fills in defaults.
func (cfg *Config) CheckAndSetDefaults() error {
	if cfg.MainPublicURL == "" {
		return trace.BadParameter("missing parameter MainPublicURL")
	}

	if cfg.MainProtectedURL == "" {
		return trace.BadParameter("missing parameter MainProtectedURL")
	}

	if cfg.NodeInfo == nil {
		return trace.BadParameter("missing parameter NodeInfo")
	}

	if cfg.CredStore == nil {
		return trace.BadParameter("missing parameter CredStore")
	}

	if cfg.Provisioner == nil {
		return trace.BadParameter("missing parameter Provisioner")
	}

	if !cfg.Provisioning {
		if cfg.CACert == "" {
			return trace.BadParameter("missing parameter CACert")
		}

		if cfg.CertStorage == "" {
			return trace.BadParameter("missing parameter CertStorage")
		}
	}

	if cfg.ReconnectInterval == 0 {
		cfg.ReconnectInterval = defaultReconnectInterval
	}

	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return nil
}

// Client keeps one control stream registered with the main node for
// as long as it runs.
type Client struct {
	cfg   Config
	log   *slog.Logger
	retry utils.Retry

	rotation *rotationListener

	sendMu sync.Mutex

	mu              sync.Mutex
	stream          iamv5.IAMPublicNodesService_RegisterNodeClient
	connectedStatus string

	reconnectC chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// New builds the client and subscribes it to local status and
// certificate changes. The stream is not dialed until Run is called.
func New(cfg Config) (*Client, error) {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}

	retry, err := utils.NewLinear(utils.LinearConfig{
		First: cfg.ReconnectInterval,
		Step:  cfg.ReconnectInterval,
		Max:   cfg.ReconnectInterval,
		Clock: cfg.Clock,
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}

	c := &Client{
		cfg:        cfg,
		log:        slog.With(fleetiam.ComponentKey, fleetiam.ComponentClient),
		retry:      retry,
		reconnectC: make(chan struct{}, 1),
		done:       make(chan struct{}),
	}

	c.cfg.NodeInfo.SubscribeNodeStatusChanged(c)

	if !cfg.Provisioning {
		c.rotation = &rotationListener{client: c}
		if err := cfg.CredStore.SubscribeCertChanged(cfg.CertStorage, c.rotation); err != nil {
			c.Close()

			return nil, trace.Wrap(err)
		}
	}

	return c, nil
}

// Run dials the main node and serves the control stream, redialing
// after failures until ctx is canceled or Close is called.
func (c *Client) Run(ctx context.Context) error {
	for {
		redial, err := c.connectAndServe(ctx)
		if err != nil {
			c.log.Warn("Node stream to main node failed", "error", err)
		}

		if !redial {
			select {
			case <-ctx.Done():
				return nil
			case <-c.done:
				return nil
			case <-c.reconnectC:
			case <-c.retry.After():
				c.retry.Inc()
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		default:
		}
	}
}

// Close releases collaborator subscriptions and stops the stream.
// Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)

		c.cfg.NodeInfo.UnsubscribeNodeStatusChanged(c)

		if c.rotation != nil {
			c.cfg.CredStore.UnsubscribeCertChanged(c.rotation)
		}
	})
}

// OnNodeStatusChanged pushes the new node info to the main node. A
// status change that crosses between the unprovisioned and the
// provisioned endpoint forces a reconnect instead, since the two
// endpoints admit disjoint status sets.
func (c *Client) OnNodeStatusChanged(_, nodeStatus string) {
	c.mu.Lock()
	stream := c.stream
	connectedStatus := c.connectedStatus
	c.mu.Unlock()

	if stream == nil {
		return
	}

	if unprovisioned(nodeStatus) != unprovisioned(connectedStatus) {
		c.log.Info("Node status crossed endpoints, reconnecting", "status", nodeStatus)
		c.signalReconnect()

		return
	}

	if err := c.send(stream, &iamv5.IAMOutgoingMessages{
		IAMOutgoingMessage: &iamv5.IAMOutgoingMessages_NodeInfo{NodeInfo: c.cfg.NodeInfo.GetNodeInfo()},
	}); err != nil {
		c.log.Warn("Failed to push node info update", "error", err)
	}
}

// rotationListener reconnects the stream when the client certificate
// rotates so the new credentials take effect.
type rotationListener struct {
	client *Client
}

func (l *rotationListener) OnCertChanged(*iamv5.CertInfo) {
	l.client.log.Info("Client certificate rotated, reconnecting")
	l.client.signalReconnect()
}

func (c *Client) signalReconnect() {
	select {
	case c.reconnectC <- struct{}{}:
	default:
	}
}

func unprovisioned(nodeStatus string) bool {
	return nodeStatus == nodeinfo.StatusUnprovisioned
}

// connectAndServe dials the endpoint matching the current node
// status, registers and serves the stream until it fails or a
// reconnect is requested. redial reports whether the caller should
// skip the reconnect wait.
func (c *Client) connectAndServe(ctx context.Context) (redial bool, err error) {
	info := c.cfg.NodeInfo.GetNodeInfo()

	target := c.cfg.MainProtectedURL
	if unprovisioned(info.GetStatus()) {
		target = c.cfg.MainPublicURL
	}

	creds, err := c.credentials(info.GetStatus())
	if err != nil {
		return false, trace.Wrap(err)
	}

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(creds))
	if err != nil {
		return false, trace.Wrap(err)
	}
	defer conn.Close()

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := iamv5.NewIAMPublicNodesServiceClient(conn).RegisterNode(streamCtx)
	if err != nil {
		return false, trace.ConnectionProblem(err, "failed to open node stream to %q", target)
	}

	if err := c.send(stream, &iamv5.IAMOutgoingMessages{
		IAMOutgoingMessage: &iamv5.IAMOutgoingMessages_NodeInfo{NodeInfo: info},
	}); err != nil {
		return false, trace.Wrap(err)
	}

	c.log.Info("Registered with main node", "url", target, "status", info.GetStatus())

	c.mu.Lock()
	c.stream = stream
	c.connectedStatus = info.GetStatus()
	c.mu.Unlock()

	c.retry.Reset()

	defer func() {
		c.mu.Lock()
		c.stream = nil
		c.mu.Unlock()
	}()

	// Replay a status change that landed before the stream was
	// installed, otherwise it would be lost.
	if nodeStatus := c.cfg.NodeInfo.GetNodeInfo().GetStatus(); nodeStatus != info.GetStatus() {
		c.OnNodeStatusChanged(info.GetNodeId(), nodeStatus)
	}

	readErrC := make(chan error, 1)
	go func() {
		readErrC <- c.readLoop(streamCtx, stream)
	}()

	select {
	case err := <-readErrC:
		return false, trace.Wrap(err)
	case <-c.reconnectC:
		return true, nil
	case <-c.done:
		return false, nil
	case <-ctx.Done():
		return false, nil
	}
}

// credentials builds the client TLS credentials for the endpoint the
// current status maps to. The public endpoint needs server auth only;
// the protected endpoint additionally presents this node's client
// certificate.
func (c *Client) credentials(nodeStatus string) (credentials.TransportCredentials, error) {
	if c.cfg.Provisioning {
		return insecure.NewCredentials(), nil
	}

	caPEM, err := os.ReadFile(c.cfg.CACert)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, trace.BadParameter("no CA certificates parsed from %q", c.cfg.CACert)
	}

	tlsCfg := &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}

	if !unprovisioned(nodeStatus) {
		cert, err := c.cfg.CredStore.TLSCertificate(c.cfg.CertStorage)
		if err != nil {
			return nil, trace.Wrap(err)
		}

		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	return credentials.NewTLS(tlsCfg), nil
}

// readLoop dispatches every received request to its own handler so a
// slow provisioning operation does not block shorter calls.
func (c *Client) readLoop(ctx context.Context, stream iamv5.IAMPublicNodesService_RegisterNodeClient) error {
	for {
		frame, err := stream.Recv()
		if err != nil {
			return trace.ConnectionProblem(err, "node stream closed")
		}

		go c.handleRequest(ctx, stream, frame)
	}
}

func (c *Client) handleRequest(ctx context.Context, stream iamv5.IAMPublicNodesService_RegisterNodeClient, frame *iamv5.IAMIncomingMessages) {
	rsp := &iamv5.IAMOutgoingMessages{CorrelationId: frame.GetCorrelationId()}

	switch {
	case frame.GetStartProvisioningRequest() != nil:
		req := frame.GetStartProvisioningRequest()
		rsp.IAMOutgoingMessage = &iamv5.IAMOutgoingMessages_StartProvisioningResponse{
			StartProvisioningResponse: &iamv5.StartProvisioningResponse{
				Error: errorInfo(c.cfg.Provisioner.StartProvisioning(ctx, req.GetPassword())),
			},
		}

	case frame.GetFinishProvisioningRequest() != nil:
		req := frame.GetFinishProvisioningRequest()
		rsp.IAMOutgoingMessage = &iamv5.IAMOutgoingMessages_FinishProvisioningResponse{
			FinishProvisioningResponse: &iamv5.FinishProvisioningResponse{
				Error: errorInfo(c.cfg.Provisioner.FinishProvisioning(ctx, req.GetPassword())),
			},
		}

	case frame.GetDeprovisionRequest() != nil:
		req := frame.GetDeprovisionRequest()
		rsp.IAMOutgoingMessage = &iamv5.IAMOutgoingMessages_DeprovisionResponse{
			DeprovisionResponse: &iamv5.DeprovisionResponse{
				Error: errorInfo(c.cfg.Provisioner.Deprovision(ctx, req.GetPassword())),
			},
		}

	case frame.GetPauseNodeRequest() != nil:
		rsp.IAMOutgoingMessage = &iamv5.IAMOutgoingMessages_PauseNodeResponse{
			PauseNodeResponse: &iamv5.PauseNodeResponse{
				Error: errorInfo(c.cfg.Provisioner.Pause(ctx)),
			},
		}

	case frame.GetResumeNodeRequest() != nil:
		rsp.IAMOutgoingMessage = &iamv5.IAMOutgoingMessages_ResumeNodeResponse{
			ResumeNodeResponse: &iamv5.ResumeNodeResponse{
				Error: errorInfo(c.cfg.Provisioner.Resume(ctx)),
			},
		}

	case frame.GetGetCertTypesRequest() != nil:
		rsp.IAMOutgoingMessage = &iamv5.IAMOutgoingMessages_CertTypesResponse{
			CertTypesResponse: &iamv5.CertTypes{Types: c.cfg.CredStore.GetCertTypes()},
		}

	case frame.GetCreateKeyRequest() != nil:
		req := frame.GetCreateKeyRequest()
		csr, err := c.cfg.CredStore.CreateKey(req.GetType(), req.GetSubject(), req.GetPassword())
		rsp.IAMOutgoingMessage = &iamv5.IAMOutgoingMessages_CreateKeyResponse{
			CreateKeyResponse: &iamv5.CreateKeyResponse{
				NodeId: req.GetNodeId(),
				Type:   req.GetType(),
				Csr:    string(csr),
				Error:  errorInfo(err),
			},
		}

	case frame.GetApplyCertRequest() != nil:
		req := frame.GetApplyCertRequest()
		applyRsp := &iamv5.ApplyCertResponse{NodeId: req.GetNodeId(), Type: req.GetType()}

		if info, err := c.cfg.CredStore.ApplyCertificate(req.GetType(), []byte(req.GetCert())); err != nil {
			applyRsp.Error = errorInfo(err)
		} else {
			applyRsp.CertUrl = info.GetCertUrl()
			applyRsp.Serial = info.GetSerial()
		}

		rsp.IAMOutgoingMessage = &iamv5.IAMOutgoingMessages_ApplyCertResponse{ApplyCertResponse: applyRsp}

	default:
		c.log.Warn("Dropping unknown request frame", "correlation_id", frame.GetCorrelationId())

		return
	}

	if err := c.send(stream, rsp); err != nil {
		c.log.Warn("Failed to send response to main node",
			"correlation_id", frame.GetCorrelationId(), "error", err)
	}
}

// send serializes writes between response handlers and node info
// pushes.
func (c *Client) send(stream iamv5.IAMPublicNodesService_RegisterNodeClient, msg *iamv5.IAMOutgoingMessages) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if err := stream.Send(msg); err != nil {
		return trace.ConnectionProblem(err, "failed to send frame to main node")
	}

	return nil
}

// errorInfo encodes err for the in-band error field of a response.
func errorInfo(err error) *iamv5.ErrorInfo {
	if err == nil {
		return nil
	}

	return &iamv5.ErrorInfo{
		Code:    int32(status.Code(trail.ToGRPC(err))),
		Message: trace.UserMessage(err),
	}
}
