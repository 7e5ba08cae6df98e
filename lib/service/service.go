// Package service assembles the fleet IAM process from its
// configuration: storage, node identity, certificate modules, the
// provisioning manager, the dispatching server and, on secondary
// nodes, the control stream client to the main node.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gravitational/trace"
	"golang.org/x/sync/errgroup"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/lib/certhandler"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/iamclient"
	"github.com/edgefleet/fleetiam/lib/iamserver"
	"github.com/edgefleet/fleetiam/lib/identity"
	"github.com/edgefleet/fleetiam/lib/nodeinfo"
	"github.com/edgefleet/fleetiam/lib/nodemanager"
	"github.com/edgefleet/fleetiam/lib/permissions"
	"github.com/edgefleet/fleetiam/lib/provisioning"
	"github.com/edgefleet/fleetiam/lib/storage"
)

// Service owns the collaborators of one fleet IAM process.
type Service struct {
	log          *slog.Logger
	provisioning bool

	storage      *storage.Storage
	nodeInfo     *nodeinfo.Provider
	nodeManager  *nodemanager.Manager
	certHandler  *certhandler.Handler
	identity     identity.Provider
	permissions  *permissions.Store
	provisioner  *provisioning.Manager
	server       *iamserver.Server
	client       *iamclient.Client
	selfRecord   *selfRecord
	subjectRelay *subjectsRelay

	closeOnce sync.Once
}

// New builds every collaborator the configuration asks for. The
// returned service is not serving until Run is called.
func New(cfg *config.Config, provisioningMode bool) (*Service, error) {
	s := &Service{
		log:          slog.With(fleetiam.ComponentKey, fleetiam.ComponentIAM),
		provisioning: provisioningMode,
	}

	if err := s.init(cfg); err != nil {
		s.Close()

		return nil, trace.Wrap(err)
	}

	return s, nil
}

func (s *Service) init(cfg *config.Config) error {
	var err error

	if s.storage, err = storage.New(cfg.Database); err != nil {
		return trace.Wrap(err)
	}

	if s.nodeInfo, err = nodeinfo.New(cfg.NodeInfo); err != nil {
		return trace.Wrap(err)
	}

	if s.nodeManager, err = nodemanager.New(s.storage); err != nil {
		return trace.Wrap(err)
	}

	if s.certHandler, err = certhandler.NewHandler(cfg.CertModules, s.storage); err != nil {
		return trace.Wrap(err)
	}

	if cfg.Identifier.Plugin != "" {
		s.subjectRelay = &subjectsRelay{}
		if s.identity, err = identity.New(cfg.Identifier, s.subjectRelay); err != nil {
			return trace.Wrap(err)
		}
	}

	if cfg.EnablePermissionsHandler {
		s.permissions = permissions.NewStore()
	}

	if s.provisioner, err = provisioning.NewManager(provisioning.Config{
		StatusStore:           statusStore{provider: s.nodeInfo},
		CredentialStore:       s.certHandler,
		StartCmdArgs:          cfg.StartProvisioningCmdArgs,
		DiskEncryptionCmdArgs: cfg.DiskEncryptionCmdArgs,
		FinishCmdArgs:         cfg.FinishProvisioningCmdArgs,
		DeprovisionCmdArgs:    cfg.DeprovisionCmdArgs,
	}); err != nil {
		return trace.Wrap(err)
	}

	// The local node is part of the fleet view from the start and its
	// record follows every status change.
	if err := s.nodeManager.SetNodeInfo(s.nodeInfo.GetNodeInfo()); err != nil {
		return trace.Wrap(err)
	}

	s.selfRecord = &selfRecord{provider: s.nodeInfo, store: s.nodeManager, log: s.log}
	s.nodeInfo.SubscribeNodeStatusChanged(s.selfRecord)

	if cfg.IAMPublicServerURL != "" {
		serverCfg := iamserver.Config{
			PublicURL:    cfg.IAMPublicServerURL,
			ProtectedURL: cfg.IAMProtectedServerURL,
			CACert:       cfg.CACert,
			CertStorage:  cfg.CertStorage,
			Provisioning: s.provisioning,
			NodeInfo:     s.nodeInfo,
			NodeManager:  s.nodeManager,
			CredStore:    s.certHandler,
			Provisioner:  s.provisioner,
		}

		if s.identity != nil {
			serverCfg.Identity = s.identity
		}

		if s.permissions != nil {
			serverCfg.Permissions = s.permissions
		}

		if s.server, err = iamserver.New(serverCfg); err != nil {
			return trace.Wrap(err)
		}

		if s.subjectRelay != nil {
			s.subjectRelay.setTarget(s.server)
		}
	}

	if cfg.MainIAMPublicServerURL != "" {
		if s.client, err = iamclient.New(iamclient.Config{
			MainPublicURL:     cfg.MainIAMPublicServerURL,
			MainProtectedURL:  cfg.MainIAMProtectedServerURL,
			CACert:            cfg.CACert,
			CertStorage:       cfg.CertStorage,
			Provisioning:      s.provisioning,
			NodeInfo:          s.nodeInfo,
			CredStore:         s.certHandler,
			Provisioner:       s.provisioner,
			ReconnectInterval: cfg.NodeReconnectInterval.Duration,
		}); err != nil {
			return trace.Wrap(err)
		}
	}

	return nil
}

// Run serves the configured endpoints and the main node stream until
// ctx is canceled, reporting readiness and shutdown to systemd.
func (s *Service) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.server != nil {
		g.Go(func() error { return trace.Wrap(s.server.Run(gctx)) })
	}

	if s.client != nil {
		g.Go(func() error { return trace.Wrap(s.client.Run(gctx)) })
	}

	s.sdNotify(daemon.SdNotifyReady)
	s.log.Info("Fleet IAM service started",
		"version", fleetiam.Version,
		"node_id", s.nodeInfo.NodeID(),
		"status", s.nodeInfo.GetNodeStatus(),
		"provisioning", s.provisioning)

	err := g.Wait()
	s.sdNotify(daemon.SdNotifyStopping)

	return trace.Wrap(err)
}

// Server exposes the IAM server, nil on client only nodes.
func (s *Service) Server() *iamserver.Server {
	return s.server
}

// Close releases every collaborator in reverse construction order.
// Safe to call more than once.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		if s.client != nil {
			s.client.Close()
		}

		if s.server != nil {
			s.server.Close()
		}

		if s.selfRecord != nil {
			s.nodeInfo.UnsubscribeNodeStatusChanged(s.selfRecord)
		}

		if s.identity != nil {
			if err := s.identity.Close(); err != nil {
				s.log.Warn("Failed to close identity provider", "error", err)
			}
		}

		if s.certHandler != nil {
			s.certHandler.Close()
		}

		if s.storage != nil {
			if err := s.storage.Close(); err != nil {
				s.log.Warn("Failed to close storage", "error", err)
			}
		}

		s.log.Info("Fleet IAM service stopped")
	})
}

func (s *Service) sdNotify(state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		s.log.Warn("Failed to notify systemd", "error", err)
	}
}

// statusStore adapts the node info provider to the provisioning
// manager's status store.
type statusStore struct {
	provider *nodeinfo.Provider
}

func (s statusStore) GetNodeStatus() (string, error) {
	return s.provider.GetNodeStatus(), nil
}

func (s statusStore) SetNodeStatus(status string) error {
	return trace.Wrap(s.provider.SetNodeStatus(status))
}

// selfRecord keeps this node's entry in the fleet store current.
type selfRecord struct {
	provider *nodeinfo.Provider
	store    *nodemanager.Manager
	log      *slog.Logger
}

func (r *selfRecord) OnNodeStatusChanged(string, string) {
	if err := r.store.SetNodeInfo(r.provider.GetNodeInfo()); err != nil {
		r.log.Warn("Failed to update own node record", "error", err)
	}
}

// subjectsRelay forwards subject changes from the identity provider
// to the server. The provider is constructed before the server, so
// notifications may arrive while there is no target yet.
type subjectsRelay struct {
	mu     sync.Mutex
	target *iamserver.Server
}

func (r *subjectsRelay) OnSubjectsChanged(subjects []string) {
	r.mu.Lock()
	target := r.target
	r.mu.Unlock()

	if target != nil {
		target.OnSubjectsChanged(subjects)
	}
}

func (r *subjectsRelay) setTarget(srv *iamserver.Server) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.target = srv
}
