// Package provisioning drives the node provisioning state machine and
// its side effects: command hooks, certificate storage ownership and
// durable status updates.
package provisioning

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/lib/nodeinfo"
)

// CredentialStore is the certificate storage surface the provisioning
// flow drives.
type CredentialStore interface {
	GetCertTypes() []string
	SetOwner(certType, password string) error
	Clear(certType string) error
}

// RunCmdFunc executes a command hook. argv[0] is the binary.
type RunCmdFunc func(ctx context.Context, argv []string) error

// Config holds the manager collaborators and command hooks.
type Config struct {
	StatusStore     StatusStore
	CredentialStore CredentialStore

	StartCmdArgs          []string
	DiskEncryptionCmdArgs []string
	FinishCmdArgs         []string
	DeprovisionCmdArgs    []string

	RunCmd RunCmdFunc
}

// CheckAndSetDefaults validates the config and fills in defaults.
func (c *Config) CheckAndSetDefaults() error {
	if c.StatusStore == nil {
		return trace.BadParameter("missing parameter StatusStore")
	}
	if c.CredentialStore == nil {
		return trace.BadParameter("missing parameter CredentialStore")
	}
	if c.RunCmd == nil {
		c.RunCmd = runCommand
	}

	return nil
}

// Manager executes provisioning operations on this node. Operations
// are serialized: at most one runs at a time.
type Manager struct {
	cfg Config
	log *slog.Logger

	machine stateMachine

	// opMu serializes whole operations, command hooks included.
	opMu sync.Mutex
}

// NewManager creates the provisioning manager.
func NewManager(cfg Config) (*Manager, error) {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}

	return &Manager{
		cfg:     cfg,
		log:     slog.With(fleetiam.ComponentKey, fleetiam.ComponentProvisioning),
		machine: stateMachine{store: cfg.StatusStore},
	}, nil
}

// GetCertTypes returns the certificate types provisioning manages.
func (m *Manager) GetCertTypes() []string {
	return m.cfg.CredentialStore.GetCertTypes()
}

// StartProvisioning runs the start hook, claims every certificate
// storage with the password and runs the disk encryption hook. The
// node stays Unprovisioned.
func (m *Manager) StartProvisioning(ctx context.Context, password string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if _, err := m.machine.begin(OperationStartProvisioning); err != nil {
		return trace.Wrap(err)
	}

	m.log.InfoContext(ctx, "Starting provisioning")

	if err := m.runCmd(ctx, m.cfg.StartCmdArgs); err != nil {
		return trace.Wrap(err)
	}

	for _, certType := range m.cfg.CredentialStore.GetCertTypes() {
		if err := m.cfg.CredentialStore.Clear(certType); err != nil {
			return trace.Wrap(err)
		}
		if err := m.cfg.CredentialStore.SetOwner(certType, password); err != nil {
			return trace.Wrap(err)
		}
	}

	return trace.Wrap(m.runCmd(ctx, m.cfg.DiskEncryptionCmdArgs))
}

// FinishProvisioning runs the finish hook and moves the node to
// Provisioned.
func (m *Manager) FinishProvisioning(ctx context.Context, password string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	target, err := m.machine.begin(OperationFinishProvisioning)
	if err != nil {
		return trace.Wrap(err)
	}

	if err := m.runCmd(ctx, m.cfg.FinishCmdArgs); err != nil {
		return trace.Wrap(err)
	}

	if err := m.machine.commit(target); err != nil {
		return trace.Wrap(err)
	}

	m.log.InfoContext(ctx, "Provisioning finished")

	return nil
}

// Deprovision runs the deprovision hook, wipes every certificate
// storage and moves the node to Unprovisioned. Deprovisioning an
// already Unprovisioned node is a no-op success.
func (m *Manager) Deprovision(ctx context.Context, password string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	current, err := m.machine.current()
	if err != nil {
		return trace.Wrap(err)
	}
	if current == nodeinfo.StatusUnprovisioned {
		m.log.DebugContext(ctx, "Node is already unprovisioned")
		return nil
	}

	target, err := m.machine.begin(OperationDeprovision)
	if err != nil {
		return trace.Wrap(err)
	}

	if err := m.runCmd(ctx, m.cfg.DeprovisionCmdArgs); err != nil {
		return trace.Wrap(err)
	}

	for _, certType := range m.cfg.CredentialStore.GetCertTypes() {
		if err := m.cfg.CredentialStore.Clear(certType); err != nil {
			return trace.Wrap(err)
		}
	}

	if err := m.machine.commit(target); err != nil {
		return trace.Wrap(err)
	}

	m.log.InfoContext(ctx, "Node deprovisioned")

	return nil
}

// Pause moves a Provisioned node to Paused.
func (m *Manager) Pause(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	target, err := m.machine.begin(OperationPause)
	if err != nil {
		return trace.Wrap(err)
	}

	if err := m.machine.commit(target); err != nil {
		return trace.Wrap(err)
	}

	m.log.InfoContext(ctx, "Node paused")

	return nil
}

// Resume moves a Paused node back to Provisioned.
func (m *Manager) Resume(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	target, err := m.machine.begin(OperationResume)
	if err != nil {
		return trace.Wrap(err)
	}

	if err := m.machine.commit(target); err != nil {
		return trace.Wrap(err)
	}

	m.log.InfoContext(ctx, "Node resumed")

	return nil
}

// runCmd executes a command hook. An empty vector is a success no-op.
func (m *Manager) runCmd(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return nil
	}

	m.log.DebugContext(ctx, "Running command", "argv", argv)

	return trace.Wrap(m.cfg.RunCmd(ctx, argv))
}

func runCommand(ctx context.Context, argv []string) error {
	out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		return trace.Wrap(err, "command %q failed: %s", strings.Join(argv, " "), bytes.TrimSpace(out))
	}

	return nil
}
