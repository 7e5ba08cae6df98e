// Package config loads the fleet IAM server configuration from a JSON
// file. Key lookup is case-insensitive, duration values are strings in
// Go duration syntax.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gravitational/trace"
)

const (
	defaultCPUInfoPath           = "/proc/cpuinfo"
	defaultMemInfoPath           = "/proc/meminfo"
	defaultNodeIDPath            = "/etc/machine-id"
	defaultProvisioningStatePath = "/var/fleetiam/.provisionstate"
	defaultNodeReconnectInterval = 10 * time.Second
)

// Config holds the full server configuration.
type Config struct {
	// NodeInfo describes how the local node identity is assembled.
	NodeInfo NodeInfoConfig `json:"nodeInfo"`
	// IAMPublicServerURL is the bind address of the public endpoint.
	IAMPublicServerURL string `json:"iamPublicServerURL"`
	// IAMProtectedServerURL is the bind address of the protected endpoint.
	IAMProtectedServerURL string `json:"iamProtectedServerURL"`
	// MainIAMPublicServerURL is the main node public endpoint address,
	// set on secondary nodes only.
	MainIAMPublicServerURL string `json:"mainIAMPublicServerURL"`
	// MainIAMProtectedServerURL is the main node protected endpoint
	// address, set on secondary nodes only.
	MainIAMProtectedServerURL string `json:"mainIAMProtectedServerURL"`
	// CACert is the path of the CA certificate that protected endpoint
	// clients are validated against.
	CACert string `json:"caCert"`
	// CertStorage is the certificate type that holds the server's own
	// TLS identity.
	CertStorage string `json:"certStorage"`
	// StartProvisioningCmdArgs is the argv of the hook executed by
	// StartProvisioning. Empty means no hook.
	StartProvisioningCmdArgs []string `json:"startProvisioningCmdArgs"`
	// DiskEncryptionCmdArgs is the argv of the disk encryption hook
	// executed after StartProvisioning's credential work.
	DiskEncryptionCmdArgs []string `json:"diskEncryptionCmdArgs"`
	// FinishProvisioningCmdArgs is the argv of the hook executed when a
	// node transitions into the provisioned state.
	FinishProvisioningCmdArgs []string `json:"finishProvisioningCmdArgs"`
	// DeprovisionCmdArgs is the argv of the hook executed when a node
	// transitions into the unprovisioned state.
	DeprovisionCmdArgs []string `json:"deprovisionCmdArgs"`
	// NodeReconnectInterval is the pause between reconnect attempts of
	// a secondary node, default 10s.
	NodeReconnectInterval Duration `json:"nodeReconnectInterval"`
	// EnablePermissionsHandler enables the permission services.
	EnablePermissionsHandler bool `json:"enablePermissionsHandler"`
	// Identifier selects and configures the identity plugin.
	Identifier PluginConfig `json:"identifier"`
	// CertModules configures the certificate storage modules.
	CertModules []ModuleConfig `json:"certModules"`
	// Database configures local persistent storage.
	Database DatabaseConfig `json:"database"`
}

// NodeInfoConfig describes the sources of the local node identity.
type NodeInfoConfig struct {
	CPUInfoPath           string            `json:"cpuInfoPath"`
	MemInfoPath           string            `json:"memInfoPath"`
	NodeIDPath            string            `json:"nodeIDPath"`
	ProvisioningStatePath string            `json:"provisioningStatePath"`
	NodeName              string            `json:"nodeName"`
	NodeType              string            `json:"nodeType"`
	OSType                string            `json:"osType"`
	MaxDMIPS              uint64            `json:"maxDMIPS"`
	Attrs                 map[string]string `json:"attrs"`
	Partitions            []PartitionConfig `json:"partitions"`
}

// PartitionConfig describes one disk partition reported in node info.
type PartitionConfig struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
	Path  string   `json:"path"`
}

// PluginConfig is a tagged plugin selector: the plugin name picks the
// implementation, params carry its plugin-specific options.
type PluginConfig struct {
	Plugin string          `json:"plugin"`
	Params json.RawMessage `json:"params"`
}

// ModuleConfig configures one certificate storage module.
type ModuleConfig struct {
	ID               string          `json:"id"`
	Plugin           string          `json:"plugin"`
	Algorithm        string          `json:"algorithm"`
	MaxItems         uint64          `json:"maxItems"`
	ExtendedKeyUsage []string        `json:"extendedKeyUsage"`
	AlternativeNames []string        `json:"alternativeNames"`
	Disabled         bool            `json:"disabled"`
	SkipValidation   bool            `json:"skipValidation"`
	SelfSigned       bool            `json:"selfSigned"`
	Params           json.RawMessage `json:"params"`
}

// DatabaseConfig configures local persistent storage.
type DatabaseConfig struct {
	WorkingDir string          `json:"workingDir"`
	Migration  MigrationConfig `json:"migration"`
}

// MigrationConfig points at the schema migration directories.
type MigrationConfig struct {
	MigrationPath       string `json:"migrationPath"`
	MergedMigrationPath string `json:"mergedMigrationPath"`
}

// Duration is a time.Duration that unmarshals from a JSON string in Go
// duration syntax or from an integer nanosecond count.
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return trace.Wrap(err)
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return trace.BadParameter("invalid duration %q", v)
		}
		d.Duration = parsed
	case float64:
		d.Duration = time.Duration(v)
	default:
		return trace.BadParameter("invalid duration value %v", raw)
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// ReadFromFile loads and validates the configuration at path.
func ReadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, trace.BadParameter("failed to parse config %v: %v", path, err)
	}

	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}

	return &cfg, nil
}

// CheckAndSetDefaults validates the configuration and fills in
// defaults.
func (c *Config) CheckAndSetDefaults() error {
	if c.NodeInfo.CPUInfoPath == "" {
		c.NodeInfo.CPUInfoPath = defaultCPUInfoPath
	}
	if c.NodeInfo.MemInfoPath == "" {
		c.NodeInfo.MemInfoPath = defaultMemInfoPath
	}
	if c.NodeInfo.NodeIDPath == "" {
		c.NodeInfo.NodeIDPath = defaultNodeIDPath
	}
	if c.NodeInfo.ProvisioningStatePath == "" {
		c.NodeInfo.ProvisioningStatePath = defaultProvisioningStatePath
	}
	if c.NodeReconnectInterval.Duration == 0 {
		c.NodeReconnectInterval.Duration = defaultNodeReconnectInterval
	}
	if c.CertStorage == "" {
		return trace.BadParameter("missing certStorage")
	}
	if c.IAMPublicServerURL == "" && c.MainIAMPublicServerURL == "" {
		return trace.BadParameter("missing iamPublicServerURL")
	}

	seen := make(map[string]struct{}, len(c.CertModules))
	for _, m := range c.CertModules {
		if m.ID == "" {
			return trace.BadParameter("certModules entry without id")
		}
		if _, ok := seen[m.ID]; ok {
			return trace.BadParameter("duplicate cert module %q", m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	return nil
}
