package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
)

const testConfig = `{
	"NodeInfo": {
		"NodeName": "main",
		"nodeType": "main",
		"osType": "linux",
		"MaxDMIPS": 10000,
		"attrs": {"MainNode": "", "AosComponents": "iam"},
		"partitions": [{"name": "state", "types": ["state"], "path": "/var/state"}]
	},
	"iamPublicServerURL": ":8090",
	"IAMProtectedServerURL": ":8089",
	"caCert": "/etc/ssl/ca.pem",
	"CertStorage": "iam",
	"startProvisioningCmdArgs": ["/bin/true"],
	"finishProvisioningCmdArgs": ["/usr/bin/provision", "--finish"],
	"nodeReconnectInterval": "3s",
	"enablePermissionsHandler": true,
	"identifier": {"plugin": "fileidentifier", "params": {"systemIDPath": "/etc/system-id"}},
	"certModules": [{
		"id": "iam",
		"plugin": "pkcs11module",
		"algorithm": "rsa",
		"maxItems": 2,
		"extendedKeyUsage": ["clientAuth", "serverAuth"],
		"params": {"library": "/usr/lib/softhsm/libsofthsm2.so"}
	}],
	"database": {"workingDir": "/var/fleetiam", "migration": {"migrationPath": "/usr/share/migrations"}}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fleetiam.cfg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFromFile(t *testing.T) {
	t.Parallel()

	cfg, err := ReadFromFile(writeConfig(t, testConfig))
	require.NoError(t, err)

	// Mixed-case keys resolve the same way as exact matches.
	require.Equal(t, "main", cfg.NodeInfo.NodeName)
	require.Equal(t, "main", cfg.NodeInfo.NodeType)
	require.Equal(t, uint64(10000), cfg.NodeInfo.MaxDMIPS)
	require.Equal(t, ":8090", cfg.IAMPublicServerURL)
	require.Equal(t, ":8089", cfg.IAMProtectedServerURL)
	require.Equal(t, "iam", cfg.CertStorage)
	require.Equal(t, 3*time.Second, cfg.NodeReconnectInterval.Duration)
	require.True(t, cfg.EnablePermissionsHandler)
	require.Equal(t, "fileidentifier", cfg.Identifier.Plugin)
	require.Empty(t, cmp.Diff([]string{"/usr/bin/provision", "--finish"}, cfg.FinishProvisioningCmdArgs))

	require.Len(t, cfg.CertModules, 1)
	require.Equal(t, "iam", cfg.CertModules[0].ID)
	require.Equal(t, "pkcs11module", cfg.CertModules[0].Plugin)
	require.Equal(t, uint64(2), cfg.CertModules[0].MaxItems)

	require.Empty(t, cmp.Diff(map[string]string{"MainNode": "", "AosComponents": "iam"}, cfg.NodeInfo.Attrs))
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ReadFromFile(writeConfig(t, `{"iamPublicServerURL": ":8090", "certStorage": "iam"}`))
	require.NoError(t, err)

	require.Equal(t, "/proc/cpuinfo", cfg.NodeInfo.CPUInfoPath)
	require.Equal(t, "/proc/meminfo", cfg.NodeInfo.MemInfoPath)
	require.Equal(t, "/etc/machine-id", cfg.NodeInfo.NodeIDPath)
	require.Equal(t, "/var/fleetiam/.provisionstate", cfg.NodeInfo.ProvisioningStatePath)
	require.Equal(t, 10*time.Second, cfg.NodeReconnectInterval.Duration)
}

func TestInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not json",
			content: "iamPublicServerURL = 8090",
		},
		{
			name:    "bad duration",
			content: `{"iamPublicServerURL": ":8090", "certStorage": "iam", "nodeReconnectInterval": "fast"}`,
		},
		{
			name:    "missing cert storage",
			content: `{"iamPublicServerURL": ":8090"}`,
		},
		{
			name:    "missing public URL",
			content: `{"certStorage": "iam"}`,
		},
		{
			name:    "cert module without id",
			content: `{"iamPublicServerURL": ":8090", "certStorage": "iam", "certModules": [{"plugin": "pkcs11module"}]}`,
		},
		{
			name: "duplicate cert module",
			content: `{"iamPublicServerURL": ":8090", "certStorage": "iam",
				"certModules": [{"id": "iam", "plugin": "a"}, {"id": "iam", "plugin": "b"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFromFile(writeConfig(t, tt.content))
			require.True(t, trace.IsBadParameter(err), "expected BadParameter, got %v", err)
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadFromFile(filepath.Join(t.TempDir(), "absent.cfg"))
	require.True(t, trace.IsNotFound(err), "expected NotFound, got %v", err)
}

func TestDurationNumeric(t *testing.T) {
	t.Parallel()

	cfg, err := ReadFromFile(writeConfig(t,
		`{"iamPublicServerURL": ":8090", "certStorage": "iam", "nodeReconnectInterval": 5000000000}`))
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, cfg.NodeReconnectInterval.Duration)
}
