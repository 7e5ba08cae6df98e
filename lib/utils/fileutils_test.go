package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "state")

	require.NoError(t, WriteFileAtomic(path, []byte("provisioned"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "provisioned", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Overwrite keeps the old content invisible to readers until the
	// rename lands and leaves no temp files behind.
	require.NoError(t, WriteFileAtomic(path, []byte("paused"), 0o600))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "paused", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestNormalizeAddr(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.0.0.0:8089", NormalizeAddr(":8089"))
	require.Equal(t, "10.0.0.5:8089", NormalizeAddr("10.0.0.5:8089"))
	require.Equal(t, "localhost:8090", NormalizeAddr("localhost:8090"))
}
