// Package utils holds small helpers shared across the fleet IAM
// libraries.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gravitational/trace"
)

// WriteFileAtomic writes data to path through a temp file in the same
// directory followed by a rename, so a concurrent reader never
// observes a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return trace.ConvertSystemError(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return trace.ConvertSystemError(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return trace.ConvertSystemError(err)
	}
	if err := tmp.Close(); err != nil {
		return trace.ConvertSystemError(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return trace.ConvertSystemError(err)
	}
	return nil
}

// NormalizeAddr prepends the wildcard host to bare ":port" listen
// addresses so the listener binds all interfaces explicitly.
func NormalizeAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "0.0.0.0" + addr
	}
	return addr
}
