// Package identity defines the identity provider surface of the node.
// Providers supply the system id, the unit model and the subject set,
// and push subject changes to a registered observer.
package identity

import (
	"sync"

	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam/lib/config"
)

// Provider resolves the identity of the unit this node belongs to.
type Provider interface {
	// GetSystemID returns the unique id of the unit.
	GetSystemID() (string, error)
	// GetUnitModel returns the model of the unit.
	GetUnitModel() (string, error)
	// GetSubjects returns the subject ids owning the unit.
	GetSubjects() ([]string, error)
	// Close releases the provider resources.
	Close() error
}

// SubjectsObserver is notified when the subject set changes.
type SubjectsObserver interface {
	OnSubjectsChanged(subjects []string)
}

// NewProviderFunc constructs a provider from its config entry.
type NewProviderFunc func(cfg config.PluginConfig, observer SubjectsObserver) (Provider, error)

var (
	pluginsMu sync.Mutex
	plugins   = make(map[string]NewProviderFunc)
)

// RegisterPlugin makes a provider constructor available under the
// given plugin name.
func RegisterPlugin(plugin string, newProvider NewProviderFunc) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()

	plugins[plugin] = newProvider
}

// New constructs the provider named by the config. Unknown plugins
// fail at load.
func New(cfg config.PluginConfig, observer SubjectsObserver) (Provider, error) {
	pluginsMu.Lock()
	newFunc, ok := plugins[cfg.Plugin]
	pluginsMu.Unlock()

	if !ok {
		return nil, trace.BadParameter("unknown identifier plugin %q", cfg.Plugin)
	}

	return newFunc(cfg, observer)
}
