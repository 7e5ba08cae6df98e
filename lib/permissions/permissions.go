// Package permissions issues opaque secrets to workload instances and
// resolves them back to the instance identity and its capability set.
package permissions

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam"
)

// MaxNumServices bounds the number of functional services one
// instance may register permissions for.
const MaxNumServices = 10

// InstanceIdent identifies one workload instance.
type InstanceIdent struct {
	ServiceID string
	SubjectID string
	Instance  uint64
}

type entry struct {
	instance    InstanceIdent
	permissions map[string]map[string]string
}

// Store maps secrets to instances and their per-service permissions.
// A secret stays valid until the instance is unregistered.
type Store struct {
	log *slog.Logger

	mu        sync.Mutex
	secrets   map[string]entry
	instances map[InstanceIdent]string
}

// NewStore returns an empty permission store.
func NewStore() *Store {
	return &Store{
		log:       slog.With(fleetiam.ComponentKey, fleetiam.ComponentPermissions),
		secrets:   make(map[string]entry),
		instances: make(map[InstanceIdent]string),
	}
}

// RegisterInstance mints a secret for the instance and records its
// permissions. Registering an already known instance returns its
// existing secret unchanged.
func (s *Store) RegisterInstance(instance InstanceIdent, permissions map[string]map[string]string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if secret, ok := s.instances[instance]; ok {
		s.log.Debug("Instance is already registered", "service_id", instance.ServiceID,
			"subject_id", instance.SubjectID, "instance", instance.Instance)
		return secret, nil
	}

	copied := make(map[string]map[string]string, len(permissions))
	for service, perms := range permissions {
		servicePerms := make(map[string]string, len(perms))
		for k, v := range perms {
			servicePerms[k] = v
		}
		copied[service] = servicePerms
	}

	secret := uuid.NewString()
	s.secrets[secret] = entry{instance: instance, permissions: copied}
	s.instances[instance] = secret

	s.log.Debug("Instance registered", "service_id", instance.ServiceID,
		"subject_id", instance.SubjectID, "instance", instance.Instance)

	return secret, nil
}

// UnregisterInstance invalidates the secret of the instance.
func (s *Store) UnregisterInstance(instance InstanceIdent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secret, ok := s.instances[instance]
	if !ok {
		return trace.NotFound("instance %v/%v/%v is not registered",
			instance.ServiceID, instance.SubjectID, instance.Instance)
	}

	delete(s.instances, instance)
	delete(s.secrets, secret)

	return nil
}

// GetPermissions resolves a secret to the owning instance and its
// permissions for the given functional server.
func (s *Store) GetPermissions(secret, funcServerID string) (InstanceIdent, map[string]string, error) {
	if secret == "" {
		return InstanceIdent{}, nil, trace.BadParameter("missing secret")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.secrets[secret]
	if !ok {
		return InstanceIdent{}, nil, trace.NotFound("secret is not found")
	}

	perms, ok := e.permissions[funcServerID]
	if !ok {
		return InstanceIdent{}, nil, trace.NotFound("permissions for %q are not found", funcServerID)
	}

	out := make(map[string]string, len(perms))
	for k, v := range perms {
		out[k] = v
	}

	return e.instance, out, nil
}
