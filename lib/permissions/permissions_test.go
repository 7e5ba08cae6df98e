package permissions

import (
	"os"
	"testing"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"

	"github.com/edgefleet/fleetiam/lib/logutils"
)

func TestMain(m *testing.M) {
	logutils.InitLoggerForTests()
	os.Exit(m.Run())
}

func TestRegisterInstance(t *testing.T) {
	t.Parallel()

	s := NewStore()
	instance := InstanceIdent{ServiceID: "service0", SubjectID: "subject0", Instance: 1}
	perms := map[string]map[string]string{
		"vis": {"*": "rw", "attrs": "r"},
	}

	secret, err := s.RegisterInstance(instance, perms)
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	// Registering the same instance again returns the original secret.
	again, err := s.RegisterInstance(instance, nil)
	require.NoError(t, err)
	require.Equal(t, secret, again)

	// A different instance gets a different secret.
	other, err := s.RegisterInstance(InstanceIdent{ServiceID: "service0", SubjectID: "subject0", Instance: 2}, perms)
	require.NoError(t, err)
	require.NotEqual(t, secret, other)
}

func TestGetPermissions(t *testing.T) {
	t.Parallel()

	s := NewStore()
	instance := InstanceIdent{ServiceID: "service0", SubjectID: "subject0", Instance: 0}
	perms := map[string]map[string]string{
		"vis": {"signals": "rw"},
	}

	secret, err := s.RegisterInstance(instance, perms)
	require.NoError(t, err)

	got, visPerms, err := s.GetPermissions(secret, "vis")
	require.NoError(t, err)
	require.Equal(t, instance, got)
	require.Equal(t, map[string]string{"signals": "rw"}, visPerms)

	// Mutating the returned map must not leak into the store.
	visPerms["signals"] = "none"
	_, visPerms, err = s.GetPermissions(secret, "vis")
	require.NoError(t, err)
	require.Equal(t, "rw", visPerms["signals"])

	_, _, err = s.GetPermissions(secret, "telemetry")
	require.True(t, trace.IsNotFound(err))

	_, _, err = s.GetPermissions("bogus", "vis")
	require.True(t, trace.IsNotFound(err))

	_, _, err = s.GetPermissions("", "vis")
	require.True(t, trace.IsBadParameter(err))
}

func TestUnregisterInstance(t *testing.T) {
	t.Parallel()

	s := NewStore()
	instance := InstanceIdent{ServiceID: "service0", SubjectID: "subject0", Instance: 0}

	secret, err := s.RegisterInstance(instance, map[string]map[string]string{"vis": {"*": "rw"}})
	require.NoError(t, err)

	require.NoError(t, s.UnregisterInstance(instance))

	// The secret is invalid after unregistration.
	_, _, err = s.GetPermissions(secret, "vis")
	require.True(t, trace.IsNotFound(err))

	require.True(t, trace.IsNotFound(s.UnregisterInstance(instance)))

	// Re-registering mints a fresh secret.
	fresh, err := s.RegisterInstance(instance, nil)
	require.NoError(t, err)
	require.NotEqual(t, secret, fresh)
}
