// Package fleetiam holds constants shared across the fleet IAM server
// and its libraries.
package fleetiam

const (
	// ComponentKey is the log field that carries the name of the
	// subsystem that emitted an entry.
	ComponentKey = "component"

	// ComponentIAM is the top level IAM process.
	ComponentIAM = "iam"

	// ComponentServer is the dispatching IAM gRPC server.
	ComponentServer = "iam.server"

	// ComponentPublic is the public (server auth TLS) endpoint handler.
	ComponentPublic = "iam.server.public"

	// ComponentProtected is the protected (mTLS) endpoint handler.
	ComponentProtected = "iam.server.protected"

	// ComponentNodeStream is the registry of node control streams.
	ComponentNodeStream = "iam.nodestream"

	// ComponentClient is the secondary node client that registers with
	// the main node.
	ComponentClient = "iam.client"

	// ComponentProvisioning is the provisioning state machine.
	ComponentProvisioning = "iam.provisioning"

	// ComponentCertHandler is the certificate module registry.
	ComponentCertHandler = "iam.certhandler"

	// ComponentNodeManager is the per fleet node info store.
	ComponentNodeManager = "iam.nodemanager"

	// ComponentNodeInfo is the local node info provider.
	ComponentNodeInfo = "iam.nodeinfo"

	// ComponentIdentity is the identity provider plugin host.
	ComponentIdentity = "iam.identifier"

	// ComponentPermissions is the instance permission store.
	ComponentPermissions = "iam.permissions"

	// ComponentStorage is the local persistent storage.
	ComponentStorage = "iam.storage"
)

// Version is the fleetiam release version. It is reported by --version and
// stamped into logs on startup.
const Version = "1.4.0"

// Gitref is set by the build via -ldflags to the current git revision.
var Gitref string
