package provisioning

import (
	"slices"
	"sync"

	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam/lib/nodeinfo"
)

// Operation is a provisioning state machine operation.
type Operation string

const (
	OperationStartProvisioning  Operation = "StartProvisioning"
	OperationFinishProvisioning Operation = "FinishProvisioning"
	OperationDeprovision        Operation = "Deprovision"
	OperationPause              Operation = "PauseNode"
	OperationResume             Operation = "ResumeNode"
)

// transitions lists the legal from-states and the target state of
// every operation.
var transitions = map[Operation]struct {
	from []string
	to   string
}{
	OperationStartProvisioning: {
		from: []string{nodeinfo.StatusUnprovisioned},
		to:   nodeinfo.StatusUnprovisioned,
	},
	OperationFinishProvisioning: {
		from: []string{nodeinfo.StatusUnprovisioned},
		to:   nodeinfo.StatusProvisioned,
	},
	OperationDeprovision: {
		from: []string{nodeinfo.StatusProvisioned, nodeinfo.StatusPaused},
		to:   nodeinfo.StatusUnprovisioned,
	},
	OperationPause: {
		from: []string{nodeinfo.StatusProvisioned},
		to:   nodeinfo.StatusPaused,
	},
	OperationResume: {
		from: []string{nodeinfo.StatusPaused},
		to:   nodeinfo.StatusProvisioned,
	},
}

// StatusStore reads and persists the node provisioning status.
type StatusStore interface {
	GetNodeStatus() (string, error)
	SetNodeStatus(status string) error
}

type stateMachine struct {
	mu    sync.Mutex
	store StatusStore
}

func (s *stateMachine) current() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.store.GetNodeStatus()

	return status, trace.Wrap(err)
}

// begin validates the operation against the current state and returns
// the target state.
func (s *stateMachine) begin(op Operation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.GetNodeStatus()
	if err != nil {
		return "", trace.Wrap(err)
	}

	transition, ok := transitions[op]
	if !ok {
		return "", trace.BadParameter("unknown operation %q", op)
	}

	if !slices.Contains(transition.from, current) {
		return "", trace.AccessDenied("%s is not allowed while the node is %s", op, current)
	}

	return transition.to, nil
}

func (s *stateMachine) commit(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return trace.Wrap(s.store.SetNodeStatus(target))
}
