// Package nodemanager keeps track of the info of every node known to
// the main node, persists it and notifies listeners about changes.
package nodemanager

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/golang/protobuf/proto"
	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/nodeinfo"
)

// Storage persists node info records between restarts.
type Storage interface {
	SetNodeInfo(info *iamv5.NodeInfo) error
	GetAllNodeInfos() ([]*iamv5.NodeInfo, error)
	RemoveNodeInfo(nodeID string) error
}

// Listener is notified on every committed node info change.
type Listener interface {
	OnNodeInfoChanged(info *iamv5.NodeInfo)
}

// Manager caches node info records on top of a Storage and fans
// change notifications out to listeners.
type Manager struct {
	storage Storage
	log     *slog.Logger

	mu        sync.Mutex
	nodes     map[string]*iamv5.NodeInfo
	listeners map[Listener]struct{}
}

// New builds a Manager over storage and warms the cache from it.
func New(storage Storage) (*Manager, error) {
	if storage == nil {
		return nil, trace.BadParameter("missing parameter storage")
	}

	infos, err := storage.GetAllNodeInfos()
	if err != nil {
		return nil, trace.Wrap(err)
	}

	nodes := make(map[string]*iamv5.NodeInfo, len(infos))
	for _, info := range infos {
		nodes[info.GetNodeId()] = info
	}

	return &Manager{
		storage:   storage,
		log:       slog.With(fleetiam.ComponentKey, fleetiam.ComponentNodeManager),
		nodes:     nodes,
		listeners: make(map[Listener]struct{}),
	}, nil
}

// SetNodeInfo stores the info of a node and notifies listeners.
func (m *Manager) SetNodeInfo(info *iamv5.NodeInfo) error {
	if info.GetNodeId() == "" {
		return trace.BadParameter("missing node ID")
	}

	stored := proto.Clone(info).(*iamv5.NodeInfo)

	m.mu.Lock()
	if prev, ok := m.nodes[stored.GetNodeId()]; ok && proto.Equal(prev, stored) {
		m.mu.Unlock()
		return nil
	}

	if err := m.storage.SetNodeInfo(stored); err != nil {
		m.mu.Unlock()
		return trace.Wrap(err)
	}
	m.nodes[stored.GetNodeId()] = stored
	listeners := m.listenersLocked()
	m.mu.Unlock()

	m.log.Debug("Node info updated", "node_id", stored.GetNodeId(), "status", stored.GetStatus())

	for _, l := range listeners {
		l.OnNodeInfoChanged(proto.Clone(stored).(*iamv5.NodeInfo))
	}

	return nil
}

// SetNodeStatus updates only the status of a known node.
func (m *Manager) SetNodeStatus(nodeID, status string) error {
	if !nodeinfo.ValidStatus(status) {
		return trace.BadParameter("unknown node status %q", status)
	}

	m.mu.Lock()
	info, ok := m.nodes[nodeID]
	if !ok {
		m.mu.Unlock()
		return trace.NotFound("node %q is not found", nodeID)
	}
	updated := proto.Clone(info).(*iamv5.NodeInfo)
	m.mu.Unlock()

	if updated.GetStatus() == status {
		return nil
	}
	updated.Status = status

	return trace.Wrap(m.SetNodeInfo(updated))
}

// GetNodeInfo returns a copy of the stored info of a node.
func (m *Manager) GetNodeInfo(nodeID string) (*iamv5.NodeInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.nodes[nodeID]
	if !ok {
		return nil, trace.NotFound("node %q is not found", nodeID)
	}

	return proto.Clone(info).(*iamv5.NodeInfo), nil
}

// GetAllNodeIDs returns the sorted ids of all known nodes.
func (m *Manager) GetAllNodeIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.nodes))
	for id := range m.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// RemoveNodeInfo drops a node from the store.
func (m *Manager) RemoveNodeInfo(nodeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nodes[nodeID]; !ok {
		return trace.NotFound("node %q is not found", nodeID)
	}

	if err := m.storage.RemoveNodeInfo(nodeID); err != nil {
		return trace.Wrap(err)
	}
	delete(m.nodes, nodeID)

	return nil
}

// SubscribeNodeInfoChanged registers a change listener.
func (m *Manager) SubscribeNodeInfoChanged(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners[l] = struct{}{}
}

// UnsubscribeNodeInfoChanged removes a change listener.
func (m *Manager) UnsubscribeNodeInfoChanged(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.listeners, l)
}

func (m *Manager) listenersLocked() []Listener {
	listeners := make([]Listener, 0, len(m.listeners))
	for l := range m.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}
