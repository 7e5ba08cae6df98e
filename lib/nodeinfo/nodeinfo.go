// Package nodeinfo assembles the local node identity from the
// machine-id file, /proc and the configured partitions, and owns the
// durable provisioning status of the node.
package nodeinfo

import (
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/golang/protobuf/proto"
	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/utils"
)

// Node statuses as they appear on the wire and in the provisioning
// state file.
const (
	StatusUnprovisioned = "unprovisioned"
	StatusProvisioned   = "provisioned"
	StatusPaused        = "paused"
)

// attrMainNode marks the main node of the fleet.
const attrMainNode = "MainNode"

// ValidStatus reports whether s is a known node status.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnprovisioned, StatusProvisioned, StatusPaused:
		return true
	}
	return false
}

// IsMainNode reports whether info carries the main node attribute.
func IsMainNode(info *iamv5.NodeInfo) bool {
	for _, attr := range info.GetAttrs() {
		if strings.EqualFold(attr.GetName(), attrMainNode) {
			return true
		}
	}
	return false
}

// StatusObserver is notified on every committed node status change.
type StatusObserver interface {
	OnNodeStatusChanged(nodeID, status string)
}

// Provider owns the assembled identity of the local node and its
// provisioning status.
type Provider struct {
	statePath string
	log       *slog.Logger

	mu        sync.Mutex
	nodeInfo  *iamv5.NodeInfo
	observers map[StatusObserver]struct{}
}

// New assembles the local node info from cfg. The absence of the
// provisioning state file reads as unprovisioned.
func New(cfg config.NodeInfoConfig) (*Provider, error) {
	nodeID, err := readNodeID(cfg.NodeIDPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	status, err := readStatus(cfg.ProvisioningStatePath)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	totalRAM, err := readMemTotal(cfg.MemInfoPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	cpus, err := readCPUInfo(cfg.CPUInfoPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	p := &Provider{
		statePath: cfg.ProvisioningStatePath,
		log:       slog.With(fleetiam.ComponentKey, fleetiam.ComponentNodeInfo),
		nodeInfo: &iamv5.NodeInfo{
			NodeId:   nodeID,
			NodeType: cfg.NodeType,
			Name:     cfg.NodeName,
			Status:   status,
			OsType:   cfg.OSType,
			Cpus:     cpus,
			MaxDmips: cfg.MaxDMIPS,
			TotalRam: totalRAM,
			Attrs:    buildAttrs(cfg.Attrs),
		},
		observers: make(map[StatusObserver]struct{}),
	}

	for _, part := range cfg.Partitions {
		size, err := partitionSize(part.Path)
		if err != nil {
			p.log.Warn("Failed to get partition size", "path", part.Path, "error", err)
		}
		p.nodeInfo.Partitions = append(p.nodeInfo.Partitions, &iamv5.PartitionInfo{
			Name:      part.Name,
			Types:     append([]string(nil), part.Types...),
			TotalSize: size,
			Path:      part.Path,
		})
	}

	return p, nil
}

// GetNodeInfo returns a copy of the node info with the current status.
func (p *Provider) GetNodeInfo() *iamv5.NodeInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	return proto.Clone(p.nodeInfo).(*iamv5.NodeInfo)
}

// NodeID returns the stable identifier of the local node.
func (p *Provider) NodeID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.nodeInfo.GetNodeId()
}

// GetNodeStatus returns the current provisioning status.
func (p *Provider) GetNodeStatus() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.nodeInfo.GetStatus()
}

// SetNodeStatus persists the new status and notifies observers.
// Transitioning to unprovisioned removes the state file, any other
// status is written atomically.
func (p *Provider) SetNodeStatus(status string) error {
	if !ValidStatus(status) {
		return trace.BadParameter("unknown node status %q", status)
	}

	p.mu.Lock()
	if p.nodeInfo.GetStatus() == status {
		p.mu.Unlock()
		p.log.Debug("Node status is not changed", "status", status)
		return nil
	}

	if status == StatusUnprovisioned {
		if err := os.Remove(p.statePath); err != nil && !os.IsNotExist(err) {
			p.mu.Unlock()
			return trace.ConvertSystemError(err)
		}
	} else {
		if err := utils.WriteFileAtomic(p.statePath, []byte(status), 0o600); err != nil {
			p.mu.Unlock()
			return trace.Wrap(err)
		}
	}

	p.nodeInfo.Status = status
	nodeID := p.nodeInfo.GetNodeId()
	observers := make([]StatusObserver, 0, len(p.observers))
	for o := range p.observers {
		observers = append(observers, o)
	}
	p.mu.Unlock()

	p.log.Debug("Node status updated", "node_id", nodeID, "status", status)

	for _, o := range observers {
		o.OnNodeStatusChanged(nodeID, status)
	}

	return nil
}

// SubscribeNodeStatusChanged registers an observer for status changes.
func (p *Provider) SubscribeNodeStatusChanged(observer StatusObserver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.observers[observer] = struct{}{}
}

// UnsubscribeNodeStatusChanged removes a previously registered
// observer.
func (p *Provider) UnsubscribeNodeStatusChanged(observer StatusObserver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.observers, observer)
}

func readNodeID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", trace.ConvertSystemError(err)
	}

	nodeID := strings.TrimSpace(string(data))
	if nodeID == "" {
		return "", trace.BadParameter("node ID file %v is empty", path)
	}

	return nodeID, nil
}

func readStatus(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusUnprovisioned, nil
		}
		return "", trace.ConvertSystemError(err)
	}

	status := strings.TrimSpace(string(data))
	if !ValidStatus(status) {
		return "", trace.BadParameter("unknown node status %q in %v", status, path)
	}

	return status, nil
}

func buildAttrs(attrs map[string]string) []*iamv5.NodeAttribute {
	if len(attrs) == 0 {
		return nil
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*iamv5.NodeAttribute, 0, len(names))
	for _, name := range names {
		out = append(out, &iamv5.NodeAttribute{Name: name, Value: attrs[name]})
	}

	return out
}
