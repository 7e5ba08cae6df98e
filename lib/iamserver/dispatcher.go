package iamserver

import (
	"context"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/gravitational/trace"
	"github.com/gravitational/trace/trail"
	"google.golang.org/grpc/status"

	"github.com/edgefleet/fleetiam/api/iamv5"
)

const (
	// defaultCallTimeout bounds forwarded query operations and
	// pause/resume.
	defaultCallTimeout = time.Minute

	// provisioningCallTimeout bounds the forwarded provisioning family,
	// which runs external commands on the target node.
	provisioningCallTimeout = 5 * time.Minute

	// forwardAttempts and forwardRetryWait shape the retry loop of
	// forwarded calls. Only an unavailable stream is retried.
	forwardAttempts  = 3
	forwardRetryWait = 10 * time.Second
)

// errorInfo encodes err for the in-band error field of a response.
// Operations with side effects report failures this way under a
// transport-level OK so one failing node does not poison the fleet
// view.
func errorInfo(err error) *iamv5.ErrorInfo {
	if err == nil {
		return nil
	}

	return &iamv5.ErrorInfo{
		Code:    int32(status.Code(trail.ToGRPC(err))),
		Message: trace.UserMessage(err),
	}
}

// isLocal reports whether the request targets this node. An empty
// node id addresses the node that received the request.
func (s *Server) isLocal(nodeID string) bool {
	return nodeID == "" || nodeID == s.nodeID
}

// forward sends req to the stream of nodeID and waits for the
// response. An unavailable stream is retried up to forwardAttempts
// times; shutdown aborts the retry loop immediately.
func (s *Server) forward(ctx context.Context, nodeID string, req *iamv5.IAMIncomingMessages, timeout time.Duration) (*iamv5.IAMOutgoingMessages, error) {
	var lastErr error

	for attempt := 0; attempt < forwardAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-s.cfg.Clock.After(forwardRetryWait):
			case <-s.done:
				return nil, trace.CompareFailed("server is shutting down")
			case <-ctx.Done():
				return nil, trace.Wrap(ctx.Err())
			}
		}

		handle, err := s.registry.Lookup(nodeID)
		if err != nil {
			if attempt == 0 {
				forwardedRequests.WithLabelValues("not_found").Inc()
				return nil, trace.Wrap(err)
			}

			lastErr = trace.ConnectionProblem(nil, "no stream registered for node %q", nodeID)

			continue
		}

		rsp, err := handle.Call(ctx, req, timeout)
		if err == nil {
			forwardedRequests.WithLabelValues("ok").Inc()
			return rsp, nil
		}

		if !trace.IsConnectionProblem(err) {
			forwardedRequests.WithLabelValues("error").Inc()
			return nil, trace.Wrap(err)
		}

		s.log.Warn("Node stream call failed, retrying",
			"node_id", nodeID, "attempt", attempt+1, "error", err)
		lastErr = err
	}

	forwardedRequests.WithLabelValues("unavailable").Inc()

	return nil, trace.Wrap(lastErr)
}

func (s *Server) startProvisioning(ctx context.Context, req *iamv5.StartProvisioningRequest) (*iamv5.StartProvisioningResponse, error) {
	if s.isLocal(req.GetNodeId()) {
		return &iamv5.StartProvisioningResponse{
			Error: errorInfo(s.cfg.Provisioner.StartProvisioning(ctx, req.GetPassword())),
		}, nil
	}

	rsp, err := s.forward(ctx, req.GetNodeId(), &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_StartProvisioningRequest{StartProvisioningRequest: req},
	}, provisioningCallTimeout)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	out := rsp.GetStartProvisioningResponse()
	if out == nil {
		return nil, trace.BadParameter("node %q sent an unexpected response", req.GetNodeId())
	}

	return out, nil
}

func (s *Server) finishProvisioning(ctx context.Context, req *iamv5.FinishProvisioningRequest) (*iamv5.FinishProvisioningResponse, error) {
	if s.isLocal(req.GetNodeId()) {
		return &iamv5.FinishProvisioningResponse{
			Error: errorInfo(s.cfg.Provisioner.FinishProvisioning(ctx, req.GetPassword())),
		}, nil
	}

	rsp, err := s.forward(ctx, req.GetNodeId(), &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_FinishProvisioningRequest{FinishProvisioningRequest: req},
	}, provisioningCallTimeout)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	out := rsp.GetFinishProvisioningResponse()
	if out == nil {
		return nil, trace.BadParameter("node %q sent an unexpected response", req.GetNodeId())
	}

	return out, nil
}

func (s *Server) deprovision(ctx context.Context, req *iamv5.DeprovisionRequest) (*iamv5.DeprovisionResponse, error) {
	if s.isLocal(req.GetNodeId()) {
		return &iamv5.DeprovisionResponse{
			Error: errorInfo(s.cfg.Provisioner.Deprovision(ctx, req.GetPassword())),
		}, nil
	}

	rsp, err := s.forward(ctx, req.GetNodeId(), &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_DeprovisionRequest{DeprovisionRequest: req},
	}, provisioningCallTimeout)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	out := rsp.GetDeprovisionResponse()
	if out == nil {
		return nil, trace.BadParameter("node %q sent an unexpected response", req.GetNodeId())
	}

	return out, nil
}

func (s *Server) pauseNode(ctx context.Context, req *iamv5.PauseNodeRequest) (*iamv5.PauseNodeResponse, error) {
	if s.isLocal(req.GetNodeId()) {
		return &iamv5.PauseNodeResponse{Error: errorInfo(s.cfg.Provisioner.Pause(ctx))}, nil
	}

	rsp, err := s.forward(ctx, req.GetNodeId(), &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_PauseNodeRequest{PauseNodeRequest: req},
	}, defaultCallTimeout)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	out := rsp.GetPauseNodeResponse()
	if out == nil {
		return nil, trace.BadParameter("node %q sent an unexpected response", req.GetNodeId())
	}

	return out, nil
}

func (s *Server) resumeNode(ctx context.Context, req *iamv5.ResumeNodeRequest) (*iamv5.ResumeNodeResponse, error) {
	if s.isLocal(req.GetNodeId()) {
		return &iamv5.ResumeNodeResponse{Error: errorInfo(s.cfg.Provisioner.Resume(ctx))}, nil
	}

	rsp, err := s.forward(ctx, req.GetNodeId(), &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_ResumeNodeRequest{ResumeNodeRequest: req},
	}, defaultCallTimeout)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	out := rsp.GetResumeNodeResponse()
	if out == nil {
		return nil, trace.BadParameter("node %q sent an unexpected response", req.GetNodeId())
	}

	return out, nil
}

func (s *Server) getCertTypes(ctx context.Context, req *iamv5.GetCertTypesRequest) (*iamv5.CertTypes, error) {
	if s.isLocal(req.GetNodeId()) {
		return &iamv5.CertTypes{Types: s.cfg.CredStore.GetCertTypes()}, nil
	}

	rsp, err := s.forward(ctx, req.GetNodeId(), &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_GetCertTypesRequest{GetCertTypesRequest: req},
	}, defaultCallTimeout)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	out := rsp.GetCertTypesResponse()
	if out == nil {
		return nil, trace.BadParameter("node %q sent an unexpected response", req.GetNodeId())
	}

	return out, nil
}

func (s *Server) createKey(ctx context.Context, req *iamv5.CreateKeyRequest) (*iamv5.CreateKeyResponse, error) {
	subject := req.GetSubject()
	if subject == "" {
		if s.cfg.Identity == nil {
			return &iamv5.CreateKeyResponse{
				NodeId: req.GetNodeId(),
				Type:   req.GetType(),
				Error:  errorInfo(trace.BadParameter("subject is empty and no identity provider is configured")),
			}, nil
		}

		systemID, err := s.cfg.Identity.GetSystemID()
		if err != nil {
			return &iamv5.CreateKeyResponse{
				NodeId: req.GetNodeId(),
				Type:   req.GetType(),
				Error:  errorInfo(err),
			}, nil
		}

		subject = systemID
	}

	if s.isLocal(req.GetNodeId()) {
		csr, err := s.cfg.CredStore.CreateKey(req.GetType(), subject, req.GetPassword())

		return &iamv5.CreateKeyResponse{
			NodeId: req.GetNodeId(),
			Type:   req.GetType(),
			Csr:    string(csr),
			Error:  errorInfo(err),
		}, nil
	}

	forwarded := proto.Clone(req).(*iamv5.CreateKeyRequest)
	forwarded.Subject = subject

	rsp, err := s.forward(ctx, req.GetNodeId(), &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_CreateKeyRequest{CreateKeyRequest: forwarded},
	}, defaultCallTimeout)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	out := rsp.GetCreateKeyResponse()
	if out == nil {
		return nil, trace.BadParameter("node %q sent an unexpected response", req.GetNodeId())
	}

	return out, nil
}

func (s *Server) applyCert(ctx context.Context, req *iamv5.ApplyCertRequest) (*iamv5.ApplyCertResponse, error) {
	if s.isLocal(req.GetNodeId()) {
		rsp := &iamv5.ApplyCertResponse{NodeId: req.GetNodeId(), Type: req.GetType()}

		info, err := s.cfg.CredStore.ApplyCertificate(req.GetType(), []byte(req.GetCert()))
		if err != nil {
			rsp.Error = errorInfo(err)
			return rsp, nil
		}

		rsp.CertUrl = info.GetCertUrl()
		rsp.Serial = info.GetSerial()

		return rsp, nil
	}

	rsp, err := s.forward(ctx, req.GetNodeId(), &iamv5.IAMIncomingMessages{
		IAMIncomingMessage: &iamv5.IAMIncomingMessages_ApplyCertRequest{ApplyCertRequest: req},
	}, defaultCallTimeout)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	out := rsp.GetApplyCertResponse()
	if out == nil {
		return nil, trace.BadParameter("node %q sent an unexpected response", req.GetNodeId())
	}

	return out, nil
}
