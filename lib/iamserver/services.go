package iamserver

import (
	"context"

	"github.com/gravitational/trace"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/peer"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/permissions"
)

// apiVersion is the IAM schema version both endpoints speak.
const apiVersion = 5

type versionServer struct {
	iamv5.UnimplementedIAMVersionServiceServer
}

func (versionServer) GetAPIVersion(context.Context, *emptypb.Empty) (*iamv5.APIVersion, error) {
	return &iamv5.APIVersion{Version: apiVersion}, nil
}

// publicServer serves the info of this node and its certificates.
type publicServer struct {
	iamv5.UnimplementedIAMPublicServiceServer

	srv *Server
}

func (h *publicServer) GetNodeInfo(context.Context, *emptypb.Empty) (*iamv5.NodeInfo, error) {
	return h.srv.cfg.NodeInfo.GetNodeInfo(), nil
}

func (h *publicServer) GetCert(_ context.Context, req *iamv5.GetCertRequest) (*iamv5.CertInfo, error) {
	info, err := h.srv.cfg.CredStore.GetCertificate(req.GetType(), req.GetIssuer(), req.GetSerial())
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return info, nil
}

func (h *publicServer) SubscribeCertChanged(req *iamv5.SubscribeCertChangedRequest, stream iamv5.IAMPublicService_SubscribeCertChangedServer) error {
	writer, ok := h.srv.certWriters[req.GetType()]
	if !ok {
		return trace.NotFound("unknown cert type %q", req.GetType())
	}

	return trace.Wrap(serveSubscription(stream.Context(), writer, stream.Send))
}

type publicIdentityServer struct {
	iamv5.UnimplementedIAMPublicIdentityServiceServer

	srv *Server
}

func (h *publicIdentityServer) GetSystemInfo(context.Context, *emptypb.Empty) (*iamv5.SystemInfo, error) {
	systemID, err := h.srv.cfg.Identity.GetSystemID()
	if err != nil {
		return nil, trace.Wrap(err)
	}

	unitModel, err := h.srv.cfg.Identity.GetUnitModel()
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return &iamv5.SystemInfo{SystemId: systemID, UnitModel: unitModel}, nil
}

func (h *publicIdentityServer) GetSubjects(context.Context, *emptypb.Empty) (*iamv5.Subjects, error) {
	subjects, err := h.srv.cfg.Identity.GetSubjects()
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return &iamv5.Subjects{Subjects: subjects}, nil
}

func (h *publicIdentityServer) SubscribeSubjectsChanged(_ *emptypb.Empty, stream iamv5.IAMPublicIdentityService_SubscribeSubjectsChangedServer) error {
	return trace.Wrap(serveSubscription(stream.Context(), h.srv.subjectsWriter, stream.Send))
}

type publicPermissionsServer struct {
	iamv5.UnimplementedIAMPublicPermissionsServiceServer

	srv *Server
}

func (h *publicPermissionsServer) GetPermissions(_ context.Context, req *iamv5.PermissionsRequest) (*iamv5.PermissionsResponse, error) {
	instance, perms, err := h.srv.cfg.Permissions.GetPermissions(req.GetSecret(), req.GetFunctionalServerId())
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return &iamv5.PermissionsResponse{
		Instance:    instanceToProto(instance),
		Permissions: &iamv5.Permissions{Permissions: perms},
	}, nil
}

// publicNodesServer serves the fleet view and the node control
// streams. The endpoints differ only in the statuses they admit on
// registration and in whether the peer certificate is checked.
type publicNodesServer struct {
	iamv5.UnimplementedIAMPublicNodesServiceServer

	srv             *Server
	allowedStatuses []string
	verifyPeer      bool
}

func (h *publicNodesServer) GetAllNodeIDs(context.Context, *emptypb.Empty) (*iamv5.NodesID, error) {
	return &iamv5.NodesID{Ids: h.srv.cfg.NodeManager.GetAllNodeIDs()}, nil
}

func (h *publicNodesServer) GetNodeInfo(_ context.Context, req *iamv5.GetNodeInfoRequest) (*iamv5.NodeInfo, error) {
	if h.srv.isLocal(req.GetNodeId()) {
		return h.srv.cfg.NodeInfo.GetNodeInfo(), nil
	}

	info, err := h.srv.cfg.NodeManager.GetNodeInfo(req.GetNodeId())
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return info, nil
}

func (h *publicNodesServer) SubscribeNodeChanged(_ *emptypb.Empty, stream iamv5.IAMPublicNodesService_SubscribeNodeChangedServer) error {
	return trace.Wrap(serveSubscription(stream.Context(), h.srv.nodeInfoWriter, stream.Send))
}

func (h *publicNodesServer) RegisterNode(stream iamv5.IAMPublicNodesService_RegisterNodeServer) error {
	frame, err := stream.Recv()
	if err != nil {
		return trace.ConnectionProblem(err, "failed to receive node info")
	}

	info := frame.GetNodeInfo()
	if info == nil {
		return trace.BadParameter("first frame must carry node info")
	}

	if h.verifyPeer {
		if err := checkPeerIdentity(stream.Context(), info.GetNodeId()); err != nil {
			return trace.Wrap(err)
		}
	}

	return trace.Wrap(h.srv.serveNodeStream(info, stream, h.allowedStatuses))
}

// checkPeerIdentity requires the client certificate subject to match
// the node id the stream registers with.
func checkPeerIdentity(ctx context.Context, nodeID string) error {
	p, ok := peer.FromContext(ctx)
	if !ok {
		return trace.AccessDenied("no peer info on stream")
	}

	tlsInfo, ok := p.AuthInfo.(credentials.TLSInfo)
	if !ok {
		return trace.AccessDenied("peer is not authenticated with TLS")
	}

	certs := tlsInfo.State.PeerCertificates
	if len(certs) == 0 {
		return trace.AccessDenied("peer certificate is missing")
	}

	if cn := certs[0].Subject.CommonName; cn != nodeID {
		return trace.AccessDenied("node id %q does not match certificate subject %q", nodeID, cn)
	}

	return nil
}

// nodesServer pauses and resumes nodes over the protected endpoint.
type nodesServer struct {
	iamv5.UnimplementedIAMNodesServiceServer

	srv *Server
}

func (h *nodesServer) PauseNode(ctx context.Context, req *iamv5.PauseNodeRequest) (*iamv5.PauseNodeResponse, error) {
	rsp, err := h.srv.pauseNode(ctx, req)

	return rsp, trace.Wrap(err)
}

func (h *nodesServer) ResumeNode(ctx context.Context, req *iamv5.ResumeNodeRequest) (*iamv5.ResumeNodeResponse, error) {
	rsp, err := h.srv.resumeNode(ctx, req)

	return rsp, trace.Wrap(err)
}

type provisioningServer struct {
	iamv5.UnimplementedIAMProvisioningServiceServer

	srv *Server
}

func (h *provisioningServer) GetCertTypes(ctx context.Context, req *iamv5.GetCertTypesRequest) (*iamv5.CertTypes, error) {
	rsp, err := h.srv.getCertTypes(ctx, req)

	return rsp, trace.Wrap(err)
}

func (h *provisioningServer) StartProvisioning(ctx context.Context, req *iamv5.StartProvisioningRequest) (*iamv5.StartProvisioningResponse, error) {
	rsp, err := h.srv.startProvisioning(ctx, req)

	return rsp, trace.Wrap(err)
}

func (h *provisioningServer) FinishProvisioning(ctx context.Context, req *iamv5.FinishProvisioningRequest) (*iamv5.FinishProvisioningResponse, error) {
	rsp, err := h.srv.finishProvisioning(ctx, req)

	return rsp, trace.Wrap(err)
}

func (h *provisioningServer) Deprovision(ctx context.Context, req *iamv5.DeprovisionRequest) (*iamv5.DeprovisionResponse, error) {
	rsp, err := h.srv.deprovision(ctx, req)

	return rsp, trace.Wrap(err)
}

type certificateServer struct {
	iamv5.UnimplementedIAMCertificateServiceServer

	srv *Server
}

func (h *certificateServer) CreateKey(ctx context.Context, req *iamv5.CreateKeyRequest) (*iamv5.CreateKeyResponse, error) {
	rsp, err := h.srv.createKey(ctx, req)

	return rsp, trace.Wrap(err)
}

func (h *certificateServer) ApplyCert(ctx context.Context, req *iamv5.ApplyCertRequest) (*iamv5.ApplyCertResponse, error) {
	rsp, err := h.srv.applyCert(ctx, req)

	return rsp, trace.Wrap(err)
}

type permissionsServer struct {
	iamv5.UnimplementedIAMPermissionsServiceServer

	srv *Server
}

func (h *permissionsServer) RegisterInstance(_ context.Context, req *iamv5.RegisterInstanceRequest) (*iamv5.RegisterInstanceResponse, error) {
	if req.GetInstance() == nil {
		return nil, trace.BadParameter("missing instance")
	}

	// The bound is enforced before the store is touched.
	if len(req.GetPermissions()) > permissions.MaxNumServices {
		return nil, trace.LimitExceeded("permissions for %d services exceed the limit of %d",
			len(req.GetPermissions()), permissions.MaxNumServices)
	}

	secret, err := h.srv.cfg.Permissions.RegisterInstance(
		instanceFromProto(req.GetInstance()), permissionsFromProto(req.GetPermissions()))
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return &iamv5.RegisterInstanceResponse{Secret: secret}, nil
}

func (h *permissionsServer) UnregisterInstance(_ context.Context, req *iamv5.UnregisterInstanceRequest) (*emptypb.Empty, error) {
	if req.GetInstance() == nil {
		return nil, trace.BadParameter("missing instance")
	}

	if err := h.srv.cfg.Permissions.UnregisterInstance(instanceFromProto(req.GetInstance())); err != nil {
		return nil, trace.Wrap(err)
	}

	return &emptypb.Empty{}, nil
}

func instanceFromProto(ident *iamv5.InstanceIdent) permissions.InstanceIdent {
	return permissions.InstanceIdent{
		ServiceID: ident.GetServiceId(),
		SubjectID: ident.GetSubjectId(),
		Instance:  ident.GetInstance(),
	}
}

func instanceToProto(ident permissions.InstanceIdent) *iamv5.InstanceIdent {
	return &iamv5.InstanceIdent{
		ServiceId: ident.ServiceID,
		SubjectId: ident.SubjectID,
		Instance:  ident.Instance,
	}
}

func permissionsFromProto(perms map[string]*iamv5.Permissions) map[string]map[string]string {
	out := make(map[string]map[string]string, len(perms))
	for service, p := range perms {
		out[service] = p.GetPermissions()
	}

	return out
}
