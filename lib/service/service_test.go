package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/identity/fileident"
	"github.com/edgefleet/fleetiam/lib/logutils"
	"github.com/edgefleet/fleetiam/lib/nodeinfo"
	"github.com/edgefleet/fleetiam/lib/service"
)

func TestMain(m *testing.M) {
	logutils.InitLoggerForTests()
	os.Exit(m.Run())
}

const testCPUInfo = `processor	: 0
model name	: ARMv8 Processor rev 4
cpu family	: 8
physical id	: 0
siblings	: 4
cpu cores	: 4
`

const testMemInfo = `MemTotal:        8000000 kB
MemFree:         2000000 kB
MemAvailable:    4000000 kB
`

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cpuInfo := filepath.Join(dir, "cpuinfo")
	memInfo := filepath.Join(dir, "meminfo")
	nodeID := filepath.Join(dir, "machine-id")

	require.NoError(t, os.WriteFile(cpuInfo, []byte(testCPUInfo), 0o600))
	require.NoError(t, os.WriteFile(memInfo, []byte(testMemInfo), 0o600))
	require.NoError(t, os.WriteFile(nodeID, []byte("node0\n"), 0o600))

	cfg := &config.Config{
		NodeInfo: config.NodeInfoConfig{
			CPUInfoPath:           cpuInfo,
			MemInfoPath:           memInfo,
			NodeIDPath:            nodeID,
			ProvisioningStatePath: filepath.Join(dir, ".provisionstate"),
			NodeName:              "node0",
			NodeType:              "main",
			OSType:                "linux",
			Attrs:                 map[string]string{"MainNode": ""},
		},
		IAMPublicServerURL:       "127.0.0.1:0",
		IAMProtectedServerURL:    "127.0.0.1:0",
		CertStorage:              "storage",
		Database:                 config.DatabaseConfig{WorkingDir: t.TempDir()},
		EnablePermissionsHandler: true,
	}
	require.NoError(t, cfg.CheckAndSetDefaults())

	return cfg
}

func startService(t *testing.T, cfg *config.Config, provisioningMode bool) *service.Service {
	t.Helper()

	svc, err := service.New(cfg, provisioningMode)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	runC := make(chan error, 1)
	go func() { runC <- svc.Run(ctx) }()

	t.Cleanup(func() {
		svc.Close()
		cancel()
		require.NoError(t, <-runC)
	})

	if cfg.IAMPublicServerURL != "" {
		require.Eventually(t, func() bool {
			return svc.Server().PublicAddr() != "" && svc.Server().ProtectedAddr() != ""
		}, 5*time.Second, 10*time.Millisecond)
	}

	return svc
}

func dial(t *testing.T, addr string) *grpc.ClientConn {
	t.Helper()

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, conn.Close()) })

	return conn
}

func TestProvisionRoundTrip(t *testing.T) {
	cfg := newTestConfig(t)
	svc := startService(t, cfg, true)

	ctx := context.Background()
	prov := iamv5.NewIAMProvisioningServiceClient(dial(t, svc.Server().ProtectedAddr()))

	startRsp, err := prov.StartProvisioning(ctx, &iamv5.StartProvisioningRequest{Password: "pw"})
	require.NoError(t, err)
	require.Nil(t, startRsp.GetError())

	// Start keeps the node unprovisioned, the state file appears only
	// on finish.
	_, err = os.Stat(cfg.NodeInfo.ProvisioningStatePath)
	require.True(t, os.IsNotExist(err))

	finishRsp, err := prov.FinishProvisioning(ctx, &iamv5.FinishProvisioningRequest{Password: "pw"})
	require.NoError(t, err)
	require.Nil(t, finishRsp.GetError())

	state, err := os.ReadFile(cfg.NodeInfo.ProvisioningStatePath)
	require.NoError(t, err)
	require.Equal(t, "provisioned", string(state))

	nodes := iamv5.NewIAMPublicNodesServiceClient(dial(t, svc.Server().PublicAddr()))

	ids, err := nodes.GetAllNodeIDs(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Contains(t, ids.GetIds(), "node0")

	info, err := nodes.GetNodeInfo(ctx, &iamv5.GetNodeInfoRequest{})
	require.NoError(t, err)
	require.Equal(t, nodeinfo.StatusProvisioned, info.GetStatus())
}

func TestIdentityPluginWired(t *testing.T) {
	cfg := newTestConfig(t)

	dir := t.TempDir()
	systemID := filepath.Join(dir, "system-id")
	unitModel := filepath.Join(dir, "unit-model")
	subjects := filepath.Join(dir, "subjects")
	require.NoError(t, os.WriteFile(systemID, []byte("SYS9\n"), 0o600))
	require.NoError(t, os.WriteFile(unitModel, []byte("edge-rack\n"), 0o600))
	require.NoError(t, os.WriteFile(subjects, []byte("s1\ns2\n"), 0o600))

	cfg.Identifier = config.PluginConfig{
		Plugin: fileident.PluginName,
		Params: json.RawMessage(fmt.Sprintf(`{"systemIDPath":%q,"unitModelPath":%q,"subjectsPath":%q}`,
			systemID, unitModel, subjects)),
	}

	svc := startService(t, cfg, true)

	ctx := context.Background()
	ident := iamv5.NewIAMPublicIdentityServiceClient(dial(t, svc.Server().PublicAddr()))

	sysInfo, err := ident.GetSystemInfo(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Equal(t, "SYS9", sysInfo.GetSystemId())
	require.Equal(t, "edge-rack", sysInfo.GetUnitModel())

	subjRsp, err := ident.GetSubjects(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Equal(t, []string{"s1", "s2"}, subjRsp.GetSubjects())
}

// fakeMain accepts node registrations the way the main node does.
type fakeMain struct {
	iamv5.UnimplementedIAMPublicNodesServiceServer

	infoC chan *iamv5.NodeInfo
}

func (m *fakeMain) RegisterNode(stream iamv5.IAMPublicNodesService_RegisterNodeServer) error {
	first, err := stream.Recv()
	if err != nil {
		return err
	}

	m.infoC <- first.GetNodeInfo()
	<-stream.Context().Done()

	return nil
}

func TestSecondaryRegistersWithMain(t *testing.T) {
	main := &fakeMain{infoC: make(chan *iamv5.NodeInfo, 1)}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	iamv5.RegisterIAMPublicNodesServiceServer(srv, main)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	cfg := newTestConfig(t)
	cfg.IAMPublicServerURL = ""
	cfg.IAMProtectedServerURL = ""
	cfg.MainIAMPublicServerURL = lis.Addr().String()
	cfg.MainIAMProtectedServerURL = lis.Addr().String()
	cfg.NodeInfo.NodeType = "secondary"
	cfg.NodeInfo.Attrs = nil

	startService(t, cfg, true)

	select {
	case info := <-main.infoC:
		require.Equal(t, "node0", info.GetNodeId())
		require.Equal(t, nodeinfo.StatusUnprovisioned, info.GetStatus())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for node registration")
	}
}

func TestUnknownIdentifierPlugin(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Identifier = config.PluginConfig{Plugin: "bogus"}

	_, err := service.New(cfg, true)
	require.True(t, trace.IsBadParameter(err))
}
