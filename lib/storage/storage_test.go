package storage

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/logutils"
)

func TestMain(m *testing.M) {
	logutils.InitLoggerForTests()
	os.Exit(m.Run())
}

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(config.DatabaseConfig{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func TestCertInfoRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	notAfter := time.Date(2027, 1, 15, 10, 0, 0, 0, time.UTC)
	cert := &iamv5.CertInfo{
		Type:     "iam",
		Issuer:   []byte{0x30, 0x14},
		Serial:   "01AB",
		CertUrl:  "file:///var/fleetiam/certs/iam.pem",
		KeyUrl:   "pkcs11:token=iam;id=%01",
		NotAfter: timestamppb.New(notAfter),
	}
	require.NoError(t, s.AddCertInfo("iam", cert))

	got, err := s.GetCertInfo([]byte{0x30, 0x14}, "01AB")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(cert, got, protocmp.Transform()))

	certs, err := s.GetCertsInfo("iam")
	require.NoError(t, err)
	require.Len(t, certs, 1)

	// Lookups by unknown keys fail with NotFound.
	_, err = s.GetCertInfo([]byte{0x00}, "FFFF")
	require.True(t, trace.IsNotFound(err))

	require.NoError(t, s.RemoveCertInfo("iam", cert.GetCertUrl()))
	certs, err = s.GetCertsInfo("iam")
	require.NoError(t, err)
	require.Empty(t, certs)
}

func TestRemoveAllCertsInfo(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	for i, serial := range []string{"01", "02", "03"} {
		require.NoError(t, s.AddCertInfo("iam", &iamv5.CertInfo{
			Type:    "iam",
			Issuer:  []byte{byte(i)},
			Serial:  serial,
			CertUrl: "file:///certs/" + serial,
		}))
	}
	require.NoError(t, s.AddCertInfo("online", &iamv5.CertInfo{
		Type:    "online",
		Issuer:  []byte{0xff},
		Serial:  "10",
		CertUrl: "file:///certs/online",
	}))

	require.NoError(t, s.RemoveAllCertsInfo("iam"))

	certs, err := s.GetCertsInfo("iam")
	require.NoError(t, err)
	require.Empty(t, certs)

	certs, err = s.GetCertsInfo("online")
	require.NoError(t, err)
	require.Len(t, certs, 1)
}

func TestNodeInfoRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	info := &iamv5.NodeInfo{
		NodeId:   "node0",
		NodeType: "secondary",
		Name:     "node0",
		Status:   "provisioned",
		TotalRam: 1 << 30,
		Attrs:    []*iamv5.NodeAttribute{{Name: "Group", Value: "edge"}},
	}
	require.NoError(t, s.SetNodeInfo(info))

	got, err := s.GetNodeInfo("node0")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(info, got, protocmp.Transform()))

	// Upsert replaces the stored record.
	info.Status = "paused"
	require.NoError(t, s.SetNodeInfo(info))

	got, err = s.GetNodeInfo("node0")
	require.NoError(t, err)
	require.Equal(t, "paused", got.GetStatus())

	require.NoError(t, s.SetNodeInfo(&iamv5.NodeInfo{NodeId: "main"}))

	infos, err := s.GetAllNodeInfos()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	require.Equal(t, "main", infos[0].GetNodeId())
	require.Equal(t, "node0", infos[1].GetNodeId())

	require.NoError(t, s.RemoveNodeInfo("node0"))
	_, err = s.GetNodeInfo("node0")
	require.True(t, trace.IsNotFound(err))

	err = s.RemoveNodeInfo("node0")
	require.True(t, trace.IsNotFound(err))
}

func TestSetNodeInfoValidation(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	err := s.SetNodeInfo(&iamv5.NodeInfo{})
	require.True(t, trace.IsBadParameter(err))
}

func TestStorageReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := New(config.DatabaseConfig{WorkingDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.SetNodeInfo(&iamv5.NodeInfo{NodeId: "node0", Status: "provisioned"}))
	require.NoError(t, s.Close())

	s, err = New(config.DatabaseConfig{WorkingDir: dir})
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetNodeInfo("node0")
	require.NoError(t, err)
	require.Equal(t, "provisioned", got.GetStatus())
}
