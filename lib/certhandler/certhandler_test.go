package certhandler_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"

	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/certhandler"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/logutils"
	"github.com/edgefleet/fleetiam/lib/storage"
)

func TestMain(m *testing.M) {
	logutils.InitLoggerForTests()
	os.Exit(m.Run())
}

type fakeModule struct {
	pending []crypto.Signer
	applied []*x509.Certificate
	removed []string
	cleared int
	owner   string
	closed  bool
}

func (m *fakeModule) SetOwner(password string) error {
	m.owner = password
	return nil
}

func (m *fakeModule) Clear() error {
	m.cleared++
	m.pending = nil
	m.applied = nil
	return nil
}

func (m *fakeModule) CreateKey(password string) (crypto.Signer, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	m.pending = append(m.pending, key)
	return key, nil
}

func (m *fakeModule) ApplyCertificate(certs []*x509.Certificate) (string, string, error) {
	m.applied = append(m.applied, certs[0])
	n := len(m.applied)
	return fmt.Sprintf("fake:cert:%d", n), fmt.Sprintf("fake:key:%d", n), nil
}

func (m *fakeModule) RemoveCertificate(certURL, keyURL string) error {
	m.removed = append(m.removed, certURL)
	return nil
}

func (m *fakeModule) TLSCertificate(certURL, keyURL string) (tls.Certificate, error) {
	if len(m.applied) == 0 || len(m.pending) == 0 {
		return tls.Certificate{}, trace.NotFound("no certificate applied")
	}
	return tls.Certificate{
		Certificate: [][]byte{m.applied[len(m.applied)-1].Raw},
		PrivateKey:  m.pending[len(m.pending)-1],
	}, nil
}

func (m *fakeModule) Close() error {
	m.closed = true
	return nil
}

var testModules = make(map[string]*fakeModule)

func init() {
	certhandler.RegisterPlugin("fakemodule", func(cfg config.ModuleConfig) (certhandler.Module, error) {
		module := &fakeModule{}
		testModules[cfg.ID] = module
		return module, nil
	})
}

type certRecorder struct {
	infos []*iamv5.CertInfo
}

func (r *certRecorder) OnCertChanged(info *iamv5.CertInfo) {
	r.infos = append(r.infos, info)
}

type testCA struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

func newTestCA(t *testing.T) *testCA {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Fleet Test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return &testCA{cert: cert, key: key}
}

// issue signs a leaf certificate for the CSR and returns the PEM chain.
func (ca *testCA) issue(t *testing.T, csrPEM []byte, serial int64, notAfter time.Time) []byte {
	t.Helper()

	block, _ := pem.Decode(csrPEM)
	require.NotNil(t, block)

	csr, err := x509.ParseCertificateRequest(block.Bytes)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(serial),
		Subject:      csr.Subject,
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     notAfter,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, ca.cert, csr.PublicKey, ca.key)
	require.NoError(t, err)

	chain := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	chain = append(chain, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: ca.cert.Raw})...)

	return chain
}

func newTestHandler(t *testing.T, cfgs []config.ModuleConfig) (*certhandler.Handler, *storage.Storage) {
	t.Helper()

	db, err := storage.New(config.DatabaseConfig{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	handler, err := certhandler.NewHandler(cfgs, db)
	require.NoError(t, err)
	t.Cleanup(handler.Close)

	return handler, db
}

func TestNewHandlerUnknownPlugin(t *testing.T) {
	db, err := storage.New(config.DatabaseConfig{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	defer db.Close()

	_, err = certhandler.NewHandler([]config.ModuleConfig{
		{ID: "online", Plugin: "nosuchmodule"},
	}, db)
	require.True(t, trace.IsBadParameter(err))
}

func TestGetCertTypes(t *testing.T) {
	handler, _ := newTestHandler(t, []config.ModuleConfig{
		{ID: "online", Plugin: "fakemodule"},
		{ID: "offline", Plugin: "fakemodule"},
		{ID: "spare", Plugin: "fakemodule", Disabled: true},
	})

	require.Equal(t, []string{"offline", "online"}, handler.GetCertTypes())
}

func TestCreateKey(t *testing.T) {
	handler, _ := newTestHandler(t, []config.ModuleConfig{
		{ID: "online", Plugin: "fakemodule", ExtendedKeyUsage: []string{"clientAuth"}, AlternativeNames: []string{"node0"}},
	})

	csrPEM, err := handler.CreateKey("online", "node0-subject", "pass")
	require.NoError(t, err)

	block, _ := pem.Decode(csrPEM)
	require.NotNil(t, block)
	require.Equal(t, "CERTIFICATE REQUEST", block.Type)

	csr, err := x509.ParseCertificateRequest(block.Bytes)
	require.NoError(t, err)
	require.NoError(t, csr.CheckSignature())
	require.Equal(t, "node0-subject", csr.Subject.CommonName)
	require.Equal(t, []string{"node0"}, csr.DNSNames)

	_, err = handler.CreateKey("online", "", "pass")
	require.True(t, trace.IsBadParameter(err))

	_, err = handler.CreateKey("unknown", "subject", "pass")
	require.True(t, trace.IsNotFound(err))
}

func TestApplyCertificate(t *testing.T) {
	handler, db := newTestHandler(t, []config.ModuleConfig{
		{ID: "online", Plugin: "fakemodule"},
	})

	recorder := &certRecorder{}
	require.NoError(t, handler.SubscribeCertChanged("online", recorder))

	ca := newTestCA(t)

	csrPEM, err := handler.CreateKey("online", "node0", "")
	require.NoError(t, err)

	notAfter := time.Now().Add(12 * time.Hour).UTC().Truncate(time.Second)
	chain := ca.issue(t, csrPEM, 0x2A, notAfter)

	info, err := handler.ApplyCertificate("online", chain)
	require.NoError(t, err)
	require.Equal(t, "online", info.GetType())
	require.Equal(t, "2A", info.GetSerial())
	require.Equal(t, ca.cert.RawSubject, info.GetIssuer())
	require.True(t, info.GetNotAfter().AsTime().Equal(notAfter))
	require.Equal(t, "fake:cert:1", info.GetCertUrl())
	require.Equal(t, "fake:key:1", info.GetKeyUrl())

	stored, err := db.GetCertInfo(info.GetIssuer(), info.GetSerial())
	require.NoError(t, err)
	require.Equal(t, info.GetCertUrl(), stored.GetCertUrl())

	require.Len(t, recorder.infos, 1)
	require.Equal(t, "2A", recorder.infos[0].GetSerial())

	handler.UnsubscribeCertChanged(recorder)

	csrPEM, err = handler.CreateKey("online", "node0", "")
	require.NoError(t, err)
	_, err = handler.ApplyCertificate("online", ca.issue(t, csrPEM, 0x2B, notAfter))
	require.NoError(t, err)
	require.Len(t, recorder.infos, 1)
}

func TestApplyCertificateSelfSigned(t *testing.T) {
	handler, _ := newTestHandler(t, []config.ModuleConfig{
		{ID: "strict", Plugin: "fakemodule"},
		{ID: "lenient", Plugin: "fakemodule", SelfSigned: true},
	})

	ca := newTestCA(t)
	selfSignedPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: ca.cert.Raw})

	_, err := handler.ApplyCertificate("strict", selfSignedPEM)
	require.True(t, trace.IsBadParameter(err))

	_, err = handler.ApplyCertificate("lenient", selfSignedPEM)
	require.NoError(t, err)
}

func TestApplyCertificateBrokenChain(t *testing.T) {
	handler, _ := newTestHandler(t, []config.ModuleConfig{
		{ID: "online", Plugin: "fakemodule"},
	})

	ca := newTestCA(t)
	otherCA := newTestCA(t)

	csrPEM, err := handler.CreateKey("online", "node0", "")
	require.NoError(t, err)

	block, _ := pem.Decode(ca.issue(t, csrPEM, 1, time.Now().Add(time.Hour)))
	chain := pem.EncodeToMemory(block)
	chain = append(chain, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: otherCA.cert.Raw})...)

	_, err = handler.ApplyCertificate("online", chain)
	require.True(t, trace.IsBadParameter(err))

	_, err = handler.ApplyCertificate("online", []byte("not pem"))
	require.True(t, trace.IsBadParameter(err))
}

func TestGetCertificate(t *testing.T) {
	handler, _ := newTestHandler(t, []config.ModuleConfig{
		{ID: "online", Plugin: "fakemodule"},
	})

	ca := newTestCA(t)

	csrPEM, err := handler.CreateKey("online", "node0", "")
	require.NoError(t, err)
	older, err := handler.ApplyCertificate("online", ca.issue(t, csrPEM, 1, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	csrPEM, err = handler.CreateKey("online", "node0", "")
	require.NoError(t, err)
	newer, err := handler.ApplyCertificate("online", ca.issue(t, csrPEM, 2, time.Now().Add(2*time.Hour)))
	require.NoError(t, err)

	info, err := handler.GetCertificate("online", nil, "")
	require.NoError(t, err)
	require.Equal(t, newer.GetSerial(), info.GetSerial())

	info, err = handler.GetCertificate("online", older.GetIssuer(), older.GetSerial())
	require.NoError(t, err)
	require.Equal(t, older.GetCertUrl(), info.GetCertUrl())

	_, err = handler.GetCertificate("online", nil, "DEAD")
	require.True(t, trace.IsNotFound(err))
}

func TestMaxItems(t *testing.T) {
	handler, db := newTestHandler(t, []config.ModuleConfig{
		{ID: "online", Plugin: "fakemodule", MaxItems: 2},
	})

	ca := newTestCA(t)

	var first *iamv5.CertInfo
	for i := 0; i < 3; i++ {
		csrPEM, err := handler.CreateKey("online", "node0", "")
		require.NoError(t, err)

		notAfter := time.Now().Add(time.Duration(i+1) * time.Hour)
		info, err := handler.ApplyCertificate("online", ca.issue(t, csrPEM, int64(i+1), notAfter))
		require.NoError(t, err)

		if i == 0 {
			first = info
		}
	}

	infos, err := db.GetCertsInfo("online")
	require.NoError(t, err)
	require.Len(t, infos, 2)

	for _, info := range infos {
		require.NotEqual(t, first.GetCertUrl(), info.GetCertUrl())
	}

	require.Equal(t, []string{first.GetCertUrl()}, testModules["online"].removed)
}

func TestClear(t *testing.T) {
	handler, _ := newTestHandler(t, []config.ModuleConfig{
		{ID: "online", Plugin: "fakemodule"},
	})

	ca := newTestCA(t)

	csrPEM, err := handler.CreateKey("online", "node0", "")
	require.NoError(t, err)
	_, err = handler.ApplyCertificate("online", ca.issue(t, csrPEM, 1, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, handler.Clear("online"))
	require.Equal(t, 1, testModules["online"].cleared)

	_, err = handler.GetCertificate("online", nil, "")
	require.True(t, trace.IsNotFound(err))
}

func TestSetOwnerAndTLSCertificate(t *testing.T) {
	handler, _ := newTestHandler(t, []config.ModuleConfig{
		{ID: "online", Plugin: "fakemodule"},
	})

	require.NoError(t, handler.SetOwner("online", "secret"))
	require.Equal(t, "secret", testModules["online"].owner)

	ca := newTestCA(t)
	csrPEM, err := handler.CreateKey("online", "node0", "")
	require.NoError(t, err)
	info, err := handler.ApplyCertificate("online", ca.issue(t, csrPEM, 1, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	cert, err := handler.TLSCertificate("online")
	require.NoError(t, err)
	require.NotEmpty(t, cert.Certificate)

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	require.Equal(t, info.GetSerial(), fmt.Sprintf("%X", leaf.SerialNumber))
}
