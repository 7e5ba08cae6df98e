// Package pkcs11 implements a certificate storage module backed by a
// PKCS#11 token. Keys never leave the token, certificates are imported
// next to their keys and addressed by RFC 7512 URLs.
package pkcs11

import (
	"bytes"
	"crypto"
	"crypto/elliptic"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/ThalesIgnite/crypto11"
	"github.com/google/uuid"
	"github.com/gravitational/trace"
	p11 "github.com/miekg/pkcs11"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/lib/certhandler"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/utils"
)

// PluginName is the plugin id used in the cert module config.
const PluginName = "pkcs11module"

const (
	rsaKeyBits     = 2048
	maxPendingKeys = 16
	tokenLabelLen  = 32
)

func init() {
	certhandler.RegisterPlugin(PluginName, New)
}

type moduleParams struct {
	Library         string `json:"library"`
	SlotID          *int   `json:"slotId"`
	TokenLabel      string `json:"tokenLabel"`
	UserPINPath     string `json:"userPinPath"`
	ModulePathInURL bool   `json:"modulePathInUrl"`
}

type pendingKey struct {
	id  uuid.UUID
	key crypto11.Signer
}

// Module keeps keys and certificates of one certificate type on a
// PKCS#11 token.
type Module struct {
	certType   string
	algorithm  string
	tokenLabel string
	params     moduleParams
	log        *slog.Logger

	mu      sync.Mutex
	ctx     *crypto11.Context
	pending []pendingKey
}

// New creates the module from its config entry.
func New(cfg config.ModuleConfig) (certhandler.Module, error) {
	var params moduleParams
	if len(cfg.Params) != 0 {
		if err := json.Unmarshal(cfg.Params, &params); err != nil {
			return nil, trace.BadParameter("invalid pkcs11 module params: %v", err)
		}
	}

	if params.Library == "" {
		return nil, trace.BadParameter("pkcs11 library path is required for module %q", cfg.ID)
	}
	if params.UserPINPath == "" {
		return nil, trace.BadParameter("userPinPath is required for module %q", cfg.ID)
	}

	algorithm := strings.ToLower(cfg.Algorithm)
	switch algorithm {
	case "":
		algorithm = "rsa"
	case "rsa", "ecc":
	default:
		return nil, trace.BadParameter("unsupported algorithm %q for module %q", cfg.Algorithm, cfg.ID)
	}

	tokenLabel := params.TokenLabel
	if tokenLabel == "" {
		tokenLabel = cfg.ID
	}

	return &Module{
		certType:   cfg.ID,
		algorithm:  algorithm,
		tokenLabel: tokenLabel,
		params:     params,
		log: slog.With(
			fleetiam.ComponentKey, fleetiam.ComponentCertHandler,
			"module", PluginName, "type", cfg.ID),
	}, nil
}

// SetOwner initializes the token with the given password and stores
// the PIN for later sessions. An empty password generates a random one.
func (m *Module) SetOwner(password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pin := password
	if pin == "" {
		pin = uuid.NewString()
	}

	m.closeContextLocked()
	m.pending = nil

	if err := m.initToken(pin); err != nil {
		return trace.Wrap(err)
	}

	if err := utils.WriteFileAtomic(m.params.UserPINPath, []byte(pin), 0o600); err != nil {
		return trace.Wrap(err)
	}

	m.log.Info("Token initialized", "token", m.tokenLabel)

	return nil
}

// Clear wipes the token by reinitializing it with the stored PIN.
func (m *Module) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pin, err := m.readPIN()
	if err != nil {
		if trace.IsNotFound(err) {
			return nil
		}
		return trace.Wrap(err)
	}

	m.closeContextLocked()
	m.pending = nil

	return trace.Wrap(m.initToken(pin))
}

// CreateKey generates a key pair on the token and keeps it pending
// until a matching certificate is applied.
func (m *Module) CreateKey(password string) (crypto.Signer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, err := m.contextLocked()
	if err != nil {
		return nil, trace.Wrap(err)
	}

	id, err := findUnusedID(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	var key crypto11.Signer
	switch m.algorithm {
	case "rsa":
		key, err = ctx.GenerateRSAKeyPairWithLabel(id[:], []byte(m.tokenLabel), rsaKeyBits)
	case "ecc":
		key, err = ctx.GenerateECDSAKeyPairWithLabel(id[:], []byte(m.tokenLabel), elliptic.P256())
	default:
		return nil, trace.BadParameter("unsupported algorithm %q", m.algorithm)
	}
	if err != nil {
		return nil, trace.Wrap(err)
	}

	if len(m.pending) >= maxPendingKeys {
		dropped := m.pending[0]
		m.pending = m.pending[1:]
		m.log.Warn("Max pending keys reached, dropping oldest", "id", dropped.id)

		if err := dropped.key.Delete(); err != nil {
			m.log.Warn("Failed to delete dropped key", "id", dropped.id, "error", err)
		}
	}
	m.pending = append(m.pending, pendingKey{id: id, key: key})

	return key, nil
}

// ApplyCertificate imports the leaf certificate next to its pending
// key and returns the object URLs.
func (m *Module) ApplyCertificate(certs []*x509.Certificate) (string, string, error) {
	if len(certs) == 0 {
		return "", "", trace.BadParameter("empty certificate chain")
	}
	leaf := certs[0]

	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, err := m.contextLocked()
	if err != nil {
		return "", "", trace.Wrap(err)
	}

	index := -1
	for i, pending := range m.pending {
		equal, err := publicKeysEqual(pending.key.Public(), leaf.PublicKey)
		if err != nil {
			return "", "", trace.Wrap(err)
		}
		if equal {
			index = i
			break
		}
	}
	if index < 0 {
		return "", "", trace.NotFound("no pending key matches the certificate public key")
	}

	id := m.pending[index].id
	m.pending = append(m.pending[:index], m.pending[index+1:]...)

	if err := ctx.ImportCertificateWithLabel(id[:], []byte(m.tokenLabel), leaf); err != nil {
		return "", "", trace.Wrap(err)
	}

	objectURL := m.objectURL(id)

	return objectURL, objectURL, nil
}

// RemoveCertificate deletes the certificate and its key pair from the
// token.
func (m *Module) RemoveCertificate(certURL, keyURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, err := m.contextLocked()
	if err != nil {
		return trace.Wrap(err)
	}

	id, err := parseObjectID(certURL)
	if err != nil {
		return trace.Wrap(err)
	}

	if err := ctx.DeleteCertificate(id[:], []byte(m.tokenLabel), nil); err != nil {
		return trace.Wrap(err)
	}

	keyID, err := parseObjectID(keyURL)
	if err != nil {
		return trace.Wrap(err)
	}

	key, err := ctx.FindKeyPair(keyID[:], []byte(m.tokenLabel))
	if err != nil {
		return trace.Wrap(err)
	}
	if key != nil {
		return trace.Wrap(key.Delete())
	}

	return nil
}

// TLSCertificate assembles a TLS certificate with the token resident
// key as its signer.
func (m *Module) TLSCertificate(certURL, keyURL string) (tls.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, err := m.contextLocked()
	if err != nil {
		return tls.Certificate{}, trace.Wrap(err)
	}

	certID, err := parseObjectID(certURL)
	if err != nil {
		return tls.Certificate{}, trace.Wrap(err)
	}

	cert, err := ctx.FindCertificate(certID[:], []byte(m.tokenLabel), nil)
	if err != nil {
		return tls.Certificate{}, trace.Wrap(err)
	}
	if cert == nil {
		return tls.Certificate{}, trace.NotFound("certificate %q is not found on token", certURL)
	}

	keyID, err := parseObjectID(keyURL)
	if err != nil {
		return tls.Certificate{}, trace.Wrap(err)
	}

	key, err := ctx.FindKeyPair(keyID[:], []byte(m.tokenLabel))
	if err != nil {
		return tls.Certificate{}, trace.Wrap(err)
	}
	if key == nil {
		return tls.Certificate{}, trace.NotFound("key %q is not found on token", keyURL)
	}

	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}, nil
}

// Close releases the token sessions.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeContextLocked()

	return nil
}

func (m *Module) contextLocked() (*crypto11.Context, error) {
	if m.ctx != nil {
		return m.ctx, nil
	}

	pin, err := m.readPIN()
	if err != nil {
		return nil, trace.Wrap(err)
	}

	cryptoConfig := &crypto11.Config{
		Path: m.params.Library,
		Pin:  pin,
	}
	if m.params.SlotID != nil {
		cryptoConfig.SlotNumber = m.params.SlotID
	} else {
		cryptoConfig.TokenLabel = m.tokenLabel
	}

	ctx, err := crypto11.Configure(cryptoConfig)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	m.ctx = ctx

	return ctx, nil
}

func (m *Module) closeContextLocked() {
	if m.ctx == nil {
		return
	}
	if err := m.ctx.Close(); err != nil {
		m.log.Warn("Failed to close pkcs11 context", "error", err)
	}
	m.ctx = nil
}

func (m *Module) readPIN() (string, error) {
	data, err := os.ReadFile(m.params.UserPINPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", trace.NotFound("PIN file %q is not found, token is not owned", m.params.UserPINPath)
		}
		return "", trace.ConvertSystemError(err)
	}

	return strings.TrimSpace(string(data)), nil
}

// initToken reinitializes the token and sets the user PIN. All token
// objects are destroyed.
func (m *Module) initToken(pin string) error {
	lib := p11.New(m.params.Library)
	if lib == nil {
		return trace.BadParameter("failed to load pkcs11 library %q", m.params.Library)
	}
	defer lib.Destroy()

	if err := lib.Initialize(); err != nil {
		return trace.Wrap(err)
	}
	defer lib.Finalize()

	slot, err := m.findSlot(lib)
	if err != nil {
		return trace.Wrap(err)
	}

	if err := lib.InitToken(slot, pin, fmt.Sprintf("%-*s", tokenLabelLen, m.tokenLabel)); err != nil {
		return trace.Wrap(err)
	}

	session, err := lib.OpenSession(slot, p11.CKF_SERIAL_SESSION|p11.CKF_RW_SESSION)
	if err != nil {
		return trace.Wrap(err)
	}
	defer lib.CloseSession(session)

	if err := lib.Login(session, p11.CKU_SO, pin); err != nil {
		return trace.Wrap(err)
	}
	defer lib.Logout(session)

	return trace.Wrap(lib.InitPIN(session, pin))
}

func (m *Module) findSlot(lib *p11.Ctx) (uint, error) {
	slots, err := lib.GetSlotList(true)
	if err != nil {
		return 0, trace.Wrap(err)
	}

	if m.params.SlotID != nil {
		want := uint(*m.params.SlotID)
		for _, slot := range slots {
			if slot == want {
				return want, nil
			}
		}
		return 0, trace.NotFound("pkcs11 slot %d is not present", want)
	}

	for _, slot := range slots {
		info, err := lib.GetTokenInfo(slot)
		if err != nil {
			return 0, trace.Wrap(err)
		}
		if strings.TrimRight(info.Label, " \x00") == m.tokenLabel {
			return slot, nil
		}
	}

	// A factory fresh token keeps its default label until InitToken.
	if len(slots) != 0 {
		return slots[0], nil
	}

	return 0, trace.NotFound("no pkcs11 slots with tokens are present")
}

func (m *Module) objectURL(id uuid.UUID) string {
	objectURL := fmt.Sprintf("pkcs11:token=%s;id=%s",
		url.QueryEscape(m.tokenLabel), url.QueryEscape(id.String()))

	if m.params.ModulePathInURL {
		objectURL += "?module-path=" + url.QueryEscape(m.params.Library)
	}

	return objectURL
}

func parseObjectID(rawURL string) (uuid.UUID, error) {
	const scheme = "pkcs11:"

	if !strings.HasPrefix(rawURL, scheme) {
		return uuid.Nil, trace.BadParameter("not a pkcs11 URL: %q", rawURL)
	}

	opaque := strings.TrimPrefix(rawURL, scheme)
	if i := strings.IndexByte(opaque, '?'); i >= 0 {
		opaque = opaque[:i]
	}

	for _, attr := range strings.Split(opaque, ";") {
		name, value, ok := strings.Cut(attr, "=")
		if !ok || name != "id" {
			continue
		}

		unescaped, err := url.QueryUnescape(value)
		if err != nil {
			return uuid.Nil, trace.BadParameter("invalid id in pkcs11 URL %q: %v", rawURL, err)
		}

		id, err := uuid.Parse(unescaped)
		if err != nil {
			return uuid.Nil, trace.BadParameter("invalid id in pkcs11 URL %q: %v", rawURL, err)
		}

		return id, nil
	}

	return uuid.Nil, trace.BadParameter("no id attribute in pkcs11 URL %q", rawURL)
}

func findUnusedID(ctx *crypto11.Context) (uuid.UUID, error) {
	const maxIterations = 100

	for i := 0; i < maxIterations; i++ {
		id := uuid.New()

		existing, err := ctx.FindKeyPair(id[:], nil)
		if err != nil {
			return uuid.Nil, trace.Wrap(err)
		}
		if existing == nil {
			return id, nil
		}
	}

	return uuid.Nil, trace.AlreadyExists("failed to find unused CKA_ID on token")
}

func publicKeysEqual(a, b crypto.PublicKey) (bool, error) {
	derA, err := x509.MarshalPKIXPublicKey(a)
	if err != nil {
		return false, trace.Wrap(err)
	}

	derB, err := x509.MarshalPKIXPublicKey(b)
	if err != nil {
		return false, trace.Wrap(err)
	}

	return bytes.Equal(derA, derB), nil
}
