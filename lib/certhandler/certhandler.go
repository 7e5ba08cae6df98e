// Package certhandler owns the certificate storage modules of the
// node: key creation, certificate installation and lookup, and change
// notifications used for endpoint credential rotation.
package certhandler

import (
	"crypto"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/gravitational/trace"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/config"
)

// Module stores keys and certificates of one certificate type.
type Module interface {
	// SetOwner claims the underlying storage with the given password.
	SetOwner(password string) error
	// Clear wipes all keys and certificates.
	Clear() error
	// CreateKey generates a key pair and keeps it pending until a
	// matching certificate is applied.
	CreateKey(password string) (crypto.Signer, error)
	// ApplyCertificate installs the leaf certificate paired with a
	// pending key and returns the storage URLs.
	ApplyCertificate(certs []*x509.Certificate) (certURL, keyURL string, err error)
	// RemoveCertificate deletes the certificate and its key.
	RemoveCertificate(certURL, keyURL string) error
	// TLSCertificate assembles a TLS certificate from the stored URLs.
	TLSCertificate(certURL, keyURL string) (tls.Certificate, error)
	// Close releases the module resources.
	Close() error
}

// NewModuleFunc constructs a module from its config entry.
type NewModuleFunc func(cfg config.ModuleConfig) (Module, error)

var (
	pluginsMu sync.Mutex
	plugins   = make(map[string]NewModuleFunc)
)

// RegisterPlugin makes a module constructor available under the given
// plugin name.
func RegisterPlugin(plugin string, newModule NewModuleFunc) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()

	plugins[plugin] = newModule
}

func newModule(cfg config.ModuleConfig) (Module, error) {
	pluginsMu.Lock()
	newFunc, ok := plugins[cfg.Plugin]
	pluginsMu.Unlock()

	if !ok {
		return nil, trace.BadParameter("unknown cert module plugin %q", cfg.Plugin)
	}

	return newFunc(cfg)
}

// Storage persists certificate info records.
type Storage interface {
	AddCertInfo(certType string, cert *iamv5.CertInfo) error
	RemoveCertInfo(certType, certURL string) error
	RemoveAllCertsInfo(certType string) error
	GetCertInfo(issuer []byte, serial string) (*iamv5.CertInfo, error)
	GetCertsInfo(certType string) ([]*iamv5.CertInfo, error)
}

// CertListener is notified when a certificate of the subscribed type
// is installed.
type CertListener interface {
	OnCertChanged(info *iamv5.CertInfo)
}

type moduleEntry struct {
	cfg    config.ModuleConfig
	module Module
}

// Handler dispatches certificate operations to the configured modules
// and records installed certificates in storage.
type Handler struct {
	storage Storage
	log     *slog.Logger

	mu        sync.Mutex
	modules   map[string]moduleEntry
	listeners map[string]map[CertListener]struct{}
}

// NewHandler builds modules for every enabled config entry.
func NewHandler(cfgs []config.ModuleConfig, storage Storage) (*Handler, error) {
	if storage == nil {
		return nil, trace.BadParameter("missing parameter storage")
	}

	h := &Handler{
		storage:   storage,
		log:       slog.With(fleetiam.ComponentKey, fleetiam.ComponentCertHandler),
		modules:   make(map[string]moduleEntry),
		listeners: make(map[string]map[CertListener]struct{}),
	}

	for _, cfg := range cfgs {
		if cfg.Disabled {
			h.log.Debug("Cert module is disabled", "id", cfg.ID)
			continue
		}

		module, err := newModule(cfg)
		if err != nil {
			h.Close()
			return nil, trace.Wrap(err)
		}
		h.modules[cfg.ID] = moduleEntry{cfg: cfg, module: module}
	}

	return h, nil
}

// GetCertTypes returns the sorted ids of all active modules.
func (h *Handler) GetCertTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	types := make([]string, 0, len(h.modules))
	for id := range h.modules {
		types = append(types, id)
	}
	sort.Strings(types)

	return types
}

// SetOwner claims the storage of the given certificate type.
func (h *Handler) SetOwner(certType, password string) error {
	entry, err := h.moduleEntry(certType)
	if err != nil {
		return trace.Wrap(err)
	}

	return trace.Wrap(entry.module.SetOwner(password))
}

// Clear wipes all keys and certificates of the given type.
func (h *Handler) Clear(certType string) error {
	entry, err := h.moduleEntry(certType)
	if err != nil {
		return trace.Wrap(err)
	}

	if err := entry.module.Clear(); err != nil {
		return trace.Wrap(err)
	}

	return trace.Wrap(h.storage.RemoveAllCertsInfo(certType))
}

// CreateKey generates a key pair for the certificate type and returns
// a PEM encoded CSR for the given subject.
func (h *Handler) CreateKey(certType, subject, password string) ([]byte, error) {
	if subject == "" {
		return nil, trace.BadParameter("missing subject")
	}

	entry, err := h.moduleEntry(certType)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	key, err := entry.module.CreateKey(password)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	csr, err := createCSR(subject, entry.cfg, key)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	h.log.Debug("Key created", "type", certType, "subject", subject)

	return csr, nil
}

// ApplyCertificate validates and installs a PEM encoded certificate
// chain, records the cert info and notifies subscribers.
func (h *Handler) ApplyCertificate(certType string, certPEM []byte) (*iamv5.CertInfo, error) {
	entry, err := h.moduleEntry(certType)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	certs, err := parseCertificateChain(certPEM)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	if !entry.cfg.SkipValidation {
		if err := validateChain(certs, entry.cfg.SelfSigned); err != nil {
			return nil, trace.Wrap(err)
		}
	}

	certURL, keyURL, err := entry.module.ApplyCertificate(certs)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	leaf := certs[0]
	info := &iamv5.CertInfo{
		Type:     certType,
		Issuer:   leaf.RawIssuer,
		Serial:   fmt.Sprintf("%X", leaf.SerialNumber),
		CertUrl:  certURL,
		KeyUrl:   keyURL,
		NotAfter: timestamppb.New(leaf.NotAfter),
	}

	if err := h.storage.AddCertInfo(certType, info); err != nil {
		return nil, trace.Wrap(err)
	}

	if err := h.trimCerts(entry); err != nil {
		return nil, trace.Wrap(err)
	}

	h.log.Info("Certificate applied", "type", certType, "serial", info.GetSerial())

	h.notifyCertChanged(certType, info)

	return info, nil
}

// trimCerts removes the oldest certificates of the module until the
// configured maxItems limit holds.
func (h *Handler) trimCerts(entry moduleEntry) error {
	if entry.cfg.MaxItems == 0 {
		return nil
	}

	infos, err := h.storage.GetCertsInfo(entry.cfg.ID)
	if err != nil {
		return trace.Wrap(err)
	}

	for uint64(len(infos)) > entry.cfg.MaxItems {
		oldest := 0
		for i, info := range infos {
			if info.GetNotAfter().AsTime().Before(infos[oldest].GetNotAfter().AsTime()) {
				oldest = i
			}
		}

		info := infos[oldest]
		h.log.Warn("Max certificates exceeded, removing oldest",
			"type", entry.cfg.ID, "serial", info.GetSerial())

		if err := entry.module.RemoveCertificate(info.GetCertUrl(), info.GetKeyUrl()); err != nil {
			return trace.Wrap(err)
		}
		if err := h.storage.RemoveCertInfo(entry.cfg.ID, info.GetCertUrl()); err != nil {
			return trace.Wrap(err)
		}

		infos = append(infos[:oldest], infos[oldest+1:]...)
	}

	return nil
}

// GetCertificate returns the certificate of the given type matching
// issuer and serial. With both empty, the newest stored certificate of
// the type is returned.
func (h *Handler) GetCertificate(certType string, issuer []byte, serial string) (*iamv5.CertInfo, error) {
	if len(issuer) != 0 || serial != "" {
		info, err := h.storage.GetCertInfo(issuer, serial)
		return info, trace.Wrap(err)
	}

	infos, err := h.storage.GetCertsInfo(certType)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if len(infos) == 0 {
		return nil, trace.NotFound("no certificates of type %q", certType)
	}

	newest := infos[0]
	for _, info := range infos[1:] {
		if info.GetNotAfter().AsTime().After(newest.GetNotAfter().AsTime()) {
			newest = info
		}
	}

	return newest, nil
}

// TLSCertificate loads the newest certificate of the type as a TLS
// certificate ready for use by an endpoint.
func (h *Handler) TLSCertificate(certType string) (tls.Certificate, error) {
	entry, err := h.moduleEntry(certType)
	if err != nil {
		return tls.Certificate{}, trace.Wrap(err)
	}

	info, err := h.GetCertificate(certType, nil, "")
	if err != nil {
		return tls.Certificate{}, trace.Wrap(err)
	}

	cert, err := entry.module.TLSCertificate(info.GetCertUrl(), info.GetKeyUrl())
	return cert, trace.Wrap(err)
}

// SubscribeCertChanged registers a listener for installs of the given
// certificate type.
func (h *Handler) SubscribeCertChanged(certType string, listener CertListener) error {
	if _, err := h.moduleEntry(certType); err != nil {
		return trace.Wrap(err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listeners[certType] == nil {
		h.listeners[certType] = make(map[CertListener]struct{})
	}
	h.listeners[certType][listener] = struct{}{}

	return nil
}

// UnsubscribeCertChanged removes the listener from all types.
func (h *Handler) UnsubscribeCertChanged(listener CertListener) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, listeners := range h.listeners {
		delete(listeners, listener)
	}
}

// Close closes all modules.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, entry := range h.modules {
		if err := entry.module.Close(); err != nil {
			h.log.Warn("Failed to close cert module", "id", id, "error", err)
		}
	}
	h.modules = make(map[string]moduleEntry)
}

func (h *Handler) moduleEntry(certType string) (moduleEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.modules[certType]
	if !ok {
		return moduleEntry{}, trace.NotFound("cert type %q is not found", certType)
	}

	return entry, nil
}

func (h *Handler) notifyCertChanged(certType string, info *iamv5.CertInfo) {
	h.mu.Lock()
	listeners := make([]CertListener, 0, len(h.listeners[certType]))
	for l := range h.listeners[certType] {
		listeners = append(listeners, l)
	}
	h.mu.Unlock()

	for _, l := range listeners {
		l.OnCertChanged(info)
	}
}

var oidExtensionExtendedKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 37}

var extKeyUsageOIDs = map[string]asn1.ObjectIdentifier{
	"serverAuth": {1, 3, 6, 1, 5, 5, 7, 3, 1},
	"clientAuth": {1, 3, 6, 1, 5, 5, 7, 3, 2},
}

func createCSR(subject string, cfg config.ModuleConfig, key crypto.Signer) ([]byte, error) {
	template := &x509.CertificateRequest{
		Subject:  pkix.Name{CommonName: subject},
		DNSNames: cfg.AlternativeNames,
	}

	if len(cfg.ExtendedKeyUsage) != 0 {
		var oids []asn1.ObjectIdentifier
		for _, usage := range cfg.ExtendedKeyUsage {
			oid, ok := extKeyUsageOIDs[usage]
			if !ok {
				return nil, trace.BadParameter("unknown extended key usage %q", usage)
			}
			oids = append(oids, oid)
		}

		value, err := asn1.Marshal(oids)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		template.ExtraExtensions = append(template.ExtraExtensions, pkix.Extension{
			Id:    oidExtensionExtendedKeyUsage,
			Value: value,
		})
	}

	der, err := x509.CreateCertificateRequest(rand.Reader, template, key)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE REQUEST", Bytes: der}), nil
}

func parseCertificateChain(certPEM []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate

	rest := certPEM
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, trace.BadParameter("failed to parse certificate: %v", err)
		}
		certs = append(certs, cert)
	}

	if len(certs) == 0 {
		return nil, trace.BadParameter("no certificates in PEM data")
	}

	return certs, nil
}

// validateChain checks that every certificate is signed by its
// successor. A single self-signed certificate passes only when
// selfSigned is set.
func validateChain(certs []*x509.Certificate, selfSigned bool) error {
	if len(certs) == 1 {
		leaf := certs[0]
		if err := leaf.CheckSignatureFrom(leaf); err == nil {
			if selfSigned {
				return nil
			}
			return trace.BadParameter("self-signed certificate is not allowed for this module")
		}
		return nil
	}

	for i := 0; i < len(certs)-1; i++ {
		if err := certs[i].CheckSignatureFrom(certs[i+1]); err != nil {
			return trace.BadParameter("certificate %q is not signed by %q: %v",
				certs[i].Subject.CommonName, certs[i+1].Subject.CommonName, err)
		}
	}

	return nil
}
