// Package visident implements the identity provider backed by a
// Vehicle Information Service websocket endpoint. Requests are
// correlated by uuid request ids, subject changes arrive as
// subscription notifications.
package visident

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/identity"
)

// PluginName is the plugin id used in the identifier config.
const PluginName = "visidentifier"

const (
	vinVISPath       = "Attribute.Vehicle.VehicleIdentification.VIN"
	unitModelVISPath = "Attribute.Aos.UnitModel"
	subjectsVISPath  = "Attribute.Aos.Subjects"

	actionGet            = "get"
	actionSubscribe      = "subscribe"
	actionNotification   = "subscription"
	actionUnsubscribeAll = "unsubscribeAll"

	reconnectInterval = 2 * time.Second
	defaultTimeout    = 120 * time.Second
)

func init() {
	identity.RegisterPlugin(PluginName, New)
}

type moduleParams struct {
	VISServer        string          `json:"visServer"`
	CACertFile       string          `json:"caCertFile"`
	WebSocketTimeout config.Duration `json:"webSocketTimeout"`
}

type visMessage struct {
	Action         string          `json:"action"`
	RequestID      string          `json:"requestId,omitempty"`
	Path           string          `json:"path,omitempty"`
	SubscriptionID string          `json:"subscriptionId,omitempty"`
	Value          json.RawMessage `json:"value,omitempty"`
}

// Provider resolves identity over a VIS websocket connection.
type Provider struct {
	params   moduleParams
	timeout  time.Duration
	observer identity.SubjectsObserver
	dialer   websocket.Dialer
	log      *slog.Logger

	mu             sync.Mutex
	conn           *websocket.Conn
	connected      chan struct{}
	pending        map[string]chan visMessage
	subscriptionID string
	systemID       string
	unitModel      string
	subjects       []string

	writeMu sync.Mutex

	closeOnce sync.Once
	closed    chan struct{}
	done      chan struct{}
}

// New creates the provider and starts its connection loop.
func New(cfg config.PluginConfig, observer identity.SubjectsObserver) (identity.Provider, error) {
	var params moduleParams
	if len(cfg.Params) != 0 {
		if err := json.Unmarshal(cfg.Params, &params); err != nil {
			return nil, trace.BadParameter("invalid VIS identifier params: %v", err)
		}
	}

	if params.VISServer == "" {
		return nil, trace.BadParameter("visServer is required")
	}

	timeout := params.WebSocketTimeout.Duration
	if timeout == 0 {
		timeout = defaultTimeout
	}

	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	if params.CACertFile != "" {
		caPEM, err := os.ReadFile(params.CACertFile)
		if err != nil {
			return nil, trace.ConvertSystemError(err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, trace.BadParameter("no certificates in %q", params.CACertFile)
		}
		dialer.TLSClientConfig = &tls.Config{RootCAs: pool}
	}

	p := &Provider{
		params:    params,
		timeout:   timeout,
		observer:  observer,
		dialer:    dialer,
		log:       slog.With(fleetiam.ComponentKey, fleetiam.ComponentIdentity, "plugin", PluginName),
		connected: make(chan struct{}),
		pending:   make(map[string]chan visMessage),
		closed:    make(chan struct{}),
		done:      make(chan struct{}),
	}

	go p.run()

	return p, nil
}

// GetSystemID returns the VIN of the unit.
func (p *Provider) GetSystemID() (string, error) {
	p.mu.Lock()
	cached := p.systemID
	p.mu.Unlock()

	if cached != "" {
		return cached, nil
	}

	response, err := p.request(actionGet, vinVISPath)
	if err != nil {
		return "", trace.Wrap(err)
	}

	systemID, err := stringValue(response.Value, vinVISPath)
	if err != nil {
		return "", trace.Wrap(err)
	}
	if systemID == "" {
		return "", trace.NotFound("VIS returned an empty system id")
	}

	p.mu.Lock()
	p.systemID = systemID
	p.mu.Unlock()

	return systemID, nil
}

// GetUnitModel returns the unit model attribute.
func (p *Provider) GetUnitModel() (string, error) {
	p.mu.Lock()
	cached := p.unitModel
	p.mu.Unlock()

	if cached != "" {
		return cached, nil
	}

	response, err := p.request(actionGet, unitModelVISPath)
	if err != nil {
		return "", trace.Wrap(err)
	}

	unitModel, err := stringValue(response.Value, unitModelVISPath)
	if err != nil {
		return "", trace.Wrap(err)
	}
	if unitModel == "" {
		return "", trace.NotFound("VIS returned an empty unit model")
	}

	p.mu.Lock()
	p.unitModel = unitModel
	p.mu.Unlock()

	return unitModel, nil
}

// GetSubjects returns the subject set, from cache when a notification
// already delivered it.
func (p *Provider) GetSubjects() ([]string, error) {
	p.mu.Lock()
	cached := slices.Clone(p.subjects)
	p.mu.Unlock()

	if len(cached) != 0 {
		return cached, nil
	}

	response, err := p.request(actionGet, subjectsVISPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	subjects, err := stringSliceValue(response.Value, subjectsVISPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	p.mu.Lock()
	p.subjects = slices.Clone(subjects)
	p.mu.Unlock()

	return subjects, nil
}

// Close unsubscribes and tears down the connection.
func (p *Provider) Close() error {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()

	if conn != nil {
		// Best effort, the server drops subscriptions on disconnect.
		if err := p.writeMessage(conn, visMessage{Action: actionUnsubscribeAll, RequestID: uuid.NewString()}); err != nil {
			p.log.Debug("Failed to send unsubscribeAll", "error", err)
		}
	}

	p.closeOnce.Do(func() { close(p.closed) })

	if conn != nil {
		conn.Close()
	}

	<-p.done

	p.log.Info("VIS identifier closed")

	return nil
}

func (p *Provider) run() {
	defer close(p.done)

	for {
		if err := p.connectAndServe(); err != nil {
			p.log.Warn("VIS connection failed", "server", p.params.VISServer, "error", err)
		}

		select {
		case <-p.closed:
			return
		case <-time.After(reconnectInterval):
			p.log.Debug("Reconnecting to VIS", "server", p.params.VISServer)
		}
	}
}

func (p *Provider) connectAndServe() error {
	conn, resp, err := p.dialer.Dial(p.params.VISServer, nil)
	if resp != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	if err != nil {
		return trace.ConnectionProblem(err, "failed to connect to VIS %q", p.params.VISServer)
	}

	// Unblock the reader when Close is called mid-connection.
	stopWatch := make(chan struct{})
	go func() {
		select {
		case <-p.closed:
			conn.Close()
		case <-stopWatch:
		}
	}()
	defer close(stopWatch)

	p.mu.Lock()
	p.conn = conn
	// Identity data may differ after a reconnect.
	p.systemID, p.unitModel, p.subjects = "", "", nil
	p.subscriptionID = ""
	close(p.connected)
	p.mu.Unlock()

	p.log.Info("Connected to VIS", "server", p.params.VISServer)

	readerDone := make(chan error, 1)
	go func() { readerDone <- p.readLoop(conn) }()

	if err := p.subscribe(); err != nil {
		p.log.Warn("Failed to subscribe to subjects", "error", err)
		conn.Close()
	}

	err = <-readerDone

	p.teardown(conn)

	return trace.Wrap(err)
}

func (p *Provider) teardown(conn *websocket.Conn) {
	conn.Close()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == conn {
		p.conn = nil
		p.connected = make(chan struct{})
	}

	for id, ch := range p.pending {
		delete(p.pending, id)
		close(ch)
	}
}

func (p *Provider) readLoop(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-p.closed:
				return nil
			default:
			}
			return trace.ConnectionProblem(err, "VIS connection lost")
		}

		var msg visMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.log.Warn("Failed to parse VIS message", "error", err)
			continue
		}

		if msg.Action == actionNotification {
			p.handleNotification(msg)
			continue
		}

		p.mu.Lock()
		ch, ok := p.pending[msg.RequestID]
		if ok {
			delete(p.pending, msg.RequestID)
		}
		p.mu.Unlock()

		if !ok {
			p.log.Warn("Unexpected VIS response", "action", msg.Action, "requestId", msg.RequestID)
			continue
		}

		ch <- msg
	}
}

func (p *Provider) handleNotification(msg visMessage) {
	p.mu.Lock()
	subscriptionID := p.subscriptionID
	p.mu.Unlock()

	if msg.SubscriptionID == "" || msg.SubscriptionID != subscriptionID {
		p.log.Warn("Notification for unknown subscription", "subscriptionId", msg.SubscriptionID)
		return
	}

	subjects, err := stringSliceValue(msg.Value, subjectsVISPath)
	if err != nil {
		p.log.Warn("Failed to parse subjects notification", "error", err)
		return
	}

	p.mu.Lock()
	changed := !slices.Equal(p.subjects, subjects)
	if changed {
		p.subjects = slices.Clone(subjects)
	}
	p.mu.Unlock()

	if !changed {
		return
	}

	p.log.Info("Subjects changed", "count", len(subjects))

	if p.observer != nil {
		p.observer.OnSubjectsChanged(subjects)
	}
}

func (p *Provider) subscribe() error {
	response, err := p.request(actionSubscribe, subjectsVISPath)
	if err != nil {
		return trace.Wrap(err)
	}

	if response.SubscriptionID == "" {
		return trace.BadParameter("empty subscription id in VIS response")
	}

	p.mu.Lock()
	p.subscriptionID = response.SubscriptionID
	p.mu.Unlock()

	return nil
}

func (p *Provider) request(action, path string) (visMessage, error) {
	conn, err := p.waitConnected()
	if err != nil {
		return visMessage{}, trace.Wrap(err)
	}

	id := uuid.NewString()
	ch := make(chan visMessage, 1)

	p.mu.Lock()
	p.pending[id] = ch
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.pending, id)
		p.mu.Unlock()
	}()

	if err := p.writeMessage(conn, visMessage{Action: action, RequestID: id, Path: path}); err != nil {
		return visMessage{}, trace.Wrap(err)
	}

	select {
	case response, ok := <-ch:
		if !ok {
			return visMessage{}, trace.ConnectionProblem(nil, "VIS connection lost")
		}
		return response, nil
	case <-time.After(p.timeout):
		return visMessage{}, trace.LimitExceeded("timeout waiting for VIS response to %q", action)
	case <-p.closed:
		return visMessage{}, trace.ConnectionProblem(nil, "VIS identifier is closed")
	}
}

func (p *Provider) waitConnected() (*websocket.Conn, error) {
	deadline := time.After(p.timeout)

	for {
		p.mu.Lock()
		conn, connected := p.conn, p.connected
		p.mu.Unlock()

		if conn != nil {
			return conn, nil
		}

		select {
		case <-connected:
		case <-p.closed:
			return nil, trace.ConnectionProblem(nil, "VIS identifier is closed")
		case <-deadline:
			return nil, trace.ConnectionProblem(nil, "timeout waiting for VIS connection")
		}
	}
}

func (p *Provider) writeMessage(conn *websocket.Conn, msg visMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return trace.Wrap(err)
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return trace.ConnectionProblem(err, "failed to send VIS message")
	}

	return nil
}

// stringValue extracts a VIS value that is either a plain string or an
// object keyed by the requested path.
func stringValue(raw json.RawMessage, path string) (string, error) {
	if len(raw) == 0 {
		return "", trace.NotFound("no value in VIS response")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var object map[string]string
	if err := json.Unmarshal(raw, &object); err != nil {
		return "", trace.BadParameter("unexpected VIS value format: %s", string(raw))
	}

	value, ok := object[path]
	if !ok {
		return "", trace.NotFound("no %q in VIS response", path)
	}

	return value, nil
}

func stringSliceValue(raw json.RawMessage, path string) ([]string, error) {
	if len(raw) == 0 {
		return nil, trace.NotFound("no value in VIS response")
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var object map[string][]string
	if err := json.Unmarshal(raw, &object); err != nil {
		return nil, trace.BadParameter("unexpected VIS value format: %s", string(raw))
	}

	list, ok := object[path]
	if !ok {
		return nil, trace.NotFound("no %q in VIS response", path)
	}

	return list, nil
}
