package visident_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"

	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/identity"
	"github.com/edgefleet/fleetiam/lib/identity/visident"
	"github.com/edgefleet/fleetiam/lib/logutils"
)

const (
	testVINPath       = "Attribute.Vehicle.VehicleIdentification.VIN"
	testUnitModelPath = "Attribute.Aos.UnitModel"
	testSubjectsPath  = "Attribute.Aos.Subjects"
)

func TestMain(m *testing.M) {
	logutils.InitLoggerForTests()
	os.Exit(m.Run())
}

type visServer struct {
	httpServer *httptest.Server
	upgrader   websocket.Upgrader

	mu             sync.Mutex
	conn           *websocket.Conn
	values         map[string]any
	subscriptionID string
	getCount       int

	writeMu sync.Mutex
}

func newVISServer(t *testing.T, values map[string]any) *visServer {
	t.Helper()

	s := &visServer{values: values}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.httpServer.Close)

	return s
}

func (s *visServer) url() string {
	return "ws" + strings.TrimPrefix(s.httpServer.URL, "http")
}

func (s *visServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		action, _ := msg["action"].(string)
		requestID, _ := msg["requestId"].(string)
		path, _ := msg["path"].(string)

		response := map[string]any{"action": action, "requestId": requestID}

		switch action {
		case "get":
			s.mu.Lock()
			s.getCount++
			response["value"] = s.values[path]
			s.mu.Unlock()
		case "subscribe":
			s.mu.Lock()
			s.subscriptionID = fmt.Sprintf("sub-%s", requestID)
			response["subscriptionId"] = s.subscriptionID
			s.mu.Unlock()
		case "unsubscribeAll":
		}

		out, err := json.Marshal(response)
		if err != nil {
			continue
		}

		s.writeMu.Lock()
		conn.WriteMessage(websocket.TextMessage, out)
		s.writeMu.Unlock()
	}
}

func (s *visServer) subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.subscriptionID != ""
}

func (s *visServer) gets() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getCount
}

func (s *visServer) notifySubjects(t *testing.T, subjects []string) {
	t.Helper()

	s.mu.Lock()
	conn, subscriptionID := s.conn, s.subscriptionID
	s.mu.Unlock()

	require.NotNil(t, conn)

	out, err := json.Marshal(map[string]any{
		"action":         "subscription",
		"subscriptionId": subscriptionID,
		"value":          map[string][]string{testSubjectsPath: subjects},
	})
	require.NoError(t, err)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, out))
}

type subjectsRecorder struct {
	ch chan []string
}

func (r *subjectsRecorder) OnSubjectsChanged(subjects []string) {
	r.ch <- subjects
}

func newTestProvider(t *testing.T, server *visServer, observer identity.SubjectsObserver) identity.Provider {
	t.Helper()

	params, err := json.Marshal(map[string]string{
		"visServer":        server.url(),
		"webSocketTimeout": "5s",
	})
	require.NoError(t, err)

	provider, err := identity.New(config.PluginConfig{Plugin: visident.PluginName, Params: params}, observer)
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })

	return provider
}

func TestGetIdentity(t *testing.T) {
	server := newVISServer(t, map[string]any{
		testVINPath:       map[string]string{testVINPath: "VIN1234567"},
		testUnitModelPath: "model-x;1.0",
		testSubjectsPath:  map[string][]string{testSubjectsPath: {"subject1", "subject2"}},
	})

	provider := newTestProvider(t, server, nil)

	systemID, err := provider.GetSystemID()
	require.NoError(t, err)
	require.Equal(t, "VIN1234567", systemID)

	unitModel, err := provider.GetUnitModel()
	require.NoError(t, err)
	require.Equal(t, "model-x;1.0", unitModel)

	subjects, err := provider.GetSubjects()
	require.NoError(t, err)
	require.Equal(t, []string{"subject1", "subject2"}, subjects)

	// Cached values do not hit the server again.
	gets := server.gets()

	systemID, err = provider.GetSystemID()
	require.NoError(t, err)
	require.Equal(t, "VIN1234567", systemID)
	require.Equal(t, gets, server.gets())
}

func TestSubjectsNotification(t *testing.T) {
	server := newVISServer(t, map[string]any{
		testSubjectsPath: map[string][]string{testSubjectsPath: {"subject1"}},
	})

	recorder := &subjectsRecorder{ch: make(chan []string, 8)}
	provider := newTestProvider(t, server, recorder)

	require.Eventually(t, server.subscribed, 5*time.Second, 10*time.Millisecond)

	server.notifySubjects(t, []string{"subject1", "subject2"})

	select {
	case subjects := <-recorder.ch:
		require.Equal(t, []string{"subject1", "subject2"}, subjects)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for subjects notification")
	}

	// The notification populated the cache.
	gets := server.gets()

	subjects, err := provider.GetSubjects()
	require.NoError(t, err)
	require.Equal(t, []string{"subject1", "subject2"}, subjects)
	require.Equal(t, gets, server.gets())
}

func TestMissingVISServer(t *testing.T) {
	_, err := identity.New(config.PluginConfig{
		Plugin: visident.PluginName,
		Params: json.RawMessage(`{"caCertFile":"/etc/ssl/ca.pem"}`),
	}, nil)
	require.True(t, trace.IsBadParameter(err))
}
