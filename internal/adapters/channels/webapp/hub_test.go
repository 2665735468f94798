package webapp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func httpHandler(hub *Hub) http.Handler {
	return http.HandlerFunc(hub.ServeWS)
}

func dialHub(t *testing.T, server *httptest.Server, hub *Hub, topic string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?topic=" + topic
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// The handler subscribes after the handshake; wait for it to land.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.subscribers[topic]) > 0
	}, time.Second, 10*time.Millisecond)
	return conn
}

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := NewHub(testLogger())
	server := httptest.NewServer(httpHandler(hub))
	defer server.Close()

	topic := Topic(1)
	conn := dialHub(t, server, hub, topic)

	hub.Publish(topic, map[string]string{"id": "n-1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, topic, msg.Topic)
	assert.Equal(t, map[string]interface{}{"id": "n-1"}, msg.Data)
}

func TestHubPublishIgnoresOtherTopics(t *testing.T) {
	hub := NewHub(testLogger())
	server := httptest.NewServer(httpHandler(hub))
	defer server.Close()

	conn := dialHub(t, server, hub, Topic(1))

	hub.Publish(Topic(2), map[string]string{"id": "n-1"})
	hub.Publish(Topic(1), map[string]string{"id": "n-2"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, map[string]interface{}{"id": "n-2"}, msg.Data)
}

func TestHubUnsubscribeOnDisconnect(t *testing.T) {
	hub := NewHub(testLogger())
	server := httptest.NewServer(httpHandler(hub))
	defer server.Close()

	topic := Topic(1)
	conn := dialHub(t, server, hub, topic)
	conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.subscribers[topic]) == 0
	}, time.Second, 10*time.Millisecond)

	// Publishing into the now empty topic must not block or panic.
	hub.Publish(topic, map[string]string{"id": "n-3"})
}
