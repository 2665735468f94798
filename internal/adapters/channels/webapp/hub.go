package webapp

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
)

// Message is one frame pushed over a live connection.
type Message struct {
	Topic string      `json:"topic"`
	Data  interface{} `json:"data"`
}

// Hub tracks currently connected clients by the topics they subscribed to and
// publishes payloads to them. Delivery is best effort: a disconnected client
// simply misses the frame, the notification stays retrievable via the feed.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]map[*websocket.Conn]struct{}
	upgrader    websocket.Upgrader
	logger      *types.Logger
}

func NewHub(logger *types.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// Subscribe registers a connection for a topic.
func (h *Hub) Subscribe(conn *websocket.Conn, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[*websocket.Conn]struct{})
	}
	h.subscribers[topic][conn] = struct{}{}
}

// Unsubscribe drops a connection from every topic and closes it.
func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.subscribers {
		delete(conns, conn)
	}
	conn.Close()
}

// Publish sends the payload to every subscriber of the topic. Connections
// that fail to take the frame are dropped.
func (h *Hub) Publish(topic string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.subscribers[topic] {
		if err := conn.WriteJSON(Message{Topic: topic, Data: payload}); err != nil {
			h.logger.Debugf("dropping live connection on %s: %v", topic, err)
			delete(h.subscribers[topic], conn)
			conn.Close()
		}
	}
}

// ServeWS upgrades an HTTP request to a websocket subscribed to the topics
// given as repeated "topic" query parameters, then blocks reading until the
// client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	for _, topic := range r.URL.Query()["topic"] {
		h.Subscribe(conn, topic)
	}

	go func() {
		defer h.Unsubscribe(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
