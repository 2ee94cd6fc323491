package notify

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer in front of the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan interface{}
}

// Hub fans notification payloads out to each user's open websocket
// connections. A user may hold several connections (multiple tabs).
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]struct{})}
}

// Serve upgrades the HTTP connection and keeps it registered until the
// peer goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan interface{}, 16)}
	h.register(userID, c)
	go h.writeLoop(userID, c)
	go h.readLoop(userID, c)
	return nil
}

func (h *Hub) register(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) unregister(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.clients, userID)
			}
		}
	}
}

func (h *Hub) readLoop(userID string, c *client) {
	defer func() {
		h.unregister(userID, c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(userID string, c *client) {
	for payload := range c.send {
		if err := c.conn.WriteJSON(payload); err != nil {
			log.WithError(err).WithField("user_id", userID).Debug("Websocket write failed")
			c.conn.Close()
			return
		}
	}
	// Channel closed by unregister: say goodbye and drop the connection so
	// the read loop unblocks too.
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
	c.conn.Close()
}

// Publish delivers a payload to every live connection of one user. Slow
// consumers are dropped rather than blocking the caller.
//
// Sends happen while the read lock is held: unregister is the only place
// that closes a send channel and it does so under the write lock, so a
// send here can never race the close.
func (h *Hub) Publish(userID string, payload interface{}) {
	h.mu.RLock()
	var slow []*client
	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.unregister(userID, c)
	}
}
