package realtime

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// WebSocketConn serialises writes to a websocket.Conn; the underlying
// connection allows one concurrent writer.
type WebSocketConn struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

func (w *WebSocketConn) WriteMessage(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteMessage(websocket.TextMessage, data)
}
