package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// client is one connected kiosk front-end
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	server *Server

	closeOnce sync.Once
}

// close stops the pumps. The send channel stays open so a concurrent push
// never writes to a closed channel; its buffer just goes unread.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump delivers front-end events to the session one at a time
func (c *client) readPump() {
	defer func() {
		c.server.mu.Lock()
		if c.server.active == c {
			c.server.active = nil
		}
		c.server.mu.Unlock()
		c.close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Screen read error: %v", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("Malformed screen event: %v", err)
			continue
		}
		c.server.dispatch(event)
	}
}

// writePump ships render payloads and keepalive pings to the front-end
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
