package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1 MB
)

// Client is one persistent connection. A participant identity can open
// several connections over time but the Session Directory only points at
// the newest one.
type Client struct {
	ID        string
	UserID    string
	RoomToken string
	Conn      *websocket.Conn
	Send      chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn, userID, roomToken string) *Client {
	return &Client{
		ID:        uuid.NewString(),
		UserID:    userID,
		RoomToken: roomToken,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		done:      make(chan struct{}),
	}
}

// Deliver queues data for the write pump without ever blocking the
// caller. A full buffer or a closing client reports false; the message
// is dropped, which is the designed best-effort behaviour.
func (c *Client) Deliver(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.Conn.Close()
	})
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

// writePump: take data from c.Send and send to socket + ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			if _, err := w.Write(msg); err != nil {
				_ = w.Close()
				return
			}

			_ = w.Close()

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump: read inbound frames and hand them to the router + handle
// pong for keep-alive. Returns when the connection dies.
func (c *Client) readPump(handle func(*Client, []byte)) {
	defer c.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		handle(c, data)
	}
}
