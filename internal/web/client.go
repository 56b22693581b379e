package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512

	sendBufferSize = 256
)

// CommandHandler executes a command read from a client.
type CommandHandler func(ctx context.Context, client *Client, msg ClientMessage)

type registry interface {
	Unregister(client *Client)
}

// Client is a single websocket connection.
type Client struct {
	ID      string
	Send    chan ServerMessage
	conn    *websocket.Conn
	hub     registry
	handler CommandHandler

	mu     sync.Mutex
	closed bool
}

func NewClient(id string, conn *websocket.Conn, hub registry, handler CommandHandler) *Client {
	return &Client{
		ID:      id,
		Send:    make(chan ServerMessage, sendBufferSize),
		conn:    conn,
		hub:     hub,
		handler: handler,
	}
}

// ReadPump reads commands until the connection fails, then unregisters the client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, body, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close", slog.String("id", c.ID), slog.String("error", err.Error()))
			}

			return
		}

		var msg ClientMessage
		if errDecode := json.Unmarshal(body, &msg); errDecode != nil {
			c.TrySend(errorMessage("invalid_message", "failed to parse message"))

			continue
		}

		if ctx.Err() != nil {
			return
		}

		c.handler(ctx, c, msg)
	}
}

// WritePump writes queued messages and keepalive pings until Send is closed.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

			return
		case message, ok := <-c.Send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				slog.Warn("Failed to write message", slog.String("id", c.ID), slog.String("error", err.Error()))

				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues msg without blocking. It returns false if the buffer is full or the client
// has been closed.
func (c *Client) TrySend(msg ServerMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}
