package infrastructure

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"veroxos/internal/modules/realtime/domain"
)

// Client is one websocket connection. Its joined set is mutated only by its
// own commands (under the hub lock) and by its disconnect.
type Client struct {
	id         string
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{}
	joined     map[string]struct{}
	commands   *CommandProcessor
	receiveAll bool
	closeOnce  sync.Once
}

// NewClient wraps a websocket connection with a buffered outbound queue.
func NewClient(hub *Hub, conn *websocket.Conn, buf int, commands *CommandProcessor) *Client {
	if buf < 1 {
		buf = 8
	}
	return &Client{
		id:       uuid.NewString(),
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, buf),
		done:     make(chan struct{}),
		joined:   make(map[string]struct{}),
		commands: commands,
	}
}

// ID returns the connection identity assigned at attach time.
func (c *Client) ID() string { return c.id }

// close signals shutdown and closes the connection. The send channel is
// never closed: broadcasts may race a disconnect, and a send on a closed
// channel would panic the broadcaster. Senders observe done instead.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// closed reports whether the client has been shut down.
func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// enqueue hands a frame to the write pump without blocking. Frames for a
// closed client are dropped; a false return means the buffer is full.
func (c *Client) enqueue(data []byte) bool {
	if c.closed() {
		return true
	}
	select {
	case c.send <- data:
		return true
	case <-c.done:
		return true
	default:
		return false
	}
}

// SendMessage queues a frame for delivery. A full buffer detaches the
// client; a slow consumer must not block anyone else.
func (c *Client) SendMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("ws marshal error", slog.Any("error", err))
		return
	}
	if !c.enqueue(data) {
		slog.Warn("ws send buffer full", slog.String("clientId", c.id))
		go c.hub.detachClient(c)
	}
}

// WritePump drains the send queue onto the wire and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("ws write error", slog.String("clientId", c.id), slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				slog.Warn("ws ping error", slog.String("clientId", c.id), slog.Any("error", err))
				return
			}
		}
	}
}

// ReadPump consumes client commands until the connection drops, then
// detaches the client from the hub.
func (c *Client) ReadPump() {
	c.conn.SetReadLimit(1 << 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("ws read error", slog.String("clientId", c.id), slog.Any("error", err))
			}
			return
		}
		if c.commands != nil {
			c.commands.Process(c, cmd)
		}
	}
}
