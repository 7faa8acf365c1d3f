package main

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

// Client is one connected peer: identity plus the websocket transport.
// The hub and rooms hold non-owning references and only ever touch it
// through Enqueue and Terminate; the pumps own the connection itself.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	peerID string // immutable after construction
	ip     string
	send   chan []byte

	mu   sync.Mutex
	name string
	room *Room // guarded by hub.mu, not mu

	// Unix nanos of the last inbound frame, any frame including
	// malformed ones. Read by the reaper.
	lastActive atomic.Int64

	sendMu   sync.Mutex
	closed   bool
	termOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, ip string) *Client {
	c := &Client{
		hub:    hub,
		conn:   conn,
		peerID: NewPeerID(),
		ip:     ip,
		name:   GenerateDisplayName(),
		send:   make(chan []byte, sendBufferSize),
	}
	c.Touch()
	return c
}

func (c *Client) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Client) SetName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

func (c *Client) Touch() {
	c.lastActive.Store(time.Now().UnixNano())
}

func (c *Client) LastActive() time.Time {
	return time.Unix(0, c.lastActive.Load())
}

// Enqueue marshals an envelope onto the send queue without blocking.
// A full queue drops the message; delivery is fire-and-forget and
// failures never feed back into protocol state.
func (c *Client) Enqueue(msg outbound) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error peer=%s type=%s: %v", c.peerID, msg.Type, err)
		return
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		// send buffer full, drop
	}
}

func (c *Client) SendError(message string) {
	c.Enqueue(outbound{Type: msgError, Payload: message})
}

// Terminate forcibly closes the transport. Membership cleanup is not
// done here: closing the connection makes ReadPump return, and its
// deferred disconnect runs the ordinary leave path.
func (c *Client) Terminate() {
	c.termOnce.Do(func() {
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// closeSend releases the write pump. Safe against concurrent Enqueue and
// against being called more than once.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error peer=%s: %v", c.peerID, err)
			}
			return
		}

		// Refresh activity before any decoding so even malformed
		// traffic counts as liveness.
		c.Touch()
		c.hub.HandleMessage(c, message)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
