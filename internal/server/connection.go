package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/ph4n70mr1ddl3r/holdem/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection wraps one WebSocket client. Before the join handshake the
// connection has no seat; afterwards every frame is routed to the room.
type Connection struct {
	conn      *websocket.Conn
	send      chan []byte
	room      *Room
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu   sync.RWMutex
	seat int
}

// NewConnection creates a connection wrapper around an upgraded socket.
func NewConnection(conn *websocket.Conn, room *Room, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:   conn,
		send:   make(chan []byte, 256),
		room:   room,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		seat:   -1,
	}
}

// Start begins the read and write pumps.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Done is closed when the connection has shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Send implements Sender: marshal and queue one message. A full buffer
// drops the connection rather than blocking the room.
func (c *Connection) Send(msg interface{}) error {
	data, err := protocol.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection", "seat", c.Seat())
		_ = c.Close()
		return websocket.ErrCloseSent
	}
}

// Seat returns the seat assigned at join time, -1 before.
func (c *Connection) Seat() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seat
}

func (c *Connection) setSeat(seat int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seat = seat
}

// readPump handles incoming frames. The first frame must be a join.
func (c *Connection) readPump() {
	defer func() {
		if seat := c.Seat(); seat >= 0 {
			c.room.Disconnect(seat)
		}
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			return
		}

		if c.Seat() < 0 {
			c.handleJoin(data)
			continue
		}
		c.room.HandleMessage(c.Seat(), data)
	}
}

func (c *Connection) handleJoin(data []byte) {
	msg, err := protocol.Decode(data)
	if err != nil {
		_ = c.Send(&protocol.Error{Type: protocol.TypeError, Code: protocol.CodeBadMessage, Message: err.Error()})
		return
	}
	join, ok := msg.(*protocol.Join)
	if !ok {
		_ = c.Send(&protocol.Error{Type: protocol.TypeError, Code: protocol.CodeBadMessage, Message: "join expected"})
		return
	}

	seat, id, err := c.room.Join(join.Name, c)
	if err != nil {
		_ = c.Send(&protocol.Error{Type: protocol.TypeError, Code: protocol.CodeTableNotReady, Message: err.Error()})
		_ = c.Close()
		return
	}
	c.setSeat(seat)
	c.logger.Info("joined", "seat", seat, "name", join.Name, "id", id)
}

// writePump drains the send channel to the socket and keeps the
// connection alive with pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
