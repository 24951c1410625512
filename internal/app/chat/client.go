/*
Package chat contains the messaging business logic.

This file defines the Client struct, representing an active WebSocket connection.
It manages the heartbeat and communication loops (ReadPump and WritePump) and
implements the presence.Conn interface consumed by the real-time core.
*/
package chat

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"dmchat/internal/app/presence"
	"dmchat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	// Clients send messages over the REST API; inbound socket traffic is
	// heartbeat-sized only.
	maxFrameSize = 512

	// capacity of the outbound event queue per connection.
	sendQueueSize = 256
)

// Client wraps one WebSocket connection. The server pushes presence and message
// events to it; inbound frames beyond the heartbeat are read and discarded.
type Client struct {
	// underlying WebSocket connection object.
	conn *websocket.Conn

	// a buffered channel used to queue events waiting to be sent to the client.
	send chan []byte

	// done is closed exactly once when the connection is no longer usable.
	done chan struct{}

	// once guards the done channel close.
	once sync.Once

	// structured logger with connection context.
	logger zerolog.Logger
}

// compile-time check that Client satisfies the core's connection contract.
var _ presence.Conn = (*Client)(nil)

// NewClient constructs a Client over an upgraded WebSocket connection.
func NewClient(wsConn *websocket.Conn, remoteAddr string) *Client {
	clientLogger := logx.Component("Client").With().
		Str("remote_addr", remoteAddr).
		Logger()

	return &Client{
		conn:   wsConn,
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
		logger: clientLogger,
	}
}

// Push implements presence.Conn. It marshals the event envelope and queues it
// for delivery without blocking: if the outbound queue is full or the
// connection has closed, the event is dropped and an error returned. Callers
// in the real-time core treat that as a contained, best-effort miss.
func (c *Client) Push(event string, payload any) error {
	messageBytes, err := json.Marshal(presence.Event{Event: event, Payload: payload})
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("Error marshaling event for client")
		return err
	}

	select {
	case <-c.done:
		return fmt.Errorf("connection closed")
	default:
	}

	select {
	case c.send <- messageBytes:
		return nil
	default:
		c.logger.Warn().
			Str("event", event).
			Int("queue_len", len(c.send)).
			Msg("Client send queue full, dropping event")
		return fmt.Errorf("client send queue full")
	}
}

// Close implements presence.Conn. It terminates the underlying transport,
// which unblocks ReadPump and lets the lifecycle handler run its disconnect path.
func (c *Client) Close() error {
	c.markDone()
	return c.conn.Close()
}

// Done reports connection closure; the channel is closed when the read loop exits.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) markDone() {
	c.once.Do(func() { close(c.done) })
}

// ReadPump blocks reading from the WebSocket connection until it fails or
// closes. It services the Pong heartbeat and discards any other inbound frames.
// Its return is the transport's disconnect signal: the caller runs the session
// disconnect path afterwards.
func (c *Client) ReadPump() {
	defer func() {
		c.markDone()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error")
		}
	}()

	c.conn.SetReadLimit(maxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			return
		}
	}
}

// WritePump handles writing queued events to the WebSocket connection and
// sends periodic Ping messages to maintain the heartbeat.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message := <-c.send:
			if !c.writeQueuedMessage(message) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}

		case <-c.done:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err == nil {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
			}
			return
		}
	}
}

// writeQueuedMessage writes one queued event to the WebSocket.
// Returns true if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedMessage(message []byte) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping message to maintain the connection heartbeat.
// Returns false if the WritePump loop should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
