/*
Package presence implements the real-time core of the chat server: the registry of
live connections keyed by user identity, the broadcaster that announces the online
set, and the relay that pushes newly persisted messages to connected recipients.
*/
package presence

// Wire-level event names pushed to clients over the WebSocket transport.
const (
	// EventOnlineUsers carries the full set of currently online user identities.
	EventOnlineUsers = "getOnlineUsers"

	// EventNewMessage carries a single newly persisted message.
	EventNewMessage = "newMessage"
)

// Event is the envelope for every payload pushed to a client.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Conn is a live, addressable transport session to one client.
//
// A Conn must accept a Push of an arbitrary event payload without blocking the
// caller indefinitely, and must be closable. The registry owns the mapping from
// identity to Conn but never closes a handle on replacement; closing remains the
// transport layer's responsibility.
type Conn interface {
	// Push queues the named event for delivery to the client. It returns an
	// error if the event cannot be accepted (e.g., the outbound buffer is full
	// or the connection is already closed).
	Push(event string, payload any) error

	// Close terminates the underlying transport connection.
	Close() error
}
