/*
Package chat contains the messaging business logic.

This file defines the Session struct, the per-connection lifecycle handler that
binds an inbound transport connection to a user identity, registers it with the
presence core, and runs the disconnect path exactly once.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"dmchat/internal/app/presence"
	"dmchat/internal/pkg/logx"
)

// SessionState models the lifecycle of one physical connection.
// Transitions: Connecting -> Bound -> Closed, or Connecting -> Closed.
// Closed is terminal; the session instance is discarded afterwards.
type SessionState int

const (
	// StateConnecting: transport handshake accepted, identity not yet known.
	StateConnecting SessionState = iota

	// StateBound: identity registered in the presence registry.
	StateBound

	// StateClosed: lifecycle finished, no outgoing transitions.
	StateClosed
)

// String returns the state name for logging.
func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateBound:
		return "bound"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session binds one connection to one identity for the duration of its life.
type Session struct {
	// mu protects state and identity.
	mu       sync.Mutex
	state    SessionState
	identity string

	conn        presence.Conn
	registry    *presence.Registry
	broadcaster *presence.Broadcaster

	// closeUnidentified applies the configured policy for connections whose
	// handshake carried no usable identity: close the transport, or keep it
	// open in a degraded, unregistered state.
	closeUnidentified bool

	// structured logger with session context.
	logger zerolog.Logger
}

// NewSession constructs a Session in the Connecting state.
func NewSession(registry *presence.Registry, broadcaster *presence.Broadcaster, conn presence.Conn, closeUnidentified bool) *Session {
	return &Session{
		state:             StateConnecting,
		conn:              conn,
		registry:          registry,
		broadcaster:       broadcaster,
		closeUnidentified: closeUnidentified,
		logger:            logx.Component("Session"),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Bind attaches the extracted identity to the connection.
//
// With a usable identity the connection is registered and presence announced.
// With an empty identity the session moves straight to Closed without ever
// registering; this is a documented leniency, not an auth failure. Whether the
// transport itself is also closed is the configured policy's call.
func (s *Session) Bind(identity string) {
	s.mu.Lock()

	if s.state != StateConnecting {
		state := s.state
		s.mu.Unlock()
		s.logger.Warn().
			Stringer("state", state).
			Msg("Bind ignored outside Connecting state.")
		return
	}

	if identity == "" {
		s.state = StateClosed
		closeTransport := s.closeUnidentified
		s.mu.Unlock()

		s.logger.Info().
			Bool("closing_transport", closeTransport).
			Msg("Connection carries no identity. Session closed without registration.")

		if closeTransport {
			if err := s.conn.Close(); err != nil {
				s.logger.Debug().Err(err).Msg("Error closing unidentified connection.")
			}
		}
		return
	}

	s.identity = identity
	s.state = StateBound
	s.mu.Unlock()

	s.registry.Register(identity, s.conn)
	s.broadcaster.Announce()
}

// Disconnect runs the transport-disconnect path. From Bound it unregisters the
// identity and re-announces presence; from Connecting it closes with no side
// effects. Calling it on an already Closed session is a no-op, so the read
// loop's exit and an explicit Close cannot double-fire the announcement.
func (s *Session) Disconnect() {
	s.mu.Lock()

	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}

	wasBound := s.state == StateBound
	identity := s.identity
	s.state = StateClosed
	s.mu.Unlock()

	if !wasBound {
		return
	}

	// A newer connection for the same identity may have replaced this one in
	// the registry; only the current holder gets to remove the mapping.
	if s.registry.UnregisterConn(identity, s.conn) {
		s.broadcaster.Announce()
		s.logger.Info().
			Str("identity", identity).
			Msg("Session disconnected.")
		return
	}

	s.logger.Debug().
		Str("identity", identity).
		Msg("Superseded session closed, identity stays online.")
}
