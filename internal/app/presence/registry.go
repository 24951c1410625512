/*
Package presence implements the real-time core of the chat server.

This file defines the Registry struct, the process-wide table mapping a user
identity to its currently active connection handle.
*/
package presence

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"dmchat/internal/pkg/logx"
)

// Registry is the single shared mutable structure of the real-time core.
// It maps a user identity to at most one live connection handle and is safe for
// concurrent Register/Unregister/Lookup/Snapshot from multiple connection
// handling goroutines.
type Registry struct {
	// mu protects concurrent access to the conns map.
	mu sync.RWMutex

	// conns stores the currently active connection per user identity.
	conns map[string]Conn

	// structured logger with Registry context.
	logger zerolog.Logger
}

// NewRegistry constructs and returns an empty Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[string]Conn),
		logger: logx.Component("Registry"),
	}
}

// Register inserts or replaces the mapping for the given identity.
// Last connect wins: a second connection from the same identity silently
// replaces the first without closing it. The superseded handle stays open and
// its own disconnect path is responsible for cleanup.
func (reg *Registry) Register(identity string, conn Conn) {
	reg.mu.Lock()
	if _, replaced := reg.conns[identity]; replaced {
		reg.logger.Warn().
			Str("identity", identity).
			Msg("Identity already connected. Replacing mapping, old handle left open.")
	}
	reg.conns[identity] = conn
	total := len(reg.conns)
	reg.mu.Unlock()

	reg.logger.Info().
		Str("identity", identity).
		Int("online_count", total).
		Msg("Connection registered.")
}

// Unregister removes the mapping for the given identity if present.
// Unregistering an unknown identity is a no-op, which makes the call idempotent.
func (reg *Registry) Unregister(identity string) {
	reg.mu.Lock()
	_, ok := reg.conns[identity]
	if ok {
		delete(reg.conns, identity)
	}
	total := len(reg.conns)
	reg.mu.Unlock()

	if ok {
		reg.logger.Info().
			Str("identity", identity).
			Int("online_count", total).
			Msg("Connection unregistered.")
	}
}

// UnregisterConn removes the mapping only when the registered handle is the
// given conn, and reports whether a removal happened. A lifecycle handler whose
// connection was superseded by a newer one uses this to avoid evicting the
// replacement on its own, later disconnect.
func (reg *Registry) UnregisterConn(identity string, conn Conn) bool {
	reg.mu.Lock()
	current, ok := reg.conns[identity]
	removed := ok && current == conn
	if removed {
		delete(reg.conns, identity)
	}
	total := len(reg.conns)
	reg.mu.Unlock()

	if removed {
		reg.logger.Info().
			Str("identity", identity).
			Int("online_count", total).
			Msg("Connection unregistered.")
	} else if ok {
		reg.logger.Info().
			Str("identity", identity).
			Msg("Ignoring unregister for stale connection.")
	}

	return removed
}

// Lookup returns the current connection handle for the identity, or false if
// the user is offline. It never blocks beyond the read lock.
func (reg *Registry) Lookup(identity string) (Conn, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	conn, ok := reg.conns[identity]
	return conn, ok
}

// Snapshot returns the sorted set of registered identities, taken atomically
// with respect to concurrent Register/Unregister calls.
func (reg *Registry) Snapshot() []string {
	reg.mu.RLock()
	identities := make([]string, 0, len(reg.conns))
	for identity := range reg.conns {
		identities = append(identities, identity)
	}
	reg.mu.RUnlock()

	sort.Strings(identities)
	return identities
}

// snapshotConns returns a point-in-time copy of the identity to connection map,
// used by the broadcaster to fan out without holding the lock during pushes.
func (reg *Registry) snapshotConns() map[string]Conn {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	conns := make(map[string]Conn, len(reg.conns))
	for identity, conn := range reg.conns {
		conns[identity] = conn
	}
	return conns
}

// Shutdown closes every registered connection and clears the table.
// Called once during graceful process shutdown.
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	conns := reg.conns
	reg.conns = make(map[string]Conn)
	reg.mu.Unlock()

	for identity, conn := range conns {
		if err := conn.Close(); err != nil {
			reg.logger.Warn().
				Err(err).
				Str("identity", identity).
				Msg("Error closing connection during shutdown.")
		}
	}

	reg.logger.Info().Int("closed", len(conns)).Msg("Registry shutdown complete.")
}
