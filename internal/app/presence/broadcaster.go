/*
Package presence implements the real-time core of the chat server.

This file defines the Broadcaster struct, which announces the current set of
online identities to every connected client whenever the registry changes.
*/
package presence

import (
	"github.com/rs/zerolog"

	"dmchat/internal/pkg/logx"
)

// Broadcaster pushes the full online-identity set to all registered connections.
// It performs a best-effort fan-out: a connection whose outbound buffer rejects
// the push is logged and skipped, and the broadcast continues to the others.
type Broadcaster struct {
	registry *Registry

	// structured logger with Broadcaster context.
	logger zerolog.Logger
}

// NewBroadcaster constructs a Broadcaster over the given registry.
func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   logx.Component("Broadcaster"),
	}
}

// Announce takes an atomic snapshot of the online identities and pushes it to
// every currently registered connection as a getOnlineUsers event.
//
// The snapshot of identities and the snapshot of connections are taken from the
// same registry but not under one lock; a client that connects or drops between
// the two sees the next announcement. Broadcast lag is bounded by one
// registry mutation, never accumulated.
func (b *Broadcaster) Announce() {
	online := b.registry.Snapshot()
	conns := b.registry.snapshotConns()

	for identity, conn := range conns {
		if err := conn.Push(EventOnlineUsers, online); err != nil {
			b.logger.Warn().
				Err(err).
				Str("identity", identity).
				Msg("Presence push failed, skipping connection.")
		}
	}

	b.logger.Debug().
		Int("online_count", len(online)).
		Int("fanout", len(conns)).
		Msg("Presence announced.")
}
