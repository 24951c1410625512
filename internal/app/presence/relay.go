/*
Package presence implements the real-time core of the chat server.

This file defines the Relay struct, which delivers a newly persisted message to
the recipient's live connection when the recipient is online.
*/
package presence

import (
	"github.com/rs/zerolog"

	"dmchat/internal/pkg/logx"
)

// Relay performs best-effort, at-most-once live delivery of persisted messages.
// It never queues, retries, or persists a delivery attempt: the durable copy in
// the message store is the recipient's fallback on the next conversation fetch.
type Relay struct {
	registry *Registry

	// structured logger with Relay context.
	logger zerolog.Logger
}

// NewRelay constructs a Relay over the given registry.
func NewRelay(registry *Registry) *Relay {
	return &Relay{
		registry: registry,
		logger:   logx.Component("Relay"),
	}
}

// Deliver looks up the recipient in the registry and, if online, pushes the
// message payload as a newMessage event. An offline recipient or a failed push
// is a silent miss, never an error: the caller has already persisted the
// message and must not be blocked waiting for client acknowledgment.
func (r *Relay) Deliver(recipientID string, message any) {
	conn, ok := r.registry.Lookup(recipientID)
	if !ok {
		r.logger.Debug().
			Str("recipient_id", recipientID).
			Msg("Recipient offline, skipping live delivery.")
		return
	}

	if err := conn.Push(EventNewMessage, message); err != nil {
		r.logger.Warn().
			Err(err).
			Str("recipient_id", recipientID).
			Msg("Live delivery push failed, relying on durable store.")
	}
}
