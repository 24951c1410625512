/*
Package chat contains the messaging business logic.

This file defines the Service struct, which orchestrates a message send:
validate sender and recipient, persist via the durable store, then hand the
persisted message to the relay for best-effort live delivery.
*/
package chat

import (
	"context"

	"github.com/rs/zerolog"

	"dmchat/internal/pkg/errs"
	"dmchat/internal/pkg/logx"
)

// MessageStore is the durable system of record for messages and users.
// The concrete implementation lives in internal/app/store.
type MessageStore interface {
	// CreateMessage persists a new message and returns it with the
	// store-assigned id and creation timestamp.
	CreateMessage(ctx context.Context, senderID, recipientID, text, image string) (Message, error)

	// ListConversation returns all messages between the two users ordered by
	// creation time ascending, as a single snapshot read.
	ListConversation(ctx context.Context, userAID, userBID string) ([]Message, error)

	// UserExists reports whether the identity refers to a known user.
	UserExists(ctx context.Context, id string) (bool, error)
}

// MessageRelay pushes a persisted message to the recipient's live connection.
// Satisfied by presence.Relay.
type MessageRelay interface {
	Deliver(recipientID string, message any)
}

// Service orchestrates message sends and conversation reads.
type Service struct {
	store MessageStore
	relay MessageRelay

	// structured logger with ChatService context.
	logger zerolog.Logger
}

// NewService constructs a Service over the given store and relay.
func NewService(store MessageStore, relay MessageRelay) *Service {
	return &Service{
		store:  store,
		relay:  relay,
		logger: logx.Component("ChatService"),
	}
}

// SendMessage validates, persists, and relays one direct message.
//
// The relay is invoked only after the store reports success, so a message is
// never pushed to a live connection before it is durable. The persisted message
// is returned to the caller regardless of whether live delivery happened: a
// recipient who is offline picks it up from the store on the next fetch.
func (s *Service) SendMessage(ctx context.Context, senderID, recipientID, text, image string) (Message, *errs.CustomError) {
	exists, err := s.store.UserExists(ctx, recipientID)
	if err != nil {
		s.logger.Error().Err(err).Str("recipient_id", recipientID).Msg("Recipient existence check failed.")
		return Message{}, errs.NewError(errs.ErrStorageFailure)
	}
	if !exists {
		return Message{}, errs.NewError(errs.ErrRecipientNotFound)
	}

	if text == "" && image == "" {
		return Message{}, errs.NewError(errs.ErrEmptyMessage)
	}

	if len(text) > MaxTextBytes {
		return Message{}, errs.NewError(errs.ErrMessageContentTooLong)
	}

	msg, err := s.store.CreateMessage(ctx, senderID, recipientID, text, image)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("sender_id", senderID).
			Str("recipient_id", recipientID).
			Msg("Message persistence failed. Relay not attempted.")
		return Message{}, errs.NewError(errs.ErrStorageFailure)
	}

	s.relay.Deliver(recipientID, msg)

	return msg, nil
}

// ListConversation returns the full message history between two users,
// oldest first.
func (s *Service) ListConversation(ctx context.Context, userAID, userBID string) ([]Message, *errs.CustomError) {
	exists, err := s.store.UserExists(ctx, userBID)
	if err != nil {
		return nil, errs.NewError(errs.ErrStorageFailure)
	}
	if !exists {
		return nil, errs.NewError(errs.ErrConversationPeerInvalid)
	}

	messages, err := s.store.ListConversation(ctx, userAID, userBID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_a", userAID).
			Str("user_b", userBID).
			Msg("Conversation read failed.")
		return nil, errs.NewError(errs.ErrStorageFailure)
	}

	return messages, nil
}
