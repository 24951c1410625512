package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dmchat/internal/app/chat"
)

const messageColumns = `id::text, sender_id::text, recipient_id::text, body, image_url, created_at`

// scanMessage reads one message row in messageColumns order.
func scanMessage(row interface{ Scan(dest ...any) error }) (chat.Message, error) {
	var m chat.Message
	err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Text, &m.Image, &m.CreatedAt)
	return m, err
}

// CreateMessage persists one direct message. The id and created_at are assigned
// by the database, which keeps ordering within a conversation monotonic.
func (s *Store) CreateMessage(ctx context.Context, senderID, recipientID, text, image string) (chat.Message, error) {
	for _, id := range []string{senderID, recipientID} {
		if _, err := uuid.Parse(id); err != nil {
			return chat.Message{}, fmt.Errorf("create message: invalid identity %q: %w", id, err)
		}
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, recipient_id, body, image_url)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING `+messageColumns,
		senderID, recipientID, text, image,
	)

	m, err := scanMessage(row)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("sender_id", senderID).
			Str("recipient_id", recipientID).
			Msg("Message insert failed.")
		return chat.Message{}, fmt.Errorf("create message: %w", err)
	}
	return m, nil
}

// ListConversation returns all messages exchanged between the two users,
// ordered by creation time ascending. Single snapshot read, no pagination.
func (s *Store) ListConversation(ctx context.Context, userAID, userBID string) ([]chat.Message, error) {
	for _, id := range []string{userAID, userBID} {
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("list conversation: invalid identity %q: %w", id, err)
		}
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE (sender_id = $1::uuid AND recipient_id = $2::uuid)
		   OR (sender_id = $2::uuid AND recipient_id = $1::uuid)
		ORDER BY created_at ASC`,
		userAID, userBID,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("user_a", userAID).Str("user_b", userBID).Msg("Conversation query failed.")
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("list conversation scan: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
