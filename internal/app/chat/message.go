/*
Package chat contains the messaging business logic: the message model, the send
and conversation-read service, and the WebSocket connection lifecycle.
*/
package chat

import "time"

// MaxTextBytes is the maximum allowed size (in bytes) for message text content.
const MaxTextBytes = 5000

// Message is one direct message between two users.
// It is created only by the Service after both identities are validated, and is
// immutable after creation. The id and createdAt values are assigned by the
// durable store; ordering within a conversation is by createdAt ascending.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"receiverId"`
	Text        string    `json:"text,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
