/*
Package user contains core data structures related to user identity.

It defines the basic representation of an account within the chat system (the User struct),
used for passing user information both internally and to clients.
*/
package user

import "time"

// User represents a registered account.
// Fields use JSON tags for serialization in API responses and WebSocket events.
type User struct {
	// ID is the stable unique identifier for the user, assigned by the database.
	// It is the identity key used for presence tracking and message addressing.
	ID string `json:"id"`

	// Email is the login email address, unique per account.
	Email string `json:"email"`

	// FullName is the display name shown in the sidebar and chat header.
	FullName string `json:"fullName"`

	// AvatarURL points at the profile picture, empty until one is uploaded.
	AvatarURL string `json:"avatar,omitempty"`

	// CreatedAt records when the account was registered.
	CreatedAt time.Time `json:"createdAt"`

	// PasswordHash is the bcrypt hash of the account password. Never serialized.
	PasswordHash string `json:"-"`
}
