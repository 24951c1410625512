package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the structure of the JSON Web Token (JWT) claims for the chat server.
// It includes standard claims required by the JWT specification and the custom claims
// necessary for identifying users across the REST API and the WebSocket handshake.
type Payload struct {
	// StandardClaims embeds the necessary JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer). These are crucial for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the stable user identifier issued at registration. It is the key used
	// for presence tracking and message addressing.
	ID string `json:"id"`

	// Email is the account email, carried for display convenience only.
	Email string `json:"email,omitempty"`

	// FullName is the display name of the account holder.
	FullName string `json:"full_name,omitempty"`
}
