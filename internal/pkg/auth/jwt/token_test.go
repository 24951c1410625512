package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	req := require.New(t)

	payload := &Payload{
		ID:       "user-123",
		Email:    "alice@example.com",
		FullName: "Alice Example",
	}

	tokenString, err := GenerateToken(payload, testSecret, UserIdentityExpiration)
	req.NoError(err)
	req.NotEmpty(tokenString)

	parsed, err := ParseToken(tokenString, testSecret)
	req.NoError(err)

	req.Equal("user-123", parsed.ID)
	req.Equal("alice@example.com", parsed.Email)
	req.Equal("Alice Example", parsed.FullName)
	req.Equal(TokenIssuer, parsed.Issuer)
	req.Greater(parsed.ExpiresAt, time.Now().Unix())
}

func TestParseToken_WrongSecret(t *testing.T) {
	req := require.New(t)

	tokenString, err := GenerateToken(&Payload{ID: "user-123"}, testSecret, UserIdentityExpiration)
	req.NoError(err)

	parsed, err := ParseToken(tokenString, "a-different-secret")
	req.Error(err)
	req.Nil(parsed)
}

func TestParseToken_Expired(t *testing.T) {
	req := require.New(t)

	tokenString, err := GenerateToken(&Payload{ID: "user-123"}, testSecret, -time.Minute)
	req.NoError(err)

	parsed, err := ParseToken(tokenString, testSecret)
	req.Error(err)
	req.Nil(parsed)
}

func TestParseToken_Garbage(t *testing.T) {
	req := require.New(t)

	parsed, err := ParseToken("not-a-jwt", testSecret)
	req.Error(err)
	req.Nil(parsed)
}
