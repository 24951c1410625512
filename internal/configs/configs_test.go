package configs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("S3_BUCKET_NAME", "avatars")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "minio")
	t.Setenv("S3_SECRET_ACCESS_KEY", "minio123")
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("UNIDENTIFIED_WS_POLICY", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadConfig()
	req.NoError(err)

	req.Equal("development", cfg.Environment)
	req.Equal(8080, cfg.Port)
	req.Empty(cfg.AllowedOrigins)
	req.NotEmpty(cfg.JWTSecret)
	req.Equal(UnidentifiedKeep, cfg.UnidentifiedWSPolicy)
	req.NotEmpty(cfg.DatabaseDSN)
}

func TestLoadConfig_ParsesOrigins(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal([]string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := LoadConfig()
	req.Error(err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	req.Error(err)
}

func TestLoadConfig_UnidentifiedPolicy(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)

	t.Setenv("UNIDENTIFIED_WS_POLICY", UnidentifiedClose)
	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal(UnidentifiedClose, cfg.UnidentifiedWSPolicy)

	t.Setenv("UNIDENTIFIED_WS_POLICY", "banish")
	_, err = LoadConfig()
	req.Error(err)
}

func TestLoadConfig_ProductionRequiresSecrets(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	req.Error(err)

	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("DATABASE_URL", "")
	_, err = LoadConfig()
	req.Error(err)

	t.Setenv("DATABASE_URL", "postgres://chat:chat@db:5432/dmchat")
	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal("production", cfg.Environment)
}
