package handler

import (
	"fmt"
	"strings"

	"dmchat/internal/app/chat"
	"dmchat/internal/app/presence"
	"dmchat/internal/app/storage"
	"dmchat/internal/app/store"
	"dmchat/internal/configs"
)

// AppDeps bundles the collaborators every handler constructor needs.
type AppDeps struct {
	Config         *configs.AppConfig
	Store          *store.Store
	Chat           *chat.Service
	Registry       *presence.Registry
	Broadcaster    *presence.Broadcaster
	StorageService storage.StorageService
}

// FullAssetURL resolves a stored avatar object key to a public URL.
// Keys are stored bucket-relative; anything already absolute passes through.
func (d *AppDeps) FullAssetURL(key string) string {
	if key == "" {
		return ""
	}

	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(d.Config.S3Endpoint, "/"), d.Config.S3BucketName, key)
}

// NormalizeAssetKey strips the configured endpoint/bucket prefix from a client
// supplied avatar URL, returning the bucket-relative key. It rejects values
// that point outside the avatar namespace.
func (d *AppDeps) NormalizeAssetKey(value string) (string, error) {
	key := value

	prefix := fmt.Sprintf("%s/%s/", strings.TrimSuffix(d.Config.S3Endpoint, "/"), d.Config.S3BucketName)
	key = strings.TrimPrefix(key, prefix)

	if !strings.HasPrefix(key, storage.AvatarKeyPrefix) {
		return "", fmt.Errorf("asset key %q is outside the avatar namespace", key)
	}

	if strings.Contains(key, "..") {
		return "", fmt.Errorf("asset key %q contains a path traversal", key)
	}

	return key, nil
}
