package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dmchat/internal/pkg/errs"
)

const (
	// MaxAvatarSizeMB is the maximum allowed avatar file size in megabytes.
	MaxAvatarSizeMB = 5

	// MaxAvatarSize is the maximum allowed avatar file size in bytes.
	MaxAvatarSize = MaxAvatarSizeMB * 1024 * 1024

	// PresignedURLDuration is the fixed duration for which the upload URL is valid (5 minutes).
	PresignedURLDuration = 5 * time.Minute

	// AvatarKeyPrefix namespaces all avatar objects within the bucket.
	AvatarKeyPrefix = "avatars/"
)

// AllowedMIMETypes defines the set of permitted MIME types for avatar images.
var AllowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// ExtToMIME maps file extensions to their corresponding MIME types.
var ExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// AvatarKey builds the object key for a new avatar upload. A random UUID in the
// key means replacing an avatar never overwrites the previous object.
func AvatarKey(userID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s%s/%s%s", AvatarKeyPrefix, userID, uuid.New().String(), ext)
}

// ValidateAvatarSize checks if the provided file size is within acceptable limits.
func ValidateAvatarSize(fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if fileSize > MaxAvatarSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	return nil
}

// ValidateAvatarType checks if the provided file name and MIME type are allowed
// and consistent with each other.
func ValidateAvatarType(fileName string, mimeType string) *errs.CustomError {
	lowerMimeType := strings.ToLower(mimeType)

	if _, ok := AllowedMIMETypes[lowerMimeType]; !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" || len(ext) < 2 {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	expectedMIME, ok := ExtToMIME[ext]
	if !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	if expectedMIME != lowerMimeType {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	return nil
}
