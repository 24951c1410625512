package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dmchat/internal/pkg/errs"
)

func TestValidateAvatarSize(t *testing.T) {
	tests := []struct {
		name     string
		fileSize int64
		wantCode int
	}{
		{name: "valid size", fileSize: 1024, wantCode: 0},
		{name: "exactly at limit", fileSize: MaxAvatarSize, wantCode: 0},
		{name: "zero size", fileSize: 0, wantCode: errs.ErrInvalidParams},
		{name: "negative size", fileSize: -1, wantCode: errs.ErrInvalidParams},
		{name: "over limit", fileSize: MaxAvatarSize + 1, wantCode: errs.ErrFileSizeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			cerr := ValidateAvatarSize(tt.fileSize)
			if tt.wantCode == 0 {
				req.Nil(cerr)
				return
			}
			req.NotNil(cerr)
			req.Equal(tt.wantCode, cerr.Code)
		})
	}
}

func TestValidateAvatarType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		wantOK   bool
	}{
		{name: "jpeg", fileName: "photo.jpg", mimeType: "image/jpeg", wantOK: true},
		{name: "jpeg long extension", fileName: "photo.jpeg", mimeType: "image/jpeg", wantOK: true},
		{name: "png", fileName: "photo.png", mimeType: "image/png", wantOK: true},
		{name: "webp", fileName: "photo.webp", mimeType: "image/webp", wantOK: true},
		{name: "uppercase mime", fileName: "photo.png", mimeType: "IMAGE/PNG", wantOK: true},
		{name: "disallowed mime", fileName: "doc.pdf", mimeType: "application/pdf", wantOK: false},
		{name: "missing extension", fileName: "photo", mimeType: "image/png", wantOK: false},
		{name: "mismatched extension", fileName: "photo.png", mimeType: "image/jpeg", wantOK: false},
		{name: "unknown extension", fileName: "photo.bmp", mimeType: "image/png", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			cerr := ValidateAvatarType(tt.fileName, tt.mimeType)
			if tt.wantOK {
				req.Nil(cerr)
				return
			}
			req.NotNil(cerr)
			req.Equal(errs.ErrFileTypeInvalid, cerr.Code)
		})
	}
}

func TestAvatarKey(t *testing.T) {
	req := require.New(t)

	key := AvatarKey("user-123", "Photo.PNG")

	req.True(strings.HasPrefix(key, AvatarKeyPrefix+"user-123/"))
	req.True(strings.HasSuffix(key, ".png"))

	// Uploads for the same user and filename never collide
	req.NotEqual(key, AvatarKey("user-123", "Photo.PNG"))
}
