/*
Package handler provides HTTP handler functions for user listing and profile management.
*/
package handler

import (
	"net/http"

	"dmchat/internal/app/db"
	"dmchat/internal/app/storage"
	"dmchat/internal/pkg/auth/jwt"
	"dmchat/internal/pkg/errs"
	"dmchat/internal/pkg/logx"
	"dmchat/internal/pkg/req"
	"dmchat/internal/pkg/resp"
)

// HandleListUsers returns every other account for the conversation sidebar.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		users, err := deps.Store.ListUsersExcept(r.Context(), identity.ID)
		if err != nil {
			logx.Error(err, "failed to list users", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		userList := make([]map[string]any, 0, len(users))
		for _, u := range users {
			userList = append(userList, deps.userResponse(u))
		}

		resp.RespondSuccess(w, r, map[string]any{
			"users": userList,
		})
	}
}

// PresignAvatarInput defines the JSON input structure for generating an avatar upload URL.
type PresignAvatarInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignAvatarURL generates a time-limited, pre-signed URL for uploading
// a new avatar image, scoped to the authenticated account's key namespace.
func HandlePresignAvatarURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PresignAvatarInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := storage.ValidateAvatarSize(input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := storage.ValidateAvatarType(input.FileName, input.MimeType); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		key := storage.AvatarKey(identity.ID, input.FileName)

		uploadURL, err := deps.StorageService.PresignUpload(
			r.Context(),
			key,
			input.MimeType,
			input.FileSize,
			storage.PresignedURLDuration,
		)
		if err != nil {
			logx.Error(err, "failed to presign avatar upload", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"uploadUrl": uploadURL,
			"key":       key,
		})
	}
}

// UpdateProfileInput defines the JSON input structure for profile updates.
type UpdateProfileInput struct {
	Avatar string `json:"avatar"`
}

// HandleUpdateProfile records a newly uploaded avatar on the account and
// deletes the previously stored object, if any.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		avatarKey, err := deps.NormalizeAssetKey(input.Avatar)
		if err != nil {
			logx.Warn("update_profile: rejected avatar key", "user_id", identity.ID, "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		oldUser, err := deps.Store.GetUserByID(r.Context(), identity.ID)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "update_profile: user fetch failed", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		updatedUser, err := deps.Store.UpdateUserAvatar(r.Context(), identity.ID, avatarKey)
		if err != nil {
			logx.Error(err, "failed to update avatar in database", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if oldUser.AvatarURL != "" && oldUser.AvatarURL != avatarKey {
			if err := deps.StorageService.Delete(r.Context(), oldUser.AvatarURL); err != nil {
				// The replaced object is orphaned but the profile update stands.
				logx.Warn("failed to delete previous avatar object", "user_id", identity.ID, "key", oldUser.AvatarURL)
			}
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": deps.userResponse(updatedUser),
		})
	}
}
