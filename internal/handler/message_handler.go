/*
Package handler provides HTTP handler functions for sending messages and reading conversations.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dmchat/internal/pkg/auth/jwt"
	"dmchat/internal/pkg/errs"
	"dmchat/internal/pkg/req"
	"dmchat/internal/pkg/resp"
)

// SendMessageInput defines the JSON input structure for a message send.
// At least one of text and image must be present.
type SendMessageInput struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// HandleSendMessage persists a message to the user in the URL and pushes it to
// the recipient's live connection when one exists. The durable message is
// returned to the sender either way; a live-delivery miss is invisible here.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		recipientID := chi.URLParam(r, "id")
		if recipientID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		msg, customErr := deps.Chat.SendMessage(r.Context(), identity.ID, recipientID, input.Text, input.Image)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": msg,
		})
	}
}

// HandleGetConversation returns the full message history with the user in the
// URL, oldest first.
func HandleGetConversation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		peerID := chi.URLParam(r, "id")
		if peerID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		messages, customErr := deps.Chat.ListConversation(r.Context(), identity.ID, peerID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"messages": messages,
		})
	}
}
