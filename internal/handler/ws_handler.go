/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
upgrading the HTTP connection to WebSocket, extracting the user identity from the
handshake token, and driving the connection lifecycle.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"dmchat/internal/app/chat"
	"dmchat/internal/configs"
	"dmchat/internal/pkg/auth/jwt"
	"dmchat/internal/pkg/errs"
	"dmchat/internal/pkg/limiter"
	"dmchat/internal/pkg/logx"
	"dmchat/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
//
// Identity is carried in the `token` query parameter because browsers cannot set
// headers on a WebSocket handshake. A missing or unparseable token does not
// reject the connection here; the session's unidentified-connection policy
// decides what happens to it.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		// Extract identity before the upgrade; trust the token service entirely.
		var identity string
		if tokenString := r.URL.Query().Get("token"); tokenString != "" {
			payload, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
			if err != nil {
				logx.Warn("WebSocket handshake token invalid, connection stays unidentified", "error", err)
			} else {
				identity = payload.ID
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(conn, r.RemoteAddr)

		go client.WritePump()

		session := chat.NewSession(
			deps.Registry,
			deps.Broadcaster,
			client,
			deps.Config.UnidentifiedWSPolicy == configs.UnidentifiedClose,
		)

		session.Bind(identity)

		logx.Info("WebSocket connection established", "identity", identity, "state", session.State().String())

		// Blocks until the transport drops; the disconnect path runs after.
		client.ReadPump()

		session.Disconnect()
	}
}
