/*
Package logx provides a structured logging wrapper based on zerolog.

This file contains the HTTP request-logging middleware. Besides the usual
method, URI, status, and latency fields it flags WebSocket upgrade requests,
records whether the caller presented a bearer token, redacts the handshake
token query parameter, and anonymizes client IP addresses.
*/
package logx

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// anonymizeIP anonymizes the given IP address string.
// For IPv4 the last octet is zeroed; for IPv6 the latter half is compressed
// to "::". Approximate geolocation survives, the individual address does not.
func anonymizeIP(ipStr string) string {
	host, _, err := net.SplitHostPort(ipStr)
	if err == nil {
		ipStr = host
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "unknown_ip"
	}

	if ip.IsLoopback() {
		return "127.0.0.1"
	}

	if v4 := ip.To4(); v4 != nil {
		return v4[:3].String() + ".0"
	}

	if v6 := ip.To16(); v6 != nil {
		return v6[:8].String() + "::"
	}

	return ipStr
}

// redactURI masks the token query parameter in the logged URI. The WebSocket
// handshake carries the identity JWT in the query string, and credentials
// must never reach log storage.
func redactURI(uri string) string {
	u, err := url.ParseRequestURI(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	if !q.Has("token") {
		return uri
	}

	q.Set("token", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

// RequestLogger returns an HTTP middleware that logs each request's outcome.
// It injects a request-scoped logger into the context and, once the handler
// returns, emits one entry whose level follows the response status.
func RequestLogger() func(next http.Handler) http.Handler {
	baseLogger := Logger()

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			requestID := middleware.GetReqID(r.Context())

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			isUpgrade := strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
			hasBearer := strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ")

			logger := baseLogger.With().
				Str("component", "http").
				Str("request_id", requestID).
				Str("remote_ip", anonymizeIP(r.RemoteAddr)).
				Str("request_method", r.Method).
				Str("request_uri", redactURI(r.RequestURI)).
				Bool("websocket", isUpgrade).
				Bool("authenticated", hasBearer).
				Logger()

			r = r.WithContext(logger.WithContext(r.Context()))

			t1 := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()

			logEvent := logger.Info()
			if status >= 500 {
				logEvent = logger.Error()
			} else if status >= 400 {
				logEvent = logger.Warn()
			}

			logEvent.
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(t1)).
				Msg("Request completed")
		}

		return http.HandlerFunc(fn)
	}
}
