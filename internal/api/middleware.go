/*-------------------------------------------------------------------------
 *
 * middleware.go
 *    HTTP middleware for the InheritX API
 *
 * Provides identity, CORS, security headers, logging, and request ID
 * middleware for the HTTP API server.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/middleware.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/skill-mind/InheritX-Backend/internal/metrics"
	"github.com/skill-mind/InheritX-Backend/internal/utils"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

/* IdentityMiddleware resolves the calling user from the X-User-ID header.
 *
 * Public approver endpoints are reachable without identity: approvers
 * act through the approval ID alone and may not hold an account. */
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		/* Skip identity for health, metrics, and public approver endpoints */
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" ||
			strings.HasPrefix(r.URL.Path, "/api/v1/public/") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := GetRequestID(r.Context())

		header := r.Header.Get("X-User-ID")
		if header == "" {
			respondError(w, WrapError(ErrUnauthorized, requestID))
			return
		}

		userID, err := utils.ParseUUID(header)
		if err != nil {
			ctx := metrics.WithLogContext(r.Context(), requestID, "", "")
			metrics.WarnWithContext(ctx, "Invalid user ID header", map[string]interface{}{
				"header": header,
			})
			respondError(w, WrapError(ErrUnauthorized, requestID))
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		ctx = metrics.WithUserIDLogContext(ctx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/* SecurityHeadersMiddleware adds security headers to all HTTP responses */
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "DENY")
		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

/* CORSMiddleware adds CORS headers */
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

/* LoggingMiddleware logs requests with structured logging and metrics */
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		/* Wrap response writer to capture status code */
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		endpoint := r.URL.Path
		metrics.RecordHTTPRequest(r.Method, endpoint, wrapped.statusCode, duration)
		metrics.InfoWithContext(r.Context(), "Request completed", map[string]interface{}{
			"method":      r.Method,
			"endpoint":    endpoint,
			"status":      wrapped.statusCode,
			"duration_ms": duration.Milliseconds(),
		})
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
