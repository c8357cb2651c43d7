/*-------------------------------------------------------------------------
 *
 * log_context.go
 *    Log context helpers for structured logging
 *
 * Provides helpers for consistent structured logging with request_id,
 * user_id, and plan_id fields across all components.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/metrics/log_context.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
	planIDKey    contextKey = "plan_id"
)

/* WithLogContext adds logging fields to context */
func WithLogContext(ctx context.Context, requestID, userID, planID string) context.Context {
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	if userID != "" {
		ctx = context.WithValue(ctx, userIDKey, userID)
	}
	if planID != "" {
		ctx = context.WithValue(ctx, planIDKey, planID)
	}
	return ctx
}

/* WithUserIDLogContext adds user ID to log context */
func WithUserIDLogContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID.String())
}

/* WithPlanIDLogContext adds plan ID to log context */
func WithPlanIDLogContext(ctx context.Context, planID uuid.UUID) context.Context {
	return context.WithValue(ctx, planIDKey, planID.String())
}

/* GetRequestIDFromContext gets request ID from context */
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

/* GetUserIDFromContext gets user ID from context */
func GetUserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id.String()
	}
	return ""
}

/* GetPlanIDFromContext gets plan ID from context */
func GetPlanIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(planIDKey).(string); ok {
		return id
	}
	if id, ok := ctx.Value(planIDKey).(uuid.UUID); ok {
		return id.String()
	}
	return ""
}

/* LoggerFromContext creates a zerolog logger with fields from context */
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	logger := *zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	/* Add context fields */
	requestID := GetRequestIDFromContext(ctx)
	userID := GetUserIDFromContext(ctx)
	planID := GetPlanIDFromContext(ctx)

	if requestID != "" {
		logger = logger.With().Str("request_id", requestID).Logger()
	}
	if userID != "" {
		logger = logger.With().Str("user_id", userID).Logger()
	}
	if planID != "" {
		logger = logger.With().Str("plan_id", planID).Logger()
	}

	return logger
}

/* LogWithContext logs a message with context fields */
func LogWithContext(ctx context.Context, level zerolog.Level, message string, fields map[string]interface{}) {
	logger := LoggerFromContext(ctx)
	event := logger.WithLevel(level)

	for key, value := range fields {
		event = event.Interface(key, value)
	}

	event.Msg(message)
}

/* DebugWithContext logs a debug message with context */
func DebugWithContext(ctx context.Context, message string, fields map[string]interface{}) {
	LogWithContext(ctx, zerolog.DebugLevel, message, fields)
}

/* InfoWithContext logs an info message with context */
func InfoWithContext(ctx context.Context, message string, fields map[string]interface{}) {
	LogWithContext(ctx, zerolog.InfoLevel, message, fields)
}

/* WarnWithContext logs a warning message with context */
func WarnWithContext(ctx context.Context, message string, fields map[string]interface{}) {
	LogWithContext(ctx, zerolog.WarnLevel, message, fields)
}

/* ErrorWithContext logs an error message with context */
func ErrorWithContext(ctx context.Context, message string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	LogWithContext(ctx, zerolog.ErrorLevel, message, fields)
}
