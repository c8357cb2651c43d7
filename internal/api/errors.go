/*-------------------------------------------------------------------------
 *
 * errors.go
 *    API error types for the InheritX backend
 *
 * Provides the APIError type and helpers for building error responses
 * with request correlation context.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/errors.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"net/http"

	"github.com/skill-mind/InheritX-Backend/internal/metrics"
)

/* APIError carries an HTTP status code and request context */
type APIError struct {
	Code      int
	Message   string
	Err       error
	RequestID string
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

/* Common API errors */
var (
	ErrNotFound     = &APIError{Code: http.StatusNotFound, Message: "resource not found"}
	ErrBadRequest   = &APIError{Code: http.StatusBadRequest, Message: "bad request"}
	ErrUnauthorized = &APIError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &APIError{Code: http.StatusForbidden, Message: "forbidden"}
	ErrConflict     = &APIError{Code: http.StatusConflict, Message: "conflict"}
)

/* NewError creates an APIError */
func NewError(code int, message string, err error) *APIError {
	return &APIError{Code: code, Message: message, Err: err}
}

/* NewErrorWithContext creates an APIError and logs it with request context */
func NewErrorWithContext(code int, message string, err error, requestID, endpoint, method, resource, resourceID string, details map[string]interface{}) *APIError {
	fields := map[string]interface{}{
		"status":   code,
		"endpoint": endpoint,
		"method":   method,
		"resource": resource,
	}
	if resourceID != "" {
		fields["resource_id"] = resourceID
	}
	for k, v := range details {
		fields[k] = v
	}
	ctx := metrics.WithLogContext(context.Background(), requestID, "", "")
	if code >= http.StatusInternalServerError {
		metrics.ErrorWithContext(ctx, message, err, fields)
	} else {
		metrics.WarnWithContext(ctx, message, fields)
	}
	return &APIError{Code: code, Message: message, Err: err, RequestID: requestID}
}

/* WrapError attaches a request ID to an existing APIError */
func WrapError(err *APIError, requestID string) *APIError {
	return &APIError{
		Code:      err.Code,
		Message:   err.Message,
		Err:       err.Err,
		RequestID: requestID,
	}
}
