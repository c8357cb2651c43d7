/*-------------------------------------------------------------------------
 *
 * context.go
 *    Context helper functions for API handlers
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/context.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

/* GetUserIDFromContext gets the calling user's ID from context */
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDContextKey).(uuid.UUID)
	return userID, ok
}

/* MustGetUserIDFromContext gets the user ID from context or returns an error */
func MustGetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in context: identity required")
	}
	return userID, nil
}
