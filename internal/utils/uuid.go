/*-------------------------------------------------------------------------
 *
 * uuid.go
 *    UUID utility functions for the InheritX backend
 *
 * Provides UUID generation and parsing utilities for creating unique
 * identifiers throughout the application.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/utils/uuid.go
 *
 *-------------------------------------------------------------------------
 */

package utils

import (
	"github.com/google/uuid"
)

/* GenerateUUID generates a new UUID */
func GenerateUUID() uuid.UUID {
	return uuid.New()
}

/* ParseUUID parses a UUID string */
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

/* IsValidUUID checks if a string is a valid UUID */
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
