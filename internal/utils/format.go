/*-------------------------------------------------------------------------
 *
 * format.go
 *    Formatting utilities for the InheritX backend
 *
 * Provides helpers for formatting connection information and sanitizing
 * values for inclusion in error messages and logs.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/utils/format.go
 *
 *-------------------------------------------------------------------------
 */

package utils

import (
	"fmt"
	"strings"
)

/* FormatConnectionInfo formats database connection details for error messages */
func FormatConnectionInfo(host string, port int, database string, user string) string {
	return fmt.Sprintf("host=%s port=%d database=%s user=%s", host, port, database, user)
}

/* SanitizeValue truncates and escapes a value for safe inclusion in logs */
func SanitizeValue(value string, maxLen int) string {
	value = strings.ReplaceAll(value, "\n", "\\n")
	value = strings.ReplaceAll(value, "\r", "\\r")
	if maxLen > 0 && len(value) > maxLen {
		return value[:maxLen] + "..."
	}
	return value
}

/* FormatQueryContext formats query execution context for error messages */
func FormatQueryContext(query string, paramCount int, operation string, table string) string {
	return fmt.Sprintf("operation=%s, table='%s', params=%d, query='%s'",
		operation, table, paramCount, SanitizeValue(strings.Join(strings.Fields(query), " "), 200))
}
