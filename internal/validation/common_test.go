/*-------------------------------------------------------------------------
 *
 * common_test.go
 *    Tests for common validation functions
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/validation/common_test.go
 *
 *-------------------------------------------------------------------------
 */

package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* TestValidateRequired tests the empty-string check */
func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("value", "field"))
	assert.Error(t, ValidateRequired("", "field"))
}

/* TestValidateMaxLength tests the length limit */
func TestValidateMaxLength(t *testing.T) {
	assert.NoError(t, ValidateMaxLength("short", "field", 10))
	assert.NoError(t, ValidateMaxLength(strings.Repeat("x", 10), "field", 10))
	assert.Error(t, ValidateMaxLength(strings.Repeat("x", 11), "field", 10))
}

/* TestValidateUUIDRequired tests UUID format checking */
func TestValidateUUIDRequired(t *testing.T) {
	assert.NoError(t, ValidateUUIDRequired(uuid.NewString(), "id"))
	assert.Error(t, ValidateUUIDRequired("", "id"))
	assert.Error(t, ValidateUUIDRequired("not-a-uuid", "id"))
}

/* TestValidateEmail tests email address checking */
func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com", "email"))
	assert.NoError(t, ValidateEmail("Alice Smith <alice@example.com>", "email"))
	assert.Error(t, ValidateEmail("", "email"))
	assert.Error(t, ValidateEmail("not-an-email", "email"))
}

/* TestReadAndValidateBody tests the body size limit */
func TestReadAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("hello"))
	body, err := ReadAndValidateBody(r, 100)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	r = httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 101)))
	_, err = ReadAndValidateBody(r, 100)
	assert.Error(t, err)
}

/* TestValidateIntRange tests range bounds */
func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(1, 1, 20, "field"))
	assert.NoError(t, ValidateIntRange(20, 1, 20, "field"))
	assert.Error(t, ValidateIntRange(0, 1, 20, "field"))
	assert.Error(t, ValidateIntRange(21, 1, 20, "field"))
}

/* TestValidatePaginationBounds tests limit and offset checks */
func TestValidatePaginationBounds(t *testing.T) {
	assert.NoError(t, ValidateLimit(100))
	assert.Error(t, ValidateLimit(-1))
	assert.Error(t, ValidateLimit(10001))
	assert.NoError(t, ValidateOffset(0))
	assert.Error(t, ValidateOffset(-1))
	assert.NoError(t, ValidateNonNegative(0, "field"))
	assert.Error(t, ValidateNonNegative(-1, "field"))
}
