/*-------------------------------------------------------------------------
 *
 * errors.go
 *    Sentinel errors for the approval workflow
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/approval/errors.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"errors"
	"fmt"
)

var (
	/* ErrPlanNotFound means the referenced plan does not exist */
	ErrPlanNotFound = errors.New("plan not found")

	/* ErrApprovalNotFound means the referenced approval does not exist */
	ErrApprovalNotFound = errors.New("approval not found")

	/* ErrNotOwner means the caller does not own the plan */
	ErrNotOwner = errors.New("plan does not belong to user")

	/* ErrNotMultiSignature means the plan has multi-signature approval disabled */
	ErrNotMultiSignature = errors.New("plan does not have multi-signature approval enabled")

	/* ErrAlreadyDecided means the approval already carries a final decision */
	ErrAlreadyDecided = errors.New("approval has already been decided")

	/* ErrAlreadyExecuted means the plan has already been executed */
	ErrAlreadyExecuted = errors.New("plan has already been executed")
)

/* InsufficientApprovalsError means a plan's execution gate is not satisfied */
type InsufficientApprovalsError struct {
	Required int
	Current  int
}

func (e *InsufficientApprovalsError) Error() string {
	return fmt.Sprintf("insufficient approvals: %d of %d required", e.Current, e.Required)
}

/* ValidationError describes an invalid request field */
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field '%s': %s", e.Field, e.Message)
}
