/*-------------------------------------------------------------------------
 *
 * validation.go
 *    Request validation for the InheritX API
 *
 * Provides validation functions for API requests including body size
 * limits, UUID validation, pagination, and per-request field checks.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/validation.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/skill-mind/InheritX-Backend/internal/validation"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

/* ValidateCreatePlanRequest validates CreatePlanRequest */
func ValidateCreatePlanRequest(req *CreatePlanRequest) error {
	if err := validation.ValidateRequired(req.Name, "name"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.Name, "name", 200); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.Description, "description", 2000); err != nil {
		return err
	}
	if req.MultiSignatureApproval {
		if err := validation.ValidateIntRange(req.RequiredApprovals, 1, 20, "required_approvals"); err != nil {
			return err
		}
	} else if req.RequiredApprovals != 0 {
		return fmt.Errorf("required_approvals must be 0 when multi_signature_approval is disabled")
	}
	return nil
}

/* ValidateUpdatePlanRequest validates UpdatePlanRequest */
func ValidateUpdatePlanRequest(req *UpdatePlanRequest) error {
	if err := validation.ValidateRequired(req.Name, "name"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.Name, "name", 200); err != nil {
		return err
	}
	return validation.ValidateMaxLength(req.Description, "description", 2000)
}

/* ValidateRequestApprovalsRequest validates RequestApprovalsRequest */
func ValidateRequestApprovalsRequest(req *RequestApprovalsRequest) error {
	if len(req.ApproverEmails) == 0 {
		return fmt.Errorf("approver_emails must contain at least one email")
	}
	if len(req.ApproverEmails) > 20 {
		return fmt.Errorf("approver_emails must not exceed 20 entries")
	}
	for _, email := range req.ApproverEmails {
		if err := validation.ValidateEmail(email, "approver_emails"); err != nil {
			return err
		}
	}
	if req.RequiredApprovals < 1 {
		return fmt.Errorf("required_approvals must be at least 1, got %d", req.RequiredApprovals)
	}
	if req.RequiredApprovals > len(req.ApproverEmails) {
		return fmt.Errorf("required_approvals %d exceeds the %d approvers given", req.RequiredApprovals, len(req.ApproverEmails))
	}
	return nil
}

/* ValidateSubmitApprovalRequest validates SubmitApprovalRequest */
func ValidateSubmitApprovalRequest(req *SubmitApprovalRequest) error {
	if req.Decision != "approved" && req.Decision != "rejected" {
		return fmt.Errorf("decision must be 'approved' or 'rejected', got '%s'", req.Decision)
	}
	return nil
}

/* ValidateSubmitKycRequest validates SubmitKycRequest */
func ValidateSubmitKycRequest(req *SubmitKycRequest) error {
	if err := validation.ValidateRequired(req.FullName, "full_name"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.FullName, "full_name", 200); err != nil {
		return err
	}
	if err := validation.ValidateRequired(req.DateOfBirth, "date_of_birth"); err != nil {
		return err
	}
	if err := validation.ValidateRequired(req.IDType, "id_type"); err != nil {
		return err
	}
	if err := validation.ValidateRequired(req.IDNumber, "id_number"); err != nil {
		return err
	}
	return validation.ValidateMaxLength(req.Address, "address", 500)
}

/* ValidateCreateWithdrawalRequest validates CreateWithdrawalRequest */
func ValidateCreateWithdrawalRequest(req *CreateWithdrawalRequest) error {
	if err := validation.ValidateRequired(req.WalletID, "wallet_id"); err != nil {
		return err
	}
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", req.Amount)
	}
	return validation.ValidateMaxLength(req.PayerName, "payer_name", 200)
}

/* ValidateUpdateWithdrawalRequest validates UpdateWithdrawalRequest */
func ValidateUpdateWithdrawalRequest(req *UpdateWithdrawalRequest) error {
	if err := validation.ValidateRequired(req.WalletID, "wallet_id"); err != nil {
		return err
	}
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", req.Amount)
	}
	return validation.ValidateMaxLength(req.PayerName, "payer_name", 200)
}

/* ValidateUpsertFAQRequest validates UpsertFAQRequest */
func ValidateUpsertFAQRequest(req *UpsertFAQRequest) error {
	if err := validation.ValidateRequired(req.Question, "question"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.Question, "question", 500); err != nil {
		return err
	}
	if err := validation.ValidateRequired(req.Answer, "answer"); err != nil {
		return err
	}
	return validation.ValidateMaxLength(req.Answer, "answer", 5000)
}

/* ValidateCreateTicketRequest validates CreateTicketRequest */
func ValidateCreateTicketRequest(req *CreateTicketRequest) error {
	if err := validation.ValidateRequired(req.Subject, "subject"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.Subject, "subject", 200); err != nil {
		return err
	}
	if req.Amount != nil && *req.Amount < 0 {
		return fmt.Errorf("amount cannot be negative, got %d", *req.Amount)
	}
	if err := validation.ValidateRequired(req.Description, "description"); err != nil {
		return err
	}
	return validation.ValidateMaxLength(req.Description, "description", 5000)
}

/* parsePagination extracts page/page_size query parameters */
func parsePagination(r *http.Request) (page, pageSize, limit, offset int, err error) {
	page = 1
	pageSize = defaultPageSize

	if v := r.URL.Query().Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, 0, 0, fmt.Errorf("page must be a positive integer")
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		pageSize, err = strconv.Atoi(v)
		if err != nil || pageSize < 1 || pageSize > maxPageSize {
			return 0, 0, 0, 0, fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
		}
	}

	limit = pageSize
	offset = (page - 1) * pageSize
	return page, pageSize, limit, offset, nil
}

/* ValidateAndRespond validates a request and responds with error if invalid */
func ValidateAndRespond(w http.ResponseWriter, validator func() error) bool {
	if err := validator(); err != nil {
		respondError(w, NewError(http.StatusBadRequest, "validation failed", err))
		return false
	}
	return true
}
