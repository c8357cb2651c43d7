/*-------------------------------------------------------------------------
 *
 * approval_handlers.go
 *    API handlers for the plan approval workflow
 *
 * Provides HTTP handlers for requesting approvals, submitting approver
 * decisions, and reading approval state. The submit and read endpoints
 * are also exposed publicly so approvers can act without an account.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/approval_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/skill-mind/InheritX-Backend/internal/approval"
	"github.com/skill-mind/InheritX-Backend/internal/audit"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/metrics"
	"github.com/skill-mind/InheritX-Backend/internal/validation"
)

/* RequestApprovals replaces the approver set for a plan */
func (h *Handlers) RequestApprovals(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	if err := validation.ValidateUUIDRequired(vars["id"], "plan_id"); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}
	planID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID format", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req RequestApprovalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "approval request failed: request body parsing error", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateRequestApprovalsRequest(&req) }) {
		return
	}

	approvals, err := h.approvals.RequestApprovals(r.Context(), planID, userID, req.ApproverEmails, req.RequiredApprovals)
	if err != nil {
		h.respondApprovalError(w, err, requestID, r)
		return
	}

	h.audit.RecordActivity(r.Context(), userID, audit.ActivityApprovalsRequested,
		fmt.Sprintf("Requested %d approvals for plan", len(approvals)), "create",
		map[string]interface{}{"plan_id": planID.String(), "approver_count": len(approvals)})

	/* Invitations are best-effort: the approvals exist regardless */
	if h.email != nil && h.email.Enabled() {
		plan, planErr := h.queries.GetPlan(r.Context(), planID)
		planName := ""
		if planErr == nil {
			planName = plan.Name
		}
		for _, a := range approvals {
			if err := h.email.SendApprovalInvitation(r.Context(), a.ApproverEmail, planName, a.ID.String()); err != nil {
				metrics.RecordNotificationSent("email", "error")
				metrics.WarnWithContext(r.Context(), "Failed to send approval invitation", map[string]interface{}{
					"approval_id": a.ID.String(),
					"error":       err.Error(),
				})
				continue
			}
			metrics.RecordNotificationSent("email", "sent")
		}
	}

	responses := make([]ApprovalResponse, len(approvals))
	for i := range approvals {
		responses[i] = toApprovalResponse(&approvals[i])
	}
	respondJSON(w, http.StatusCreated, responses)
}

/* SubmitApproval records an approver's decision */
func (h *Handlers) SubmitApproval(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	if err := validation.ValidateUUIDRequired(vars["id"], "approval_id"); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval ID", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}
	approvalID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval ID format", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req SubmitApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "decision submission failed: request body parsing error", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateSubmitApprovalRequest(&req) }) {
		return
	}

	decided, plan, err := h.approvals.SubmitApproval(r.Context(), approvalID, db.Decision(req.Decision))
	if err != nil {
		h.respondApprovalError(w, err, requestID, r)
		return
	}

	h.audit.RecordActivity(r.Context(), plan.UserID, audit.ActivityApprovalDecided,
		fmt.Sprintf("Approver %s %s plan '%s'", decided.ApproverEmail, req.Decision, plan.Name), "update",
		map[string]interface{}{"plan_id": plan.ID.String(), "approval_id": decided.ID.String(), "decision": req.Decision})
	h.audit.Notify(r.Context(), plan.UserID, "Approval decision received",
		fmt.Sprintf("%s has %s your plan '%s'.", decided.ApproverEmail, req.Decision, plan.Name))

	respondJSON(w, http.StatusOK, SubmitApprovalResponse{
		Approval: toApprovalResponse(decided),
		Plan:     toPlanResponse(plan),
	})
}

/* GetApprovalStatus returns a plan's approval progress to its owner */
func (h *Handlers) GetApprovalStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	if err := validation.ValidateUUIDRequired(vars["id"], "plan_id"); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}
	planID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID format", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}

	status, err := h.approvals.GetApprovalStatus(r.Context(), planID, userID)
	if err != nil {
		h.respondApprovalError(w, err, requestID, r)
		return
	}

	approvals := make([]ApprovalResponse, len(status.Approvals))
	for i := range status.Approvals {
		approvals[i] = toApprovalResponse(&status.Approvals[i])
	}

	respondJSON(w, http.StatusOK, ApprovalStatusResponse{
		Plan:       toPlanResponse(status.Plan),
		Approvals:  approvals,
		Approved:   status.Approved,
		Rejected:   status.Rejected,
		Pending:    status.Pending,
		CanExecute: status.CanExecute,
	})
}

/* GetApproval returns a single approval with its plan */
func (h *Handlers) GetApproval(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	if err := validation.ValidateUUIDRequired(vars["id"], "approval_id"); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval ID", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}
	approvalID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval ID format", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
		return
	}

	detail, err := h.approvals.GetApproval(r.Context(), approvalID)
	if err != nil {
		h.respondApprovalError(w, err, requestID, r)
		return
	}

	respondJSON(w, http.StatusOK, ApprovalDetailResponse{
		Approval: toApprovalResponse(detail.Approval),
		Plan:     toPlanResponse(detail.Plan),
	})
}

/* respondApprovalError maps approval service errors to HTTP responses */
func (h *Handlers) respondApprovalError(w http.ResponseWriter, err error, requestID string, r *http.Request) {
	var validationErr *approval.ValidationError
	var insufficient *approval.InsufficientApprovalsError
	switch {
	/* A plan owned by someone else reads as not found so the API
	 * does not leak plan existence to non-owners */
	case errors.Is(err, approval.ErrPlanNotFound),
		errors.Is(err, approval.ErrApprovalNotFound),
		errors.Is(err, approval.ErrNotOwner):
		respondError(w, WrapError(ErrNotFound, requestID))
	case errors.Is(err, approval.ErrNotMultiSignature):
		respondError(w, WrapError(NewError(http.StatusBadRequest, "plan does not have multi-signature approval enabled", err), requestID))
	case errors.Is(err, approval.ErrAlreadyDecided):
		respondError(w, WrapError(NewError(http.StatusConflict, "approval has already been decided", err), requestID))
	case errors.Is(err, approval.ErrAlreadyExecuted):
		respondError(w, WrapError(NewError(http.StatusConflict, "plan has already been executed", err), requestID))
	case errors.As(err, &validationErr):
		respondError(w, WrapError(NewError(http.StatusBadRequest, "validation failed", err), requestID))
	case errors.As(err, &insufficient):
		respondError(w, WrapError(NewError(http.StatusConflict, "plan cannot be executed yet", err), requestID))
	default:
		respondError(w, NewErrorWithContext(http.StatusInternalServerError, "approval operation failed", err, requestID, r.URL.Path, r.Method, "approval", "", nil))
	}
}
