/*-------------------------------------------------------------------------
 *
 * handlers.go
 *    API handlers for inheritance plans
 *
 * Provides HTTP handlers for plan CRUD and plan execution.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/handlers.go
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
	"github.com/skill-mind/InheritX-Backend/internal/kyc"
	"github.com/skill-mind/InheritX-Backend/internal/notifications"
	"github.com/skill-mind/InheritX-Backend/internal/validation"
)

/* Maximum request body size (1MB) */
const maxBodySize = 1024 * 1024

type Handlers struct {
	queries   *db.Queries
	approvals *approval.Service
	kyc       *kyc.Verifier
	audit     *audit.Recorder
	email     *notifications.EmailService
}

func NewHandlers(queries *db.Queries, approvals *approval.Service, verifier *kyc.Verifier, recorder *audit.Recorder, email *notifications.EmailService) *Handlers {
	return &Handlers{
		queries:   queries,
		approvals: approvals,
		kyc:       verifier,
		audit:     recorder,
		email:     email,
	}
}

/* Plans */

func (h *Handlers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())
	endpoint := r.URL.Path
	method := r.Method

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, endpoint, method, "plan", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "plan creation failed: request body parsing error", err, requestID, endpoint, method, "plan", "", map[string]interface{}{
			"body_size": len(bodyBytes),
		}))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateCreatePlanRequest(&req) }) {
		return
	}

	plan := &db.Plan{
		UserID:                 userID,
		Name:                   req.Name,
		Description:            req.Description,
		MultiSignatureApproval: req.MultiSignatureApproval,
		RequiredApprovals:      req.RequiredApprovals,
		Status:                 db.PlanStatusCreated,
	}

	if err := h.queries.CreatePlan(r.Context(), plan); err != nil {
		respondError(w, NewErrorWithContext(http.StatusInternalServerError, "plan creation failed", err, requestID, endpoint, method, "plan", "", map[string]interface{}{
			"plan_name": req.Name,
		}))
		return
	}

	h.audit.RecordActivity(r.Context(), userID, audit.ActivityPlanCreated,
		fmt.Sprintf("Created plan '%s'", plan.Name), "create",
		map[string]interface{}{"plan_id": plan.ID.String()})

	respondJSON(w, http.StatusCreated, toPlanResponse(plan))
}

func (h *Handlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	if err := validation.ValidateUUIDRequired(vars["id"], "plan_id"); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID format", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}

	plan, err := h.queries.GetPlan(r.Context(), id)
	if err != nil || plan.UserID != userID {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toPlanResponse(plan))
}

func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	page, pageSize, limit, offset, err := parsePagination(r)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid pagination parameters", err))
		return
	}

	plans, err := h.queries.ListPlans(r.Context(), &userID, limit, offset)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list plans", err), requestID))
		return
	}
	total, err := h.queries.CountPlans(r.Context(), &userID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to count plans", err), requestID))
		return
	}

	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = toPlanResponse(&plans[i])
	}

	respondJSON(w, http.StatusOK, PaginatedResponse{
		Data:     responses,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

func (h *Handlers) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	if err := validation.ValidateUUIDRequired(vars["id"], "plan_id"); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID format", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateUpdatePlanRequest(&req) }) {
		return
	}

	existing, err := h.queries.GetPlan(r.Context(), id)
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}
	if existing.UserID != userID {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}
	if existing.Status == db.PlanStatusExecuted {
		respondError(w, WrapError(NewError(http.StatusConflict, "plan has already been executed", nil), requestID))
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	if err := h.queries.UpdatePlan(r.Context(), existing); err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to update plan", err), requestID))
		return
	}

	h.audit.RecordActivity(r.Context(), userID, audit.ActivityPlanUpdated,
		fmt.Sprintf("Updated plan '%s'", existing.Name), "update",
		map[string]interface{}{"plan_id": existing.ID.String()})

	respondJSON(w, http.StatusOK, toPlanResponse(existing))
}

func (h *Handlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	if err := validation.ValidateUUIDRequired(vars["id"], "plan_id"); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID format", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}

	existing, err := h.queries.GetPlan(r.Context(), id)
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}
	if existing.UserID != userID {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	if err := h.queries.DeletePlan(r.Context(), id); err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	h.audit.RecordActivity(r.Context(), userID, audit.ActivityPlanDeleted,
		fmt.Sprintf("Deleted plan '%s'", existing.Name), "delete",
		map[string]interface{}{"plan_id": id.String()})

	w.WriteHeader(http.StatusNoContent)
}

/* ExecutePlan marks a plan executed once its approval gate is satisfied */
func (h *Handlers) ExecutePlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	if err := validation.ValidateUUIDRequired(vars["id"], "plan_id"); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid plan ID format", err, requestID, r.URL.Path, r.Method, "plan", "", nil))
		return
	}

	plan, err := h.approvals.ExecutePlan(r.Context(), id, userID)
	if err != nil {
		var insufficient *approval.InsufficientApprovalsError
		switch {
		case errors.Is(err, approval.ErrPlanNotFound), errors.Is(err, approval.ErrNotOwner):
			respondError(w, WrapError(ErrNotFound, requestID))
		case errors.Is(err, approval.ErrAlreadyExecuted):
			respondError(w, WrapError(NewError(http.StatusConflict, "plan has already been executed", err), requestID))
		case errors.As(err, &insufficient):
			respondError(w, WrapError(NewError(http.StatusConflict, "plan cannot be executed yet", err), requestID))
		default:
			respondError(w, NewErrorWithContext(http.StatusInternalServerError, "plan execution failed", err, requestID, r.URL.Path, r.Method, "plan", id.String(), nil))
		}
		return
	}

	h.audit.RecordActivity(r.Context(), userID, audit.ActivityPlanExecuted,
		fmt.Sprintf("Executed plan '%s'", plan.Name), "execute",
		map[string]interface{}{"plan_id": plan.ID.String()})
	h.audit.Notify(r.Context(), userID, "Plan executed",
		fmt.Sprintf("Your plan '%s' has been executed.", plan.Name))

	respondJSON(w, http.StatusOK, toPlanResponse(plan))
}
