/*-------------------------------------------------------------------------
 *
 * withdrawal_handlers.go
 *    API handlers for withdrawal history
 *
 * Withdrawal creation is gated on KYC verification.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/withdrawal_handlers.go
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
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skill-mind/InheritX-Backend/internal/audit"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/kyc"
	"github.com/skill-mind/InheritX-Backend/internal/metrics"
	"github.com/skill-mind/InheritX-Backend/internal/validation"
)

/* CreateWithdrawal records a withdrawal for a KYC-verified user */
func (h *Handlers) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "withdrawal", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "withdrawal failed: request body parsing error", err, requestID, r.URL.Path, r.Method, "withdrawal", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateCreateWithdrawalRequest(&req) }) {
		return
	}

	if err := h.kyc.RequireVerified(r.Context(), userID); err != nil {
		if errors.Is(err, kyc.ErrNotVerified) {
			metrics.RecordWithdrawal("kyc_rejected")
			respondError(w, WrapError(NewError(http.StatusForbidden, "kyc verification required for withdrawals", err), requestID))
			return
		}
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to check kyc status", err), requestID))
		return
	}

	/* The plan must exist and belong to the caller */
	plan, err := h.queries.GetPlan(r.Context(), req.PlanID)
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}
	if plan.UserID != userID {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	record := &db.WithdrawalRecord{
		PlanID:    req.PlanID,
		UserID:    userID,
		WalletID:  req.WalletID,
		Amount:    req.Amount,
		PayerName: req.PayerName,
	}

	if err := h.queries.CreateWithdrawal(r.Context(), record); err != nil {
		metrics.RecordWithdrawal("error")
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to record withdrawal", err), requestID))
		return
	}
	metrics.RecordWithdrawal("created")

	h.audit.RecordActivity(r.Context(), userID, audit.ActivityWithdrawal,
		fmt.Sprintf("Withdrew %d from plan '%s'", record.Amount, plan.Name), "create",
		map[string]interface{}{"plan_id": plan.ID.String(), "amount": record.Amount})

	respondJSON(w, http.StatusCreated, toWithdrawalResponse(record))
}

/* ListWithdrawals returns the calling user's withdrawal history */
func (h *Handlers) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
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

	records, err := h.queries.ListWithdrawalsByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list withdrawals", err), requestID))
		return
	}
	total, err := h.queries.CountWithdrawalsByUser(r.Context(), userID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to count withdrawals", err), requestID))
		return
	}

	responses := make([]WithdrawalResponse, len(records))
	for i := range records {
		responses[i] = toWithdrawalResponse(&records[i])
	}

	respondJSON(w, http.StatusOK, PaginatedResponse{
		Data:     responses,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

/* GetWithdrawal retrieves one of the calling user's withdrawal records */
func (h *Handlers) GetWithdrawal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid withdrawal ID", err))
		return
	}

	record, err := h.queries.GetWithdrawal(r.Context(), id, userID)
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toWithdrawalResponse(record))
}

/* UpdateWithdrawal corrects one of the calling user's withdrawal records */
func (h *Handlers) UpdateWithdrawal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid withdrawal ID", err))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "withdrawal", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req UpdateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "withdrawal update failed: request body parsing error", err, requestID, r.URL.Path, r.Method, "withdrawal", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateUpdateWithdrawalRequest(&req) }) {
		return
	}

	record, err := h.queries.GetWithdrawal(r.Context(), id, userID)
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	record.WalletID = req.WalletID
	record.Amount = req.Amount
	record.PayerName = req.PayerName

	if err := h.queries.UpdateWithdrawal(r.Context(), record); err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to update withdrawal", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, toWithdrawalResponse(record))
}

/* DeleteWithdrawal deletes one of the calling user's withdrawal records */
func (h *Handlers) DeleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid withdrawal ID", err))
		return
	}

	if err := h.queries.DeleteWithdrawal(r.Context(), id, userID); err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
