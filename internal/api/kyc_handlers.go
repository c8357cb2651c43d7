/*-------------------------------------------------------------------------
 *
 * kyc_handlers.go
 *    API handlers for KYC verification
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/kyc_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skill-mind/InheritX-Backend/internal/audit"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/kyc"
	"github.com/skill-mind/InheritX-Backend/internal/validation"
)

/* SubmitKyc submits KYC details for the calling user */
func (h *Handlers) SubmitKyc(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "kyc", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req SubmitKycRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "kyc submission failed: request body parsing error", err, requestID, r.URL.Path, r.Method, "kyc", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateSubmitKycRequest(&req) }) {
		return
	}

	record := &db.KycRecord{
		UserID:      userID,
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		IDType:      req.IDType,
		IDNumber:    req.IDNumber,
		Address:     req.Address,
	}

	if err := h.kyc.Submit(r.Context(), record); err != nil {
		if errors.Is(err, kyc.ErrAlreadySubmitted) {
			respondError(w, WrapError(NewError(http.StatusConflict, "kyc record already submitted", err), requestID))
			return
		}
		respondError(w, WrapError(NewError(http.StatusBadRequest, "kyc submission failed", err), requestID))
		return
	}

	h.audit.RecordActivity(r.Context(), userID, audit.ActivityKycSubmitted, "Submitted KYC details", "create",
		map[string]interface{}{"id_type": record.IDType})

	respondJSON(w, http.StatusCreated, toKycResponse(record))
}

/* GetKyc returns the calling user's KYC record */
func (h *Handlers) GetKyc(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	record, err := h.kyc.Get(r.Context(), userID)
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toKycResponse(record))
}

/* GetKycByID returns a KYC record by its record ID */
func (h *Handlers) GetKycByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	if _, err := MustGetUserIDFromContext(r.Context()); err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 32)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid kyc record ID", err))
		return
	}

	record, err := h.kyc.GetByID(r.Context(), int32(id))
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toKycResponse(record))
}

/* GetKycVerified reports whether the calling user is KYC verified */
func (h *Handlers) GetKycVerified(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	verified, err := h.kyc.IsVerified(r.Context(), userID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to check kyc status", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, KycVerifiedResponse{UserID: userID, IsVerified: verified})
}

/* UpdateKycStatus moves the calling user's KYC record to a new status */
func (h *Handlers) UpdateKycStatus(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "kyc", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req UpdateKycStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, r.URL.Path, r.Method, "kyc", "", nil))
		return
	}

	record, err := h.kyc.UpdateStatus(r.Context(), userID, db.KycStatus(req.VerificationStatus))
	if err != nil {
		if errors.Is(err, kyc.ErrRecordNotFound) {
			respondError(w, WrapError(ErrNotFound, requestID))
			return
		}
		respondError(w, WrapError(NewError(http.StatusBadRequest, "kyc status update failed", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, toKycResponse(record))
}
