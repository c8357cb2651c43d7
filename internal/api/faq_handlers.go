/*-------------------------------------------------------------------------
 *
 * faq_handlers.go
 *    API handlers for FAQs
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/faq_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/validation"
)

func (h *Handlers) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "faq", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req UpsertFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "faq creation failed: request body parsing error", err, requestID, r.URL.Path, r.Method, "faq", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateUpsertFAQRequest(&req) }) {
		return
	}

	faq := &db.FAQ{Question: req.Question, Answer: req.Answer}
	if err := h.queries.CreateFAQ(r.Context(), faq); err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to create faq", err), requestID))
		return
	}

	respondJSON(w, http.StatusCreated, toFAQResponse(faq))
}

func (h *Handlers) ListFAQs(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	faqs, err := h.queries.ListFAQs(r.Context())
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list faqs", err), requestID))
		return
	}

	responses := make([]FAQResponse, len(faqs))
	for i := range faqs {
		responses[i] = toFAQResponse(&faqs[i])
	}
	respondJSON(w, http.StatusOK, responses)
}

func (h *Handlers) GetFAQ(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	id, err := strconv.ParseInt(vars["id"], 10, 32)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid faq ID", err))
		return
	}

	faq, err := h.queries.GetFAQ(r.Context(), int32(id))
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toFAQResponse(faq))
}

func (h *Handlers) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	id, err := strconv.ParseInt(vars["id"], 10, 32)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid faq ID", err))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "faq", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req UpsertFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, r.URL.Path, r.Method, "faq", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateUpsertFAQRequest(&req) }) {
		return
	}

	faq := &db.FAQ{ID: int32(id), Question: req.Question, Answer: req.Answer}
	if err := h.queries.UpdateFAQ(r.Context(), faq); err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toFAQResponse(faq))
}

func (h *Handlers) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	id, err := strconv.ParseInt(vars["id"], 10, 32)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid faq ID", err))
		return
	}

	if err := h.queries.DeleteFAQ(r.Context(), int32(id)); err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
