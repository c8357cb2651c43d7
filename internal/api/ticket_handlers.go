/*-------------------------------------------------------------------------
 *
 * ticket_handlers.go
 *    API handlers for support tickets
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/ticket_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skill-mind/InheritX-Backend/internal/audit"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/validation"
)

func (h *Handlers) CreateTicket(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "ticket", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "ticket creation failed: request body parsing error", err, requestID, r.URL.Path, r.Method, "ticket", "", nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateCreateTicketRequest(&req) }) {
		return
	}

	ticket := &db.SupportTicket{
		UserID:      userID,
		Subject:     req.Subject,
		Amount:      req.Amount,
		Status:      db.TicketStatusOpen,
		Description: req.Description,
	}

	if err := h.queries.CreateTicket(r.Context(), ticket); err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to create ticket", err), requestID))
		return
	}

	h.audit.RecordActivity(r.Context(), userID, audit.ActivityTicketOpened,
		fmt.Sprintf("Opened support ticket '%s'", ticket.Subject), "create",
		map[string]interface{}{"ticket_id": ticket.ID})

	respondJSON(w, http.StatusCreated, toTicketResponse(ticket))
}

func (h *Handlers) GetTicket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 32)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid ticket ID", err))
		return
	}

	ticket, err := h.queries.GetTicket(r.Context(), int32(id))
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}
	if ticket.UserID != userID {
		respondError(w, WrapError(ErrForbidden, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toTicketResponse(ticket))
}

func (h *Handlers) ListTickets(w http.ResponseWriter, r *http.Request) {
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

	var status *db.TicketStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := db.TicketStatus(v)
		if !s.Valid() {
			respondError(w, NewError(http.StatusBadRequest, "invalid ticket status filter", fmt.Errorf("unknown status '%s'", v)))
			return
		}
		status = &s
	}

	tickets, err := h.queries.ListTicketsByUser(r.Context(), userID, status, limit, offset)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list tickets", err), requestID))
		return
	}

	responses := make([]TicketResponse, len(tickets))
	for i := range tickets {
		responses[i] = toTicketResponse(&tickets[i])
	}

	respondJSON(w, http.StatusOK, PaginatedResponse{
		Data:     responses,
		Page:     page,
		PageSize: pageSize,
		Total:    int64(len(responses)),
	})
}

func (h *Handlers) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 32)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid ticket ID", err))
		return
	}

	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, "ticket", "", nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body parsing error", err, requestID, r.URL.Path, r.Method, "ticket", "", nil))
		return
	}

	newStatus := db.TicketStatus(req.Status)
	if !newStatus.Valid() {
		respondError(w, NewError(http.StatusBadRequest, "invalid ticket status", fmt.Errorf("unknown status '%s'", req.Status)))
		return
	}

	existing, err := h.queries.GetTicket(r.Context(), int32(id))
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}
	if existing.UserID != userID {
		respondError(w, WrapError(ErrForbidden, requestID))
		return
	}

	ticket, err := h.queries.UpdateTicketStatus(r.Context(), int32(id), newStatus)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to update ticket", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, toTicketResponse(ticket))
}
