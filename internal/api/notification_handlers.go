/*-------------------------------------------------------------------------
 *
 * notification_handlers.go
 *    API handlers for in-app notifications
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/notification_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

/* ListNotifications returns the calling user's notifications */
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
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

	notifications, err := h.queries.ListNotificationsByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list notifications", err), requestID))
		return
	}

	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = toNotificationResponse(&notifications[i])
	}

	respondJSON(w, http.StatusOK, PaginatedResponse{
		Data:     responses,
		Page:     page,
		PageSize: pageSize,
		Total:    int64(len(responses)),
	})
}

/* MarkNotificationRead marks one notification as read */
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 32)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid notification ID", err))
		return
	}

	notification, err := h.queries.MarkNotificationRead(r.Context(), int32(id), userID)
	if err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toNotificationResponse(notification))
}

/* MarkAllNotificationsRead marks all of the user's notifications as read */
func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	updated, err := h.queries.MarkAllNotificationsRead(r.Context(), userID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to mark notifications read", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

/* DeleteNotification deletes one of the user's notifications */
func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	userID, err := MustGetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 32)
	if err != nil {
		respondError(w, NewError(http.StatusBadRequest, "invalid notification ID", err))
		return
	}

	if err := h.queries.DeleteNotification(r.Context(), int32(id), userID); err != nil {
		respondError(w, WrapError(ErrNotFound, requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
