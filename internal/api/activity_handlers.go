/*-------------------------------------------------------------------------
 *
 * activity_handlers.go
 *    API handlers for user activity logs
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/activity_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"net/http"
)

/* ListActivities returns the calling user's activity log */
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
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

	activities, err := h.queries.ListActivitiesByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list activities", err), requestID))
		return
	}
	total, err := h.queries.CountActivitiesByUser(r.Context(), userID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to count activities", err), requestID))
		return
	}

	responses := make([]ActivityResponse, len(activities))
	for i := range activities {
		responses[i] = toActivityResponse(&activities[i])
	}

	respondJSON(w, http.StatusOK, PaginatedResponse{
		Data:     responses,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}
