/*-------------------------------------------------------------------------
 *
 * recorder.go
 *    Activity and notification recording
 *
 * Records user activity log entries and in-app notifications for plan
 * lifecycle events. Recording is best-effort: failures are logged but
 * never fail the operation that triggered them.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/audit/recorder.go
 *
 *-------------------------------------------------------------------------
 */

package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/metrics"
)

/* Activity types */
const (
	ActivityPlanCreated        = "plan_created"
	ActivityPlanUpdated        = "plan_updated"
	ActivityPlanDeleted        = "plan_deleted"
	ActivityPlanExecuted       = "plan_executed"
	ActivityApprovalsRequested = "approvals_requested"
	ActivityApprovalDecided    = "approval_decided"
	ActivityKycSubmitted       = "kyc_submitted"
	ActivityWithdrawal         = "withdrawal"
	ActivityTicketOpened       = "ticket_opened"
)

/* Recorder writes activity entries and notifications */
type Recorder struct {
	queries *db.Queries
}

/* NewRecorder creates a new audit recorder */
func NewRecorder(queries *db.Queries) *Recorder {
	return &Recorder{queries: queries}
}

/* RecordActivity writes an activity log entry. Errors are logged, not returned. */
func (r *Recorder) RecordActivity(ctx context.Context, userID uuid.UUID, activityType, details, actionType string, metadata map[string]interface{}) {
	activity := &db.UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		Details:      details,
		ActionType:   actionType,
		Metadata:     db.FromMap(metadata),
	}
	if err := r.queries.CreateActivity(ctx, activity); err != nil {
		metrics.WarnWithContext(ctx, "Failed to record user activity", map[string]interface{}{
			"user_id":       userID.String(),
			"activity_type": activityType,
			"error":         err.Error(),
		})
	}
}

/* Notify writes an in-app notification. Errors are logged, not returned. */
func (r *Recorder) Notify(ctx context.Context, userID uuid.UUID, title, body string) {
	notification := &db.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := r.queries.CreateNotification(ctx, notification); err != nil {
		metrics.RecordNotificationSent("in_app", "error")
		metrics.WarnWithContext(ctx, "Failed to create notification", map[string]interface{}{
			"user_id": userID.String(),
			"title":   title,
			"error":   err.Error(),
		})
		return
	}
	metrics.RecordNotificationSent("in_app", "created")
}
