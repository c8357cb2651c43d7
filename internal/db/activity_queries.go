/*-------------------------------------------------------------------------
 *
 * activity_queries.go
 *    Database queries for user activity logs
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/activity_queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"

	"github.com/google/uuid"
)

/* User activity queries */
const (
	createActivityQuery = `
		INSERT INTO user_activities (user_id, activity_type, details, action_type, action_link, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	listActivitiesByUserQuery = `
		SELECT * FROM user_activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	countActivitiesByUserQuery = `
		SELECT COUNT(*) FROM user_activities WHERE user_id = $1`
)

/* CreateActivity records a user activity */
func (q *Queries) CreateActivity(ctx context.Context, activity *UserActivity) error {
	params := []interface{}{
		activity.UserID, activity.ActivityType, activity.Details,
		activity.ActionType, activity.ActionLink, activity.Metadata,
	}
	err := q.DB.GetContext(ctx, activity, createActivityQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", createActivityQuery, len(params), "user_activities", err)
	}
	return nil
}

/* ListActivitiesByUser lists a user's activity log, newest first */
func (q *Queries) ListActivitiesByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]UserActivity, error) {
	var activities []UserActivity
	params := []interface{}{userID, limit, offset}
	err := q.DB.SelectContext(ctx, &activities, listActivitiesByUserQuery, params...)
	if err != nil {
		return nil, q.formatQueryError("SELECT", listActivitiesByUserQuery, len(params), "user_activities", err)
	}
	return activities, nil
}

/* CountActivitiesByUser counts a user's activity entries */
func (q *Queries) CountActivitiesByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := q.DB.GetContext(ctx, &total, countActivitiesByUserQuery, userID)
	if err != nil {
		return 0, q.formatQueryError("SELECT", countActivitiesByUserQuery, 1, "user_activities", err)
	}
	return total, nil
}
