/*-------------------------------------------------------------------------
 *
 * notification_queries.go
 *    Database queries for notifications
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/notification_queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

/* Notification queries */
const (
	createNotificationQuery = `
		INSERT INTO notifications (user_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at, updated_at`

	listNotificationsByUserQuery = `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	markNotificationReadQuery = `
		UPDATE notifications
		SET is_read = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, body, is_read, created_at, updated_at`

	markAllNotificationsReadQuery = `
		UPDATE notifications
		SET is_read = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE`

	deleteNotificationQuery = `DELETE FROM notifications WHERE id = $1 AND user_id = $2`
)

/* CreateNotification creates a notification for a user */
func (q *Queries) CreateNotification(ctx context.Context, n *Notification) error {
	params := []interface{}{n.UserID, n.Title, n.Body}
	err := q.DB.GetContext(ctx, n, createNotificationQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", createNotificationQuery, len(params), "notifications", err)
	}
	return nil
}

/* ListNotificationsByUser lists a user's notifications, newest first */
func (q *Queries) ListNotificationsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Notification, error) {
	var notifications []Notification
	params := []interface{}{userID, limit, offset}
	err := q.DB.SelectContext(ctx, &notifications, listNotificationsByUserQuery, params...)
	if err != nil {
		return nil, q.formatQueryError("SELECT", listNotificationsByUserQuery, len(params), "notifications", err)
	}
	return notifications, nil
}

/* MarkNotificationRead marks a single notification as read */
func (q *Queries) MarkNotificationRead(ctx context.Context, id int32, userID uuid.UUID) (*Notification, error) {
	var n Notification
	err := q.DB.GetContext(ctx, &n, markNotificationReadQuery, id, userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification not found on %s: query='%s', notification_id=%d, table='notifications', error=%w",
			q.getConnInfoString(), markNotificationReadQuery, id, err)
	}
	if err != nil {
		return nil, q.formatQueryError("UPDATE", markNotificationReadQuery, 2, "notifications", err)
	}
	return &n, nil
}

/* MarkAllNotificationsRead marks all of a user's notifications as read */
func (q *Queries) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := q.DB.ExecContext(ctx, markAllNotificationsReadQuery, userID)
	if err != nil {
		return 0, q.formatQueryError("UPDATE", markAllNotificationsReadQuery, 1, "notifications", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for UPDATE on %s: query='%s', user_id='%s', table='notifications', error=%w",
			q.getConnInfoString(), markAllNotificationsReadQuery, userID.String(), err)
	}
	return rowsAffected, nil
}

/* DeleteNotification deletes a user's notification */
func (q *Queries) DeleteNotification(ctx context.Context, id int32, userID uuid.UUID) error {
	result, err := q.DB.ExecContext(ctx, deleteNotificationQuery, id, userID)
	if err != nil {
		return q.formatQueryError("DELETE", deleteNotificationQuery, 2, "notifications", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for DELETE on %s: query='%s', notification_id=%d, table='notifications', error=%w",
			q.getConnInfoString(), deleteNotificationQuery, id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("notification not found on %s: query='%s', notification_id=%d, table='notifications', rows_affected=0",
			q.getConnInfoString(), deleteNotificationQuery, id)
	}
	return nil
}
