/*-------------------------------------------------------------------------
 *
 * approval_queries.go
 *    Database queries for plan approvals
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/approval_queries.go
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

/* Approval queries */
const (
	getApprovalQuery = `SELECT * FROM approvals WHERE id = $1`

	listApprovalsByPlanQuery = `
		SELECT * FROM approvals
		WHERE plan_id = $1
		ORDER BY created_at ASC`
)

/* GetApproval gets an approval by ID */
func (q *Queries) GetApproval(ctx context.Context, id uuid.UUID) (*Approval, error) {
	var approval Approval
	err := q.DB.GetContext(ctx, &approval, getApprovalQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("approval not found on %s: query='%s', approval_id='%s', table='approvals', error=%w",
			q.getConnInfoString(), getApprovalQuery, id.String(), err)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", getApprovalQuery, 1, "approvals", err)
	}
	return &approval, nil
}

/* ListApprovalsByPlan lists all approvals for a plan */
func (q *Queries) ListApprovalsByPlan(ctx context.Context, planID uuid.UUID) ([]Approval, error) {
	var approvals []Approval
	err := q.DB.SelectContext(ctx, &approvals, listApprovalsByPlanQuery, planID)
	if err != nil {
		return nil, q.formatQueryError("SELECT", listApprovalsByPlanQuery, 1, "approvals", err)
	}
	return approvals, nil
}
