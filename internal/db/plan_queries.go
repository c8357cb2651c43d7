/*-------------------------------------------------------------------------
 *
 * plan_queries.go
 *    Database queries for inheritance plans
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/plan_queries.go
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

/* Plan queries */
const (
	createPlanQuery = `
		INSERT INTO plans
		(user_id, name, description, multi_signature_approval, required_approvals, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, current_approvals, executed_at, created_at, updated_at`

	getPlanQuery = `SELECT * FROM plans WHERE id = $1`

	listPlansQuery = `
		SELECT * FROM plans
		WHERE ($1::uuid IS NULL OR user_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	countPlansQuery = `
		SELECT COUNT(*) FROM plans
		WHERE ($1::uuid IS NULL OR user_id = $1)`

	updatePlanQuery = `
		UPDATE plans
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, name, description, multi_signature_approval, required_approvals,
				  current_approvals, status, executed_at, created_at, updated_at`

	deletePlanQuery = `DELETE FROM plans WHERE id = $1`
)

/* CreatePlan creates a new plan */
func (q *Queries) CreatePlan(ctx context.Context, plan *Plan) error {
	params := []interface{}{
		plan.UserID, plan.Name, plan.Description, plan.MultiSignatureApproval,
		plan.RequiredApprovals, plan.Status,
	}
	err := q.DB.GetContext(ctx, plan, createPlanQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", createPlanQuery, len(params), "plans", err)
	}
	return nil
}

/* GetPlan gets a plan by ID */
func (q *Queries) GetPlan(ctx context.Context, id uuid.UUID) (*Plan, error) {
	var plan Plan
	err := q.DB.GetContext(ctx, &plan, getPlanQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan not found on %s: query='%s', plan_id='%s', table='plans', error=%w",
			q.getConnInfoString(), getPlanQuery, id.String(), err)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", getPlanQuery, 1, "plans", err)
	}
	return &plan, nil
}

/* ListPlans lists plans, optionally filtered by owner */
func (q *Queries) ListPlans(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]Plan, error) {
	var plans []Plan
	params := []interface{}{userID, limit, offset}
	err := q.DB.SelectContext(ctx, &plans, listPlansQuery, params...)
	if err != nil {
		return nil, q.formatQueryError("SELECT", listPlansQuery, len(params), "plans", err)
	}
	return plans, nil
}

/* CountPlans counts plans, optionally filtered by owner */
func (q *Queries) CountPlans(ctx context.Context, userID *uuid.UUID) (int64, error) {
	var total int64
	err := q.DB.GetContext(ctx, &total, countPlansQuery, userID)
	if err != nil {
		return 0, q.formatQueryError("SELECT", countPlansQuery, 1, "plans", err)
	}
	return total, nil
}

/* UpdatePlan updates a plan's name and description */
func (q *Queries) UpdatePlan(ctx context.Context, plan *Plan) error {
	params := []interface{}{plan.ID, plan.Name, plan.Description}
	err := q.DB.GetContext(ctx, plan, updatePlanQuery, params...)
	if err == sql.ErrNoRows {
		return fmt.Errorf("plan not found on %s: query='%s', plan_id='%s', table='plans', error=%w",
			q.getConnInfoString(), updatePlanQuery, plan.ID.String(), err)
	}
	if err != nil {
		return q.formatQueryError("UPDATE", updatePlanQuery, len(params), "plans", err)
	}
	return nil
}

/* DeletePlan deletes a plan and its approvals */
func (q *Queries) DeletePlan(ctx context.Context, id uuid.UUID) error {
	result, err := q.DB.ExecContext(ctx, deletePlanQuery, id)
	if err != nil {
		return q.formatQueryError("DELETE", deletePlanQuery, 1, "plans", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for DELETE on %s: query='%s', plan_id='%s', table='plans', error=%w",
			q.getConnInfoString(), deletePlanQuery, id.String(), err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("plan not found on %s: query='%s', plan_id='%s', table='plans', rows_affected=0",
			q.getConnInfoString(), deletePlanQuery, id.String())
	}
	return nil
}
