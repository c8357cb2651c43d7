/*-------------------------------------------------------------------------
 *
 * service.go
 *    Multi-signature approval workflow for inheritance plans
 *
 * Manages the approval lifecycle: requesting approvals from a set of
 * approvers, recording decisions, computing plan approval status, and
 * gating plan execution on the approval threshold. All state changes
 * run inside a single transaction so the plan's approval counter never
 * drifts from the approvals table.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/approval/service.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/metrics"
)

/* Service manages plan approval workflows */
type Service struct {
	db      *sqlx.DB
	queries *db.Queries
}

/* NewService creates a new approval service */
func NewService(database *sqlx.DB) *Service {
	return &Service{db: database, queries: db.NewQueries(database)}
}

/* Status summarizes a plan's approval progress */
type Status struct {
	Plan       *db.Plan
	Approvals  []db.Approval
	Approved   int
	Rejected   int
	Pending    int
	CanExecute bool
}

/* Detail pairs an approval with a summary of its plan */
type Detail struct {
	Approval *db.Approval
	Plan     *db.Plan
}

const lockPlanQuery = `SELECT * FROM plans WHERE id = $1 FOR UPDATE`

/* RequestApprovals replaces the approver set for a plan and arms its
 * approval gate.
 *
 * The plan's multi-signature flag is enabled and the required-approval
 * count stored, any existing approvals are discarded, a pending
 * approval row is created per approver email, the approval counter
 * resets to zero, and the plan moves to awaiting_approval. Runs in one
 * transaction: a failure partway leaves the previous approver set
 * intact. */
func (s *Service) RequestApprovals(ctx context.Context, planID, userID uuid.UUID, approverEmails []string, requiredApprovals int) ([]db.Approval, error) {
	if len(approverEmails) == 0 {
		return nil, &ValidationError{Field: "approver_emails", Message: "at least one approver email is required"}
	}
	seen := make(map[string]bool, len(approverEmails))
	for _, email := range approverEmails {
		if email == "" {
			return nil, &ValidationError{Field: "approver_emails", Message: "approver email must not be empty"}
		}
		if seen[email] {
			return nil, &ValidationError{Field: "approver_emails", Message: fmt.Sprintf("duplicate approver email '%s'", email)}
		}
		seen[email] = true
	}
	if requiredApprovals < 1 {
		return nil, &ValidationError{Field: "required_approvals", Message: "required_approvals must be at least 1"}
	}
	if requiredApprovals > len(approverEmails) {
		return nil, &ValidationError{
			Field:   "required_approvals",
			Message: fmt.Sprintf("required_approvals %d exceeds the %d approvers given", requiredApprovals, len(approverEmails)),
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var plan db.Plan
	err = tx.GetContext(ctx, &plan, lockPlanQuery, planID)
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan.UserID != userID {
		return nil, ErrNotOwner
	}
	if plan.Status == db.PlanStatusExecuted {
		return nil, ErrAlreadyExecuted
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM approvals WHERE plan_id = $1`, planID); err != nil {
		return nil, fmt.Errorf("failed to clear existing approvals: %w", err)
	}

	insertQuery := `
		INSERT INTO approvals (plan_id, approver_email, decision)
		VALUES ($1, $2, $3)
		RETURNING *`

	approvals := make([]db.Approval, 0, len(approverEmails))
	for _, email := range approverEmails {
		var a db.Approval
		if err := tx.GetContext(ctx, &a, insertQuery, planID, email, db.DecisionPending); err != nil {
			return nil, fmt.Errorf("failed to create approval for '%s': %w", email, err)
		}
		approvals = append(approvals, a)
	}

	armQuery := `
		UPDATE plans
		SET multi_signature_approval = TRUE, required_approvals = $2,
			current_approvals = 0, status = $3, updated_at = NOW()
		WHERE id = $1`
	if _, err := tx.ExecContext(ctx, armQuery, planID, requiredApprovals, db.PlanStatusAwaitingApproval); err != nil {
		return nil, fmt.Errorf("failed to arm plan approval gate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval request: %w", err)
	}

	metrics.RecordApprovalRequest("created")
	return approvals, nil
}

/* SubmitApproval records an approver's decision.
 *
 * The approval must still be pending; re-deciding is rejected with
 * ErrAlreadyDecided. The plan's approval counter is recomputed from
 * the approvals table in the same transaction, and the plan becomes
 * executable once the counter reaches the required threshold. */
func (s *Service) SubmitApproval(ctx context.Context, approvalID uuid.UUID, decision db.Decision) (*db.Approval, *db.Plan, error) {
	if decision != db.DecisionApproved && decision != db.DecisionRejected {
		return nil, nil, &ValidationError{Field: "decision", Message: fmt.Sprintf("decision must be 'approved' or 'rejected', got '%s'", decision)}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var approval db.Approval
	err = tx.GetContext(ctx, &approval, `SELECT * FROM approvals WHERE id = $1 FOR UPDATE`, approvalID)
	if err == sql.ErrNoRows {
		return nil, nil, ErrApprovalNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load approval: %w", err)
	}
	if approval.Decision != db.DecisionPending {
		return nil, nil, ErrAlreadyDecided
	}

	decideQuery := `
		UPDATE approvals
		SET decision = $2, decided_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING *`
	if err := tx.GetContext(ctx, &approval, decideQuery, approvalID, decision); err != nil {
		return nil, nil, fmt.Errorf("failed to record decision: %w", err)
	}

	/* Recount from the approvals table rather than incrementing, so the
	 * counter self-corrects even if approvals were replaced concurrently. */
	recountQuery := `
		UPDATE plans
		SET current_approvals = sub.approved,
			status = CASE
				WHEN status <> 'executed' AND sub.approved >= required_approvals THEN 'executable'
				ELSE status
			END,
			updated_at = NOW()
		FROM (
			SELECT COUNT(*) AS approved FROM approvals
			WHERE plan_id = $1 AND decision = 'approved'
		) AS sub
		WHERE plans.id = $1
		RETURNING plans.*`

	var plan db.Plan
	err = tx.GetContext(ctx, &plan, recountQuery, approval.PlanID)
	if err == sql.ErrNoRows {
		return nil, nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to recount approvals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit decision: %w", err)
	}

	metrics.RecordApprovalDecision(string(decision))
	return &approval, &plan, nil
}

/* GetApprovalStatus returns a plan's approval progress.
 *
 * The plan must belong to the caller and must have its approval gate
 * enabled; a plan owned by someone else reads as not found. */
func (s *Service) GetApprovalStatus(ctx context.Context, planID, userID uuid.UUID) (*Status, error) {
	plan, err := s.queries.GetPlan(ctx, planID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan.UserID != userID {
		return nil, ErrNotOwner
	}
	if !plan.MultiSignatureApproval {
		return nil, ErrNotMultiSignature
	}

	approvals, err := s.queries.ListApprovalsByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approvals: %w", err)
	}

	status := &Status{Plan: plan, Approvals: approvals}
	for _, a := range approvals {
		switch a.Decision {
		case db.DecisionApproved:
			status.Approved++
		case db.DecisionRejected:
			status.Rejected++
		default:
			status.Pending++
		}
	}
	status.CanExecute = status.Approved >= plan.RequiredApprovals
	return status, nil
}

/* GetApproval returns a single approval with its plan */
func (s *Service) GetApproval(ctx context.Context, approvalID uuid.UUID) (*Detail, error) {
	approval, err := s.queries.GetApproval(ctx, approvalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApprovalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load approval: %w", err)
	}

	plan, err := s.queries.GetPlan(ctx, approval.PlanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	return &Detail{Approval: approval, Plan: plan}, nil
}

/* ExecutePlan marks a plan as executed if its approval gate is satisfied.
 *
 * The gate and the status transition happen in one guarded UPDATE so
 * two concurrent executions cannot both succeed, and executed_at is
 * stamped exactly once. */
func (s *Service) ExecutePlan(ctx context.Context, planID, userID uuid.UUID) (*db.Plan, error) {
	start := time.Now()

	executeQuery := `
		UPDATE plans
		SET status = 'executed', executed_at = NOW(), updated_at = NOW()
		WHERE id = $1
		AND user_id = $2
		AND status <> 'executed'
		AND (multi_signature_approval = FALSE OR current_approvals >= required_approvals)
		RETURNING *`

	var plan db.Plan
	err := s.db.GetContext(ctx, &plan, executeQuery, planID, userID)
	if err == nil {
		metrics.RecordPlanExecution("executed", time.Since(start))
		return &plan, nil
	}
	if err != sql.ErrNoRows {
		metrics.RecordPlanExecution("error", time.Since(start))
		return nil, fmt.Errorf("failed to execute plan: %w", err)
	}

	/* The guarded update matched nothing; load the plan to say why. */
	loaded, err := s.queries.GetPlan(ctx, planID)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordPlanExecution("not_found", time.Since(start))
		return nil, ErrPlanNotFound
	}
	if err != nil {
		metrics.RecordPlanExecution("error", time.Since(start))
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if loaded.UserID != userID {
		metrics.RecordPlanExecution("not_owner", time.Since(start))
		return nil, ErrNotOwner
	}
	if loaded.Status == db.PlanStatusExecuted {
		metrics.RecordPlanExecution("already_executed", time.Since(start))
		return nil, ErrAlreadyExecuted
	}
	metrics.RecordPlanExecution("insufficient_approvals", time.Since(start))
	return nil, &InsufficientApprovalsError{
		Required: loaded.RequiredApprovals,
		Current:  loaded.CurrentApprovals,
	}
}
