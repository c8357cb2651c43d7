/*-------------------------------------------------------------------------
 *
 * service_test.go
 *    Tests for the multi-signature approval workflow
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/approval/service_test.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skill-mind/InheritX-Backend/internal/db"
)

var planColumns = []string{
	"id", "user_id", "name", "description", "multi_signature_approval",
	"required_approvals", "current_approvals", "status", "executed_at",
	"created_at", "updated_at",
}

var approvalColumns = []string{
	"id", "plan_id", "approver_email", "approver_id", "decision",
	"decided_at", "created_at", "updated_at",
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return NewService(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func planRow(id, userID uuid.UUID, multiSig bool, required, current int, status db.PlanStatus, executedAt *time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(planColumns).
		AddRow(id.String(), userID.String(), "estate plan", "", multiSig, required, current, string(status), executedAt, now, now)
}

func approvalRow(id, planID uuid.UUID, email string, decision db.Decision, decidedAt *time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(approvalColumns).
		AddRow(id.String(), planID.String(), email, nil, string(decision), decidedAt, now, now)
}

/* TestRequestApprovalsReplacesApprovers tests the full replace-and-reset path */
func TestRequestApprovalsReplacesApprovers(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()
	emails := []string{"alice@example.com", "bob@example.com"}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1 FOR UPDATE`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, true, 2, 1, db.PlanStatusAwaitingApproval, nil))
	mock.ExpectExec(`DELETE FROM approvals WHERE plan_id = \$1`).
		WithArgs(planID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, email := range emails {
		mock.ExpectQuery(`INSERT INTO approvals`).
			WithArgs(planID, email, db.DecisionPending).
			WillReturnRows(approvalRow(uuid.New(), planID, email, db.DecisionPending, nil))
	}
	mock.ExpectExec(`UPDATE plans`).
		WithArgs(planID, 2, db.PlanStatusAwaitingApproval).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	approvals, err := svc.RequestApprovals(context.Background(), planID, userID, emails, 2)
	if err != nil {
		t.Fatalf("request approvals: %v", err)
	}
	if len(approvals) != 2 {
		t.Fatalf("expected 2 approvals, got %d", len(approvals))
	}
	for i, a := range approvals {
		if a.Decision != db.DecisionPending {
			t.Errorf("approval %d: expected pending decision, got %s", i, a.Decision)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestRequestApprovalsNotOwner tests the owner guard */
func TestRequestApprovalsNotOwner(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1 FOR UPDATE`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, uuid.New(), true, 2, 0, db.PlanStatusCreated, nil))
	mock.ExpectRollback()

	_, err := svc.RequestApprovals(context.Background(), planID, uuid.New(), []string{"alice@example.com"}, 1)
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

/* TestRequestApprovalsArmsSingleSignaturePlan tests that requesting approvals
 * on a plan created without multi-signature turns the gate on and stores the
 * threshold */
func TestRequestApprovalsArmsSingleSignaturePlan(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()
	emails := []string{"alice@example.com", "bob@example.com", "carol@example.com"}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1 FOR UPDATE`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, false, 0, 0, db.PlanStatusCreated, nil))
	mock.ExpectExec(`DELETE FROM approvals WHERE plan_id = \$1`).
		WithArgs(planID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for _, email := range emails {
		mock.ExpectQuery(`INSERT INTO approvals`).
			WithArgs(planID, email, db.DecisionPending).
			WillReturnRows(approvalRow(uuid.New(), planID, email, db.DecisionPending, nil))
	}
	mock.ExpectExec(`UPDATE plans`).
		WithArgs(planID, 3, db.PlanStatusAwaitingApproval).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	approvals, err := svc.RequestApprovals(context.Background(), planID, userID, emails, 3)
	if err != nil {
		t.Fatalf("request approvals: %v", err)
	}
	if len(approvals) != 3 {
		t.Fatalf("expected 3 approvals, got %d", len(approvals))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestRequestApprovalsExecutedPlan tests that executed plans are locked out */
func TestRequestApprovalsExecutedPlan(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()
	executed := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1 FOR UPDATE`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, true, 2, 2, db.PlanStatusExecuted, &executed))
	mock.ExpectRollback()

	_, err := svc.RequestApprovals(context.Background(), planID, userID, []string{"alice@example.com"}, 1)
	if !errors.Is(err, ErrAlreadyExecuted) {
		t.Fatalf("expected ErrAlreadyExecuted, got %v", err)
	}
}

/* TestRequestApprovalsValidation tests input validation before any transaction */
func TestRequestApprovalsValidation(t *testing.T) {
	svc, _ := newTestService(t)

	var validationErr *ValidationError

	_, err := svc.RequestApprovals(context.Background(), uuid.New(), uuid.New(), nil, 1)
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for empty emails, got %v", err)
	}

	_, err = svc.RequestApprovals(context.Background(), uuid.New(), uuid.New(),
		[]string{"alice@example.com", "alice@example.com"}, 1)
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for duplicate emails, got %v", err)
	}

	_, err = svc.RequestApprovals(context.Background(), uuid.New(), uuid.New(), []string{""}, 1)
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for empty email, got %v", err)
	}

	_, err = svc.RequestApprovals(context.Background(), uuid.New(), uuid.New(),
		[]string{"alice@example.com"}, 0)
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for zero threshold, got %v", err)
	}

	_, err = svc.RequestApprovals(context.Background(), uuid.New(), uuid.New(),
		[]string{"alice@example.com", "bob@example.com"}, 3)
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for threshold above approver count, got %v", err)
	}
}

/* TestSubmitApprovalRecordsDecision tests the decide-and-recount path */
func TestSubmitApprovalRecordsDecision(t *testing.T) {
	svc, mock := newTestService(t)
	approvalID := uuid.New()
	planID := uuid.New()
	userID := uuid.New()
	decided := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM approvals WHERE id = \$1 FOR UPDATE`).
		WithArgs(approvalID).
		WillReturnRows(approvalRow(approvalID, planID, "alice@example.com", db.DecisionPending, nil))
	mock.ExpectQuery(`UPDATE approvals`).
		WithArgs(approvalID, db.DecisionApproved).
		WillReturnRows(approvalRow(approvalID, planID, "alice@example.com", db.DecisionApproved, &decided))
	mock.ExpectQuery(`UPDATE plans`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, true, 2, 2, db.PlanStatusExecutable, nil))
	mock.ExpectCommit()

	approval, plan, err := svc.SubmitApproval(context.Background(), approvalID, db.DecisionApproved)
	if err != nil {
		t.Fatalf("submit approval: %v", err)
	}
	if approval.Decision != db.DecisionApproved {
		t.Errorf("expected approved decision, got %s", approval.Decision)
	}
	if approval.DecidedAt == nil {
		t.Error("expected decided_at to be set")
	}
	if plan.Status != db.PlanStatusExecutable {
		t.Errorf("expected executable status, got %s", plan.Status)
	}
	if plan.CurrentApprovals != 2 {
		t.Errorf("expected 2 current approvals, got %d", plan.CurrentApprovals)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestSubmitApprovalAlreadyDecided tests that a decision cannot be changed */
func TestSubmitApprovalAlreadyDecided(t *testing.T) {
	svc, mock := newTestService(t)
	approvalID := uuid.New()
	decided := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM approvals WHERE id = \$1 FOR UPDATE`).
		WithArgs(approvalID).
		WillReturnRows(approvalRow(approvalID, uuid.New(), "alice@example.com", db.DecisionApproved, &decided))
	mock.ExpectRollback()

	_, _, err := svc.SubmitApproval(context.Background(), approvalID, db.DecisionRejected)
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}
}

/* TestSubmitApprovalNotFound tests the missing-approval path */
func TestSubmitApprovalNotFound(t *testing.T) {
	svc, mock := newTestService(t)
	approvalID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM approvals WHERE id = \$1 FOR UPDATE`).
		WithArgs(approvalID).
		WillReturnRows(sqlmock.NewRows(approvalColumns))
	mock.ExpectRollback()

	_, _, err := svc.SubmitApproval(context.Background(), approvalID, db.DecisionApproved)
	if !errors.Is(err, ErrApprovalNotFound) {
		t.Fatalf("expected ErrApprovalNotFound, got %v", err)
	}
}

/* TestSubmitApprovalInvalidDecision tests that pending is not a submittable decision */
func TestSubmitApprovalInvalidDecision(t *testing.T) {
	svc, _ := newTestService(t)

	var validationErr *ValidationError
	_, _, err := svc.SubmitApproval(context.Background(), uuid.New(), db.DecisionPending)
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

/* TestGetApprovalStatusCounts tests the per-decision tallies */
func TestGetApprovalStatusCounts(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, true, 2, 1, db.PlanStatusAwaitingApproval, nil))
	rows := sqlmock.NewRows(approvalColumns).
		AddRow(uuid.NewString(), planID.String(), "alice@example.com", nil, string(db.DecisionApproved), &now, now, now).
		AddRow(uuid.NewString(), planID.String(), "bob@example.com", nil, string(db.DecisionRejected), &now, now, now).
		AddRow(uuid.NewString(), planID.String(), "carol@example.com", nil, string(db.DecisionPending), nil, now, now)
	mock.ExpectQuery(`SELECT \* FROM approvals WHERE plan_id = \$1 ORDER BY created_at ASC`).
		WithArgs(planID).
		WillReturnRows(rows)

	status, err := svc.GetApprovalStatus(context.Background(), planID, userID)
	if err != nil {
		t.Fatalf("get approval status: %v", err)
	}
	if status.Approved != 1 || status.Rejected != 1 || status.Pending != 1 {
		t.Errorf("expected counts 1/1/1, got %d/%d/%d", status.Approved, status.Rejected, status.Pending)
	}
	if len(status.Approvals) != 3 {
		t.Errorf("expected 3 approvals, got %d", len(status.Approvals))
	}
	if status.CanExecute {
		t.Error("expected can_execute false with 1 of 2 approvals")
	}
}

/* TestGetApprovalStatusCanExecute tests the threshold-met readiness flag */
func TestGetApprovalStatusCanExecute(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, true, 2, 2, db.PlanStatusExecutable, nil))
	rows := sqlmock.NewRows(approvalColumns).
		AddRow(uuid.NewString(), planID.String(), "alice@example.com", nil, string(db.DecisionApproved), &now, now, now).
		AddRow(uuid.NewString(), planID.String(), "bob@example.com", nil, string(db.DecisionApproved), &now, now, now)
	mock.ExpectQuery(`SELECT \* FROM approvals WHERE plan_id = \$1 ORDER BY created_at ASC`).
		WithArgs(planID).
		WillReturnRows(rows)

	status, err := svc.GetApprovalStatus(context.Background(), planID, userID)
	if err != nil {
		t.Fatalf("get approval status: %v", err)
	}
	if !status.CanExecute {
		t.Error("expected can_execute true with 2 of 2 approvals")
	}
}

/* TestGetApprovalStatusNotOwner tests that status is scoped to the plan owner */
func TestGetApprovalStatusNotOwner(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, uuid.New(), true, 2, 1, db.PlanStatusAwaitingApproval, nil))

	_, err := svc.GetApprovalStatus(context.Background(), planID, uuid.New())
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

/* TestGetApprovalStatusNotMultiSignature tests the gate-disabled guard */
func TestGetApprovalStatusNotMultiSignature(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, false, 0, 0, db.PlanStatusCreated, nil))

	_, err := svc.GetApprovalStatus(context.Background(), planID, userID)
	if !errors.Is(err, ErrNotMultiSignature) {
		t.Fatalf("expected ErrNotMultiSignature, got %v", err)
	}
}

/* TestExecutePlanStampsExecutedAt tests the happy path of the execution gate */
func TestExecutePlanStampsExecutedAt(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()
	executed := time.Now()

	mock.ExpectQuery(`UPDATE plans`).
		WithArgs(planID, userID).
		WillReturnRows(planRow(planID, userID, true, 2, 2, db.PlanStatusExecuted, &executed))

	plan, err := svc.ExecutePlan(context.Background(), planID, userID)
	if err != nil {
		t.Fatalf("execute plan: %v", err)
	}
	if plan.Status != db.PlanStatusExecuted {
		t.Errorf("expected executed status, got %s", plan.Status)
	}
	if plan.ExecutedAt == nil {
		t.Error("expected executed_at to be stamped")
	}
}

/* TestExecutePlanSingleSignature tests that single-sig plans bypass the threshold */
func TestExecutePlanSingleSignature(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()
	executed := time.Now()

	mock.ExpectQuery(`UPDATE plans`).
		WithArgs(planID, userID).
		WillReturnRows(planRow(planID, userID, false, 0, 0, db.PlanStatusExecuted, &executed))

	plan, err := svc.ExecutePlan(context.Background(), planID, userID)
	if err != nil {
		t.Fatalf("execute plan: %v", err)
	}
	if plan.Status != db.PlanStatusExecuted {
		t.Errorf("expected executed status, got %s", plan.Status)
	}
}

/* TestExecutePlanAlreadyExecuted tests that re-execution is rejected */
func TestExecutePlanAlreadyExecuted(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()
	executed := time.Now()

	mock.ExpectQuery(`UPDATE plans`).
		WithArgs(planID, userID).
		WillReturnRows(sqlmock.NewRows(planColumns))
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, true, 2, 2, db.PlanStatusExecuted, &executed))

	_, err := svc.ExecutePlan(context.Background(), planID, userID)
	if !errors.Is(err, ErrAlreadyExecuted) {
		t.Fatalf("expected ErrAlreadyExecuted, got %v", err)
	}
}

/* TestExecutePlanInsufficientApprovals tests the threshold gate */
func TestExecutePlanInsufficientApprovals(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`UPDATE plans`).
		WithArgs(planID, userID).
		WillReturnRows(sqlmock.NewRows(planColumns))
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, userID, true, 3, 1, db.PlanStatusAwaitingApproval, nil))

	_, err := svc.ExecutePlan(context.Background(), planID, userID)
	var insufficientErr *InsufficientApprovalsError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("expected InsufficientApprovalsError, got %v", err)
	}
	if insufficientErr.Required != 3 || insufficientErr.Current != 1 {
		t.Errorf("expected 3 required / 1 current, got %d/%d", insufficientErr.Required, insufficientErr.Current)
	}
}

/* TestExecutePlanNotOwner tests the execution owner guard */
func TestExecutePlanNotOwner(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()

	mock.ExpectQuery(`UPDATE plans`).
		WillReturnRows(sqlmock.NewRows(planColumns))
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(planRow(planID, uuid.New(), false, 0, 0, db.PlanStatusCreated, nil))

	_, err := svc.ExecutePlan(context.Background(), planID, uuid.New())
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

/* TestExecutePlanNotFound tests the missing-plan path */
func TestExecutePlanNotFound(t *testing.T) {
	svc, mock := newTestService(t)
	planID := uuid.New()

	mock.ExpectQuery(`UPDATE plans`).
		WillReturnRows(sqlmock.NewRows(planColumns))
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(sqlmock.NewRows(planColumns))

	_, err := svc.ExecutePlan(context.Background(), planID, uuid.New())
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}
