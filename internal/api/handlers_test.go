/*-------------------------------------------------------------------------
 *
 * handlers_test.go
 *    Tests for plan, approval, and withdrawal API handlers
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/handlers_test.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/skill-mind/InheritX-Backend/internal/approval"
	"github.com/skill-mind/InheritX-Backend/internal/audit"
	"github.com/skill-mind/InheritX-Backend/internal/db"
	"github.com/skill-mind/InheritX-Backend/internal/kyc"
)

var testPlanColumns = []string{
	"id", "user_id", "name", "description", "multi_signature_approval",
	"required_approvals", "current_approvals", "status", "executed_at",
	"created_at", "updated_at",
}

var testApprovalColumns = []string{
	"id", "plan_id", "approver_email", "approver_id", "decision",
	"decided_at", "created_at", "updated_at",
}

func newTestHandlers(t *testing.T) (*Handlers, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	queries := db.NewQueries(sqlxDB)
	handlers := NewHandlers(
		queries,
		approval.NewService(sqlxDB),
		kyc.NewVerifier(queries),
		audit.NewRecorder(queries),
		nil,
	)
	return handlers, mock
}

func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDContextKey, userID))
}

func testPlanRow(id, userID uuid.UUID, multiSig bool, required, current int, status db.PlanStatus, executedAt *time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(testPlanColumns).
		AddRow(id.String(), userID.String(), "estate plan", "", multiSig, required, current, string(status), executedAt, now, now)
}

func expectActivityInsert(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`INSERT INTO user_activities`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int32(1), time.Now()))
}

func expectNotificationInsert(mock sqlmock.Sqlmock) {
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO notifications`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_read", "created_at", "updated_at"}).
			AddRow(int32(1), false, now, now))
}

/* TestCreatePlanHandler tests plan creation end to end */
func TestCreatePlanHandler(t *testing.T) {
	h, mock := newTestHandlers(t)
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO plans`).
		WithArgs(userID, "estate plan", "for the kids", true, 2, db.PlanStatusCreated).
		WillReturnRows(sqlmock.NewRows([]string{"id", "current_approvals", "executed_at", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), 0, nil, now, now))
	expectActivityInsert(mock)

	body := `{"name":"estate plan","description":"for the kids","multi_signature_approval":true,"required_approvals":2}`
	r := withUser(httptest.NewRequest("POST", "/api/v1/plans", strings.NewReader(body)), userID)
	w := httptest.NewRecorder()

	h.CreatePlan(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp PlanResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "estate plan" {
		t.Errorf("expected plan name in response, got '%s'", resp.Name)
	}
	if resp.Status != string(db.PlanStatusCreated) {
		t.Errorf("expected created status, got '%s'", resp.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestCreatePlanHandlerUnauthorized tests the identity requirement */
func TestCreatePlanHandlerUnauthorized(t *testing.T) {
	h, _ := newTestHandlers(t)

	r := httptest.NewRequest("POST", "/api/v1/plans", strings.NewReader(`{"name":"p"}`))
	w := httptest.NewRecorder()

	h.CreatePlan(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

/* TestCreatePlanHandlerValidation tests that invalid requests never reach the database */
func TestCreatePlanHandlerValidation(t *testing.T) {
	h, mock := newTestHandlers(t)

	body := `{"name":"p","multi_signature_approval":true,"required_approvals":0}`
	r := withUser(httptest.NewRequest("POST", "/api/v1/plans", strings.NewReader(body)), uuid.New())
	w := httptest.NewRecorder()

	h.CreatePlan(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestGetPlanHandlerNotFound tests the missing-plan response */
func TestGetPlanHandlerNotFound(t *testing.T) {
	h, mock := newTestHandlers(t)
	planID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(sqlmock.NewRows(testPlanColumns))

	r := withUser(httptest.NewRequest("GET", "/api/v1/plans/"+planID.String(), nil), uuid.New())
	r = mux.SetURLVars(r, map[string]string{"id": planID.String()})
	w := httptest.NewRecorder()

	h.GetPlan(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

/* TestGetPlanHandlerNotOwner tests that another user's plan reads as missing */
func TestGetPlanHandlerNotOwner(t *testing.T) {
	h, mock := newTestHandlers(t)
	planID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(testPlanRow(planID, uuid.New(), false, 0, 0, db.PlanStatusCreated, nil))

	r := withUser(httptest.NewRequest("GET", "/api/v1/plans/"+planID.String(), nil), uuid.New())
	r = mux.SetURLVars(r, map[string]string{"id": planID.String()})
	w := httptest.NewRecorder()

	h.GetPlan(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

/* TestExecutePlanHandler tests execution of a fully approved plan */
func TestExecutePlanHandler(t *testing.T) {
	h, mock := newTestHandlers(t)
	planID := uuid.New()
	userID := uuid.New()
	executed := time.Now()

	mock.ExpectQuery(`UPDATE plans`).
		WithArgs(planID, userID).
		WillReturnRows(testPlanRow(planID, userID, true, 2, 2, db.PlanStatusExecuted, &executed))
	expectActivityInsert(mock)
	expectNotificationInsert(mock)

	r := withUser(httptest.NewRequest("POST", "/api/v1/plans/"+planID.String()+"/execute", nil), userID)
	r = mux.SetURLVars(r, map[string]string{"id": planID.String()})
	w := httptest.NewRecorder()

	h.ExecutePlan(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp PlanResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != string(db.PlanStatusExecuted) {
		t.Errorf("expected executed status, got '%s'", resp.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestExecutePlanHandlerInsufficientApprovals tests the 409 gate response */
func TestExecutePlanHandlerInsufficientApprovals(t *testing.T) {
	h, mock := newTestHandlers(t)
	planID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`UPDATE plans`).
		WithArgs(planID, userID).
		WillReturnRows(sqlmock.NewRows(testPlanColumns))
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(testPlanRow(planID, userID, true, 3, 1, db.PlanStatusAwaitingApproval, nil))

	r := withUser(httptest.NewRequest("POST", "/api/v1/plans/"+planID.String()+"/execute", nil), userID)
	r = mux.SetURLVars(r, map[string]string{"id": planID.String()})
	w := httptest.NewRecorder()

	h.ExecutePlan(w, r)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

/* TestGetApprovalStatusHandlerNotOwner tests that another user's approval
 * status reads as missing rather than forbidden */
func TestGetApprovalStatusHandlerNotOwner(t *testing.T) {
	h, mock := newTestHandlers(t)
	planID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(testPlanRow(planID, uuid.New(), true, 2, 1, db.PlanStatusAwaitingApproval, nil))

	r := withUser(httptest.NewRequest("GET", "/api/v1/plans/"+planID.String()+"/approvals", nil), uuid.New())
	r = mux.SetURLVars(r, map[string]string{"id": planID.String()})
	w := httptest.NewRecorder()

	h.GetApprovalStatus(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

/* TestSubmitApprovalHandlerAlreadyDecided tests the re-decide conflict */
func TestSubmitApprovalHandlerAlreadyDecided(t *testing.T) {
	h, mock := newTestHandlers(t)
	approvalID := uuid.New()
	decided := time.Now()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM approvals WHERE id = \$1 FOR UPDATE`).
		WithArgs(approvalID).
		WillReturnRows(sqlmock.NewRows(testApprovalColumns).
			AddRow(approvalID.String(), uuid.NewString(), "alice@example.com", nil,
				string(db.DecisionApproved), &decided, now, now))
	mock.ExpectRollback()

	r := httptest.NewRequest("PUT", "/api/v1/public/approvals/"+approvalID.String(),
		strings.NewReader(`{"decision":"rejected"}`))
	r = mux.SetURLVars(r, map[string]string{"id": approvalID.String()})
	w := httptest.NewRecorder()

	h.SubmitApproval(w, r)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

/* TestCreateWithdrawalHandlerRequiresKyc tests the KYC gate on withdrawals */
func TestCreateWithdrawalHandlerRequiresKyc(t *testing.T) {
	h, mock := newTestHandlers(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	body := `{"plan_id":"` + uuid.NewString() + `","wallet_id":"0xabc","amount":100}`
	r := withUser(httptest.NewRequest("POST", "/api/v1/withdrawals", strings.NewReader(body)), userID)
	w := httptest.NewRecorder()

	h.CreateWithdrawal(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

/* TestCreateWithdrawalHandler tests the verified withdrawal path */
func TestCreateWithdrawalHandler(t *testing.T) {
	h, mock := newTestHandlers(t)
	userID := uuid.New()
	planID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT \* FROM plans WHERE id = \$1`).
		WithArgs(planID).
		WillReturnRows(testPlanRow(planID, userID, false, 0, 0, db.PlanStatusExecuted, nil))
	mock.ExpectQuery(`INSERT INTO withdrawal_records`).
		WithArgs(planID, userID, "0xabc", int64(100), "Ada Lovelace").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))
	expectActivityInsert(mock)

	body := `{"plan_id":"` + planID.String() + `","wallet_id":"0xabc","amount":100,"payer_name":"Ada Lovelace"}`
	r := withUser(httptest.NewRequest("POST", "/api/v1/withdrawals", strings.NewReader(body)), userID)
	w := httptest.NewRecorder()

	h.CreateWithdrawal(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp WithdrawalResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Amount != 100 {
		t.Errorf("expected amount 100, got %d", resp.Amount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

var testWithdrawalColumns = []string{
	"id", "plan_id", "user_id", "wallet_id", "amount", "payer_name", "created_at",
}

/* TestGetWithdrawalHandler tests fetching a single withdrawal record */
func TestGetWithdrawalHandler(t *testing.T) {
	h, mock := newTestHandlers(t)
	userID := uuid.New()
	planID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM withdrawal_records WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(7), userID).
		WillReturnRows(sqlmock.NewRows(testWithdrawalColumns).
			AddRow(int64(7), planID.String(), userID.String(), "0xabc", int64(100), "Ada Lovelace", time.Now()))

	r := withUser(httptest.NewRequest("GET", "/api/v1/withdrawals/7", nil), userID)
	r = mux.SetURLVars(r, map[string]string{"id": "7"})
	w := httptest.NewRecorder()

	h.GetWithdrawal(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp WithdrawalResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 7 || resp.WalletID != "0xabc" {
		t.Errorf("unexpected record: %+v", resp)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestDeleteWithdrawalHandlerNotFound tests deleting a record the caller does not own */
func TestDeleteWithdrawalHandlerNotFound(t *testing.T) {
	h, mock := newTestHandlers(t)
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM withdrawal_records WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(9), userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := withUser(httptest.NewRequest("DELETE", "/api/v1/withdrawals/9", nil), userID)
	r = mux.SetURLVars(r, map[string]string{"id": "9"})
	w := httptest.NewRecorder()

	h.DeleteWithdrawal(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestUpdateWithdrawalHandler tests correcting a withdrawal record */
func TestUpdateWithdrawalHandler(t *testing.T) {
	h, mock := newTestHandlers(t)
	userID := uuid.New()
	planID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM withdrawal_records WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(7), userID).
		WillReturnRows(sqlmock.NewRows(testWithdrawalColumns).
			AddRow(int64(7), planID.String(), userID.String(), "0xabc", int64(100), "Ada Lovelace", now))
	mock.ExpectQuery(`UPDATE withdrawal_records`).
		WithArgs(int64(7), userID, "0xdef", int64(250), "Ada Lovelace").
		WillReturnRows(sqlmock.NewRows(testWithdrawalColumns).
			AddRow(int64(7), planID.String(), userID.String(), "0xdef", int64(250), "Ada Lovelace", now))

	body := `{"wallet_id":"0xdef","amount":250,"payer_name":"Ada Lovelace"}`
	r := withUser(httptest.NewRequest("PUT", "/api/v1/withdrawals/7", strings.NewReader(body)), userID)
	r = mux.SetURLVars(r, map[string]string{"id": "7"})
	w := httptest.NewRecorder()

	h.UpdateWithdrawal(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp WithdrawalResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Amount != 250 || resp.WalletID != "0xdef" {
		t.Errorf("unexpected record: %+v", resp)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
