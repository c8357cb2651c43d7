/*-------------------------------------------------------------------------
 *
 * withdrawal_queries.go
 *    Database queries for withdrawal history
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/withdrawal_queries.go
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

/* Withdrawal queries */
const (
	createWithdrawalQuery = `
		INSERT INTO withdrawal_records
		(plan_id, user_id, wallet_id, amount, payer_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	listWithdrawalsByUserQuery = `
		SELECT * FROM withdrawal_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	countWithdrawalsByUserQuery = `
		SELECT COUNT(*) FROM withdrawal_records WHERE user_id = $1`

	getWithdrawalQuery = `
		SELECT * FROM withdrawal_records WHERE id = $1 AND user_id = $2`

	updateWithdrawalQuery = `
		UPDATE withdrawal_records
		SET wallet_id = $3, amount = $4, payer_name = $5
		WHERE id = $1 AND user_id = $2
		RETURNING *`

	deleteWithdrawalQuery = `
		DELETE FROM withdrawal_records WHERE id = $1 AND user_id = $2`
)

/* CreateWithdrawal records a withdrawal */
func (q *Queries) CreateWithdrawal(ctx context.Context, record *WithdrawalRecord) error {
	params := []interface{}{
		record.PlanID, record.UserID, record.WalletID, record.Amount, record.PayerName,
	}
	err := q.DB.GetContext(ctx, record, createWithdrawalQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", createWithdrawalQuery, len(params), "withdrawal_records", err)
	}
	return nil
}

/* ListWithdrawalsByUser lists a user's withdrawal history, newest first */
func (q *Queries) ListWithdrawalsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]WithdrawalRecord, error) {
	var records []WithdrawalRecord
	params := []interface{}{userID, limit, offset}
	err := q.DB.SelectContext(ctx, &records, listWithdrawalsByUserQuery, params...)
	if err != nil {
		return nil, q.formatQueryError("SELECT", listWithdrawalsByUserQuery, len(params), "withdrawal_records", err)
	}
	return records, nil
}

/* CountWithdrawalsByUser counts a user's withdrawal records */
func (q *Queries) CountWithdrawalsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := q.DB.GetContext(ctx, &total, countWithdrawalsByUserQuery, userID)
	if err != nil {
		return 0, q.formatQueryError("SELECT", countWithdrawalsByUserQuery, 1, "withdrawal_records", err)
	}
	return total, nil
}

/* GetWithdrawal retrieves a single withdrawal record scoped to its owner */
func (q *Queries) GetWithdrawal(ctx context.Context, id int64, userID uuid.UUID) (*WithdrawalRecord, error) {
	var record WithdrawalRecord
	err := q.DB.GetContext(ctx, &record, getWithdrawalQuery, id, userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("withdrawal not found on %s: query='%s', withdrawal_id=%d, table='withdrawal_records', error=%w",
			q.getConnInfoString(), getWithdrawalQuery, id, err)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", getWithdrawalQuery, 2, "withdrawal_records", err)
	}
	return &record, nil
}

/* UpdateWithdrawal updates a withdrawal record scoped to its owner */
func (q *Queries) UpdateWithdrawal(ctx context.Context, record *WithdrawalRecord) error {
	params := []interface{}{
		record.ID, record.UserID, record.WalletID, record.Amount, record.PayerName,
	}
	err := q.DB.GetContext(ctx, record, updateWithdrawalQuery, params...)
	if err == sql.ErrNoRows {
		return fmt.Errorf("withdrawal not found on %s: query='%s', withdrawal_id=%d, table='withdrawal_records', error=%w",
			q.getConnInfoString(), updateWithdrawalQuery, record.ID, err)
	}
	if err != nil {
		return q.formatQueryError("UPDATE", updateWithdrawalQuery, len(params), "withdrawal_records", err)
	}
	return nil
}

/* DeleteWithdrawal deletes a withdrawal record scoped to its owner */
func (q *Queries) DeleteWithdrawal(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := q.DB.ExecContext(ctx, deleteWithdrawalQuery, id, userID)
	if err != nil {
		return q.formatQueryError("DELETE", deleteWithdrawalQuery, 2, "withdrawal_records", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for DELETE on %s: query='%s', withdrawal_id=%d, table='withdrawal_records', error=%w",
			q.getConnInfoString(), deleteWithdrawalQuery, id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("withdrawal not found on %s: query='%s', withdrawal_id=%d, table='withdrawal_records', rows_affected=0",
			q.getConnInfoString(), deleteWithdrawalQuery, id)
	}
	return nil
}
