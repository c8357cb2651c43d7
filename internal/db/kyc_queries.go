/*-------------------------------------------------------------------------
 *
 * kyc_queries.go
 *    Database queries for KYC records
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/kyc_queries.go
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

/* KYC queries */
const (
	createKycRecordQuery = `
		INSERT INTO kyc_records
		(user_id, full_name, date_of_birth, id_type, id_number, address, verification_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	getKycRecordByUserQuery = `SELECT * FROM kyc_records WHERE user_id = $1`

	getKycRecordQuery = `SELECT * FROM kyc_records WHERE id = $1`

	updateKycStatusQuery = `
		UPDATE kyc_records
		SET verification_status = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, full_name, date_of_birth, id_type, id_number, address,
				  verification_status, created_at, updated_at`

	isKycVerifiedQuery = `
		SELECT EXISTS (
			SELECT 1 FROM kyc_records
			WHERE user_id = $1 AND verification_status = 'verified'
		)`
)

/* CreateKycRecord creates a new KYC record */
func (q *Queries) CreateKycRecord(ctx context.Context, record *KycRecord) error {
	params := []interface{}{
		record.UserID, record.FullName, record.DateOfBirth, record.IDType,
		record.IDNumber, record.Address, record.VerificationStatus,
	}
	err := q.DB.GetContext(ctx, record, createKycRecordQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", createKycRecordQuery, len(params), "kyc_records", err)
	}
	return nil
}

/* GetKycRecordByUser gets the KYC record for a user */
func (q *Queries) GetKycRecordByUser(ctx context.Context, userID uuid.UUID) (*KycRecord, error) {
	var record KycRecord
	err := q.DB.GetContext(ctx, &record, getKycRecordByUserQuery, userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("kyc record not found on %s: query='%s', user_id='%s', table='kyc_records', error=%w",
			q.getConnInfoString(), getKycRecordByUserQuery, userID.String(), err)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", getKycRecordByUserQuery, 1, "kyc_records", err)
	}
	return &record, nil
}

/* GetKycRecord gets a KYC record by ID */
func (q *Queries) GetKycRecord(ctx context.Context, id int32) (*KycRecord, error) {
	var record KycRecord
	err := q.DB.GetContext(ctx, &record, getKycRecordQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("kyc record not found on %s: query='%s', kyc_id=%d, table='kyc_records', error=%w",
			q.getConnInfoString(), getKycRecordQuery, id, err)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", getKycRecordQuery, 1, "kyc_records", err)
	}
	return &record, nil
}

/* UpdateKycStatus updates a user's KYC verification status */
func (q *Queries) UpdateKycStatus(ctx context.Context, userID uuid.UUID, status KycStatus) (*KycRecord, error) {
	var record KycRecord
	err := q.DB.GetContext(ctx, &record, updateKycStatusQuery, userID, status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("kyc record not found on %s: query='%s', user_id='%s', table='kyc_records', error=%w",
			q.getConnInfoString(), updateKycStatusQuery, userID.String(), err)
	}
	if err != nil {
		return nil, q.formatQueryError("UPDATE", updateKycStatusQuery, 2, "kyc_records", err)
	}
	return &record, nil
}

/* IsKycVerified reports whether a user has a verified KYC record.
 * A user with no KYC record is not verified. */
func (q *Queries) IsKycVerified(ctx context.Context, userID uuid.UUID) (bool, error) {
	var verified bool
	err := q.DB.GetContext(ctx, &verified, isKycVerifiedQuery, userID)
	if err != nil {
		return false, q.formatQueryError("SELECT", isKycVerifiedQuery, 1, "kyc_records", err)
	}
	return verified, nil
}
