/*-------------------------------------------------------------------------
 *
 * verifier.go
 *    KYC verification service
 *
 * Wraps KYC record storage with submission validation and the
 * verification check used to gate withdrawals.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/kyc/verifier.go
 *
 *-------------------------------------------------------------------------
 */

package kyc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skill-mind/InheritX-Backend/internal/db"
)

var (
	/* ErrNotVerified means the user has no verified KYC record */
	ErrNotVerified = errors.New("user is not KYC verified")

	/* ErrRecordNotFound means the user has no KYC record */
	ErrRecordNotFound = errors.New("kyc record not found")

	/* ErrAlreadySubmitted means the user already has a KYC record */
	ErrAlreadySubmitted = errors.New("kyc record already submitted")
)

/* ValidIDTypes is the accepted set of identity document types */
var ValidIDTypes = []string{"passport", "national_id", "drivers_license"}

/* Verifier manages KYC records and verification checks */
type Verifier struct {
	queries *db.Queries
}

/* NewVerifier creates a new KYC verifier */
func NewVerifier(queries *db.Queries) *Verifier {
	return &Verifier{queries: queries}
}

/* Submit validates and stores a new KYC record in pending state */
func (v *Verifier) Submit(ctx context.Context, record *db.KycRecord) error {
	if strings.TrimSpace(record.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	if strings.TrimSpace(record.IDNumber) == "" {
		return fmt.Errorf("id_number is required")
	}
	validType := false
	for _, t := range ValidIDTypes {
		if record.IDType == t {
			validType = true
			break
		}
	}
	if !validType {
		return fmt.Errorf("id_type must be one of %s", strings.Join(ValidIDTypes, ", "))
	}

	if _, err := v.queries.GetKycRecordByUser(ctx, record.UserID); err == nil {
		return ErrAlreadySubmitted
	}

	record.VerificationStatus = db.KycStatusPending
	return v.queries.CreateKycRecord(ctx, record)
}

/* Get returns a user's KYC record */
func (v *Verifier) Get(ctx context.Context, userID uuid.UUID) (*db.KycRecord, error) {
	record, err := v.queries.GetKycRecordByUser(ctx, userID)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

/* GetByID returns a KYC record by its record ID */
func (v *Verifier) GetByID(ctx context.Context, id int32) (*db.KycRecord, error) {
	record, err := v.queries.GetKycRecord(ctx, id)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

/* UpdateStatus moves a user's KYC record to a new verification status */
func (v *Verifier) UpdateStatus(ctx context.Context, userID uuid.UUID, status db.KycStatus) (*db.KycRecord, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid verification status '%s'", status)
	}
	record, err := v.queries.UpdateKycStatus(ctx, userID, status)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

/* IsVerified reports whether a user holds a verified KYC record.
 * A user with no record at all is simply not verified. */
func (v *Verifier) IsVerified(ctx context.Context, userID uuid.UUID) (bool, error) {
	return v.queries.IsKycVerified(ctx, userID)
}

/* RequireVerified returns ErrNotVerified unless the user is verified */
func (v *Verifier) RequireVerified(ctx context.Context, userID uuid.UUID) error {
	verified, err := v.IsVerified(ctx, userID)
	if err != nil {
		return err
	}
	if !verified {
		return ErrNotVerified
	}
	return nil
}
