/*-------------------------------------------------------------------------
 *
 * types.go
 *    Request and response types for the InheritX API
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/api/types.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/skill-mind/InheritX-Backend/internal/db"
)

/* ErrorResponse is the standard error payload */
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

/* Plan requests */
type CreatePlanRequest struct {
	Name                   string `json:"name"`
	Description            string `json:"description"`
	MultiSignatureApproval bool   `json:"multi_signature_approval"`
	RequiredApprovals      int    `json:"required_approvals"`
}

type UpdatePlanRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

/* Approval requests */
type RequestApprovalsRequest struct {
	ApproverEmails    []string `json:"approver_emails"`
	RequiredApprovals int      `json:"required_approvals"`
}

type SubmitApprovalRequest struct {
	Decision string `json:"decision"`
}

/* KYC requests */
type SubmitKycRequest struct {
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	IDType      string `json:"id_type"`
	IDNumber    string `json:"id_number"`
	Address     string `json:"address"`
}

type UpdateKycStatusRequest struct {
	VerificationStatus string `json:"verification_status"`
}

/* Withdrawal requests */
type CreateWithdrawalRequest struct {
	PlanID    uuid.UUID `json:"plan_id"`
	WalletID  string    `json:"wallet_id"`
	Amount    int64     `json:"amount"`
	PayerName string    `json:"payer_name"`
}

type UpdateWithdrawalRequest struct {
	WalletID  string `json:"wallet_id"`
	Amount    int64  `json:"amount"`
	PayerName string `json:"payer_name"`
}

/* FAQ requests */
type UpsertFAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

/* Support ticket requests */
type CreateTicketRequest struct {
	Subject     string `json:"subject"`
	Amount      *int64 `json:"amount,omitempty"`
	Description string `json:"description"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

/* Responses */
type PlanResponse struct {
	ID                     uuid.UUID  `json:"id"`
	UserID                 uuid.UUID  `json:"user_id"`
	Name                   string     `json:"name"`
	Description            string     `json:"description"`
	MultiSignatureApproval bool       `json:"multi_signature_approval"`
	RequiredApprovals      int        `json:"required_approvals"`
	CurrentApprovals       int        `json:"current_approvals"`
	Status                 string     `json:"status"`
	ExecutedAt             *time.Time `json:"executed_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type ApprovalResponse struct {
	ID            uuid.UUID  `json:"id"`
	PlanID        uuid.UUID  `json:"plan_id"`
	ApproverEmail string     `json:"approver_email"`
	Decision      string     `json:"decision"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ApprovalStatusResponse struct {
	Plan       PlanResponse       `json:"plan"`
	Approvals  []ApprovalResponse `json:"approvals"`
	Approved   int                `json:"approved"`
	Rejected   int                `json:"rejected"`
	Pending    int                `json:"pending"`
	CanExecute bool               `json:"can_execute"`
}

type ApprovalDetailResponse struct {
	Approval ApprovalResponse `json:"approval"`
	Plan     PlanResponse     `json:"plan"`
}

type SubmitApprovalResponse struct {
	Approval ApprovalResponse `json:"approval"`
	Plan     PlanResponse     `json:"plan"`
}

type KycResponse struct {
	ID                 int32      `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	FullName           string     `json:"full_name"`
	DateOfBirth        string     `json:"date_of_birth"`
	IDType             string     `json:"id_type"`
	IDNumber           string     `json:"id_number"`
	Address            string     `json:"address"`
	VerificationStatus string     `json:"verification_status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

type KycVerifiedResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	IsVerified bool      `json:"is_verified"`
}

type WithdrawalResponse struct {
	ID        int64     `json:"id"`
	PlanID    uuid.UUID `json:"plan_id"`
	UserID    uuid.UUID `json:"user_id"`
	WalletID  string    `json:"wallet_id"`
	Amount    int64     `json:"amount"`
	PayerName string    `json:"payer_name"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationResponse struct {
	ID        int32     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FAQResponse struct {
	ID        int32     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TicketResponse struct {
	ID          int32     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Subject     string    `json:"subject"`
	Amount      *int64    `json:"amount,omitempty"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ActivityResponse struct {
	ID           int32                  `json:"id"`
	UserID       uuid.UUID              `json:"user_id"`
	ActivityType string                 `json:"activity_type"`
	Details      string                 `json:"details"`
	ActionType   string                 `json:"action_type"`
	ActionLink   *string                `json:"action_link,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

/* PaginatedResponse wraps a list with pagination metadata */
type PaginatedResponse struct {
	Data     interface{} `json:"data"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int64       `json:"total"`
}

func toPlanResponse(p *db.Plan) PlanResponse {
	return PlanResponse{
		ID:                     p.ID,
		UserID:                 p.UserID,
		Name:                   p.Name,
		Description:            p.Description,
		MultiSignatureApproval: p.MultiSignatureApproval,
		RequiredApprovals:      p.RequiredApprovals,
		CurrentApprovals:       p.CurrentApprovals,
		Status:                 string(p.Status),
		ExecutedAt:             p.ExecutedAt,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func toApprovalResponse(a *db.Approval) ApprovalResponse {
	return ApprovalResponse{
		ID:            a.ID,
		PlanID:        a.PlanID,
		ApproverEmail: a.ApproverEmail,
		Decision:      string(a.Decision),
		DecidedAt:     a.DecidedAt,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toKycResponse(k *db.KycRecord) KycResponse {
	return KycResponse{
		ID:                 k.ID,
		UserID:             k.UserID,
		FullName:           k.FullName,
		DateOfBirth:        k.DateOfBirth,
		IDType:             k.IDType,
		IDNumber:           k.IDNumber,
		Address:            k.Address,
		VerificationStatus: string(k.VerificationStatus),
		CreatedAt:          k.CreatedAt,
		UpdatedAt:          k.UpdatedAt,
	}
}

func toWithdrawalResponse(wd *db.WithdrawalRecord) WithdrawalResponse {
	return WithdrawalResponse{
		ID:        wd.ID,
		PlanID:    wd.PlanID,
		UserID:    wd.UserID,
		WalletID:  wd.WalletID,
		Amount:    wd.Amount,
		PayerName: wd.PayerName,
		CreatedAt: wd.CreatedAt,
	}
}

func toNotificationResponse(n *db.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Body:      n.Body,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toFAQResponse(f *db.FAQ) FAQResponse {
	return FAQResponse{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func toTicketResponse(t *db.SupportTicket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Subject:     t.Subject,
		Amount:      t.Amount,
		Status:      string(t.Status),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toActivityResponse(a *db.UserActivity) ActivityResponse {
	return ActivityResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		ActivityType: a.ActivityType,
		Details:      a.Details,
		ActionType:   a.ActionType,
		ActionLink:   a.ActionLink,
		Metadata:     a.Metadata.ToMap(),
		CreatedAt:    a.CreatedAt,
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err *APIError) {
	response := ErrorResponse{
		Error: err.Message,
		Code:  err.Code,
	}
	if err.Err != nil {
		response.Message = err.Err.Error()
	}
	if err.RequestID != "" {
		w.Header().Set("X-Request-ID", err.RequestID)
	}
	respondJSON(w, err.Code, response)
}
