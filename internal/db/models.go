/*-------------------------------------------------------------------------
 *
 * models.go
 *    Database models for the InheritX backend
 *
 * Defines data structures for plans, approvals, KYC records, withdrawal
 * records, notifications, FAQs, support tickets, and user activities.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/models.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"time"

	"github.com/google/uuid"
)

/* PlanStatus is the closed set of plan lifecycle states */
type PlanStatus string

const (
	PlanStatusCreated          PlanStatus = "created"
	PlanStatusAwaitingApproval PlanStatus = "awaiting_approval"
	PlanStatusExecutable       PlanStatus = "executable"
	PlanStatusExecuted         PlanStatus = "executed"
)

/* Valid reports whether s is a known plan status */
func (s PlanStatus) Valid() bool {
	switch s {
	case PlanStatusCreated, PlanStatusAwaitingApproval, PlanStatusExecutable, PlanStatusExecuted:
		return true
	}
	return false
}

/* Decision is the closed set of approval decisions */
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

/* Valid reports whether d is a known decision */
func (d Decision) Valid() bool {
	switch d {
	case DecisionPending, DecisionApproved, DecisionRejected:
		return true
	}
	return false
}

type Plan struct {
	ID                     uuid.UUID  `db:"id"`
	UserID                 uuid.UUID  `db:"user_id"`
	Name                   string     `db:"name"`
	Description            string     `db:"description"`
	MultiSignatureApproval bool       `db:"multi_signature_approval"`
	RequiredApprovals      int        `db:"required_approvals"`
	CurrentApprovals       int        `db:"current_approvals"`
	Status                 PlanStatus `db:"status"`
	ExecutedAt             *time.Time `db:"executed_at"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
}

type Approval struct {
	ID            uuid.UUID  `db:"id"`
	PlanID        uuid.UUID  `db:"plan_id"`
	ApproverEmail string     `db:"approver_email"`
	ApproverID    *uuid.UUID `db:"approver_id"`
	Decision      Decision   `db:"decision"`
	DecidedAt     *time.Time `db:"decided_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

/* KycStatus is the closed set of KYC verification states */
type KycStatus string

const (
	KycStatusPending  KycStatus = "pending"
	KycStatusVerified KycStatus = "verified"
	KycStatusRejected KycStatus = "rejected"
)

func (s KycStatus) Valid() bool {
	switch s {
	case KycStatusPending, KycStatusVerified, KycStatusRejected:
		return true
	}
	return false
}

type KycRecord struct {
	ID                 int32      `db:"id"`
	UserID             uuid.UUID  `db:"user_id"`
	FullName           string     `db:"full_name"`
	DateOfBirth        string     `db:"date_of_birth"`
	IDType             string     `db:"id_type"`
	IDNumber           string     `db:"id_number"`
	Address            string     `db:"address"`
	VerificationStatus KycStatus  `db:"verification_status"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          *time.Time `db:"updated_at"`
}

type WithdrawalRecord struct {
	ID        int64     `db:"id"`
	PlanID    uuid.UUID `db:"plan_id"`
	UserID    uuid.UUID `db:"user_id"`
	WalletID  string    `db:"wallet_id"`
	Amount    int64     `db:"amount"`
	PayerName string    `db:"payer_name"`
	CreatedAt time.Time `db:"created_at"`
}

type Notification struct {
	ID        int32     `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type FAQ struct {
	ID        int32     `db:"id"`
	Question  string    `db:"question"`
	Answer    string    `db:"answer"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

/* TicketStatus is the closed set of support ticket states */
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusResolved TicketStatus = "resolved"
	TicketStatusRejected TicketStatus = "rejected"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusPending, TicketStatusResolved, TicketStatusRejected:
		return true
	}
	return false
}

type SupportTicket struct {
	ID          int32        `db:"id"`
	UserID      uuid.UUID    `db:"user_id"`
	Subject     string       `db:"subject"`
	Amount      *int64       `db:"amount"`
	Status      TicketStatus `db:"status"`
	Description string       `db:"description"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

type UserActivity struct {
	ID           int32     `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	ActivityType string    `db:"activity_type"`
	Details      string    `db:"details"`
	ActionType   string    `db:"action_type"`
	ActionLink   *string   `db:"action_link"`
	Metadata     JSONBMap  `db:"metadata"`
	CreatedAt    time.Time `db:"created_at"`
}
