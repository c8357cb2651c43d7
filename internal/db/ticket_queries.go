/*-------------------------------------------------------------------------
 *
 * ticket_queries.go
 *    Database queries for support tickets
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/ticket_queries.go
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

/* Support ticket queries */
const (
	createTicketQuery = `
		INSERT INTO support_tickets (user_id, subject, amount, status, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	getTicketQuery = `SELECT * FROM support_tickets WHERE id = $1`

	listTicketsByUserQuery = `
		SELECT * FROM support_tickets
		WHERE user_id = $1
		AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	updateTicketStatusQuery = `
		UPDATE support_tickets
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, subject, amount, status, description, created_at, updated_at`
)

/* CreateTicket creates a support ticket */
func (q *Queries) CreateTicket(ctx context.Context, ticket *SupportTicket) error {
	params := []interface{}{
		ticket.UserID, ticket.Subject, ticket.Amount, ticket.Status, ticket.Description,
	}
	err := q.DB.GetContext(ctx, ticket, createTicketQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", createTicketQuery, len(params), "support_tickets", err)
	}
	return nil
}

/* GetTicket gets a support ticket by ID */
func (q *Queries) GetTicket(ctx context.Context, id int32) (*SupportTicket, error) {
	var ticket SupportTicket
	err := q.DB.GetContext(ctx, &ticket, getTicketQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("support ticket not found on %s: query='%s', ticket_id=%d, table='support_tickets', error=%w",
			q.getConnInfoString(), getTicketQuery, id, err)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", getTicketQuery, 1, "support_tickets", err)
	}
	return &ticket, nil
}

/* ListTicketsByUser lists a user's support tickets with an optional status filter */
func (q *Queries) ListTicketsByUser(ctx context.Context, userID uuid.UUID, status *TicketStatus, limit, offset int) ([]SupportTicket, error) {
	var tickets []SupportTicket
	params := []interface{}{userID, status, limit, offset}
	err := q.DB.SelectContext(ctx, &tickets, listTicketsByUserQuery, params...)
	if err != nil {
		return nil, q.formatQueryError("SELECT", listTicketsByUserQuery, len(params), "support_tickets", err)
	}
	return tickets, nil
}

/* UpdateTicketStatus updates a ticket's status */
func (q *Queries) UpdateTicketStatus(ctx context.Context, id int32, status TicketStatus) (*SupportTicket, error) {
	var ticket SupportTicket
	err := q.DB.GetContext(ctx, &ticket, updateTicketStatusQuery, id, status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("support ticket not found on %s: query='%s', ticket_id=%d, table='support_tickets', error=%w",
			q.getConnInfoString(), updateTicketStatusQuery, id, err)
	}
	if err != nil {
		return nil, q.formatQueryError("UPDATE", updateTicketStatusQuery, 2, "support_tickets", err)
	}
	return &ticket, nil
}
