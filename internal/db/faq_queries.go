/*-------------------------------------------------------------------------
 *
 * faq_queries.go
 *    Database queries for FAQs
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/faq_queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"fmt"
)

/* FAQ queries */
const (
	createFAQQuery = `
		INSERT INTO faqs (question, answer)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	getFAQQuery = `SELECT * FROM faqs WHERE id = $1`

	listFAQsQuery = `SELECT * FROM faqs ORDER BY created_at DESC`

	updateFAQQuery = `
		UPDATE faqs
		SET question = $2, answer = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, question, answer, created_at, updated_at`

	deleteFAQQuery = `DELETE FROM faqs WHERE id = $1`
)

/* CreateFAQ creates a new FAQ */
func (q *Queries) CreateFAQ(ctx context.Context, faq *FAQ) error {
	params := []interface{}{faq.Question, faq.Answer}
	err := q.DB.GetContext(ctx, faq, createFAQQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", createFAQQuery, len(params), "faqs", err)
	}
	return nil
}

/* GetFAQ gets an FAQ by ID */
func (q *Queries) GetFAQ(ctx context.Context, id int32) (*FAQ, error) {
	var faq FAQ
	err := q.DB.GetContext(ctx, &faq, getFAQQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("faq not found on %s: query='%s', faq_id=%d, table='faqs', error=%w",
			q.getConnInfoString(), getFAQQuery, id, err)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", getFAQQuery, 1, "faqs", err)
	}
	return &faq, nil
}

/* ListFAQs lists all FAQs */
func (q *Queries) ListFAQs(ctx context.Context) ([]FAQ, error) {
	var faqs []FAQ
	err := q.DB.SelectContext(ctx, &faqs, listFAQsQuery)
	if err != nil {
		return nil, q.formatQueryError("SELECT", listFAQsQuery, 0, "faqs", err)
	}
	return faqs, nil
}

/* UpdateFAQ updates an FAQ */
func (q *Queries) UpdateFAQ(ctx context.Context, faq *FAQ) error {
	params := []interface{}{faq.ID, faq.Question, faq.Answer}
	err := q.DB.GetContext(ctx, faq, updateFAQQuery, params...)
	if err == sql.ErrNoRows {
		return fmt.Errorf("faq not found on %s: query='%s', faq_id=%d, table='faqs', error=%w",
			q.getConnInfoString(), updateFAQQuery, faq.ID, err)
	}
	if err != nil {
		return q.formatQueryError("UPDATE", updateFAQQuery, len(params), "faqs", err)
	}
	return nil
}

/* DeleteFAQ deletes an FAQ */
func (q *Queries) DeleteFAQ(ctx context.Context, id int32) error {
	result, err := q.DB.ExecContext(ctx, deleteFAQQuery, id)
	if err != nil {
		return q.formatQueryError("DELETE", deleteFAQQuery, 1, "faqs", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for DELETE on %s: query='%s', faq_id=%d, table='faqs', error=%w",
			q.getConnInfoString(), deleteFAQQuery, id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("faq not found on %s: query='%s', faq_id=%d, table='faqs', rows_affected=0",
			q.getConnInfoString(), deleteFAQQuery, id)
	}
	return nil
}
