/*-------------------------------------------------------------------------
 *
 * queries.go
 *    Database query infrastructure for the InheritX backend
 *
 * Provides the shared Queries type and error formatting helpers used by
 * the per-resource query files.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/skill-mind/InheritX-Backend/internal/utils"
)

type Queries struct {
	DB       *sqlx.DB
	connInfo func() string
}

/* GetDB returns the database connection (for compatibility) */
func (q *Queries) GetDB() *sqlx.DB {
	return q.DB
}

func NewQueries(db *sqlx.DB) *Queries {
	return &Queries{
		DB: db,
		connInfo: func() string {
			return "unknown database connection"
		},
	}
}

/* SetConnInfoFunc sets a function to retrieve connection info for error messages */
func (q *Queries) SetConnInfoFunc(fn func() string) {
	q.connInfo = fn
}

/* getConnInfoString returns connection info string */
func (q *Queries) getConnInfoString() string {
	if q.connInfo != nil {
		return q.connInfo()
	}
	return "unknown database connection"
}

/* formatQueryError formats a detailed query error message */
func (q *Queries) formatQueryError(operation string, query string, paramCount int, table string, err error) error {
	queryContext := utils.FormatQueryContext(query, paramCount, operation, table)
	connInfo := q.getConnInfoString()
	return fmt.Errorf("query execution failed on %s: %s, error=%w", connInfo, queryContext, err)
}
