/*-------------------------------------------------------------------------
 *
 * migrations_test.go
 *    Tests for the SQL migration runner
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/migrations_test.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func writeMigration(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write migration %s: %v", name, err)
	}
}

/* TestMigrationRunnerAppliesInOrder tests that pending migrations run in lexical order */
func TestMigrationRunnerAppliesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "0002_second.sql", "CREATE TABLE second (id INT)")
	writeMigration(t, dir, "0001_first.sql", "CREATE TABLE first (id INT)")
	writeMigration(t, dir, "notes.txt", "not a migration")

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE first`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs("0001_first.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE second`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs("0002_second.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runner, err := NewMigrationRunner(sqlx.NewDb(mockDB, "sqlmock"), dir)
	if err != nil {
		t.Fatalf("new migration runner: %v", err)
	}
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestMigrationRunnerSkipsApplied tests that applied versions are not re-run */
func TestMigrationRunnerSkipsApplied(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "0001_first.sql", "CREATE TABLE first (id INT)")
	writeMigration(t, dir, "0002_second.sql", "CREATE TABLE second (id INT)")

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_first.sql"))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE second`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs("0002_second.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runner, err := NewMigrationRunner(sqlx.NewDb(mockDB, "sqlmock"), dir)
	if err != nil {
		t.Fatalf("new migration runner: %v", err)
	}
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

/* TestMigrationRunnerMissingDir tests construction against a missing directory */
func TestMigrationRunnerMissingDir(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer mockDB.Close()

	if _, err := NewMigrationRunner(sqlx.NewDb(mockDB, "sqlmock"), "/nonexistent/migrations"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
