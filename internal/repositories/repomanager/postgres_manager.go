// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authmaint/internal/dbx"
	"github.com/dmitrijs2005/authmaint/internal/migrations"
	"github.com/dmitrijs2005/authmaint/internal/repositories/accounts"
	"github.com/dmitrijs2005/authmaint/internal/repositories/authrequests"
	"github.com/dmitrijs2005/authmaint/internal/repositories/characters"
	"github.com/dmitrijs2005/authmaint/internal/repositories/credentials"
	"github.com/dmitrijs2005/authmaint/internal/repositories/runs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

// Characters returns a characters.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Characters(db dbx.DBTX) characters.Repository {
	return characters.NewPostgresRepository(db)
}

// Credentials returns a credentials.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewPostgresRepository(db)
}

// AuthRequests returns an authrequests.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) AuthRequests(db dbx.DBTX) authrequests.Repository {
	return authrequests.NewPostgresRepository(db)
}

// Runs returns a runs.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Runs(db dbx.DBTX) runs.Repository {
	return runs.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
