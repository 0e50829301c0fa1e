package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authmaint/internal/dbx"
	"github.com/dmitrijs2005/authmaint/internal/repositories/accounts"
	"github.com/dmitrijs2005/authmaint/internal/repositories/authrequests"
	"github.com/dmitrijs2005/authmaint/internal/repositories/characters"
	"github.com/dmitrijs2005/authmaint/internal/repositories/credentials"
	"github.com/dmitrijs2005/authmaint/internal/repositories/runs"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Characters(db dbx.DBTX) characters.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	AuthRequests(db dbx.DBTX) authrequests.Repository
	Runs(db dbx.DBTX) runs.Repository
}
