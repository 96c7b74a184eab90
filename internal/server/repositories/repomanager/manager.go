// Package repomanager vends repository implementations bound to a database
// handle (either *sql.DB or an open transaction).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mihailvs/docshare/internal/dbx"
	"github.com/mihailvs/docshare/internal/server/repositories/documents"
	"github.com/mihailvs/docshare/internal/server/repositories/users"
)

// RepositoryManager supplies repositories bound to the given DBTX and can
// migrate the schema.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
