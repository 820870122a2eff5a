package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookinggate/internal/dbx"
	"github.com/dmitrijs2005/bookinggate/internal/server/repositories/users"
)

// RepositoryManager vends repositories for one storage backend and owns its
// schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
