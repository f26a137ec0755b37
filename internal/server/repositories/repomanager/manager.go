package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dailydo/internal/dbx"
	"github.com/dmitrijs2005/dailydo/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/dailydo/internal/server/repositories/todos"
	"github.com/dmitrijs2005/dailydo/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to an arbitrary DBTX, so
// services can run the same repository against the pool or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
