// Package repomanager wires concrete repository implementations to a database
// handle. Services hold a manager plus a *sql.DB and pick the handle per call,
// which lets the same repository code run against the pool or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/saferide/saferide/internal/dbx"
	"github.com/saferide/saferide/internal/server/repositories/children"
	"github.com/saferide/saferide/internal/server/repositories/companies"
	"github.com/saferide/saferide/internal/server/repositories/relationships"
	"github.com/saferide/saferide/internal/server/repositories/rides"
	"github.com/saferide/saferide/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Companies(db dbx.DBTX) companies.Repository
	Children(db dbx.DBTX) children.Repository
	Relationships(db dbx.DBTX) relationships.Repository
	Rides(db dbx.DBTX) rides.Repository
}
