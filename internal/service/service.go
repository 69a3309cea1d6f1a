// Package service orchestrates the job, application, job-connection and
// feedback lifecycles against the rules engine, the database and the
// deferred-task queue.
package service

import (
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation reports whether err is a Postgres duplicate-key error on
// the named index. The partial unique indexes installed during migration
// are the storage-level backstop for the services' check-then-act
// preconditions; a concurrent loser surfaces here.
func uniqueViolation(err error, indexName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == indexName
}
