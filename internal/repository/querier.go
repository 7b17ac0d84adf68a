package repository

import "database/sql"

// Querier is the subset of database/sql the repositories execute
// against, satisfied by both *sql.DB and *sql.Tx. Write paths that
// must be atomic across repositories pass a transaction.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
