// Package repository provides the sqlx-backed implementations of the
// domain repository interfaces. Every query is tenant-scoped and excludes
// soft-deleted rows unless the method says otherwise.
package repository

import "github.com/jmoiron/sqlx"

// rebind converts `?` placeholders to the postgres `$N` form. Queries that
// grow conditionally are built with `?` so argument order stays obvious.
func rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}
