// Package postgres implements the internal/store interfaces on PostgreSQL
// using a pgx connection pool. Queries are built with squirrel, rows are
// scanned with scany, and the schema is managed by embedded goose
// migrations.
package postgres
