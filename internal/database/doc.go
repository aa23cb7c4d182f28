// Package database implements the domain repositories backed by PostgreSQL
// via pgx, and owns schema migrations.
package database
