// Package database provides the SQLite store backing the audit trail.
//
// It opens the database with WAL mode and a busy timeout, pins the pool
// to a single connection (SQLite has one writer and the audit trail is
// the only one), and applies forward-only schema migrations embedded by
// the migrations package.
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migrations are forward-only: there is no rollback path, so new
// columns must be nullable or carry defaults, and columns are never
// dropped or renamed.
package database
