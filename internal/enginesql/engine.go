// Package enginesql wraps database/sql + the go-sqlite3 driver behind a
// small capability set: open, execute, all, catalog. There is no separate
// prepare capability: All prepares and evaluates a statement in one call.
// Every other
// component in this service depends on this abstraction rather than on
// database/sql directly, so a different embedded engine could be swapped in
// without touching the Query Observer or Table Reflector.
package enginesql

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/panoplyio/dbsrv/internal/dberr"
)

// Engine is one opened handle to the embedded SQL engine, shared by every
// Connection referencing the same Database.
type Engine struct {
	db *sql.DB
}

// Open opens a new engine handle against spec (a driver-specific DSN, e.g.
// ":memory:" for the in-memory default database).
func Open(spec string) (*Engine, error) {
	db, err := sql.Open("sqlite3", spec)
	if err != nil {
		return nil, dberr.FailedPrecondition("opening database: %s", err)
	}
	// the in-memory engine must be shared by every Connection against the
	// same spec, so a single pooled connection backs the handle.
	db.SetMaxOpenConns(1)
	return &Engine{db: db}, nil
}

func (e *Engine) Close() error {
	return e.db.Close()
}

// CatalogEntry is one row of the engine's sqlite_master-style catalog.
type CatalogEntry struct {
	Name string
	SQL  string
}

// Catalog lists every table known to the engine, name and creation SQL,
// ordered by name.
func (e *Engine) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT name, sql FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		return nil, dberr.Internal("reading catalog: %s", err)
	}
	defer rows.Close()

	var out []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.Name, &e.SQL); err != nil {
			return nil, dberr.Internal("scanning catalog row: %s", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Internal("reading catalog: %s", err)
	}
	return out, nil
}

// Exec runs a statement that does not produce rows (the Query Observer's
// statement-flag path) and returns the number of rows changed.
func (e *Engine) Exec(ctx context.Context, stmt string) (changes int64, err error) {
	res, err := e.db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, dberr.InvalidArgument("executing statement: %s", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dberr.Internal("reading rows affected: %s", err)
	}
	return n, nil
}

// Rows is a materialized row-producing result: ordered column names, their
// declared types (when the engine reports one; empty string otherwise), and
// every row's cells in column order.
type Rows struct {
	Columns     []string
	ColumnTypes []string
	Cells       [][]interface{}
}

// All evaluates a row-producing statement to completion and materializes
// every row — the Query Observer always consumes results eagerly, never
// incrementally, so there is no separate prepare/step API here.
func (e *Engine) All(ctx context.Context, stmt string) (*Rows, error) {
	rows, err := e.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, dberr.InvalidArgument("executing query: %s", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, dberr.Internal("reading columns: %s", err)
	}

	types := make([]string, len(cols))
	if colTypes, err := rows.ColumnTypes(); err == nil {
		for i, ct := range colTypes {
			types[i] = ct.DatabaseTypeName()
		}
	}

	out := &Rows{Columns: cols, ColumnTypes: types}
	for rows.Next() {
		cells := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, dberr.Internal("scanning row: %s", err)
		}
		out.Cells = append(out.Cells, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Internal("reading rows: %s", err)
	}
	return out, nil
}
