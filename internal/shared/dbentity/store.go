package dbentity

import "context"

// Result reports what an executed statement did.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Store is the storage boundary the mapping layer runs on. Queries passed to
// Exists and FetchRow use positional ? placeholders; statements passed to Exec
// use @name placeholders bound from named. Only identifiers validated by a
// FieldMap are ever part of the query text.
type Store interface {
	// Exists reports whether query produced at least one row.
	Exists(ctx context.Context, query string, args ...any) (bool, error)
	// FetchRow returns the first row of query keyed by column name; ok is false
	// when there was none.
	FetchRow(ctx context.Context, query string, args ...any) (row map[string]any, ok bool, err error)
	// Exec runs a statement and reports the generated identity, if any.
	Exec(ctx context.Context, query string, named map[string]any) (Result, error)
}
