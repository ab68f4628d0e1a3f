package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shamtool/internal/shared/dbentity"
)

var statements = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shamtool",
	Subsystem: "store",
	Name:      "statements_total",
	Help:      "Statements issued by the entity store, by kind and outcome.",
}, []string{"kind", "result"})

func observe(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	statements.WithLabelValues(kind, result).Inc()
}

// Store runs entity statements on a gorm connection.
type Store struct {
	db *gorm.DB
}

var _ dbentity.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for repositories that query with gorm directly.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Exists(ctx context.Context, query string, args ...any) (ok bool, err error) {
	defer func() { observe("exists", err) }()

	rows, err := s.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()
	ok = rows.Next()
	return ok, rows.Err()
}

func (s *Store) FetchRow(ctx context.Context, query string, args ...any) (row map[string]any, ok bool, err error) {
	defer func() { observe("fetch", err) }()

	tx := s.db.WithContext(ctx)
	rows, err := tx.Raw(query, args...).Rows()
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, false, rows.Err()
	}
	row = make(map[string]any)
	if err := tx.ScanRows(rows, &row); err != nil {
		return nil, false, err
	}
	return row, true, nil
}

// Exec binds named as @name parameters. The statement is compiled by gorm and
// run on the raw pool so the driver's generated identity is available.
func (s *Store) Exec(ctx context.Context, query string, named map[string]any) (res dbentity.Result, err error) {
	defer func() { observe("exec", err) }()

	compiled := s.db.WithContext(ctx).Session(&gorm.Session{
		DryRun: true,
		Logger: logger.Discard,
	}).Exec(query, named)
	if compiled.Error != nil {
		return res, compiled.Error
	}
	stmt := compiled.Statement
	sqlText := stmt.SQL.String()

	begin := time.Now()
	var out sql.Result
	out, err = stmt.ConnPool.ExecContext(ctx, sqlText, stmt.Vars...)
	s.db.Logger.Trace(ctx, begin, func() (string, int64) {
		var n int64
		if out != nil {
			n, _ = out.RowsAffected()
		}
		return s.db.Dialector.Explain(sqlText, stmt.Vars...), n
	}, err)
	if err != nil {
		return res, err
	}
	res.RowsAffected, _ = out.RowsAffected()
	if id, idErr := out.LastInsertId(); idErr == nil {
		res.LastInsertID = id
	}
	return res, nil
}
