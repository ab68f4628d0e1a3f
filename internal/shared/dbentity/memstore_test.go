package dbentity

import (
	"context"
	"fmt"
	"strings"
)

// memStore understands exactly the statement shapes Persistent generates and
// records every call.
type memStore struct {
	tables map[string]*memTable
	calls  []call

	existsErr     error
	fetchErr      error
	execErr       error
	noGeneratedID bool
}

type call struct {
	verb  string
	query string
	named map[string]any
}

type memTable struct {
	idColumn string
	nextID   int64
	rows     []map[string]any
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string]*memTable)}
}

func (s *memStore) withTable(name, idColumn string, rows ...map[string]any) *memStore {
	t := &memTable{idColumn: idColumn}
	for _, r := range rows {
		t.rows = append(t.rows, r)
		if id, ok := r[idColumn].(int64); ok && id > t.nextID {
			t.nextID = id
		}
	}
	s.tables[name] = t
	return s
}

func (s *memStore) verbs() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.verb + " " + tableOf(c.query)
	}
	return out
}

func (s *memStore) execs() []call {
	var out []call
	for _, c := range s.calls {
		if c.verb == "INSERT" || c.verb == "UPDATE" {
			out = append(out, c)
		}
	}
	return out
}

func (s *memStore) find(table, column string, value any) map[string]any {
	t := s.tables[table]
	if t == nil {
		return nil
	}
	for _, r := range t.rows {
		if fmt.Sprint(r[column]) == fmt.Sprint(value) {
			return r
		}
	}
	return nil
}

func (s *memStore) Exists(_ context.Context, query string, args ...any) (bool, error) {
	s.calls = append(s.calls, call{verb: "EXISTS", query: query})
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, table, col := parseSelect(query)
	return s.find(table, col, args[0]) != nil, nil
}

func (s *memStore) FetchRow(_ context.Context, query string, args ...any) (map[string]any, bool, error) {
	s.calls = append(s.calls, call{verb: "SELECT", query: query})
	if s.fetchErr != nil {
		return nil, false, s.fetchErr
	}
	cols, table, col := parseSelect(query)
	r := s.find(table, col, args[0])
	if r == nil {
		return nil, false, nil
	}
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		out[c] = r[c]
	}
	return out, true, nil
}

func (s *memStore) Exec(_ context.Context, query string, named map[string]any) (Result, error) {
	verb, _, _ := strings.Cut(query, " ")
	s.calls = append(s.calls, call{verb: verb, query: query, named: named})
	if s.execErr != nil {
		return Result{}, s.execErr
	}
	switch verb {
	case "INSERT":
		return s.insert(query, named)
	case "UPDATE":
		return s.update(query, named)
	}
	return Result{}, fmt.Errorf("unsupported statement %q", query)
}

func (s *memStore) insert(query string, named map[string]any) (Result, error) {
	rest := strings.TrimPrefix(query, "INSERT INTO ")
	table, rest, _ := strings.Cut(rest, " (")
	colPart, rest, _ := strings.Cut(rest, ") VALUES (")
	cols := strings.Split(colPart, ", ")
	params := strings.Split(strings.TrimSuffix(rest, ")"), ", ")

	t := s.tables[table]
	if t == nil {
		return Result{}, fmt.Errorf("no such table %s", table)
	}
	row := make(map[string]any, len(cols))
	for i, c := range cols {
		row[c] = named[strings.TrimPrefix(params[i], "@")]
	}
	var res Result
	if row[t.idColumn] == nil {
		if !s.noGeneratedID {
			t.nextID++
			row[t.idColumn] = t.nextID
			res.LastInsertID = t.nextID
		}
	} else if s.find(table, t.idColumn, row[t.idColumn]) != nil {
		return Result{}, fmt.Errorf("duplicate key %v", row[t.idColumn])
	}
	t.rows = append(t.rows, row)
	res.RowsAffected = 1
	return res, nil
}

func (s *memStore) update(query string, named map[string]any) (Result, error) {
	rest := strings.TrimPrefix(query, "UPDATE ")
	table, rest, _ := strings.Cut(rest, " SET ")
	setPart, where, _ := strings.Cut(rest, " WHERE ")
	whereCol, whereParam, _ := strings.Cut(where, " = ")
	r := s.find(table, whereCol, named[strings.TrimPrefix(whereParam, "@")])
	if r == nil {
		return Result{}, nil
	}
	for _, assignment := range strings.Split(setPart, ", ") {
		col, param, _ := strings.Cut(assignment, " = ")
		r[col] = named[strings.TrimPrefix(param, "@")]
	}
	return Result{RowsAffected: 1}, nil
}

func parseSelect(query string) (cols []string, table, whereCol string) {
	rest := strings.TrimPrefix(query, "SELECT ")
	colPart, rest, _ := strings.Cut(rest, " FROM ")
	table, where, _ := strings.Cut(rest, " WHERE ")
	whereCol, _, _ = strings.Cut(where, " = ")
	return strings.Split(colPart, ", "), table, whereCol
}

func tableOf(query string) string {
	for _, marker := range []string{" FROM ", "INSERT INTO ", "UPDATE "} {
		if _, rest, ok := strings.Cut(query, marker); ok {
			name, _, _ := strings.Cut(rest, " ")
			return name
		}
	}
	return ""
}
