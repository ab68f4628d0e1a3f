package dbentity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shamtool/internal/shared/logs"
)

// DefaultIdentity is the identity attribute used when a Schema names none.
const DefaultIdentity = "id"

// Schema is the per-type storage declaration of a persistent entity.
type Schema struct {
	Table string
	// Identity is the attribute that identifies a row; defaults to "id".
	Identity string
	Fields   *FieldMap
}

func (s Schema) identity() string {
	if s.Identity == "" {
		return DefaultIdentity
	}
	return s.Identity
}

// Persistent is an Entity bound to a table and a Store. It implements the
// upsert/load protocol: Save inserts or updates depending on whether the
// current identity already has a row, Load overwrites every mapped attribute
// from storage.
type Persistent struct {
	*Entity
	table    string
	identity string
	idColumn string
	store    Store
}

// NewPersistent binds b to schema and store. Misconfiguration panics with
// ErrConfiguration.
func NewPersistent(schema Schema, store Store, b Bindings) *Persistent {
	if !validIdentifier(schema.Table) {
		panic(configErrorf("%s: table name %q is not a plain identifier", b.Name, schema.Table))
	}
	if store == nil {
		panic(configErrorf("%s: nil store", b.Name))
	}
	e := NewEntity(schema.Fields, b)
	identity := schema.identity()
	idColumn, ok := schema.Fields.Column(identity)
	if !ok {
		panic(configErrorf("%s: identity attribute %q is not mapped", b.Name, identity))
	}
	return &Persistent{
		Entity:   e,
		table:    schema.Table,
		identity: identity,
		idColumn: idColumn,
		store:    store,
	}
}

func (p *Persistent) Table() string {
	return p.table
}

// Store returns the storage handle the entity was bound to.
func (p *Persistent) Store() Store {
	return p.store
}

func (p *Persistent) IdentityAttr() string {
	return p.identity
}

// ID returns the current identity value.
func (p *Persistent) ID() any {
	return p.Get(p.identity)
}

// HasID reports whether the identity is set.
func (p *Persistent) HasID() bool {
	return !isUnset(p.ID())
}

func (p *Persistent) exists(ctx context.Context) (bool, error) {
	id := p.ID()
	if isUnset(id) {
		return false, nil
	}
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ?", p.table, p.idColumn)
	return p.store.Exists(ctx, query, bindValue(id))
}

// IDExists reports whether a row with the current identity exists. It never
// fails: an unset identity or a failed query both read as false.
func (p *Persistent) IDExists(ctx context.Context) bool {
	ok, err := p.exists(ctx)
	if err != nil {
		logs.Warn("identity existence check failed",
			zap.String("entity", p.name),
			zap.String("table", p.table),
			zap.Error(err),
		)
		return false
	}
	return ok
}

// Save writes pending changes. An existing row gets an UPDATE of the dirty
// columns (never the identity column; nothing at all when no column is
// dirty), a missing row gets an INSERT of every mapped column. When the
// identity is still unset afterwards, the storage-generated one is adopted.
func (p *Persistent) Save(ctx context.Context) error {
	if p.err != nil {
		return p.err
	}
	existing, err := p.exists(ctx)
	if err != nil {
		return storageError("exists", p.table, err)
	}

	var query string
	var args map[string]any
	if existing {
		query, args = p.updateStatement()
	} else {
		query, args = p.insertStatement()
	}

	var res Result
	if query != "" {
		res, err = p.store.Exec(ctx, query, args)
		if err != nil {
			return storageError("save", p.table, err)
		}
	}
	p.changes.Clear()

	if !p.HasID() {
		if res.LastInsertID == 0 {
			return storageError("save", p.table, errors.New("save completed but no identity was produced"))
		}
		if err := p.Set(p.identity, res.LastInsertID); err != nil {
			return storageError("save", p.table, err)
		}
	}
	return nil
}

func (p *Persistent) updateStatement() (string, map[string]any) {
	sets := make([]string, 0, p.changes.Len())
	args := make(map[string]any, p.changes.Len()+1)
	for _, f := range p.fieldMap.fields {
		if f.Attr == p.identity || !p.changes.Has(f.Attr) {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = @%s", f.Column, f.Attr))
		args[f.Attr] = bindValue(p.Get(f.Attr))
	}
	if len(sets) == 0 {
		return "", nil
	}
	args[p.identity] = bindValue(p.ID())
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = @%s",
		p.table, strings.Join(sets, ", "), p.idColumn, p.identity)
	return query, args
}

func (p *Persistent) insertStatement() (string, map[string]any) {
	n := p.fieldMap.Len()
	columns := make([]string, 0, n)
	params := make([]string, 0, n)
	args := make(map[string]any, n)
	for _, f := range p.fieldMap.fields {
		columns = append(columns, f.Column)
		params = append(params, "@"+f.Attr)
		v := p.Get(f.Attr)
		if f.Attr == p.identity && isUnset(v) {
			// NULL lets storage generate the identity
			args[f.Attr] = nil
			continue
		}
		args[f.Attr] = bindValue(v)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		p.table, strings.Join(columns, ", "), strings.Join(params, ", "))
	return query, args
}

// Load replaces every mapped attribute with the stored row. It does not look
// at or clear the dirty set: unsaved updates are silently overwritten.
func (p *Persistent) Load(ctx context.Context) error {
	if p.err != nil {
		return p.err
	}
	id := p.ID()
	if isUnset(id) {
		return configErrorf("%s: load without identity %q", p.name, p.identity)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		strings.Join(p.fieldMap.Columns(), ", "), p.table, p.idColumn)
	row, ok, err := p.store.FetchRow(ctx, query, bindValue(id))
	if err != nil {
		return storageError("load", p.table, err)
	}
	if !ok {
		return ErrNotFound.WithData("table", p.table).WithData("id", bindValue(id))
	}
	return p.ImportRecord(row)
}

// Sync is Save followed by Load.
func (p *Persistent) Sync(ctx context.Context) error {
	return SyncRecord(ctx, p)
}

// Record is the persistence surface shared by plain and composite entities.
type Record interface {
	Save(ctx context.Context) error
	Load(ctx context.Context) error
	IDExists(ctx context.Context) bool
}

// SyncRecord saves r and reads it back, stopping at the first error. Composite
// entities use it so their own cascading Save and Load run.
func SyncRecord(ctx context.Context, r Record) error {
	if err := r.Save(ctx); err != nil {
		return err
	}
	return r.Load(ctx)
}
