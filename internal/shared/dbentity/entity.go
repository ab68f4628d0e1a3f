package dbentity

import (
	"sort"

	"go.uber.org/zap"

	"shamtool/internal/shared/logs"
)

// Bindings is what one entity instance supplies: Fields binds attributes to
// its own struct fields (see Ref), Accessors binds attributes whose value is
// not a plain field. An attribute present in Accessors is never read or
// written through Fields.
type Bindings struct {
	// Name identifies the entity type in errors and logs.
	Name      string
	Fields    map[string]Accessor
	Accessors map[string]Accessor
}

// Entity mirrors one storage row through a FieldMap and records which
// attributes changed since the last save.
//
// An Entity is not safe for concurrent use.
type Entity struct {
	name     string
	fieldMap *FieldMap
	resolved map[string]Accessor
	changes  ChangeTracker
	err      error
}

// NewEntity checks b against fm and panics with ErrConfiguration when an
// attribute is unbound, an accessor is incomplete, or a binding names an
// unmapped attribute.
func NewEntity(fm *FieldMap, b Bindings) *Entity {
	if fm == nil {
		panic(configErrorf("%s: nil field map", b.Name))
	}
	resolved := make(map[string]Accessor, fm.Len())
	for attr, acc := range b.Accessors {
		if _, ok := fm.Column(attr); !ok {
			panic(configErrorf("%s: accessor for unmapped attribute %q", b.Name, attr))
		}
		if !acc.valid() {
			panic(configErrorf("%s: accessor for %q needs both a getter and a setter", b.Name, attr))
		}
		resolved[attr] = acc
	}
	for attr, acc := range b.Fields {
		if _, ok := fm.Column(attr); !ok {
			panic(configErrorf("%s: field binding for unmapped attribute %q", b.Name, attr))
		}
		if !acc.valid() {
			panic(configErrorf("%s: field binding for %q is incomplete", b.Name, attr))
		}
		if _, ok := resolved[attr]; ok {
			continue
		}
		resolved[attr] = acc
	}
	for _, f := range fm.fields {
		if _, ok := resolved[f.Attr]; !ok {
			panic(configErrorf("%s: attribute %q of column %q is neither a field nor an accessor", b.Name, f.Attr, f.Column))
		}
	}
	return &Entity{
		name:     b.Name,
		fieldMap: fm,
		resolved: resolved,
	}
}

func (e *Entity) Name() string {
	return e.name
}

func (e *Entity) FieldMap() *FieldMap {
	return e.fieldMap
}

// Err returns the first configuration error recorded by Update.
func (e *Entity) Err() error {
	return e.err
}

func (e *Entity) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Get returns the current value of attr. Asking for an unmapped attribute is
// a programming error and panics.
func (e *Entity) Get(attr string) any {
	acc, ok := e.resolved[attr]
	if !ok {
		panic(configErrorf("%s: get of unmapped attribute %q", e.name, attr))
	}
	return acc.Get()
}

// Set writes attr without marking it dirty.
func (e *Entity) Set(attr string, value any) error {
	acc, ok := e.resolved[attr]
	if !ok {
		return configErrorf("%s: set of unmapped attribute %q", e.name, attr)
	}
	return acc.Set(value)
}

// Update stages value for attr. A value equal to the current one, once
// converted to the attribute's type, is ignored and does not mark the
// attribute dirty. Unknown attributes and values the
// attribute cannot hold are recorded as ErrConfiguration, reported by Err and
// by the next Save, Load or Sync.
func (e *Entity) Update(attr string, value any) *Entity {
	acc, ok := e.resolved[attr]
	if !ok {
		e.fail(configErrorf("%s: update of unmapped attribute %q", e.name, attr))
		return e
	}
	if acc.equals(value) {
		return e
	}
	if err := acc.Set(value); err != nil {
		e.fail(ErrConfiguration.WithData("attr", attr).WithCause(err))
		return e
	}
	e.changes.Mark(attr)
	return e
}

// IsDirty reports whether attr has an unsaved change.
func (e *Entity) IsDirty(attr string) bool {
	return e.changes.Has(attr)
}

// Dirty returns the attributes with unsaved changes in declaration order.
func (e *Entity) Dirty() []string {
	return e.changes.Names(e.fieldMap.Attrs())
}

// ImportRecord applies a storage row keyed by column name. Columns the field
// map does not know are logged and skipped. When a value cannot be applied,
// every attribute touched so far is restored and ErrStorage is returned.
func (e *Entity) ImportRecord(row map[string]any) error {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	type previous struct {
		attr  string
		value any
	}
	applied := make([]previous, 0, len(columns))
	for _, col := range columns {
		attr, ok := e.fieldMap.Attr(col)
		if !ok {
			logs.Warn("storage column has no attribute mapping",
				zap.String("entity", e.name),
				zap.String("column", col),
			)
			continue
		}
		old := e.Get(attr)
		if err := e.Set(attr, row[col]); err != nil {
			for i := len(applied) - 1; i >= 0; i-- {
				_ = e.Set(applied[i].attr, applied[i].value)
			}
			_ = e.Set(attr, old)
			return ErrStorage.WithData("entity", e.name).WithData("column", col).WithCause(err)
		}
		applied = append(applied, previous{attr: attr, value: old})
	}
	return nil
}
