package dbentity

import (
	"fmt"
	"regexp"
)

// Field declares that storage column Column holds attribute Attr.
type Field struct {
	Column string
	Attr   string
}

// FieldMap is the immutable, per-type correspondence between storage columns
// and attribute names. Declaration order is kept and drives generated SQL.
type FieldMap struct {
	fields        []Field
	storageToAttr map[string]string
	attrToStorage map[string]string
}

// Column and attribute names are interpolated into SQL text and used as named
// parameters, so only plain identifiers are accepted.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validIdentifier(s string) bool {
	return identRe.MatchString(s)
}

// NewFieldMap validates fields and builds both directions of the mapping.
func NewFieldMap(fields ...Field) (*FieldMap, error) {
	if len(fields) == 0 {
		return nil, configErrorf("field map is empty")
	}
	m := &FieldMap{
		fields:        make([]Field, 0, len(fields)),
		storageToAttr: make(map[string]string, len(fields)),
		attrToStorage: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if !validIdentifier(f.Column) {
			return nil, configErrorf("column %q is not a plain identifier", f.Column)
		}
		if !validIdentifier(f.Attr) {
			return nil, configErrorf("attribute %q of column %q is not a plain identifier", f.Attr, f.Column)
		}
		if prev, ok := m.storageToAttr[f.Column]; ok {
			return nil, configErrorf("column %q declared twice (attributes %q and %q)", f.Column, prev, f.Attr)
		}
		if prev, ok := m.attrToStorage[f.Attr]; ok {
			return nil, configErrorf("attribute %q mapped from both %q and %q", f.Attr, prev, f.Column)
		}
		m.storageToAttr[f.Column] = f.Attr
		m.attrToStorage[f.Attr] = f.Column
		m.fields = append(m.fields, f)
	}
	return m, nil
}

// MustFieldMap is NewFieldMap for package-level declarations: a broken
// declaration stops the process at start.
func MustFieldMap(fields ...Field) *FieldMap {
	m, err := NewFieldMap(fields...)
	if err != nil {
		panic(err)
	}
	return m
}

// Column returns the storage column of attr.
func (m *FieldMap) Column(attr string) (string, bool) {
	c, ok := m.attrToStorage[attr]
	return c, ok
}

// Attr returns the attribute stored in column.
func (m *FieldMap) Attr(column string) (string, bool) {
	a, ok := m.storageToAttr[column]
	return a, ok
}

func (m *FieldMap) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

func (m *FieldMap) Columns() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.Column
	}
	return out
}

func (m *FieldMap) Attrs() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.Attr
	}
	return out
}

func (m *FieldMap) Len() int {
	return len(m.fields)
}

func (m *FieldMap) String() string {
	return fmt.Sprintf("FieldMap%v", m.fields)
}
