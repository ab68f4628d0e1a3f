package domain

import (
	"context"
	"database/sql"

	"shamtool/internal/shared/dbentity"
)

const (
	DivinityTable  = "mapdb_divinity"
	SpiritualTable = "mapdb_spiritual"
)

var divinityFields = dbentity.MustFieldMap(
	dbentity.Field{Column: "id", Attr: "id"},
	dbentity.Field{Column: "difficulty", Attr: "difficulty"},
	dbentity.Field{Column: "category", Attr: "category"},
	dbentity.Field{Column: "cage", Attr: "cage"},
	dbentity.Field{Column: "no_anchor", Attr: "noAnchor"},
	dbentity.Field{Column: "no_motor", Attr: "noMotor"},
	dbentity.Field{Column: "no_balloon", Attr: "noBalloon"},
	dbentity.Field{Column: "opportunist", Attr: "opportunist"},
	dbentity.Field{Column: "water", Attr: "water"},
	dbentity.Field{Column: "timer", Attr: "timer"},
)

var spiritualFields = dbentity.MustFieldMap(
	dbentity.Field{Column: "id", Attr: "id"},
	dbentity.Field{Column: "difficulty", Attr: "difficulty"},
	dbentity.Field{Column: "cage", Attr: "cage"},
	dbentity.Field{Column: "no_anchor", Attr: "noAnchor"},
	dbentity.Field{Column: "no_motor", Attr: "noMotor"},
	dbentity.Field{Column: "water", Attr: "water"},
	dbentity.Field{Column: "timer", Attr: "timer"},
	dbentity.Field{Column: "no_b", Attr: "noB"},
)

// specialMap is the part Divinity and Spiritual maps share: a category row
// keyed by the id of a CommonMap.
type specialMap struct {
	*dbentity.Persistent
	Common     *CommonMap
	Difficulty sql.NullInt64
	Cage       sql.NullBool
	NoAnchor   sql.NullBool
	NoMotor    sql.NullBool
	Water      sql.NullBool
	Timer      sql.NullBool
}

func (m *specialMap) bind(name, table string, fm *dbentity.FieldMap, extra map[string]dbentity.Accessor) {
	fields := map[string]dbentity.Accessor{
		"difficulty": dbentity.Ref(&m.Difficulty),
		"cage":       dbentity.Ref(&m.Cage),
		"noAnchor":   dbentity.Ref(&m.NoAnchor),
		"noMotor":    dbentity.Ref(&m.NoMotor),
		"water":      dbentity.Ref(&m.Water),
		"timer":      dbentity.Ref(&m.Timer),
	}
	for attr, acc := range extra {
		fields[attr] = acc
	}
	m.Persistent = dbentity.NewPersistent(dbentity.Schema{Table: table, Fields: fm}, m.Common.Store(), dbentity.Bindings{
		Name:   name,
		Fields: fields,
		// the category row has no identity of its own
		Accessors: map[string]dbentity.Accessor{
			"id": {
				Get: func() any { return m.Common.ID },
				Set: func(v any) error { return m.Common.Set("id", v) },
			},
		},
	})
}

// Save writes the common map first so a new map has an id for its category row.
func (m *specialMap) Save(ctx context.Context) error {
	if err := m.Common.Save(ctx); err != nil {
		return err
	}
	return m.Persistent.Save(ctx)
}

func (m *specialMap) Load(ctx context.Context) error {
	if err := m.Common.Load(ctx); err != nil {
		return err
	}
	return m.Persistent.Load(ctx)
}

func (m *specialMap) Sync(ctx context.Context) error {
	return dbentity.SyncRecord(ctx, m)
}

// SpecialInput carries the attributes both categories share; nil fields are left alone.
type SpecialInput struct {
	Difficulty *int64
	Cage       *bool
	NoAnchor   *bool
	NoMotor    *bool
	Water      *bool
	Timer      *bool
}

func (m *specialMap) apply(in SpecialInput) *dbentity.Entity {
	e := m.Entity
	updateInt(e, "difficulty", in.Difficulty)
	updateBool(e, "cage", in.Cage)
	updateBool(e, "noAnchor", in.NoAnchor)
	updateBool(e, "noMotor", in.NoMotor)
	updateBool(e, "water", in.Water)
	updateBool(e, "timer", in.Timer)
	return e
}

type SpecialView struct {
	ID         int64  `json:"id"`
	Difficulty *int64 `json:"difficulty"`
	Cage       *bool  `json:"cage"`
	NoAnchor   *bool  `json:"noAnchor"`
	NoMotor    *bool  `json:"noMotor"`
	Water      *bool  `json:"water"`
	Timer      *bool  `json:"timer"`
}

func (m *specialMap) view() SpecialView {
	return SpecialView{
		ID:         m.Common.ID,
		Difficulty: nullInt(m.Difficulty),
		Cage:       nullBool(m.Cage),
		NoAnchor:   nullBool(m.NoAnchor),
		NoMotor:    nullBool(m.NoMotor),
		Water:      nullBool(m.Water),
		Timer:      nullBool(m.Timer),
	}
}

// DivinityMap is the mapdb_divinity extension of a CommonMap.
type DivinityMap struct {
	specialMap
	Category    sql.NullInt64
	NoBalloon   sql.NullBool
	Opportunist sql.NullBool
}

// NewDivinityMap wraps common; the two share one identity.
func NewDivinityMap(common *CommonMap) *DivinityMap {
	m := &DivinityMap{}
	m.Common = common
	m.bind("divinity map", DivinityTable, divinityFields, map[string]dbentity.Accessor{
		"category":    dbentity.Ref(&m.Category),
		"noBalloon":   dbentity.Ref(&m.NoBalloon),
		"opportunist": dbentity.Ref(&m.Opportunist),
	})
	return m
}

type DivinityInput struct {
	SpecialInput
	Category    *int64
	NoBalloon   *bool
	Opportunist *bool
}

func (m *DivinityMap) Apply(in DivinityInput) *dbentity.Entity {
	e := m.apply(in.SpecialInput)
	updateInt(e, "category", in.Category)
	updateBool(e, "noBalloon", in.NoBalloon)
	updateBool(e, "opportunist", in.Opportunist)
	return e
}

type DivinityView struct {
	SpecialView
	Category    *int64 `json:"category"`
	NoBalloon   *bool  `json:"noBalloon"`
	Opportunist *bool  `json:"opportunist"`
}

func (m *DivinityMap) View() DivinityView {
	return DivinityView{
		SpecialView: m.view(),
		Category:    nullInt(m.Category),
		NoBalloon:   nullBool(m.NoBalloon),
		Opportunist: nullBool(m.Opportunist),
	}
}

// SpiritualMap is the mapdb_spiritual extension of a CommonMap.
type SpiritualMap struct {
	specialMap
	NoB sql.NullBool
}

func NewSpiritualMap(common *CommonMap) *SpiritualMap {
	m := &SpiritualMap{}
	m.Common = common
	m.bind("spiritual map", SpiritualTable, spiritualFields, map[string]dbentity.Accessor{
		"noB": dbentity.Ref(&m.NoB),
	})
	return m
}

type SpiritualInput struct {
	SpecialInput
	NoB *bool
}

func (m *SpiritualMap) Apply(in SpiritualInput) *dbentity.Entity {
	e := m.apply(in.SpecialInput)
	updateBool(e, "noB", in.NoB)
	return e
}

type SpiritualView struct {
	SpecialView
	NoB *bool `json:"noB"`
}

func (m *SpiritualMap) View() SpiritualView {
	return SpiritualView{SpecialView: m.view(), NoB: nullBool(m.NoB)}
}
