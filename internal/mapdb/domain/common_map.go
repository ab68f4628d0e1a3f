package domain

import (
	"context"
	"database/sql"

	"shamtool/internal/shared/dbentity"
)

// CommonTable holds every known map, special category or not.
const CommonTable = "all_maps"

var commonFields = dbentity.MustFieldMap(
	dbentity.Field{Column: "id", Attr: "id"},
	dbentity.Field{Column: "mapcode", Attr: "mapCode"},
	dbentity.Field{Column: "author", Attr: "author"},
	dbentity.Field{Column: "xml", Attr: "xml"},
	dbentity.Field{Column: "wind", Attr: "wind"},
	dbentity.Field{Column: "gravity", Attr: "gravity"},
	dbentity.Field{Column: "mgoc", Attr: "mgoc"},
	dbentity.Field{Column: "image_url", Attr: "imageUrl"},
)

// CommonListColumns are the all_maps columns a listing reads; xml is left out.
func CommonListColumns() []string {
	cols := make([]string, 0, commonFields.Len()-1)
	for _, c := range commonFields.Columns() {
		if c != "xml" {
			cols = append(cols, c)
		}
	}
	return cols
}

// CommonMap is one row of all_maps.
type CommonMap struct {
	*dbentity.Persistent
	ID       int64
	MapCode  int64
	Author   string
	XML      string
	Wind     sql.NullInt64
	Gravity  sql.NullInt64
	MGOC     sql.NullInt64
	ImageURL sql.NullString
}

func NewCommonMap(store dbentity.Store) *CommonMap {
	m := &CommonMap{}
	m.Persistent = dbentity.NewPersistent(dbentity.Schema{Table: CommonTable, Fields: commonFields}, store, dbentity.Bindings{
		Name: "common map",
		Fields: map[string]dbentity.Accessor{
			"id":       dbentity.Ref(&m.ID),
			"mapCode":  dbentity.Ref(&m.MapCode),
			"author":   dbentity.Ref(&m.Author),
			"xml":      dbentity.Ref(&m.XML),
			"wind":     dbentity.Ref(&m.Wind),
			"gravity":  dbentity.Ref(&m.Gravity),
			"mgoc":     dbentity.Ref(&m.MGOC),
			"imageUrl": dbentity.Ref(&m.ImageURL),
		},
	})
	return m
}

// IsDivinity reports whether the map has a mapdb_divinity row.
func (m *CommonMap) IsDivinity(ctx context.Context) bool {
	return NewDivinityMap(m).IDExists(ctx)
}

// IsSpiritual reports whether the map has a mapdb_spiritual row.
func (m *CommonMap) IsSpiritual(ctx context.Context) bool {
	return NewSpiritualMap(m).IDExists(ctx)
}

// CommonInput carries the common attributes a caller wants to change; nil
// fields are left alone.
type CommonInput struct {
	MapCode  int64
	Author   *string
	XML      *string
	Wind     *int64
	Gravity  *int64
	MGOC     *int64
	ImageURL *string
}

// Apply stages in through Update so only real changes are written.
func (m *CommonMap) Apply(in CommonInput) *dbentity.Entity {
	e := m.Update("mapCode", in.MapCode)
	if in.Author != nil {
		e.Update("author", *in.Author)
	}
	if in.XML != nil {
		e.Update("xml", *in.XML)
	}
	updateInt(e, "wind", in.Wind)
	updateInt(e, "gravity", in.Gravity)
	updateInt(e, "mgoc", in.MGOC)
	if in.ImageURL != nil {
		e.Update("imageUrl", sql.NullString{String: *in.ImageURL, Valid: true})
	}
	return e
}

// CommonView is the REST shape of a map. The XML is served separately.
type CommonView struct {
	ID          int64   `json:"id"`
	MapCode     int64   `json:"mapCode"`
	Author      string  `json:"author"`
	Wind        *int64  `json:"wind"`
	Gravity     *int64  `json:"gravity"`
	MGOC        *int64  `json:"mgoc"`
	ImageURL    *string `json:"imageUrl"`
	IsDivinity  bool    `json:"isDivinity"`
	IsSpiritual bool    `json:"isSpiritual"`
}

// View exports m; the category flags cost one existence query each.
func (m *CommonMap) View(ctx context.Context) CommonView {
	return CommonView{
		ID:          m.ID,
		MapCode:     m.MapCode,
		Author:      m.Author,
		Wind:        nullInt(m.Wind),
		Gravity:     nullInt(m.Gravity),
		MGOC:        nullInt(m.MGOC),
		ImageURL:    nullString(m.ImageURL),
		IsDivinity:  m.IsDivinity(ctx),
		IsSpiritual: m.IsSpiritual(ctx),
	}
}
