package dbentity

import (
	"context"
	"database/sql"
)

var personFields = MustFieldMap(
	Field{Column: "id", Attr: "id"},
	Field{Column: "full_name", Attr: "name"},
	Field{Column: "age", Attr: "age"},
	Field{Column: "nick", Attr: "nick"},
)

type person struct {
	*Persistent
	ID   int64
	Name string
	Age  sql.NullInt64
	Nick sql.NullString
}

func newPerson(store Store) *person {
	p := &person{}
	p.Persistent = NewPersistent(Schema{Table: "people", Fields: personFields}, store, Bindings{
		Name: "person",
		Fields: map[string]Accessor{
			"id":   Ref(&p.ID),
			"name": Ref(&p.Name),
			"age":  Ref(&p.Age),
			"nick": Ref(&p.Nick),
		},
	})
	return p
}

var badgeFields = MustFieldMap(
	Field{Column: "id", Attr: "id"},
	Field{Column: "title", Attr: "title"},
)

// badge extends a person row; its identity is the person's identity.
type badge struct {
	*Persistent
	Person *person
	Title  string
}

func newBadge(store Store, owner *person) *badge {
	b := &badge{Person: owner}
	b.Persistent = NewPersistent(Schema{Table: "badges", Fields: badgeFields}, store, Bindings{
		Name:   "badge",
		Fields: map[string]Accessor{"title": Ref(&b.Title)},
		Accessors: map[string]Accessor{
			"id": {
				Get: func() any { return b.Person.ID },
				Set: func(v any) error { return b.Person.Set("id", v) },
			},
		},
	})
	return b
}

func (b *badge) Save(ctx context.Context) error {
	if err := b.Person.Save(ctx); err != nil {
		return err
	}
	return b.Persistent.Save(ctx)
}

func (b *badge) Load(ctx context.Context) error {
	if err := b.Person.Load(ctx); err != nil {
		return err
	}
	return b.Persistent.Load(ctx)
}

func (b *badge) Sync(ctx context.Context) error {
	return SyncRecord(ctx, b)
}
