package repo

import (
	"context"

	"gorm.io/gorm"

	"shamtool/internal/mapdb/domain"
	"shamtool/internal/shared/dbentity"
	"shamtool/modules/kit/errx"
)

const maxListLimit = 100

type MapRepo struct {
	db    *gorm.DB
	store dbentity.Store
}

// NewMapRepo queries through db and binds the entities it returns to store.
func NewMapRepo(db *gorm.DB, store dbentity.Store) *MapRepo {
	return &MapRepo{
		db:    db,
		store: store,
	}
}

func storageError(op string, err error) *errx.Error {
	return dbentity.ErrStorage.WithData("op", op).WithCause(err)
}

func (r *MapRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table(domain.CommonTable).Count(&n).Error; err != nil {
		return 0, storageError("count_maps", err)
	}
	return n, nil
}

// FindIDByMapCode returns the id of the map with mapCode; ok is false when there is none.
func (r *MapRepo) FindIDByMapCode(ctx context.Context, mapCode int64) (id int64, ok bool, err error) {
	var ids []int64
	err = r.db.WithContext(ctx).
		Table(domain.CommonTable).
		Where("mapcode = ?", mapCode).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, false, storageError("find_id_by_mapcode", err).WithData("mapcode", mapCode)
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

// List returns common maps in id order. Entities come back clean and bound to
// the repo's store.
func (r *MapRepo) List(ctx context.Context, f domain.ListFilter) ([]*domain.CommonMap, error) {
	tx := r.db.WithContext(ctx)
	q := tx.Table(domain.CommonTable).Select(domain.CommonListColumns())
	if f.Author != "" {
		q = q.Where("author = ?", f.Author)
	}
	q = categoryFilter(tx, q, domain.DivinityTable, f.Divinity)
	q = categoryFilter(tx, q, domain.SpiritualTable, f.Spiritual)

	limit := f.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	q = q.Order("id").Limit(limit).Offset(max(0, f.Offset))

	rows, err := q.Rows()
	if err != nil {
		return nil, storageError("list_maps", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.CommonMap
	for rows.Next() {
		row := make(map[string]any)
		if err := tx.ScanRows(rows, &row); err != nil {
			return nil, storageError("list_maps", err)
		}
		m := domain.NewCommonMap(r.store)
		if err := m.ImportRecord(row); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list_maps", err)
	}
	return out, nil
}

func categoryFilter(tx, q *gorm.DB, table string, want *bool) *gorm.DB {
	if want == nil {
		return q
	}
	sub := tx.Session(&gorm.Session{NewDB: true}).Table(table).Select("id")
	if *want {
		return q.Where("id IN (?)", sub)
	}
	return q.Where("id NOT IN (?)", sub)
}
