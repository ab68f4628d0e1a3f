package app

import (
	"context"

	"shamtool/internal/mapdb/domain"
)

type MapRepo interface {
	Count(ctx context.Context) (int64, error)
	FindIDByMapCode(ctx context.Context, mapCode int64) (int64, bool, error)
	List(ctx context.Context, f domain.ListFilter) ([]*domain.CommonMap, error)
}
