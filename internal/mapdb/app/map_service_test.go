package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shamtool/internal/mapdb/domain"
	"shamtool/internal/mapdb/infra/repo"
	"shamtool/internal/shared/infrastructure/db/dbtest"
)

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) (*MapService, func(code int64, author string) int64) {
	t.Helper()
	gdb, store := dbtest.Open(t)
	seed := func(code int64, author string) int64 { return dbtest.Seed(t, gdb, code, author) }
	return NewMapService(repo.NewMapRepo(gdb, store), store), seed
}

type brokenRepo struct{ err error }

func (r brokenRepo) Count(context.Context) (int64, error) { return 0, r.err }

func (r brokenRepo) FindIDByMapCode(context.Context, int64) (int64, bool, error) {
	return 0, false, r.err
}

func (r brokenRepo) List(context.Context, domain.ListFilter) ([]*domain.CommonMap, error) {
	return nil, r.err
}

func TestGetByCode(t *testing.T) {
	ctx := context.Background()
	svc, seed := newService(t)
	id := seed(123, "Tig")

	m, err := svc.GetByCode(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "Tig", m.Author)

	xml, err := svc.GetXML(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, "<C><P/></C>", xml)

	_, err = svc.GetByCode(ctx, 999)
	assert.True(t, errors.Is(err, ErrMapNotFound))
}

func TestGetCategory_NotInCategory(t *testing.T) {
	ctx := context.Background()
	svc, seed := newService(t)
	seed(123, "Tig")

	_, err := svc.GetDivinity(ctx, 123)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMapNotInCategory))
	assert.Equal(t, "divinity", dataOf(err)["category"])

	_, err = svc.GetSpiritual(ctx, 999)
	assert.True(t, errors.Is(err, ErrMapNotFound))
}

func dataOf(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Data()
	}
	return nil
}

func TestRegisterDivinity_CreatesBothRows(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	m, err := svc.RegisterDivinity(ctx,
		domain.CommonInput{MapCode: 555, Author: ptr("Nelly"), XML: ptr("<C/>")},
		domain.DivinityInput{SpecialInput: domain.SpecialInput{Difficulty: ptr(int64(4))}, Category: ptr(int64(1))},
	)
	require.NoError(t, err)
	assert.NotZero(t, m.Common.ID)
	assert.Equal(t, int64(4), *m.View().Difficulty)

	got, err := svc.GetDivinity(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, m.Common.ID, got.Common.ID)
	assert.Equal(t, int64(1), *got.View().Category)
	assert.True(t, got.Common.IsDivinity(ctx))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRegisterSpiritual_ReusesExistingMap(t *testing.T) {
	ctx := context.Background()
	svc, seed := newService(t)
	id := seed(777, "Tig")

	m, err := svc.RegisterSpiritual(ctx,
		domain.CommonInput{MapCode: 777, Wind: ptr(int64(10))},
		domain.SpiritualInput{NoB: ptr(true)},
	)
	require.NoError(t, err)
	assert.Equal(t, id, m.Common.ID)
	assert.Equal(t, "Tig", m.Common.Author, "unspecified common fields are kept")
	assert.Equal(t, "<C><P/></C>", m.Common.XML)
	assert.Equal(t, int64(10), m.Common.Wind.Int64)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// registering again only updates
	_, err = svc.RegisterSpiritual(ctx, domain.CommonInput{MapCode: 777}, domain.SpiritualInput{NoB: ptr(false)})
	require.NoError(t, err)
	got, err := svc.GetSpiritual(ctx, 777)
	require.NoError(t, err)
	assert.False(t, *got.View().NoB)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, seed := newService(t)
	seed(1, "a")
	seed(2, "b")

	maps, err := svc.List(ctx, domain.ListFilter{Author: "b"})
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, int64(2), maps[0].MapCode)
}

func TestRepoFailuresBecomeUnavailable(t *testing.T) {
	ctx := context.Background()
	_, store := dbtest.Open(t)
	svc := NewMapService(brokenRepo{err: errors.New("conn refused")}, store)

	_, err := svc.Count(ctx)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, ReasonMapRepoUnavailable.Code, GetErrorReasonCode(err))

	_, err = svc.GetByCode(ctx, 1)
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = svc.RegisterDivinity(ctx, domain.CommonInput{MapCode: 1}, domain.DivinityInput{})
	assert.True(t, errors.Is(err, ErrUnavailable))

	notFound := brokenRepo{err: ErrMapNotFound}
	_, err = NewMapService(notFound, store).List(ctx, domain.ListFilter{})
	assert.True(t, errors.Is(err, ErrMapNotFound), "business errors pass through")
}
