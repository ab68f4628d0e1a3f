package domain

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shamtool/internal/shared/dbentity"
	"shamtool/internal/shared/infrastructure/db/dbtest"
)

func ptr[T any](v T) *T { return &v }

func TestParseMapCode(t *testing.T) {
	cases := []struct {
		in   string
		code int64
		ok   bool
	}{
		{"@123456", 123456, true},
		{"123456", 123456, true},
		{"@0", 0, true},
		{"@", 0, false},
		{"@-1", 0, false},
		{"12a", 0, false},
		{"@@1", 0, false},
		{"", 0, false},
		{"@9999999999999999999999", 0, false},
	}
	for _, tc := range cases {
		code, ok := ParseMapCode(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.code, code, tc.in)
	}
	assert.Equal(t, "@7", FormatMapCode(7))
}

func TestCommonListColumns_OmitsXML(t *testing.T) {
	assert.Equal(t, []string{"id", "mapcode", "author", "wind", "gravity", "mgoc", "image_url"}, CommonListColumns())
}

func TestCommonMap_LoadAndView(t *testing.T) {
	ctx := context.Background()
	gdb, store := dbtest.Open(t)
	id := dbtest.Seed(t, gdb, 123456, "Shaman#0001")

	m := NewCommonMap(store)
	m.ID = id
	require.NoError(t, m.Load(ctx))
	assert.Equal(t, int64(123456), m.MapCode)
	assert.Equal(t, "<C><P/></C>", m.XML)
	assert.False(t, m.Wind.Valid)

	v := m.View(ctx)
	assert.Equal(t, "Shaman#0001", v.Author)
	assert.Nil(t, v.Wind)
	assert.False(t, v.IsDivinity)
	assert.False(t, v.IsSpiritual)
}

func TestDivinityMap_NewMapSavesCommonFirst(t *testing.T) {
	ctx := context.Background()
	_, store := dbtest.Open(t)

	common := NewCommonMap(store)
	common.Apply(CommonInput{MapCode: 42, Author: ptr("Tig"), Wind: ptr(int64(-5))})
	div := NewDivinityMap(common)
	div.Apply(DivinityInput{
		SpecialInput: SpecialInput{Difficulty: ptr(int64(3)), Cage: ptr(true)},
		Category:     ptr(int64(2)),
		Opportunist:  ptr(false),
	})
	require.NoError(t, div.Err())

	require.NoError(t, div.Sync(ctx))

	assert.NotZero(t, common.ID)
	assert.Equal(t, common.ID, div.ID())
	assert.True(t, common.IsDivinity(ctx))
	assert.False(t, common.IsSpiritual(ctx))

	v := div.View()
	assert.Equal(t, common.ID, v.ID)
	assert.Equal(t, int64(3), *v.Difficulty)
	assert.Equal(t, int64(2), *v.Category)
	assert.True(t, *v.Cage)
	assert.False(t, *v.Opportunist)
	assert.Nil(t, v.NoBalloon)
	assert.Equal(t, sql.NullInt64{Int64: -5, Valid: true}, common.Wind)
}

func TestSpiritualMap_ExtendsExistingCommonMap(t *testing.T) {
	ctx := context.Background()
	gdb, store := dbtest.Open(t)
	id := dbtest.Seed(t, gdb, 777, "Nelly")

	common := NewCommonMap(store)
	common.ID = id
	spi := NewSpiritualMap(common)
	assert.False(t, spi.IDExists(ctx))

	spi.Apply(SpiritualInput{SpecialInput: SpecialInput{Water: ptr(true)}, NoB: ptr(true)})
	require.NoError(t, spi.Save(ctx))
	assert.Equal(t, id, common.ID, "an existing map keeps its id")
	assert.True(t, spi.IDExists(ctx))

	reloaded := NewSpiritualMap(NewCommonMap(store))
	require.NoError(t, reloaded.Common.Set("id", id))
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, "Nelly", reloaded.Common.Author)
	assert.True(t, *reloaded.View().NoB)
	assert.True(t, *reloaded.View().Water)
	assert.Nil(t, reloaded.View().Cage)
}

func TestSpecialMap_MissingCategoryRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	gdb, store := dbtest.Open(t)
	id := dbtest.Seed(t, gdb, 1, "x")

	common := NewCommonMap(store)
	common.ID = id
	err := NewDivinityMap(common).Load(ctx)
	assert.True(t, errors.Is(err, dbentity.ErrNotFound))
	assert.Equal(t, "x", common.Author, "the common row loaded before the category row failed")
}

func TestApply_UnchangedValuesStayClean(t *testing.T) {
	_, store := dbtest.Open(t)
	common := NewCommonMap(store)
	common.MapCode = 9
	common.Author = "same"

	common.Apply(CommonInput{MapCode: 9, Author: ptr("same")})
	assert.Empty(t, common.Dirty())

	common.Apply(CommonInput{MapCode: 9, ImageURL: ptr("https://img")})
	assert.Equal(t, []string{"imageUrl"}, common.Dirty())
}
