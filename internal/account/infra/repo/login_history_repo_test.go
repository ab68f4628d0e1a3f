package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shamtool/internal/account/domain"
	"shamtool/internal/shared/infrastructure/db/dbtest"
)

func TestLoginHistoryRepo_SaveAndRecent(t *testing.T) {
	ctx := context.Background()
	gdb, _ := dbtest.Open(t)
	r := NewLoginHistoryRepo(gdb)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		require.NoError(t, r.Save(ctx, domain.LoginHistory{DiscordID: "42", Username: "nelly", Ip: ip, State: domain.LoginSuccess}))
	}
	require.NoError(t, r.Save(ctx, domain.LoginHistory{DiscordID: "7", Ip: "10.0.0.3", State: domain.LoginSuccess}))

	got, err := r.Recent(ctx, "42", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "10.0.0.2", got[0].Ip)
	assert.Equal(t, "nelly", got[1].Username)
	assert.False(t, got[0].CTime.IsZero())
}

func TestLoginHistoryRepo_SaveFailureIsUnavailable(t *testing.T) {
	gdb, _ := dbtest.Open(t)
	require.NoError(t, gdb.Exec("DROP TABLE login_history").Error)

	err := NewLoginHistoryRepo(gdb).Save(context.Background(), domain.LoginHistory{DiscordID: "1"})
	assert.True(t, errors.Is(err, domain.ErrSystemUnavailable))
}

func TestLoginHistoryRepo_KeepsFailureState(t *testing.T) {
	ctx := context.Background()
	gdb, _ := dbtest.Open(t)
	r := NewLoginHistoryRepo(gdb)

	require.NoError(t, r.Save(ctx, domain.LoginHistory{DiscordID: "9", State: domain.LoginFail}))

	got, err := r.Recent(ctx, "9", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.LoginFail, got[0].State)
}
