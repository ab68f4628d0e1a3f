// Package dbtest opens an in-memory sqlite database with the same tables as
// configs/schema.sql, for tests that need real storage.
package dbtest

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"shamtool/internal/shared/infrastructure/db"
)

var schema = []string{
	`CREATE TABLE all_maps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mapcode INTEGER NOT NULL UNIQUE,
		author TEXT,
		xml TEXT,
		wind INTEGER,
		gravity INTEGER,
		mgoc INTEGER,
		image_url TEXT
	)`,
	`CREATE TABLE mapdb_divinity (
		id INTEGER PRIMARY KEY,
		difficulty INTEGER,
		category INTEGER,
		cage INTEGER,
		no_anchor INTEGER,
		no_motor INTEGER,
		no_balloon INTEGER,
		opportunist INTEGER,
		water INTEGER,
		timer INTEGER
	)`,
	`CREATE TABLE mapdb_spiritual (
		id INTEGER PRIMARY KEY,
		difficulty INTEGER,
		cage INTEGER,
		no_anchor INTEGER,
		no_motor INTEGER,
		water INTEGER,
		timer INTEGER,
		no_b INTEGER
	)`,
	`CREATE TABLE login_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		discord_id TEXT NOT NULL,
		username TEXT,
		ctime DATETIME,
		ip TEXT,
		state INTEGER NOT NULL DEFAULT 1
	)`,
}

// Open returns a store on a fresh database that lives as long as t.
func Open(t testing.TB) (*gorm.DB, *db.Store) {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	gdb, err := db.OpenConn(conn, 0)
	require.NoError(t, err)
	for _, ddl := range schema {
		require.NoError(t, gdb.Exec(ddl).Error)
	}
	return gdb, db.NewStore(gdb)
}

// Seed inserts a common map row and returns its id.
func Seed(t testing.TB, gdb *gorm.DB, mapCode int64, author string) int64 {
	t.Helper()
	require.NoError(t, gdb.Exec("INSERT INTO all_maps (mapcode, author, xml) VALUES (?, ?, ?)",
		mapCode, author, "<C><P/></C>").Error)
	var id int64
	require.NoError(t, gdb.Raw("SELECT id FROM all_maps WHERE mapcode = ?", mapCode).Scan(&id).Error)
	return id
}
