package sqlitemigrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestApplyRecordsMigration(t *testing.T) {
	t.Parallel()

	db := openMemoryDB(t)
	migrations := fstest.MapFS{
		"0001_items.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
	}

	require.NoError(t, Apply(context.Background(), db, migrations, ""))
	require.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"))
	require.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='items'"))
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	db := openMemoryDB(t)
	migrations := fstest.MapFS{
		"0001_items.sql": &fstest.MapFile{Data: []byte("CREATE TABLE items(id TEXT PRIMARY KEY);")},
	}

	require.NoError(t, Apply(context.Background(), db, migrations, "."))
	require.NoError(t, Apply(context.Background(), db, migrations, "."))
	require.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApplyLeavesFailedMigrationUnrecorded(t *testing.T) {
	t.Parallel()

	db := openMemoryDB(t)
	bad := fstest.MapFS{
		"0001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT TABLE nope(id INT);")},
	}

	require.Error(t, Apply(context.Background(), db, bad, ""))
	require.Equal(t, 0, countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApplyRunsRemainingStatementsAfterExistingTable(t *testing.T) {
	t.Parallel()

	db := openMemoryDB(t)
	_, err := db.Exec("CREATE TABLE items(id TEXT PRIMARY KEY)")
	require.NoError(t, err)

	migrations := fstest.MapFS{
		"0001_items.sql": &fstest.MapFile{Data: []byte(`-- +migrate Up
CREATE TABLE items(id TEXT PRIMARY KEY);
CREATE TABLE tags(id TEXT PRIMARY KEY, label TEXT NOT NULL DEFAULT 'a;b');
INSERT INTO tags (id) VALUES ('t1');
-- +migrate Down
DROP TABLE tags;
`)},
	}

	require.NoError(t, Apply(context.Background(), db, migrations, ""))
	require.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='tags'"))
	require.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM tags WHERE label = 'a;b'"))
	require.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{name: "single", script: "SELECT 1;", want: []string{"SELECT 1"}},
		{name: "no trailing semicolon", script: "SELECT 1;\nSELECT 2", want: []string{"SELECT 1", "SELECT 2"}},
		{name: "quoted semicolon", script: "INSERT INTO t VALUES ('x;y', 'it''s');", want: []string{"INSERT INTO t VALUES ('x;y', 'it''s')"}},
		{name: "line comment", script: "-- note; ignored\nSELECT 1;\n-- trailing", want: []string{"-- note; ignored\nSELECT 1"}},
		{name: "block comment", script: "/* a;b */ SELECT 1;", want: []string{"/* a;b */ SELECT 1"}},
		{name: "empty", script: " ;\n; ", want: nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, SplitStatements(tc.script))
		})
	}
}

func TestExtractUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "SELECT 1;", want: "SELECT 1;"},
		{name: "up only", content: "-- +migrate Up\nSELECT 1;", want: "\nSELECT 1;"},
		{name: "up and down", content: "-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;", want: "\nSELECT 1;\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ExtractUp(tc.content))
		})
	}
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, query string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}
