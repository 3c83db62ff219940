package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/core"
)

func openMemory(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(&core.Config{Database: core.DatabaseConfig{Engine: EngineSQLite, Path: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	states, err := Status(ctx, db)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "0001_student.sql", states[0].Name)
	assert.False(t, states[0].Applied)

	applied, err := Migrate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_student.sql"}, applied)

	applied, err = Migrate(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied, "up to date")

	states, err = Status(ctx, db)
	require.NoError(t, err)
	assert.True(t, states[0].Applied)
	assert.False(t, states[0].AppliedAt.IsZero())

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM student"))
	assert.Zero(t, n)
}

func TestMigrate_statements(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	fsys := fstest.MapFS{
		"00001_note.sql": {Data: []byte(`-- +goose Up
CREATE TABLE note (id INTEGER PRIMARY KEY, body TEXT NOT NULL, edits INTEGER NOT NULL DEFAULT 0);
INSERT INTO note (id, body) VALUES (1, 'a;b');

-- +goose Down
DROP TABLE note;
`)},
		"00002_note_edits.sql": {Data: []byte(`-- +goose Up
-- +goose StatementBegin
CREATE TRIGGER note_edited AFTER UPDATE OF body ON note
BEGIN
    UPDATE note SET edits = edits + 1 WHERE id = NEW.id;
END;
-- +goose StatementEnd

-- +goose Down
DROP TRIGGER note_edited;
`)},
	}

	applied, err := migrate(ctx, db, fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_note.sql", "00002_note_edits.sql"}, applied)

	var body string
	require.NoError(t, db.Get(&body, "SELECT body FROM note WHERE id = 1"))
	assert.Equal(t, "a;b", body, "semicolons inside literals are not statement separators")

	_, err = db.Exec("UPDATE note SET body = 'c;d' WHERE id = 1")
	require.NoError(t, err)
	var edits int
	require.NoError(t, db.Get(&edits, "SELECT edits FROM note WHERE id = 1"))
	assert.Equal(t, 1, edits)

	t.Run("broken migration", func(t *testing.T) {
		fsys["00003_broken.sql"] = &fstest.MapFile{Data: []byte("-- +goose Up\nCREATE TABLE;\n")}
		_, err := migrate(ctx, db, fsys)
		assert.ErrorContains(t, err, "migrating database")

		states, err := status(ctx, db, fsys)
		require.NoError(t, err)
		require.Len(t, states, 3)
		assert.True(t, states[1].Applied)
		assert.False(t, states[2].Applied)
	})
}
