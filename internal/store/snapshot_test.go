package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mimic/internal/testutil"
)

func TestExportSnapshot(t *testing.T) {
	s := New(testMeta())
	for i, name := range []string{"alpha", "beta"} {
		_, err := s.Create(testutil.NewRecordWithID("account", testutil.UUID(byte(i+1))).
			Str("name", name).Build())
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, s.ExportSnapshot(path))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT id, data FROM "account" ORDER BY seq`)
	require.NoError(t, err)
	defer rows.Close()

	var got []struct{ id, data string }
	for rows.Next() {
		var r struct{ id, data string }
		require.NoError(t, rows.Scan(&r.id, &r.data))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, 2)
	assert.Equal(t, testutil.UUID(1).String(), got[0].id)
	assert.Contains(t, got[0].data, `"name":"alpha"`)
	assert.Contains(t, got[1].data, `"name":"beta"`)
}

func TestExportSnapshot_EmptyStore(t *testing.T) {
	s := New(testMeta())
	path := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, s.ExportSnapshot(path))
}
