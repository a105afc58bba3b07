package main

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/parduccinward/tukuy-cms/migrations"
)

func TestCollectUpFiles_SortedUpOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"002_b.up.sql":     {Data: []byte("SELECT 2")},
		"001_a.up.sql":     {Data: []byte("SELECT 1")},
		"001_a.down.sql":   {Data: []byte("SELECT 0")},
		"000_drop_all.sql": {Data: []byte("DROP")},
		"notes.md":         {Data: []byte("x")},
	}

	files, err := collectUpFiles(fsys)
	require.NoError(t, err)
	require.Equal(t, []string{"001_a.up.sql", "002_b.up.sql"}, files)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := collectUpFiles(migrations.FS)
	require.NoError(t, err)
	require.Contains(t, files, "001_contact_rate_limit.up.sql")

	drop, err := migrations.FS.ReadFile(dropAllFile)
	require.NoError(t, err)
	require.Contains(t, string(drop), "contact_rate_limit_hits")
}
