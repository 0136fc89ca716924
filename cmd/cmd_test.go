package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foomo/editor-prevnext/service/vo"
	"github.com/foomo/editor-prevnext/store/sqlstore"
)

func seedDatabase(t *testing.T) string {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "posts.db")
	s, err := sqlstore.Open(sqlstore.SQLite, dsn, sqlstore.DefaultTablePrefix)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.Insert(ctx,
		vo.ContentItem{ID: 1, Type: vo.TypePost, Status: vo.StatusPublish},
		vo.ContentItem{ID: 2, Type: vo.TypePost, Status: vo.StatusDraft},
		vo.ContentItem{ID: 3, Type: vo.TypePost, Status: vo.StatusPublish},
		vo.ContentItem{ID: 4, Type: vo.TypePost, Status: vo.StatusPublish},
		vo.ContentItem{ID: 5, Type: vo.TypePost, Status: vo.StatusPublish},
	))
	return dsn
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--env-file", ""))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLookup(t *testing.T) {
	t.Setenv("EDITORNAV_STORE_DSN", seedDatabase(t))
	t.Setenv("EDITORNAV_LOG_LEVEL", "error")

	out, err := execute(t, "lookup", "3", "--format", "json")
	require.NoError(t, err)

	var doc vo.NavigationDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, vo.Navigation{Current: 3, Type: vo.TypePost, Previous: vo.Some(1), Next: vo.Some(4)}, doc.Navigation)

	out, err = execute(t, "lookup", "5", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, `rel="prev"`)
	assert.NotContains(t, out, `rel="next"`)
}

func TestLookupInvalidID(t *testing.T) {
	t.Setenv("EDITORNAV_STORE_DSN", seedDatabase(t))
	t.Setenv("EDITORNAV_LOG_LEVEL", "error")

	_, err := execute(t, "lookup", "abc")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	t.Setenv("EDITORNAV_STORE_DSN", "file:"+filepath.Join(t.TempDir(), "fresh.db"))
	t.Setenv("EDITORNAV_LOG_LEVEL", "error")

	_, err := execute(t, "schema")
	require.NoError(t, err)
}
