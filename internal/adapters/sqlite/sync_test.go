package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvacguide/internal/adapters/filesystem"
)

func loadContentDir(t *testing.T, dir string) *filesystem.Repository {
	t.Helper()
	repo := filesystem.NewRepository(dir, filesystem.Options{WordsPerMinute: 200})
	require.NoError(t, repo.Load(context.Background()))
	return repo
}

func TestSyncIncremental_EditAfterLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thermostat-placement.md")
	require.NoError(t, os.WriteFile(path,
		[]byte("---\ntitle: Old Title\ncluster: controls\n---\n\nBody.\n"), 0644))

	idx := openTestIndex(t, dir)
	stale := loadContentDir(t, dir)

	_, err := idx.SyncFull(stale.GetAllArticles())
	require.NoError(t, err)

	// Edit the file while the loaded collection is still the old one
	require.NoError(t, os.WriteFile(path,
		[]byte("---\ntitle: Brand New Heading\ncluster: controls\n---\n\nBody.\n"), 0644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	_, err = idx.SyncIncremental(stale.GetAllArticles())
	require.NoError(t, err)

	// A fresh load sees the edit and the index picks it up
	fresh := loadContentDir(t, dir)
	stats, err := idx.SyncIncremental(fresh.GetAllArticles())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)

	results, err := idx.Search("brand new", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "thermostat-placement", results[0].Slug)

	results, err = idx.Search("old title", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
