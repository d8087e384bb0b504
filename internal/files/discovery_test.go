package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, mod time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestFindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	touch(t, dir, "returns_q2.xlsx", base.Add(2*time.Hour))
	touch(t, dir, "returns_q1.XLSX", base)
	touch(t, dir, "legacy.xls", base.Add(time.Hour))
	touch(t, dir, "notes.txt", base)
	touch(t, dir, "returns.csv", base)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.xlsx"), 0o755))

	found, err := NewDiscovery(dir).FindWorkbooks(".")
	require.NoError(t, err)
	require.Len(t, found, 3)

	// Oldest first.
	assert.Equal(t, "returns_q1.XLSX", found[0].Name)
	assert.Equal(t, "legacy.xls", found[1].Name)
	assert.Equal(t, "returns_q2.xlsx", found[2].Name)
}

func TestFindCSVFiles_AbsoluteDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.csv", time.Now())

	found, err := NewDiscovery("unrelated-base").FindCSVFiles(dir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(dir, "a.csv"), found[0].Path)
}

func TestFindWorkbooks_MissingDir(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindWorkbooks("absent")
	assert.Error(t, err)
}

func TestLatest(t *testing.T) {
	_, ok := Latest(nil)
	assert.False(t, ok)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	latest, ok := Latest([]FileInfo{
		{Name: "old", ModTime: base},
		{Name: "new", ModTime: base.Add(time.Hour)},
		{Name: "mid", ModTime: base.Add(30 * time.Minute)},
	})
	require.True(t, ok)
	assert.Equal(t, "new", latest.Name)
}
