package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriterCreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "New.java")
	w := NewAtomicWriter(DefaultWriteConfig())

	require.NoError(t, w.WriteFile(path, []byte("class New {}")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class New {}", string(content))
}

func TestAtomicWriterPreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Strict.java")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	w := NewAtomicWriter(DefaultWriteConfig())
	require.NoError(t, w.WriteFile(path, []byte("new")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAtomicWriterLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Clean.java")
	w := NewAtomicWriter(DefaultWriteConfig())
	require.NoError(t, w.WriteFile(path, []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Clean.java", entries[0].Name())
}

func TestAtomicWriterBackupOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Keep.java")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	cfg := DefaultWriteConfig()
	cfg.BackupOriginal = true
	require.NoError(t, NewAtomicWriter(cfg).WriteFile(path, []byte("rewritten")))

	backups, err := filepath.Glob(path + ".bak.*")
	require.NoError(t, err)
	require.Len(t, backups, 1)

	content, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}
