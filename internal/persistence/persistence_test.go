package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/venuemap/pkg/errors"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.bib")

	require.NoError(t, WriteFile(path, []byte("first\n")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(got))

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, WriteFile(path, []byte("second\n")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")

	t.Run("missing source", func(t *testing.T) {
		backup, err := Backup(path, ".bak")
		require.NoError(t, err)
		assert.Empty(t, backup)
	})

	t.Run("copies content", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("- venue: ICML\n"), 0o644))
		backup, err := Backup(path, "")
		require.NoError(t, err)
		assert.Equal(t, path+".bak", backup)

		got, err := os.ReadFile(backup)
		require.NoError(t, err)
		assert.Equal(t, "- venue: ICML\n", string(got))
	})

	t.Run("read failure", func(t *testing.T) {
		_, err := Backup(dir, ".bak")
		require.Error(t, err)
		var ioErr *pkgerrors.IOError
		assert.True(t, errors.As(err, &ioErr))
	})
}

func TestLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")

	first, err := Acquire(path)
	require.NoError(t, err)
	assert.Equal(t, path+".lock", first.Path())

	_, err = Acquire(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrLocked))

	require.NoError(t, first.Release())

	second, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, second.Release())

	var none *Lock
	assert.NoError(t, none.Release())
}
