package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nyoom-engineering/themec/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, filepath.Join("/tmp/xdg", "themec"), fs.DefaultConfigDir())
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "themes", "nested", "theme.json")

		written, err := fs.WriteFile(path, []byte(`{}`))

		require.NoError(t, err)
		assert.True(t, written)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})

	t.Run("skips identical content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "theme.json")
		_, err := fs.WriteFile(path, []byte(`{"a":1}`))
		require.NoError(t, err)

		written, err := fs.WriteFile(path, []byte(`{"a":1}`))

		require.NoError(t, err)
		assert.False(t, written)
	})

	t.Run("replaces changed content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "theme.json")
		_, err := fs.WriteFile(path, []byte(`{"a":1}`))
		require.NoError(t, err)

		written, err := fs.WriteFile(path, []byte(`{"a":2}`))

		require.NoError(t, err)
		assert.True(t, written)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `{"a":2}`, string(data))
	})

	t.Run("replaces content that only extends the old file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "theme.json")
		_, err := fs.WriteFile(path, []byte(`{"a":1}`))
		require.NoError(t, err)

		written, err := fs.WriteFile(path, []byte(`{"a":1}\n`))

		require.NoError(t, err)
		assert.True(t, written)
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := fs.WriteFile(filepath.Join(dir, "theme.json"), []byte(`{}`))
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
