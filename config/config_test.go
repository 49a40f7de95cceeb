package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nyoom-engineering/themec"
	"github.com/nyoom-engineering/themec/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()

	assert.Equal(t, "oxocarbon.toml", cfg.Source)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	require.Len(t, cfg.Variants, 9)
	assert.Equal(t, "PRINT.json", cfg.Variants[8].File)
	assert.Equal(t,
		themec.Variant{OLED: true, Monochrome: true, Print: true},
		cfg.Variants[8].Theme())
	assert.Equal(t, filepath.Join("themes", "PRINT.json"), cfg.OutputPath(cfg.Variants[8]))
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("decodes all fields", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Parse([]byte(`
source = "src/theme.toml"
out_dir = "dist"
debounce_ms = 300
log_level = "debug"
theme_name = "Carbon"

[[variants]]
file = "carbon.json"

[[variants]]
file = "carbon-mono-warm.json"
monochrome = true
family = "warm"
`))

		require.NoError(t, err)
		assert.Equal(t, "src/theme.toml", cfg.Source)
		assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
		assert.Equal(t, slog.LevelDebug, cfg.Level())
		assert.Equal(t, "Carbon", cfg.ThemeName)
		require.Len(t, cfg.Variants, 2)
		assert.Equal(t, themec.Variant{Monochrome: true, Family: "warm"}, cfg.Variants[1].Theme())
		assert.Equal(t, filepath.Join("dist", "carbon.json"), cfg.OutputPath(cfg.Variants[0]))
	})

	t.Run("fills zero values from defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Parse([]byte(`debounce_ms = 0`))

		require.NoError(t, err)
		assert.Equal(t, config.Defaults().Source, cfg.Source)
		assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
		assert.Equal(t, config.DefaultVariants(), cfg.Variants)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := config.Parse([]byte(`sauce = "oxocarbon.toml"`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sauce")
	})

	t.Run("rejects unknown log levels", func(t *testing.T) {
		t.Parallel()

		_, err := config.Parse([]byte(`log_level = "loud"`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "loud")
	})

	t.Run("rejects variants without a file", func(t *testing.T) {
		t.Parallel()

		_, err := config.Parse([]byte("[[variants]]\noled = true\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "variants[0]")
	})

	t.Run("rejects duplicate variant files", func(t *testing.T) {
		t.Parallel()

		_, err := config.Parse([]byte("[[variants]]\nfile = \"a.json\"\n[[variants]]\nfile = \"a.json\"\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("resolves paths against the manifest directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		require.NoError(t, os.WriteFile(path, []byte(`source = "theme.toml"`), 0o644))

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "theme.toml"), cfg.SourcePath())
		assert.Equal(t, filepath.Join(dir, "themes", "PRINT.json"), cfg.OutputPath(cfg.Variants[8]))
	})

	t.Run("keeps absolute paths", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(t.TempDir(), "theme.toml")
		path := filepath.Join(dir, config.FileName)
		require.NoError(t, os.WriteFile(path, []byte(`source = "`+filepath.ToSlash(src)+`"`), 0o644))

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(src), filepath.ToSlash(cfg.SourcePath()))
	})

	t.Run("returns error for a missing explicit path", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))

		require.Error(t, err)
	})

	t.Run("wraps parse errors with the path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), config.FileName)
		require.NoError(t, os.WriteFile(path, []byte(`source = `), 0o644))

		_, err := config.Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := config.ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	paths := config.SearchPaths()

	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, config.FileName, paths[0])
	assert.Equal(t, filepath.Join("/tmp/xdg", "themec", config.FileName), paths[1])
}
