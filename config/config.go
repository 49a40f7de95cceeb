// Package config loads the themec build manifest.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nyoom-engineering/themec"
	"github.com/nyoom-engineering/themec/fs"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the manifest name searched for in the working and config
// directories.
const FileName = "themec.toml"

// Config is the build manifest.
type Config struct {
	Source     string    `toml:"source"`      // theme source, relative to the manifest
	OutDir     string    `toml:"out_dir"`     // output directory, relative to the manifest
	DebounceMS int       `toml:"debounce_ms"` // watch debounce (default 150)
	LogLevel   string    `toml:"log_level"`   // debug, info, warn or error
	ThemeName  string    `toml:"theme_name"`  // overrides the source theme name
	Variants   []Variant `toml:"variants"`

	dir string // directory relative paths resolve against
}

// Variant is one output file and the transformations that produce it.
type Variant struct {
	File       string `toml:"file"`
	OLED       bool   `toml:"oled"`
	Compat     bool   `toml:"compat"`
	Monochrome bool   `toml:"monochrome"`
	Print      bool   `toml:"print"`
	Family     string `toml:"family"`
}

// Theme returns the variant's transformation options.
func (v Variant) Theme() themec.Variant {
	return themec.Variant{
		OLED:       v.OLED,
		Compat:     v.Compat,
		Monochrome: v.Monochrome,
		Print:      v.Print,
		Family:     v.Family,
	}
}

// DefaultVariants returns the standard set of compiled themes.
func DefaultVariants() []Variant {
	return []Variant{
		{File: "oxocarbon-color-theme.json"},
		{File: "oxocarbon-oled-color-theme.json", OLED: true},
		{File: "oxocarbon-compat-color-theme.json", Compat: true},
		{File: "oxocarbon-oled-compat-color-theme.json", OLED: true, Compat: true},
		{File: "oxocarbon-mono-color-theme.json", Monochrome: true},
		{File: "oxocarbon-oled-mono-color-theme.json", OLED: true, Monochrome: true},
		{File: "oxocarbon-mono-compat-color-theme.json", Monochrome: true, Compat: true},
		{File: "oxocarbon-oled-mono-compat-color-theme.json", OLED: true, Monochrome: true, Compat: true},
		{File: "PRINT.json", Monochrome: true, OLED: true, Print: true},
	}
}

// Defaults returns the configuration used when no manifest exists.
func Defaults() *Config {
	return &Config{
		Source:     "oxocarbon.toml",
		OutDir:     "themes",
		DebounceMS: 150,
		LogLevel:   "info",
		Variants:   DefaultVariants(),
		dir:        ".",
	}
}

// Load reads the manifest at path. With an empty path it searches
// SearchPaths and falls back to Defaults when none exists. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	chosen := path
	if chosen == "" {
		for _, p := range SearchPaths() {
			if _, err := os.Stat(p); err == nil {
				chosen = p
				break
			}
		}
	}
	if chosen == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(chosen)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", chosen, err)
	}
	cfg.dir = filepath.Dir(chosen)
	return cfg, nil
}

// Parse decodes manifest data. Paths resolve against the working directory.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{dir: "."}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for _, e := range strict.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists manifest locations in lookup order.
func SearchPaths() []string {
	out := []string{FileName, filepath.Join(fs.DefaultConfigDir(), FileName)}
	if os.Getenv("XDG_CONFIG_HOME") != "" {
		if home, _ := os.UserHomeDir(); home != "" {
			out = append(out, filepath.Join(home, ".config", "themec", FileName))
		}
	}
	return out
}

// normalize fills zero values from Defaults and validates the rest.
func (c *Config) normalize() error {
	d := Defaults()
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.OutDir == "" {
		c.OutDir = d.OutDir
	}
	if c.DebounceMS <= 0 {
		c.DebounceMS = d.DebounceMS
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if len(c.Variants) == 0 {
		c.Variants = d.Variants
	}
	seen := make(map[string]struct{}, len(c.Variants))
	for i, v := range c.Variants {
		if v.File == "" {
			return fmt.Errorf("variants[%d]: file is required", i)
		}
		if _, dup := seen[v.File]; dup {
			return fmt.Errorf("variants[%d]: duplicate file %q", i, v.File)
		}
		seen[v.File] = struct{}{}
	}
	return nil
}

// Debounce returns the watch debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// SourcePath returns the theme source path.
func (c *Config) SourcePath() string {
	return c.resolve(c.Source)
}

// OutputPath returns the path of a variant's output file.
func (c *Config) OutputPath(v Variant) string {
	return filepath.Join(c.resolve(c.OutDir), v.File)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: want debug, info, warn or error", s)
	}
	return l, nil
}
