package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nyoom-engineering/themec"
	"github.com/nyoom-engineering/themec/fs"
	"github.com/nyoom-engineering/themec/jsonc"
	themelipgloss "github.com/nyoom-engineering/themec/lipgloss"
	"github.com/nyoom-engineering/themec/toml"
)

// App decodes a theme, optionally transforms it, and encodes the result.
type App struct {
	In        io.Reader
	Out       io.Writer
	Decoder   themec.Decoder
	Transform func(doc *themec.Table) (*themec.Table, error)
	Encoder   themec.Encoder
}

// Run converts In to Out.
func (a *App) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := a.Decoder.Decode(a.In)
	if err != nil {
		return err
	}
	if a.Transform != nil {
		if doc, err = a.Transform(doc); err != nil {
			return err
		}
	}
	return a.Encoder.Encode(a.Out, doc)
}

// RampApp prints the palette ramp of a gray family.
type RampApp struct {
	Family   string
	Registry *themec.Registry
	Renderer *lipgloss.Renderer
	Out      io.Writer
}

// Run writes the ramp.
func (a *RampApp) Run(_ context.Context) error {
	ramp := a.Registry.Lookup(a.Family)
	_, err := io.WriteString(a.Out, themelipgloss.Ramp(ramp, a.Renderer))
	return err
}

// PreviewApp decodes a theme and shows it interactively.
type PreviewApp struct {
	In        io.Reader
	Decoder   themec.Decoder
	Previewer themec.Previewer
}

// Run decodes In and previews it.
func (a *PreviewApp) Run(ctx context.Context) error {
	doc, err := a.Decoder.Decode(a.In)
	if err != nil {
		return err
	}
	return a.Previewer.Preview(ctx, doc)
}

// decoderFor picks the decoder for a source path: TOML by extension,
// otherwise JSON with comments.
func decoderFor(path string) themec.Decoder {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.NewDecoder()
	}
	return jsonc.NewDecoder()
}

// isStdio reports whether path names standard input or output.
func isStdio(path string) bool {
	return path == "" || path == "-"
}

// openInput opens path, or returns stdin for "-" or an empty path. A
// terminal stdin has nothing piped in and is reported as ErrNoInput.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if !isStdio(path) {
		return os.Open(path)
	}
	if f, ok := stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("checking stdin: %w", err)
		}
		if stat.Mode()&os.ModeCharDevice != 0 {
			return nil, themec.ErrNoInput
		}
	}
	return io.NopCloser(stdin), nil
}

// writeOutput writes data to stdout for "-" or an empty path, otherwise
// atomically to the file.
func writeOutput(path string, data []byte, stdout io.Writer, logger *slog.Logger) error {
	if isStdio(path) {
		_, err := stdout.Write(data)
		return err
	}
	written, err := fs.WriteFile(path, data)
	if err != nil {
		return err
	}
	logger.Debug("wrote output", "path", path, "changed", written)
	return nil
}
