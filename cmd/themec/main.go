// Command themec compiles a source theme into editor themes, variants and
// derived formats.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/nyoom-engineering/themec"
	"github.com/nyoom-engineering/themec/bubbletea"
	"github.com/nyoom-engineering/themec/chroma"
	"github.com/nyoom-engineering/themec/config"
	"github.com/nyoom-engineering/themec/fsnotify"
	"github.com/nyoom-engineering/themec/jsonc"
	themeplist "github.com/nyoom-engineering/themec/plist"
	"github.com/nyoom-engineering/themec/stylesheet"
	"github.com/nyoom-engineering/themec/variant"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// cli carries the streams and persistent flags shared by every subcommand.
type cli struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	verbose    bool
	configPath string
	registry   *themec.Registry
}

func (c *cli) logger(level slog.Level) *slog.Logger {
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
}

// convert runs app with its input and output bound to the given paths.
func (c *cli) convert(ctx context.Context, app *App, in, out string) error {
	r, err := openInput(in, c.stdin)
	if err != nil {
		return err
	}
	defer r.Close()

	var buf bytes.Buffer
	app.In = r
	app.Out = &buf
	if app.Decoder == nil {
		app.Decoder = decoderFor(in)
	}
	if err := app.Run(ctx); err != nil {
		return err
	}
	return writeOutput(out, buf.Bytes(), c.stdout, c.logger(slog.LevelInfo))
}

// NewRootCmd builds the themec command tree over the given streams.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, registry: themec.NewRegistry()}

	root := &cobra.Command{
		Use:           "themec",
		Short:         "Compile a source theme into editor themes and variants",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to the build manifest")

	root.AddCommand(
		newCompileCmd(c),
		newTmCmd(c),
		newXccolorCmd(c),
		newStCmd(c),
		newChromaCmd(c),
		newRampCmd(c),
		newPreviewCmd(c),
		newWatchCmd(c),
	)
	return root
}

func newCompileCmd(c *cli) *cobra.Command {
	var (
		v      themec.Variant
		pretty bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "compile [file|-]",
		Short: "Compile a TOML or JSON theme to JSON, optionally as a variant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in string
			if len(args) > 0 {
				in = args[0]
			}
			var enc themec.Encoder = jsonc.NewEncoder()
			if pretty {
				enc = jsonc.NewPrettyEncoder()
			}
			app := &App{
				Transform: func(doc *themec.Table) (*themec.Table, error) {
					return doc, variant.Apply(doc, v, c.registry)
				},
				Encoder: enc,
			}
			return c.convert(cmd.Context(), app, in, output)
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&pretty, "pretty", "p", false, "indent the JSON output")
	f.BoolVar(&v.OLED, "oled", false, "darken backgrounds toward black")
	f.BoolVarP(&v.Monochrome, "monochrome", "m", false, "map accents onto a gray ramp")
	f.BoolVarP(&v.Compat, "compat", "c", false, "use compatibility panel shades")
	f.BoolVar(&v.Print, "print", false, "invert colors for print")
	f.StringVar(&v.Family, "mono-family", "", "gray family for --monochrome (gray, cool, warm)")
	f.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newTmCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tm <in.json> <out.tmTheme>",
		Short: "Convert a theme to a TextMate tmTheme",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := &App{Encoder: themeplist.NewTmThemeEncoder()}
			return c.convert(cmd.Context(), app, args[0], args[1])
		},
	}
}

func newXccolorCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "xccolor <in|-> <out|->",
		Short: "Convert a theme to an Xcode color theme",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := &App{Encoder: themeplist.NewXcodeEncoder()}
			return c.convert(cmd.Context(), app, args[0], args[1])
		},
	}
}

func newStCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "st [in|-]",
		Short: "Derive stylesheet variables from a theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in string
			if len(args) > 0 {
				in = args[0]
			}
			app := &App{
				Transform: stylesheet.Build,
				Encoder:   jsonc.NewPrettyEncoder(),
			}
			return c.convert(cmd.Context(), app, in, "-")
		},
	}
}

func newChromaCmd(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "chroma <in|->",
		Short: "Export a theme as chroma HTML CSS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := &App{Encoder: chroma.NewCSSEncoder()}
			return c.convert(cmd.Context(), app, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newRampCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ramp [family]",
		Short: "Print the gray ramp used for monochrome variants",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := &RampApp{
				Registry: c.registry,
				Renderer: lipgloss.NewRenderer(c.stdout),
				Out:      c.stdout,
			}
			if len(args) > 0 {
				app.Family = args[0]
			}
			return app.Run(cmd.Context())
		},
	}
}

func newPreviewCmd(c *cli) *cobra.Command {
	var (
		sample string
		family string
	)
	cmd := &cobra.Command{
		Use:   "preview <in|->",
		Short: "Preview a theme's colors in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openInput(args[0], c.stdin)
			if err != nil {
				return err
			}
			defer r.Close()

			opts := []bubbletea.ModelOption{
				bubbletea.WithRegistry(c.registry),
				bubbletea.WithFamily(themec.ParseFamily(family)),
			}
			if sample != "" {
				src, err := os.ReadFile(sample)
				if err != nil {
					return err
				}
				opts = append(opts, bubbletea.WithSample(chroma.LanguageFor(sample), string(src), highlighter))
			}
			app := &PreviewApp{
				In:        r,
				Decoder:   decoderFor(args[0]),
				Previewer: bubbletea.NewPreviewer(opts...),
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&sample, "sample", "", "source file to highlight with the theme")
	cmd.Flags().StringVar(&family, "family", "", "initial gray family")
	return cmd
}

func highlighter(doc *themec.Table) (themec.Tokenizer, error) {
	style, err := chroma.NewStyle(doc)
	if err != nil {
		return nil, err
	}
	return chroma.NewTokenizer(style), nil
}

func newWatchCmd(c *cli) *cobra.Command {
	var (
		once    bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild every configured variant when the source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			logger := c.logger(cfg.Level())
			watcher := fsnotify.NewWatcher(logger)
			watcher.Debounce = cfg.Debounce()
			app := &WatchApp{
				Config:   cfg,
				Encoder:  jsonc.NewEncoder(),
				Watcher:  watcher,
				Registry: c.registry,
				Logger:   logger,
				Once:     once,
				Workers:  workers,
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "build once and exit")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent variant builds (default GOMAXPROCS)")
	return cmd
}
