package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/nyoom-engineering/themec"
	"github.com/nyoom-engineering/themec/config"
	"github.com/nyoom-engineering/themec/fs"
	"github.com/nyoom-engineering/themec/variant"
	"golang.org/x/sync/errgroup"
)

// WatchApp rebuilds every configured variant whenever the source changes.
type WatchApp struct {
	Config   *config.Config
	Decoder  themec.Decoder // nil picks one by source extension
	Encoder  themec.Encoder
	Watcher  themec.Watcher
	Registry *themec.Registry
	Logger   *slog.Logger
	Once     bool // build once and exit
	Workers  int  // concurrent variant builds; 0 means GOMAXPROCS
}

// Run builds once, then watches the source until ctx is cancelled.
func (a *WatchApp) Run(ctx context.Context) error {
	if err := a.Build(ctx); err != nil {
		if a.Once {
			return err
		}
		a.logger().Error("initial build failed", "err", err)
	}
	if a.Once {
		return nil
	}
	return a.Watcher.Watch(ctx, a.Config.SourcePath(), a.Build)
}

// Build compiles the source into every variant, writing only files whose
// content changed.
func (a *WatchApp) Build(ctx context.Context) error {
	logger := a.logger()
	start := time.Now()
	source := a.Config.SourcePath()

	f, err := os.Open(source)
	if err != nil {
		return err
	}
	dec := a.Decoder
	if dec == nil {
		dec = decoderFor(source)
	}
	doc, err := dec.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	if a.Config.ThemeName != "" {
		doc.Set("name", a.Config.ThemeName)
	}

	workers := a.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var written atomic.Int32
	for _, v := range a.Config.Variants {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := doc.Clone()
			if err := variant.Apply(out, v.Theme(), a.Registry); err != nil {
				return fmt.Errorf("%s: %w", v.File, err)
			}
			var buf bytes.Buffer
			if err := a.Encoder.Encode(&buf, out); err != nil {
				return fmt.Errorf("%s: %w", v.File, err)
			}
			path := a.Config.OutputPath(v)
			changed, err := fs.WriteFile(path, buf.Bytes())
			if err != nil {
				return err
			}
			if changed {
				written.Add(1)
			}
			logger.Debug("variant built", "path", path, "changed", changed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("rebuilt",
		"variants", len(a.Config.Variants),
		"written", written.Load(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func (a *WatchApp) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}
