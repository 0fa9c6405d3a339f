// Command glyphwin shapes a line of text, renders it into a framebuffer and
// keeps presenting that framebuffer until the window is closed or Escape is
// pressed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/glyphwin"
	"github.com/gogpu/glyphwin/display"
	"github.com/gogpu/glyphwin/internal/config"
	"github.com/gogpu/glyphwin/text"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	fl := flag.NewFlagSet("glyphwin", flag.ContinueOnError)
	fl.SetOutput(stderr)
	var (
		configPath = fl.String("config", "", "TOML configuration file")
		sinkName   = fl.String("sink", "", "display sink (default: best available)")
		output     = fl.String("output", "", "output file for the png sink")
		frames     = fl.Int("frames", -1, "close the png sink after this many frames")
		verbose    = fl.Bool("v", false, "enable debug logging")
	)
	if err := fl.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	glyphwin.SetLogger(log)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("loading configuration failed", "err", err)
		return 1
	}
	if *sinkName != "" {
		cfg.Sink = *sinkName
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *frames >= 0 {
		cfg.MaxFrames = *frames
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := present(ctx, cfg, log); err != nil {
		log.Error("glyphwin failed", "err", err)
		return 1
	}
	return 0
}

// present renders the configured text once and runs the presentation loop.
func present(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	fb, err := render(cfg)
	if err != nil {
		return err
	}

	opts := display.Options{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Output:    cfg.Output,
		MaxFrames: cfg.MaxFrames,
	}
	var sink display.Sink
	if cfg.Sink != "" {
		sink, err = display.Open(cfg.Sink, opts)
	} else {
		sink, err = display.OpenBest(opts)
	}
	if err != nil {
		return fmt.Errorf("opening display: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			log.Warn("closing display failed", "err", cerr)
		}
	}()

	loop, err := glyphwin.NewLoop(sink, fb, glyphwin.WithFrameInterval(cfg.Interval()))
	if err != nil {
		return err
	}
	if err := loop.Run(ctx); err != nil {
		var perr *glyphwin.PresentError
		if errors.As(err, &perr) {
			return fmt.Errorf("presenting frame %d: %w", perr.Frame, perr.Err)
		}
		return err
	}
	return nil
}

// render shapes and draws the configured text into a new framebuffer.
func render(cfg config.Config) (*glyphwin.Framebuffer, error) {
	fontOpts := []text.FontSystemOption{text.WithDefaultFont()}
	for _, path := range cfg.FontFiles {
		fontOpts = append(fontOpts, text.WithFontFile(path))
	}
	if cfg.SystemFonts {
		fontOpts = append(fontOpts, text.WithSystemFonts(""))
	}
	fonts, err := text.NewFontSystem(fontOpts...)
	if err != nil {
		return nil, err
	}

	fg, bg, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.BlendMode()
	if err != nil {
		return nil, err
	}
	subpixel, err := cfg.SubpixelMode()
	if err != nil {
		return nil, err
	}

	fb, err := glyphwin.NewFramebuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	st := text.NewGoTextShaper(fonts).Shape(cfg.Text, cfg.Metrics(), cfg.Box())
	cache := text.NewGlyphRasterCache(text.NewOutlineRasterizer(fonts))
	r := glyphwin.NewRenderer(cache,
		glyphwin.WithBackground(bg),
		glyphwin.WithBlendMode(mode),
		glyphwin.WithSubpixel(subpixel),
	)
	r.Render(fb, st, fg)
	return fb, nil
}
