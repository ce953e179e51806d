// Command wc-render paints a scripted demo on a headless canvas and writes
// the composite as an image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/term"

	"watercolor/internal/app"
	"watercolor/internal/render"
	"watercolor/internal/watercolor"
)

const pipeName = "-"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "wc-render:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("wc-render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 256, 256
	cfg.Bind(fs)
	out := fs.String("o", "watercolor.png", "output image path, or - for stdout (PNG)")
	dry := fs.Int("dry", 600, "ticks to run after the script so the paint settles")
	demo := fs.Bool("demo", true, "paint the built-in demo script")
	verbose := fs.Bool("v", false, "log engine events to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		watercolor.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer watercolor.SetLogger(nil)
	}

	engine := watercolor.NewWithConfig(watercolor.FromMap(cfg.Overrides()))
	if cfg.Texture != "" {
		if err := app.LoadTexture(engine, cfg.Texture); err != nil {
			return fmt.Errorf("texture %s: %w", cfg.Texture, err)
		}
	}

	ticks := 0
	if *demo {
		ticks = app.DemoScript(engine.Width(), engine.Height()).Play(engine)
	}
	for i := 0; i < *dry; i++ {
		engine.Step()
	}
	ticks += max(*dry, 0)

	img, err := render.ToNRGBA(engine.Render(), engine.Width(), engine.Height())
	if err != nil {
		return err
	}

	if *out == pipeName {
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		if err := imaging.Encode(stdout, img, imaging.PNG); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
	if err := imaging.Save(img, *out); err != nil {
		return fmt.Errorf("save %s: %w", *out, err)
	}
	fmt.Fprintf(stderr, "wrote %s (%dx%d, %d ticks)\n", *out, engine.Width(), engine.Height(), ticks)
	return nil
}
