// Command pixelgrid shows a directory of numbered images as a pixelated grid
// that sharpens over time. Hovering raises a tile; clicking opens its link.
//
// Images are read from -images as 0.jpg, 1.jpg, ... (jpg, png, gif or webp).
// Links come from the config file or from links.txt next to the images.
// Without -images a folder picker is shown.
//
//	pixelgrid -images ./photos
//	pixelgrid -images ./photos -headless -frames 40 -every 10 -out frames
//	pixelgrid -images ./photos -script smoke.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncruces/zenity"
	"github.com/phanxgames/pixelgrid"
)

const windowTitle = "pixelgrid"

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file")
		imageDir   = flag.String("images", "", "directory holding 0.jpg, 1.jpg, ...")
		width      = flag.Int("width", 1200, "window or frame width")
		height     = flag.Int("height", 800, "window or frame height")
		title      = flag.String("title", windowTitle, "window title")
		headless   = flag.Bool("headless", false, "render without a window")
		frames     = flag.Int("frames", 40, "ticks to run in headless mode")
		every      = flag.Int("every", 10, "save every Nth headless frame")
		outDir     = flag.String("out", "frames", "headless frame output directory")
		scriptPath = flag.String("script", "", "JSON script of injected input steps")
	)
	flag.Parse()

	if err := run(options{
		configPath: *configPath,
		imageDir:   *imageDir,
		width:      *width,
		height:     *height,
		title:      *title,
		headless:   *headless,
		frames:     *frames,
		every:      *every,
		outDir:     *outDir,
		scriptPath: *scriptPath,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "[pixelgrid] %v\n", err)
		if !*headless {
			_ = zenity.Error(err.Error(), zenity.Title(*title))
		}
		os.Exit(1)
	}
}

type options struct {
	configPath string
	imageDir   string
	width      int
	height     int
	title      string
	headless   bool
	frames     int
	every      int
	outDir     string
	scriptPath string
}

func run(o options) error {
	cfg := pixelgrid.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = pixelgrid.LoadConfig(o.configPath); err != nil {
			return err
		}
	}

	dir := o.imageDir
	if dir == "" && !o.headless {
		picked, err := zenity.SelectFile(zenity.Title("Choose an image folder"), zenity.Directory())
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("pick folder: %w", err)
		}
		dir = picked
	}
	if dir == "" {
		return errors.New("no image directory given (-images)")
	}
	fsys := os.DirFS(dir)

	if len(cfg.Links) == 0 {
		links, err := pixelgrid.LoadLinks(fsys, "links.txt")
		if err != nil {
			return err
		}
		cfg.Links = links
	}

	// The folder decides the image count; NewGrid rejects a link list of a
	// different length.
	images, err := pixelgrid.LoadImages(fsys, pixelgrid.CountImages(fsys))
	if err != nil && cfg.Missing == pixelgrid.MissingHalt {
		return err
	}

	var opts []pixelgrid.Option
	if o.headless {
		opts = append(opts,
			pixelgrid.WithBackend(pixelgrid.NewSoftBackend()),
			pixelgrid.WithNavigator(pixelgrid.NavigatorFunc(func(link string) error {
				fmt.Fprintf(os.Stderr, "[pixelgrid] open %s\n", link)
				return nil
			})),
		)
	}
	g, err := pixelgrid.NewGrid(images, cfg, opts...)
	if err != nil {
		return err
	}

	if o.scriptPath != "" {
		runner, err := pixelgrid.LoadTestScriptFile(o.scriptPath)
		if err != nil {
			return err
		}
		g.SetTestRunner(runner)
		g.ScreenshotDir = o.outDir
	}

	if o.headless {
		return runHeadless(g, o)
	}
	return pixelgrid.Run(g, pixelgrid.RunConfig{Title: o.title, Width: o.width, Height: o.height})
}

func runHeadless(g *pixelgrid.Grid, o options) error {
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", o.outDir, err)
	}
	every := max(o.every, 1)
	vp := pixelgrid.Viewport{W: float64(o.width), H: float64(o.height)}
	return pixelgrid.RunHeadless(g, vp, o.frames, func(tick int, frame *pixelgrid.SoftSurface) error {
		if (tick+1)%every != 0 {
			return nil
		}
		path := filepath.Join(o.outDir, fmt.Sprintf("frame_%04d.png", tick+1))
		return pixelgrid.SavePNG(path, frame.Image())
	})
}
