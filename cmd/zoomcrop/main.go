// Command zoomcrop crops a region from an image, magnifies it, optionally
// paints a stroke on the magnified copy, and saves the results. It runs the
// same zoom and brush code as the desktop application without a display.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"region-zoom/internal/brush"
	zimage "region-zoom/internal/image"
	"region-zoom/internal/selection"
	"region-zoom/internal/zoom"
	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"

	"github.com/gogpu/gg"
	"gocv.io/x/gocv"
	xdraw "golang.org/x/image/draw"
)

type config struct {
	image     string
	region    string
	click     string
	scale     float64
	stroke    string
	width     int
	color     string
	out       string
	zoomedOut string
	engine    string
	verify    bool
	verbose   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.image, "image", "", "Path to source image")
	flag.StringVar(&cfg.region, "region", "", "Region to crop as x,y,w,h (default: whole image)")
	flag.StringVar(&cfg.click, "click", "", "Zoom around a point x,y as a single click would")
	flag.Float64Var(&cfg.scale, "scale", zoom.DefaultScale, "Magnification, 1.0 to 10.0")
	flag.StringVar(&cfg.stroke, "stroke", "", "Brush stroke in zoomed coordinates: x,y;x,y;...")
	flag.IntVar(&cfg.width, "width", brush.DefaultWidth, "Brush width in zoomed pixels")
	flag.StringVar(&cfg.color, "color", colorutil.ToHex(colorutil.DefaultBrush), "Brush color #rrggbb")
	flag.StringVar(&cfg.out, "out", "", "Write the native-resolution region here")
	flag.StringVar(&cfg.zoomedOut, "zoomed-out", "", "Write the magnified region here")
	flag.StringVar(&cfg.engine, "engine", "go", "Resampler: go, catmullrom or opencv")
	flag.BoolVar(&cfg.verify, "verify", false, "Compare the zoomed buffer against a fresh zoom of the edited region")
	flag.BoolVar(&cfg.verbose, "v", false, "Log rendering details")
	flag.Parse()

	if cfg.image == "" {
		fmt.Println("Usage: zoomcrop -image <path> [-region x,y,w,h | -click x,y] [-scale s] [-stroke pts] [-out path] [-zoomed-out path] [-verify]")
		os.Exit(1)
	}
	if cfg.verbose {
		gg.SetLogger(slog.Default())
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "zoomcrop: %v\n", err)
		os.Exit(1)
	}
}

// interpolator returns the resampler named by engine.
func interpolator(engine string) (xdraw.Interpolator, error) {
	switch engine {
	case "", "go":
		return xdraw.BiLinear, nil
	case "catmullrom":
		return xdraw.CatmullRom, nil
	case "opencv":
		return cvInterpolator{flags: gocv.InterpolationLinear}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}
}

// resolveRegion turns the -region and -click flags into a region of a
// width x height image. With neither flag the region is empty, which zooms
// the whole image.
func resolveRegion(cfg config, width, height int) (geometry.RectInt, error) {
	switch {
	case cfg.region != "" && cfg.click != "":
		return geometry.RectInt{}, errors.New("use either -region or -click, not both")
	case cfg.region != "":
		return parseRegion(cfg.region)
	case cfg.click != "":
		p, err := parsePoint(cfg.click)
		if err != nil {
			return geometry.RectInt{}, err
		}
		r, ok := selection.DeriveRegion(p, p, width, height)
		if !ok {
			return geometry.RectInt{}, fmt.Errorf("click at %d,%d yields no region", p.X, p.Y)
		}
		return r, nil
	default:
		return geometry.RectInt{}, nil
	}
}

func run(cfg config, w io.Writer) error {
	interp, err := interpolator(cfg.engine)
	if err != nil {
		return err
	}

	src, err := zimage.Load(cfg.image)
	if err != nil {
		return err
	}
	defer src.Close()

	region, err := resolveRegion(cfg, src.Width(), src.Height())
	if err != nil {
		return err
	}

	view, err := zoom.NewView(src, region, cfg.scale, zoom.WithInterpolator(interp))
	if err != nil {
		return err
	}
	defer view.Close()

	r := view.Renderer()
	zw, zh := r.ZoomedSize()
	fmt.Fprintf(w, "source   %dx%d\n", src.Width(), src.Height())
	fmt.Fprintf(w, "region   %d,%d %dx%d\n", r.Region().X, r.Region().Y, r.Region().Width, r.Region().Height)
	fmt.Fprintf(w, "zoomed   %dx%d at %.1fx (%s)\n", zw, zh, view.Scale(), cfg.engine)

	if cfg.engine == "opencv" {
		reference := r.Cropped().Resample(zw, zh, xdraw.BiLinear)
		d, err := compareBuffers(r.Zoomed(), reference)
		reference.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "opencv vs go  %s\n", d)
	}

	if cfg.stroke != "" {
		if err := applyStroke(view, cfg); err != nil {
			return err
		}
	}

	if cfg.verify {
		fresh := r.Cropped().Resample(zw, zh, interp)
		d, err := compareBuffers(r.Zoomed(), fresh)
		fresh.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "verify   %s\n", d)
	}

	if cfg.out != "" {
		if err := view.Save(cfg.out, zoom.OutputCropped); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote    %s\n", cfg.out)
	}
	if cfg.zoomedOut != "" {
		if err := view.Save(cfg.zoomedOut, zoom.OutputZoomed); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote    %s\n", cfg.zoomedOut)
	}
	return nil
}

// applyStroke paints the -stroke polyline through the view, as pointer
// events on a surface showing the zoomed buffer at its native size.
func applyStroke(view *zoom.View, cfg config) error {
	pts, err := parseStroke(cfg.stroke)
	if err != nil {
		return err
	}
	c, err := colorutil.ParseHex(cfg.color)
	if err != nil {
		return err
	}

	b := view.Brush()
	b.SetColor(c)
	b.SetWidth(cfg.width)
	view.SetBrushEnabled(true)

	size := view.Renderer().Zoomed().Size()
	s := view.Surface(size, size)
	at := func(p geometry.PointInt) geometry.Point2D { return p.ToFloat() }

	if !view.PointerDown(s, at(pts[0])) {
		return fmt.Errorf("stroke starts off the zoomed image at %d,%d", pts[0].X, pts[0].Y)
	}
	defer view.PointerUp()

	// A single point leaves a dot.
	if len(pts) == 1 {
		pts = append(pts, pts[0])
	}
	for _, p := range pts[1:] {
		if _, err := view.PointerMove(s, at(p)); err != nil {
			return err
		}
	}
	return nil
}
