package main

import (
	"fmt"
	"image"
	"log"

	"gocv.io/x/gocv"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// cvInterpolator resamples with OpenCV's resize. It satisfies
// xdraw.Interpolator so the zoom renderer can use it in place of the
// pure-Go filters. Affine transforms are not accelerated.
type cvInterpolator struct {
	flags gocv.InterpolationFlags
}

var _ xdraw.Interpolator = cvInterpolator{}

func (c cvInterpolator) Scale(dst xdraw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle, op xdraw.Op, opts *xdraw.Options) {
	out, err := c.resize(src, sr, dr.Dx(), dr.Dy())
	if err != nil {
		log.Printf("opencv resize failed, using bilinear: %v", err)
		xdraw.BiLinear.Scale(dst, dr, src, sr, op, opts)
		return
	}
	xdraw.Copy(dst, dr.Min, out, out.Bounds(), op, opts)
}

func (c cvInterpolator) Transform(dst xdraw.Image, m f64.Aff3, src image.Image, sr image.Rectangle, op xdraw.Op, opts *xdraw.Options) {
	xdraw.BiLinear.Transform(dst, m, src, sr, op, opts)
}

// resize copies sr of src into a 4-channel Mat, resizes it and copies the
// result back out. Channel order is preserved end to end.
func (c cvInterpolator) resize(src image.Image, sr image.Rectangle, w, h int) (*image.RGBA, error) {
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty resize %v -> %dx%d", sr, w, h)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	xdraw.Copy(rgba, image.Point{}, src, sr, xdraw.Src, nil)

	in, err := gocv.NewMatFromBytes(sr.Dy(), sr.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.Resize(in, &out, image.Pt(w, h), 0, 0, c.flags)

	pix := out.ToBytes()
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("unexpected resize output: %d bytes for %dx%d", len(pix), w, h)
	}
	return &image.RGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
}
