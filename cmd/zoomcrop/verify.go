package main

import (
	"fmt"
	"math"

	zimage "region-zoom/internal/image"
	"region-zoom/pkg/colorutil"

	"gonum.org/v1/gonum/stat"
)

// diffStats summarizes the per-pixel gray-level difference between two
// buffers of the same size.
type diffStats struct {
	Mean   float64
	StdDev float64
	Max    float64
	Pixels int
}

func (d diffStats) String() string {
	return fmt.Sprintf("mean %.3f  stddev %.3f  max %.0f  over %d pixels", d.Mean, d.StdDev, d.Max, d.Pixels)
}

// compareBuffers returns the difference statistics of a and b.
func compareBuffers(a, b *zimage.Buffer) (diffStats, error) {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return diffStats{}, fmt.Errorf("size mismatch: %dx%d vs %dx%d", a.Width(), a.Height(), b.Width(), b.Height())
	}
	diffs := make([]float64, 0, a.Width()*a.Height())
	maxDiff := 0.0
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			d := math.Abs(float64(colorutil.Gray(a.RGBAAt(x, y)) - colorutil.Gray(b.RGBAAt(x, y))))
			diffs = append(diffs, d)
			maxDiff = max(maxDiff, d)
		}
	}
	if len(diffs) == 0 {
		return diffStats{}, nil
	}
	mean, std := stat.MeanStdDev(diffs, nil)
	if len(diffs) == 1 {
		std = 0
	}
	return diffStats{Mean: mean, StdDev: std, Max: maxDiff, Pixels: len(diffs)}, nil
}
