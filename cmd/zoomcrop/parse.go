package main

import (
	"fmt"
	"strconv"
	"strings"

	"region-zoom/pkg/geometry"
)

// parseInts splits s on commas into exactly n integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated integers, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseRegion parses "x,y,w,h".
func parseRegion(s string) (geometry.RectInt, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return geometry.RectInt{}, fmt.Errorf("region: %w", err)
	}
	return geometry.NewRectInt(v[0], v[1], v[2], v[3]), nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (geometry.PointInt, error) {
	v, err := parseInts(s, 2)
	if err != nil {
		return geometry.PointInt{}, fmt.Errorf("point: %w", err)
	}
	return geometry.PointInt{X: v[0], Y: v[1]}, nil
}

// parseStroke parses "x,y;x,y;..." into a polyline. A single point is a dot.
func parseStroke(s string) ([]geometry.PointInt, error) {
	var pts []geometry.PointInt
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := parsePoint(part)
		if err != nil {
			return nil, fmt.Errorf("stroke: %w", err)
		}
		pts = append(pts, p)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("stroke: no points in %q", s)
	}
	return pts, nil
}
