// Package physics provides the perspective projection used to place depth
// entities on screen.
package physics

import "github.com/tomz197/vocabshooter/internal/loop/config"

// Point is a projected screen offset relative to the viewport centre.
type Point struct {
	X, Y float64
}

// Scale returns the perspective divisor for a depth. Depths below
// config.MinDepth are clamped so the divisor is never zero.
func Scale(z float64) float64 {
	if z < config.MinDepth {
		z = config.MinDepth
	}
	return config.Focal / z
}

// Project maps a lateral/vertical offset at depth z to a screen offset.
func Project(x, y, z float64) Point {
	s := Scale(z)
	return Point{X: x * s, Y: y * s}
}

// Viewport is the visible area in virtual pixels.
type Viewport struct {
	Width, Height float64
}

// NewViewport creates a viewport, never smaller than one pixel on each axis.
func NewViewport(width, height float64) Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return Viewport{Width: width, Height: height}
}

// Center returns the half extents (cx, cy).
func (v Viewport) Center() (cx, cy float64) {
	return v.Width / 2, v.Height / 2
}

// Contains reports whether a centre-relative point lies strictly inside the viewport.
func (v Viewport) Contains(p Point) bool {
	cx, cy := v.Center()
	return p.X > -cx && p.X < cx && p.Y > -cy && p.Y < cy
}

// WithinLateral reports whether a point is inside the band of m half-widths
// around the centre.
func (v Viewport) WithinLateral(p Point, m float64) bool {
	cx, _ := v.Center()
	return p.X >= -cx*m && p.X <= cx*m
}
