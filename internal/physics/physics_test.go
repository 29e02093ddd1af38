package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
		want    Point
	}{
		{"at focal depth", 100, -50, 800, Point{100, -50}},
		{"far halves", 100, 40, 1600, Point{50, 20}},
		{"near doubles", 10, 10, 400, Point{20, 20}},
		{"centre stays centre", 0, 0, 1234, Point{0, 0}},
		{"zero depth is floored", 1, 2, 0, Point{800, 1600}},
		{"negative depth is floored", 1, 1, -30, Point{800, 800}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.x, tt.y, tt.z)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestScale_NeverInfinite(t *testing.T) {
	for _, z := range []float64{0, -1, 1e-12, math.SmallestNonzeroFloat64} {
		s := Scale(z)
		assert.False(t, math.IsInf(s, 0), "z=%v", z)
		assert.InDelta(t, 800, s, 1e-9)
	}
}

func TestViewport(t *testing.T) {
	v := NewViewport(200, 100)
	cx, cy := v.Center()
	assert.Equal(t, 100.0, cx)
	assert.Equal(t, 50.0, cy)

	assert.True(t, v.Contains(Point{0, 0}))
	assert.True(t, v.Contains(Point{99, -49}))
	assert.False(t, v.Contains(Point{100, 0}))
	assert.False(t, v.Contains(Point{0, -50}))

	assert.True(t, v.WithinLateral(Point{150, 0}, 2))
	assert.False(t, v.WithinLateral(Point{201, 0}, 2))

	tiny := NewViewport(0, -5)
	assert.Equal(t, Viewport{Width: 1, Height: 1}, tiny)
}
