package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPointsClockwise(t *testing.T) {
	pts := []Point{{X: 10, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}
	ordered := OrderPointsClockwise(pts)
	require.Len(t, ordered, 4)

	// First element has minimum x+y.
	minSum := ordered[0].X + ordered[0].Y
	for _, p := range ordered {
		assert.LessOrEqual(t, minSum, p.X+p.Y+1e-9)
	}

	// Signed area (shoelace) of the clockwise ordering in image coords
	// (y-down) is positive (+200 for this square); we just assert the
	// ordering is a non-degenerate cyclic ordering of the input.
	area := 0.0
	for i := range 4 {
		j := (i + 1) % 4
		area += ordered[i].X*ordered[j].Y - ordered[j].X*ordered[i].Y
	}
	assert.NotZero(t, area)
}

func TestOrderPointsClockwiseWrongLength(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	assert.Equal(t, pts, OrderPointsClockwise(pts))
}

func TestPerspectiveRoundTrip(t *testing.T) {
	src := [4]Point{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	dst := [4]Point{{5, 5}, {90, 10}, {95, 60}, {2, 55}}

	h, ok := ComputePerspectiveTransform(src, dst)
	require.True(t, ok)
	hInv, ok := ComputePerspectiveTransform(dst, src)
	require.True(t, ok)

	for _, p := range src {
		x, y := ApplyHomography(h, p.X, p.Y)
		x2, y2 := ApplyHomography(hInv, x, y)
		assert.InDelta(t, p.X, x2, 1e-6)
		assert.InDelta(t, p.Y, y2, 1e-6)
	}
}

func TestConvexHullCorrectness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		n := 5 + rng.Intn(30)
		pts := make([]Point, n)
		for i := range pts {
			pts[i] = Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		}
		hull := ConvexHull(pts)
		require.GreaterOrEqual(t, len(hull), 3)

		for _, p := range pts {
			assert.True(t, pointInOrOnHull(p, hull), "point %+v outside hull", p)
		}
		for i := range hull {
			a := hull[i]
			b := hull[(i+1)%len(hull)]
			for _, p := range pts {
				assert.GreaterOrEqual(t, cross(a, b, p), -1e-6)
			}
		}
	}
}

func pointInOrOnHull(p Point, hull []Point) bool {
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		if cross(a, b, p) < -1e-6 {
			return false
		}
	}
	return true
}

func TestMinimumAreaRectangleDegenerate(t *testing.T) {
	assert.Nil(t, MinimumAreaRectangle(nil, false))
	rect := MinimumAreaRectangle([]Point{{1, 1}}, false)
	assert.Len(t, rect, 4)
}

func TestMinimumAreaRectangleAxisAligned(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	rect := MinimumAreaRectangle(pts, false)
	require.Len(t, rect, 4)
	width := math.Hypot(rect[1].X-rect[0].X, rect[1].Y-rect[0].Y)
	height := math.Hypot(rect[3].X-rect[0].X, rect[3].Y-rect[0].Y)
	assert.InDelta(t, 10, math.Max(width, height), 1e-6)
	assert.InDelta(t, 5, math.Min(width, height), 1e-6)
}

func TestIsPointInsideQuad(t *testing.T) {
	quad := [4]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.True(t, IsPointInsideQuad(5, 5, quad))
	assert.False(t, IsPointInsideQuad(15, 5, quad))
}

func TestUnclipBox(t *testing.T) {
	box := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	expanded := UnclipBox(box, 1.5)
	require.Len(t, expanded, 4)
	for _, p := range expanded {
		// every expanded corner lies outside the original box
		assert.True(t, p.X <= -0.01 || p.X >= 10.01 || p.Y <= -0.01 || p.Y >= 10.01)
	}
	origArea := math.Abs(signedArea(box))
	newArea := math.Abs(signedArea(expanded))
	assert.Greater(t, newArea, origArea)
}

func TestUnclipBoxDegenerate(t *testing.T) {
	// Fewer than 3 points: returned unchanged (not a valid polygon to offset).
	assert.Equal(t, []Point{{0, 0}, {0, 0}}, UnclipBox([]Point{{0, 0}, {0, 0}}, 1.5))
	// A valid triangle with zero perimeter is impossible, but a
	// zero-area box still has a positive perimeter and thus a
	// non-empty (possibly tiny) offset result.
	thin := []Point{{0, 0}, {10, 0}, {10, 0}, {0, 0}}
	assert.NotNil(t, UnclipBox(thin, 1.5))
}
