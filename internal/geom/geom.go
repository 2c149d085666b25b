// Package geom implements the pure numeric geometry primitives shared by
// the detector, recognizer and pipeline packages: point/polygon helpers,
// convex hulls, minimum-area rectangles, polygon offsetting and
// perspective transforms.
package geom

import (
	"math"
	"sort"
)

// Point is a 2-D coordinate in original-image pixels.
type Point struct {
	X float64
	Y float64
}

// TextBox is an oriented quadrilateral: exactly 4 points, clockwise from
// top-left once OrderPointsClockwise has been applied.
type TextBox struct {
	Points [4]Point
}

// Rect is an axis-aligned bounding box with Right >= Left, Bottom >= Top.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the rect's width.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the rect's height.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// BoundingRect computes the axis-aligned bounding box of a TextBox.
func (b TextBox) BoundingRect() Rect {
	minX, minY := b.Points[0].X, b.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range b.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{Left: minX, Top: minY, Right: maxX, Bottom: maxY}
}

// OrderPointsClockwise reorders exactly 4 points so index 0 is the
// top-left corner and the remaining points follow clockwise. Inputs of
// any other length are returned unchanged.
func OrderPointsClockwise(points []Point) []Point {
	if len(points) != 4 {
		return points
	}

	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	cx /= 4
	cy /= 4

	type withAngle struct {
		p     Point
		angle float64
	}
	angled := make([]withAngle, 4)
	for i, p := range points {
		angled[i] = withAngle{p: p, angle: math.Atan2(p.Y-cy, p.X-cx)}
	}
	sort.Slice(angled, func(i, j int) bool { return angled[i].angle < angled[j].angle })

	topLeft := 0
	best := angled[0].p.X + angled[0].p.Y
	for i := 1; i < 4; i++ {
		if s := angled[i].p.X + angled[i].p.Y; s < best {
			best = s
			topLeft = i
		}
	}

	out := make([]Point, 4)
	for i := range 4 {
		out[i] = angled[(topLeft+i)%4].p
	}
	return out
}

// IsPointInsideQuad tests whether (x, y) lies inside the convex
// quadrilateral quad (4 points, any consistent winding) by checking that
// the sign of the cross product is the same along every edge.
func IsPointInsideQuad(x, y float64, quad [4]Point) bool {
	var sign float64
	for i := range 4 {
		a := quad[i]
		b := quad[(i+1)%4]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
			continue
		}
		if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return true
}
