package geom

import "math"

// OffsetPolygon moves every vertex of polygon outward by offset along its
// local outward normal (Clipper-style). For each vertex, the unit
// tangents to the previous and next vertex are used to derive the local
// outward normal (the sign is chosen from the polygon's signed area), and
// the two offset edge lines adjacent to the vertex are intersected to
// find the new vertex position. Parallel adjacent edges degrade to
// offsetting the vertex itself along its own normal.
func OffsetPolygon(polygon []Point, offset float64) []Point {
	n := len(polygon)
	if n < 3 {
		return append([]Point(nil), polygon...)
	}

	orientation := -1.0
	if signedArea(polygon) < 0 {
		orientation = 1.0
	}

	out := make([]Point, n)
	for i := range n {
		prev := polygon[(i-1+n)%n]
		cur := polygon[i]
		next := polygon[(i+1)%n]

		tPrev := unit(cur.X-prev.X, cur.Y-prev.Y)
		tNext := unit(next.X-cur.X, next.Y-cur.Y)

		nPrev := Point{X: -tPrev.Y * orientation, Y: tPrev.X * orientation}
		nNext := Point{X: -tNext.Y * orientation, Y: tNext.X * orientation}

		// Offset edges: line through (prev+nPrev*offset, cur+nPrev*offset)
		// direction tPrev, and line through (cur+nNext*offset, next+nNext*offset)
		// direction tNext. Intersect them to find the new vertex.
		p1 := Point{X: cur.X + nPrev.X*offset, Y: cur.Y + nPrev.Y*offset}
		p2 := Point{X: cur.X + nNext.X*offset, Y: cur.Y + nNext.Y*offset}

		if isParallel(tPrev, tNext) {
			avg := unit(nPrev.X+nNext.X, nPrev.Y+nNext.Y)
			out[i] = Point{X: cur.X + avg.X*offset, Y: cur.Y + avg.Y*offset}
			continue
		}

		ip, ok := intersectLines(p1, tPrev, p2, tNext)
		if !ok {
			out[i] = cur
			continue
		}
		out[i] = ip
	}
	return out
}

// UnclipBox expands box outward by offset = |area| * ratio / perimeter,
// returning the offset polygon. A zero perimeter returns an empty slice;
// a zero (or negative) offset returns the box unchanged.
func UnclipBox(box []Point, ratio float64) []Point {
	if len(box) < 3 {
		return append([]Point(nil), box...)
	}
	perimeter := polygonPerimeter(box)
	if perimeter == 0 {
		return nil
	}
	area := math.Abs(signedArea(box))
	offset := area * ratio / perimeter
	if offset <= 0 {
		return append([]Point(nil), box...)
	}
	return OffsetPolygon(box, offset)
}

func signedArea(p []Point) float64 {
	var area float64
	n := len(p)
	for i := range n {
		j := (i + 1) % n
		area += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return area / 2
}

func polygonPerimeter(p []Point) float64 {
	var perim float64
	n := len(p)
	for i := range n {
		j := (i + 1) % n
		perim += math.Hypot(p[j].X-p[i].X, p[j].Y-p[i].Y)
	}
	return perim
}

func unit(dx, dy float64) Point {
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Point{}
	}
	return Point{X: dx / l, Y: dy / l}
}

func isParallel(a, b Point) bool {
	return math.Abs(a.X*b.Y-a.Y*b.X) < 1e-9
}

// intersectLines intersects the line through p1 with direction d1 and the
// line through p2 with direction d2.
func intersectLines(p1, d1, p2, d2 Point) (Point, bool) {
	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	t := ((p2.X-p1.X)*d2.Y - (p2.Y-p1.Y)*d2.X) / denom
	return Point{X: p1.X + d1.X*t, Y: p1.Y + d1.Y*t}, true
}
