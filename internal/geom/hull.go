package geom

import "math"

// ConvexHull computes the convex hull of points via the monotone-chain
// (Andrew's) algorithm. Points are sorted lexicographically by (x, y);
// colinear points are rejected from the chains so the hull carries no
// redundant vertices. Fewer than 3 input points are returned unchanged.
func ConvexHull(points []Point) []Point {
	if len(points) < 3 {
		return append([]Point(nil), points...)
	}

	p := append([]Point(nil), points...)
	sortLexicographic(p)
	p = dedupe(p)
	if len(p) < 3 {
		return p
	}

	lower := chain(p, 1)
	upper := chain(reversed(p), 1)

	hull := make([]Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

func sortLexicographic(p []Point) {
	for i := 1; i < len(p); i++ {
		v := p[i]
		j := i - 1
		for j >= 0 && (p[j].X > v.X || (p[j].X == v.X && p[j].Y > v.Y)) {
			p[j+1] = p[j]
			j--
		}
		p[j+1] = v
	}
}

func dedupe(p []Point) []Point {
	out := p[:0]
	var last Point
	has := false
	for _, pt := range p {
		if !has || pt.X != last.X || pt.Y != last.Y {
			out = append(out, pt)
			last = pt
			has = true
		}
	}
	return out
}

func reversed(p []Point) []Point {
	out := make([]Point, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// sign selects strictly-positive-cross acceptance; colinear (cross<=0)
// points are popped off the chain.
func chain(p []Point, _ int) []Point {
	out := make([]Point, 0, len(p))
	for _, pt := range p {
		for len(out) >= 2 && cross(out[len(out)-2], out[len(out)-1], pt) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, pt)
	}
	return out
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// MinimumAreaRectangle computes the minimum-area enclosing rectangle for
// points. When pointsAreConvex is true, points is assumed to already be
// a convex hull (the caller skips recomputing it); otherwise the hull is
// computed first. Returns 4 corners; falls back to the axis-aligned
// bounding box if no hull edge yields a valid (non-degenerate) rectangle.
func MinimumAreaRectangle(points []Point, pointsAreConvex bool) []Point {
	hull := points
	if !pointsAreConvex {
		hull = ConvexHull(points)
	}
	if len(hull) == 0 {
		return nil
	}
	if len(hull) == 1 {
		p := hull[0]
		return []Point{{p.X, p.Y}, {p.X + 1, p.Y}, {p.X + 1, p.Y + 1}, {p.X, p.Y + 1}}
	}
	if len(hull) == 2 {
		a, b := hull[0], hull[1]
		return []Point{a, b, {b.X, b.Y + 1}, {a.X, a.Y + 1}}
	}

	rect, ok := minAreaRectFromHull(hull)
	if !ok {
		return axisAlignedBox(hull)
	}
	return rect
}

func minAreaRectFromHull(hull []Point) ([]Point, bool) {
	bestArea := math.Inf(1)
	var bestU, bestV Point
	var bestMinS, bestMaxS, bestMinT, bestMaxT float64
	found := false

	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux, uy := dx/length, dy/length
		vx, vy := -uy, ux

		minS, maxS := math.Inf(1), math.Inf(-1)
		minT, maxT := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			s := p.X*ux + p.Y*uy
			t := p.X*vx + p.Y*vy
			minS, maxS = math.Min(minS, s), math.Max(maxS, s)
			minT, maxT = math.Min(minT, t), math.Max(maxT, t)
		}

		width, height := maxS-minS, maxT-minT
		if width <= 1e-3 || height <= 1e-3 {
			continue
		}
		if area := width * height; area < bestArea {
			bestArea = area
			bestU, bestV = Point{ux, uy}, Point{vx, vy}
			bestMinS, bestMaxS, bestMinT, bestMaxT = minS, maxS, minT, maxT
			found = true
		}
	}
	if !found {
		return nil, false
	}

	corner := func(s, t float64) Point {
		return Point{X: bestU.X*s + bestV.X*t, Y: bestU.Y*s + bestV.Y*t}
	}
	return []Point{
		corner(bestMinS, bestMinT),
		corner(bestMaxS, bestMinT),
		corner(bestMaxS, bestMaxT),
		corner(bestMinS, bestMaxT),
	}, true
}

func axisAlignedBox(points []Point) []Point {
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
	}
	return []Point{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}}
}
