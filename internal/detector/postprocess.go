package detector

import (
	"math"
	"sort"

	"github.com/MeKo-Christian/pogo/internal/geom"
)

// Handler is the streaming predicate post-processing calls for each
// accepted box. Returning true halts further emission, letting "collect
// all" and "collect top-K high-score" consumers share the same walk
// without re-running the model.
type Handler func(box Box, score float64) bool

// postprocessOptions are the fixed detector thresholds that shape
// post-processing, independent of preprocessing/inference.
type postprocessOptions struct {
	thresh        float32
	boxThresh     float64
	unclipRatio   float64
	minSize       float64
	maxCandidates int
}

// postprocess runs the full DB-style pipeline over a probability map of
// size prob[width*height], emitting boxes scaled to (origW, origH)
// through handler until it returns true or candidates are exhausted.
func postprocess(prob []float32, width, height, origW, origH int, opts postprocessOptions, handler Handler) {
	mask := binarize(prob, width, height, opts.thresh)
	comps := extractComponents(mask, width, height)

	comps = discardSmall(comps, 4)
	comps = topByCount(comps, opts.maxCandidates)

	scaleW := float64(origW) / float64(width)
	scaleH := float64(origH) / float64(height)

	for _, comp := range comps {
		box, score, ok := processComponent(comp, prob, width, height, opts)
		if !ok {
			continue
		}
		scaled := scaleBox(box, scaleW, scaleH)
		if handler(Box{Points: toArray4(scaled), Score: score}, score) {
			return
		}
	}
}

func binarize(prob []float32, w, h int, t float32) []bool {
	mask := make([]bool, w*h)
	for i := range w * h {
		if i < len(prob) && prob[i] >= t {
			mask[i] = true
		}
	}
	return mask
}

func discardSmall(comps []pixelComponent, minPixels int) []pixelComponent {
	out := make([]pixelComponent, 0, len(comps))
	for _, c := range comps {
		if len(c.centers) >= minPixels {
			out = append(out, c)
		}
	}
	return out
}

func topByCount(comps []pixelComponent, maxCandidates int) []pixelComponent {
	sort.SliceStable(comps, func(i, j int) bool {
		return len(comps[i].centers) > len(comps[j].centers)
	})
	if len(comps) > maxCandidates {
		comps = comps[:maxCandidates]
	}
	return comps
}

// processComponent runs hull -> min-area rect -> score -> unclip ->
// min-area rect -> size filter for one component, returning false if
// the component is rejected at any stage.
func processComponent(comp pixelComponent, prob []float32, width, height int, opts postprocessOptions) ([]geom.Point, float64, bool) {
	hull := geom.ConvexHull(comp.centers)
	rect := geom.MinimumAreaRectangle(hull, true)
	if len(rect) != 4 {
		return nil, 0, false
	}

	score := meanProbabilityInside(rect, prob, width, height)
	if score < opts.boxThresh {
		return nil, 0, false
	}

	offset := geom.UnclipBox(rect, opts.unclipRatio)
	expanded := geom.MinimumAreaRectangle(offset, false)
	if len(expanded) != 4 {
		return nil, 0, false
	}

	if shorterSide(expanded) < opts.minSize {
		return nil, 0, false
	}

	clipped := clipToBounds(expanded, float64(width), float64(height))
	ordered := geom.OrderPointsClockwise(clipped)
	return ordered, score, true
}

// meanProbabilityInside averages prob over every pixel whose center
// lies inside quad, restricted to quad's bounding box for speed. Zero
// qualifying pixels scores 0.
func meanProbabilityInside(quad []geom.Point, prob []float32, width, height int) float64 {
	if len(quad) != 4 {
		return 0
	}
	var arr [4]geom.Point
	copy(arr[:], quad)

	bounds := geom.TextBox{Points: arr}.BoundingRect()
	minX := maxInt(0, int(bounds.Left))
	minY := maxInt(0, int(bounds.Top))
	maxX := minInt(width-1, int(bounds.Right)+1)
	maxY := minInt(height-1, int(bounds.Bottom)+1)

	var sum float64
	var count int
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			cx, cy := float64(x)+0.5, float64(y)+0.5
			if !geom.IsPointInsideQuad(cx, cy, arr) {
				continue
			}
			idx := y*width + x
			if idx < 0 || idx >= len(prob) {
				continue
			}
			sum += float64(prob[idx])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func shorterSide(rect []geom.Point) float64 {
	if len(rect) != 4 {
		return 0
	}
	d := func(a, b geom.Point) float64 {
		dx, dy := a.X-b.X, a.Y-b.Y
		return math.Sqrt(dx*dx + dy*dy)
	}
	side1 := d(rect[0], rect[1])
	side2 := d(rect[1], rect[2])
	if side1 < side2 {
		return side1
	}
	return side2
}

func clipToBounds(points []geom.Point, w, h float64) []geom.Point {
	out := make([]geom.Point, len(points))
	for i, p := range points {
		x, y := p.X, p.Y
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		if x > w {
			x = w
		}
		if y > h {
			y = h
		}
		out[i] = geom.Point{X: x, Y: y}
	}
	return out
}

func scaleBox(points []geom.Point, scaleW, scaleH float64) []geom.Point {
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = geom.Point{X: p.X * scaleW, Y: p.Y * scaleH}
	}
	return out
}

func toArray4(points []geom.Point) [4]geom.Point {
	var arr [4]geom.Point
	copy(arr[:], points)
	return arr
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

