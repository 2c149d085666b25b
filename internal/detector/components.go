package detector

import "github.com/MeKo-Christian/pogo/internal/geom"

// pixelComponent is a connected run of thresholded pixels, tracked only
// by its pixel centers (not a full mask) since that is all downstream
// hull/rect computation needs.
type pixelComponent struct {
	centers []geom.Point
}

// extractComponents finds 8-connected components in a binary mask using
// an iterative stack-based DFS (no recursion: this runs once per
// detection and the mask can be large).
func extractComponents(mask []bool, w, h int) []pixelComponent {
	visited := make([]bool, w*h)
	var comps []pixelComponent

	stack := make([]int, 0, 64)
	for y := range h {
		for x := range w {
			start := y*w + x
			if !mask[start] || visited[start] {
				continue
			}

			var comp pixelComponent
			stack = stack[:0]
			stack = append(stack, start)
			visited[start] = true

			for len(stack) > 0 {
				idx := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				cx, cy := idx%w, idx/w
				comp.centers = append(comp.centers, geom.Point{X: float64(cx) + 0.5, Y: float64(cy) + 0.5})

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := cx+dx, cy+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						ni := ny*w + nx
						if mask[ni] && !visited[ni] {
							visited[ni] = true
							stack = append(stack, ni)
						}
					}
				}
			}

			comps = append(comps, comp)
		}
	}
	return comps
}
