package detector

import "sort"

// sortReadingOrder groups boxes whose minimum-y differs by at most
// lineTolerance into the same line, orders lines by top-y ascending,
// and orders boxes within a line by minimum-x ascending.
func sortReadingOrder(boxes []Box, lineTolerance float64) []Box {
	if len(boxes) <= 1 {
		return boxes
	}

	type indexed struct {
		box  Box
		minY float64
		minX float64
	}

	items := make([]indexed, len(boxes))
	for i, b := range boxes {
		items[i] = indexed{box: b, minY: minY(b), minX: minX(b)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].minY < items[j].minY
	})

	lines := make([][]indexed, 0)
	for _, it := range items {
		placed := false
		for li := range lines {
			if it.minY-lines[li][0].minY <= lineTolerance {
				lines[li] = append(lines[li], it)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, []indexed{it})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i][0].minY < lines[j][0].minY
	})

	out := make([]Box, 0, len(boxes))
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].minX < line[j].minX
		})
		for _, it := range line {
			out = append(out, it.box)
		}
	}
	return out
}

func minY(b Box) float64 {
	m := b.Points[0].Y
	for _, p := range b.Points[1:] {
		if p.Y < m {
			m = p.Y
		}
	}
	return m
}

func minX(b Box) float64 {
	m := b.Points[0].X
	for _, p := range b.Points[1:] {
		if p.X < m {
			m = p.X
		}
	}
	return m
}
