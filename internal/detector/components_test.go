package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func maskFromGrid(rows []string) (mask []bool, w, h int) {
	h = len(rows)
	w = len(rows[0])
	mask = make([]bool, w*h)
	for y, row := range rows {
		for x, c := range row {
			if c == '1' {
				mask[y*w+x] = true
			}
		}
	}
	return mask, w, h
}

func TestExtractComponentsSingleBlob(t *testing.T) {
	mask, w, h := maskFromGrid([]string{
		"0000",
		"0110",
		"0110",
		"0000",
	})
	comps := extractComponents(mask, w, h)
	assert.Len(t, comps, 1)
	assert.Len(t, comps[0].centers, 4)
}

func TestExtractComponentsDiagonalConnectivity(t *testing.T) {
	// 8-connected: these two diagonal pixels form one component.
	mask, w, h := maskFromGrid([]string{
		"10",
		"01",
	})
	comps := extractComponents(mask, w, h)
	assert.Len(t, comps, 1)
	assert.Len(t, comps[0].centers, 2)
}

func TestExtractComponentsDisjoint(t *testing.T) {
	mask, w, h := maskFromGrid([]string{
		"1000",
		"0000",
		"0001",
	})
	comps := extractComponents(mask, w, h)
	assert.Len(t, comps, 2)
}

func TestExtractComponentsEmpty(t *testing.T) {
	mask, w, h := maskFromGrid([]string{
		"0000",
		"0000",
	})
	comps := extractComponents(mask, w, h)
	assert.Empty(t, comps)
}

func TestExtractComponentsPixelCentersAreHalfOffset(t *testing.T) {
	mask, w, h := maskFromGrid([]string{"1"})
	comps := extractComponents(mask, w, h)
	assert.Len(t, comps, 1)
	assert.Equal(t, 0.5, comps[0].centers[0].X)
	assert.Equal(t, 0.5, comps[0].centers[0].Y)
}
