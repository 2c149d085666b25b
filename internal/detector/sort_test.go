package detector

import (
	"testing"

	"github.com/MeKo-Christian/pogo/internal/geom"
	"github.com/stretchr/testify/assert"
)

func boxAt(minX, minY, w, h float64) Box {
	return Box{Points: [4]geom.Point{
		{X: minX, Y: minY},
		{X: minX + w, Y: minY},
		{X: minX + w, Y: minY + h},
		{X: minX, Y: minY + h},
	}}
}

func TestSortReadingOrderSameLine(t *testing.T) {
	boxes := []Box{
		boxAt(50, 0, 10, 10),
		boxAt(10, 2, 10, 10),
		boxAt(30, 1, 10, 10),
	}
	out := sortReadingOrder(boxes, 10)
	assert.InDelta(t, 10, minX(out[0]), 1e-6)
	assert.InDelta(t, 30, minX(out[1]), 1e-6)
	assert.InDelta(t, 50, minX(out[2]), 1e-6)
}

func TestSortReadingOrderMultipleLines(t *testing.T) {
	boxes := []Box{
		boxAt(10, 100, 10, 10),
		boxAt(10, 0, 10, 10),
	}
	out := sortReadingOrder(boxes, 10)
	assert.InDelta(t, 0, minY(out[0]), 1e-6)
	assert.InDelta(t, 100, minY(out[1]), 1e-6)
}

func TestSortReadingOrderSingleOrEmpty(t *testing.T) {
	assert.Empty(t, sortReadingOrder(nil, 10))
	single := []Box{boxAt(0, 0, 1, 1)}
	assert.Equal(t, single, sortReadingOrder(single, 10))
}
