package recognizer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rect(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestSortByAspectOrdersAscending(t *testing.T) {
	imgs := []image.Image{rect(300, 48), rect(60, 48), rect(150, 48)}
	items := sortByAspect(imgs)
	assert.Len(t, items, 3)
	assert.InDelta(t, 1.25, items[0].ratio, 1e-9) // 60/48
	assert.InDelta(t, 3.125, items[1].ratio, 1e-9)
	assert.InDelta(t, 6.25, items[2].ratio, 1e-9)
	assert.Equal(t, 1, items[0].origIndex)
}

func TestGroupIntoChunks(t *testing.T) {
	items := sortByAspect([]image.Image{rect(10, 10), rect(20, 10), rect(30, 10), rect(40, 10), rect(50, 10)})
	groups := groupInto(items, 2)
	assert.Len(t, groups, 3)
	assert.Len(t, groups[0], 2)
	assert.Len(t, groups[2], 1)
}

func TestPackedWidthUsesFloorAndClamps(t *testing.T) {
	items := sortByAspect([]image.Image{rect(48, 48)}) // ratio 1.0
	w := packedWidth(items, 48, 320.0/48.0)
	assert.Equal(t, 320, w) // floored at minWhRatio, not the image's own ratio

	wide := sortByAspect([]image.Image{rect(48*300, 48)})
	clamped := packedWidth(wide, 48, 320.0/48.0)
	assert.Equal(t, 10000, clamped)
}

func TestContentWidthClampsToPackedWidth(t *testing.T) {
	it := sortByAspect([]image.Image{rect(96, 48)})[0] // ratio 2.0
	cw := contentWidth(it, 48, 320)
	assert.Equal(t, 96, cw)

	narrowPacked := contentWidth(it, 48, 50)
	assert.Equal(t, 50, narrowPacked)
}
