package recognizer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solidRGBA(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 120, G: 130, B: 140, A: 255})
		}
	}
	return img
}

func TestPackItemWritesExactShape(t *testing.T) {
	it := item{origIndex: 0, img: solidRGBA(96, 48), ratio: 2.0}
	height, contentW, packedW := 48, 96, 320

	buf := make([]float32, 3*height*packedW)
	packItem(it, height, contentW, packedW, buf, 0)

	assert.Len(t, buf, 3*height*packedW)

	// padding (beyond contentW) is pasted black, which normalizes to
	// -1; the content region (solid gray) normalizes away from -1.
	planeSize := height * packedW
	padCol := contentW + 1
	assert.Less(t, padCol, packedW)
	assert.InDelta(t, float32(-1), buf[0*planeSize+0*packedW+padCol], 1e-6)
	assert.NotEqual(t, float32(-1), buf[0*planeSize+0*packedW+0])
}

func TestPackItemOffsetIntoBatchBuffer(t *testing.T) {
	itemA := item{origIndex: 0, img: solidRGBA(48, 48), ratio: 1.0}
	itemB := item{origIndex: 1, img: solidRGBA(96, 48), ratio: 2.0}
	height, packedW := 48, 96

	buf := make([]float32, 2*3*height*packedW)
	stride := 3 * height * packedW
	packItem(itemA, height, 48, packedW, buf, 0)
	packItem(itemB, height, 96, packedW, buf, stride)

	// second item's plane should not be all zero.
	var sum float32
	for _, v := range buf[stride : stride+planeSizeFor(height, packedW)] {
		sum += v
	}
	assert.NotEqual(t, float32(0), sum)
}

func planeSizeFor(h, w int) int { return h * w }
