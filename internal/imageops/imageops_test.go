package imageops

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 1, G: 2, B: 3, A: 255})
		}
	}
	return img
}

func TestResizeLimitSideDownscalesAndAligns(t *testing.T) {
	out := ResizeLimitSide(solid(2000, 1000), 960)
	b := out.Bounds()
	assert.LessOrEqual(t, b.Dx(), 960)
	assert.Zero(t, b.Dx()%32)
	assert.Zero(t, b.Dy()%32)
}

func TestResizeLimitSideNeverUpscales(t *testing.T) {
	out := ResizeLimitSide(solid(100, 50), 960)
	b := out.Bounds()
	assert.LessOrEqual(t, b.Dx(), 100)
}

func TestResizeToHeight(t *testing.T) {
	out := ResizeToHeight(solid(100, 50), 48)
	assert.Equal(t, 48, out.Bounds().Dy())
}

func TestPadRight(t *testing.T) {
	out := PadRight(solid(10, 48), 40, 48)
	assert.Equal(t, 40, out.Bounds().Dx())
	assert.Equal(t, 48, out.Bounds().Dy())
	r, g, b, a := out.At(39, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(65535), a)
}
