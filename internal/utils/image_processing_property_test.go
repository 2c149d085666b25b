package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genTestImage generates a simple test image.
func genTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			// Create a simple pattern
			val := uint8((x + y) % 256)
			img.Set(x, y, color.RGBA{val, val, val, 255})
		}
	}
	return img
}

// TestAssessImageQuality_WidthHeight verifies correct dimensions are reported.
func TestAssessImageQuality_WidthHeight(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("image quality assessment reports correct dimensions", prop.ForAll(
		func(width, height int) bool {
			if width < 10 || height < 10 || width > 100 || height > 100 {
				return true
			}

			img := genTestImage(width, height)
			quality := AssessImageQuality(img)

			return quality.Width == width && quality.Height == height
		},
		gen.IntRange(10, 100),
		gen.IntRange(10, 100),
	))

	properties.TestingRun(t)
}

// TestAssessImageQuality_AspectRatio verifies aspect ratio calculation.
func TestAssessImageQuality_AspectRatio(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("image quality aspect ratio is width/height", prop.ForAll(
		func(width, height int) bool {
			if width < 10 || height < 10 || width > 100 || height > 100 {
				return true
			}

			img := genTestImage(width, height)
			quality := AssessImageQuality(img)

			expectedAspect := float64(width) / float64(height)
			return quality.AspectRatio > expectedAspect-0.01 &&
				quality.AspectRatio < expectedAspect+0.01
		},
		gen.IntRange(10, 100),
		gen.IntRange(10, 100),
	))

	properties.TestingRun(t)
}
