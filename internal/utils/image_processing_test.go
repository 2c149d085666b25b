package utils

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessImageQuality(t *testing.T) {
	tests := []struct {
		name      string
		createImg func() image.Image
		expected  ImageQuality
	}{
		{
			name: "RGB image",
			createImg: func() image.Image {
				rgbaImg := image.NewRGBA(image.Rect(0, 0, 100, 100))
				for y := range 100 {
					for x := range 100 {
						rgbaImg.Set(x, y, color.RGBA{255, 0, 0, 255})
					}
				}
				return rgbaImg
			},
			expected: ImageQuality{
				Width:       100,
				Height:      100,
				AspectRatio: 1.0,
				IsGrayscale: false,
				HasAlpha:    false,
			},
		},
		{
			name: "grayscale image",
			createImg: func() image.Image {
				grayImg := image.NewGray(image.Rect(0, 0, 50, 50))
				for y := range 50 {
					for x := range 50 {
						grayImg.SetGray(x, y, color.Gray{128})
					}
				}
				return grayImg
			},
			expected: ImageQuality{
				Width:       50,
				Height:      50,
				AspectRatio: 1.0,
				IsGrayscale: true,
				HasAlpha:    false,
			},
		},
		{
			name: "image with alpha",
			createImg: func() image.Image {
				rgbaImg := image.NewRGBA(image.Rect(0, 0, 32, 32))
				for y := range 32 {
					for x := range 32 {
						rgbaImg.Set(x, y, color.RGBA{255, 255, 255, 128})
					}
				}
				return rgbaImg
			},
			expected: ImageQuality{
				Width:       32,
				Height:      32,
				AspectRatio: 1.0,
				IsGrayscale: true,
				HasAlpha:    true,
			},
		},
		{
			name: "nil image",
			createImg: func() image.Image {
				return nil
			},
			expected: ImageQuality{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := tt.createImg()
			result := AssessImageQuality(img)

			assert.Equal(t, tt.expected.Width, result.Width)
			assert.Equal(t, tt.expected.Height, result.Height)
			assert.Equal(t, tt.expected.IsGrayscale, result.IsGrayscale)
			assert.Equal(t, tt.expected.HasAlpha, result.HasAlpha)
			if tt.expected.Width > 0 && tt.expected.Height > 0 {
				assert.InDelta(t, tt.expected.AspectRatio, result.AspectRatio, 0.001)
			}
		})
	}
}

func TestImageProcessingError(t *testing.T) {
	err := &ImageProcessingError{
		Operation: "test",
		Err:       errors.New("test error"),
	}

	expectedMsg := "image processing error in test: test error"
	assert.Equal(t, expectedMsg, err.Error())
}

func BenchmarkAssessImageQuality(b *testing.B) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))

	b.ResetTimer()
	for range b.N {
		_ = AssessImageQuality(img)
	}
}
