// Package imageops provides the image decode-adjacent helpers the OCR
// pipeline needs on top of a decoded image.Image: aspect-preserving
// resize to a multiple-of-32 grid, black-background padding, and crop /
// rotate primitives. It does not decode images itself (that is an
// external collaborator per SPEC_FULL.md §1).
package imageops

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ResizeLimitSide scales img so its longer side is at most limit
// (only scaling down, never up), then rounds each resulting dimension
// down to the nearest multiple of 32, clamped to at least 32.
func ResizeLimitSide(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longer := math.Max(float64(w), float64(h))

	scale := 1.0
	if longer > float64(limit) {
		scale = float64(limit) / longer
	}

	newW := roundDownToMultiple(int(float64(w)*scale), 32)
	newH := roundDownToMultiple(int(float64(h)*scale), 32)
	if newW < 32 {
		newW = 32
	}
	if newH < 32 {
		newH = 32
	}
	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}

func roundDownToMultiple(v, m int) int {
	return (v / m) * m
}

// ResizeToHeight resizes img to the given height, preserving aspect
// ratio, using Lanczos resampling.
func ResizeToHeight(img image.Image, height int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if h == 0 {
		return img
	}
	newW := int(math.Ceil(float64(w) * float64(height) / float64(h)))
	if newW < 1 {
		newW = 1
	}
	return imaging.Resize(img, newW, height, imaging.Lanczos)
}

// PadRight pastes img onto a black canvas of width x height, left-
// aligned, padding the remainder on the right and bottom with black.
func PadRight(img image.Image, width, height int) image.Image {
	bg := imaging.New(width, height, color.Black)
	return imaging.Paste(bg, img, image.Pt(0, 0))
}

// CropRect crops img to rect, clamped to img's bounds.
func CropRect(img image.Image, rect image.Rectangle) image.Image {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return imaging.New(0, 0, color.Transparent)
	}
	return imaging.Crop(img, rect)
}

// Rotate90 rotates img 90 degrees counter-clockwise.
func Rotate90(img image.Image) image.Image { return imaging.Rotate90(img) }

// Rotate180 rotates img 180 degrees.
func Rotate180(img image.Image) image.Image { return imaging.Rotate180(img) }

// Rotate270 rotates img 270 degrees counter-clockwise.
func Rotate270(img image.Image) image.Image { return imaging.Rotate270(img) }
