package classifier

import (
	"image"

	"github.com/MeKo-Christian/pogo/internal/imageops"
	"github.com/MeKo-Christian/pogo/internal/onnx"
)

var (
	clsMean = [3]float32{0.5, 0.5, 0.5}
	clsStd  = [3]float32{0.5, 0.5, 0.5}
)

// preprocess resizes img to height, preserving aspect ratio, clamps the
// resized width to maxWidth, and zero-pads the remainder before
// packing into a normalized BGR CHW plane.
func preprocess(img image.Image, height, maxWidth int) []float32 {
	resized := imageops.ResizeToHeight(img, height)
	b := resized.Bounds()
	if b.Dx() > maxWidth {
		resized = imageops.CropRect(resized, image.Rect(0, 0, maxWidth, height))
	}
	padded := imageops.PadRight(resized, maxWidth, height)
	return onnx.PackImage(padded, clsMean, clsStd, onnx.OrderBGR)
}
