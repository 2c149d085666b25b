package recognizer

import (
	"github.com/MeKo-Christian/pogo/internal/imageops"
	"github.com/MeKo-Christian/pogo/internal/onnx"
	"github.com/disintegration/imaging"
)

var (
	recMean = [3]float32{0.5, 0.5, 0.5}
	recStd  = [3]float32{0.5, 0.5, 0.5}
)

// packItem resizes it to exactly (contentW, height), zero-pads to
// packedW, and writes the normalized BGR CHW plane into buf at offset.
func packItem(it item, height, contentW, packedW int, buf []float32, offset int) {
	resized := imaging.Resize(it.img, contentW, height, imaging.Lanczos)
	padded := imageops.PadRight(resized, packedW, height)
	onnx.PackInto(padded, buf, offset, recMean, recStd, onnx.OrderBGR)
}
