package detector

import (
	"image"

	"github.com/MeKo-Christian/pogo/internal/imageops"
	"github.com/MeKo-Christian/pogo/internal/onnx"
)

var (
	detMean = [3]float32{0.485, 0.456, 0.406}
	detStd  = [3]float32{0.229, 0.224, 0.225}
)

// preprocessed holds the packed input tensor plus the resized dimensions
// needed to scale detection boxes back to original-image coordinates.
type preprocessed struct {
	tensor   onnx.Tensor
	width    int
	height   int
	scaleW   float64
	scaleH   float64
	origW    int
	origH    int
}

func preprocess(img image.Image, limitSideLen int) preprocessed {
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	resized := imageops.ResizeLimitSide(img, limitSideLen)
	rb := resized.Bounds()
	w, h := rb.Dx(), rb.Dy()

	data := onnx.PackImage(resized, detMean, detStd, onnx.OrderBGR)
	tensor := onnx.Tensor{Data: data, Shape: []int64{1, 3, int64(h), int64(w)}}

	return preprocessed{
		tensor: tensor,
		width:  w,
		height: h,
		scaleW: float64(origW) / float64(w),
		scaleH: float64(origH) / float64(h),
		origW:  origW,
		origH:  origH,
	}
}
